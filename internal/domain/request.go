package domain

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusMatched   RequestStatus = "matched"
	RequestStatusFulfilled RequestStatus = "fulfilled"
	RequestStatusCancelled RequestStatus = "cancelled"
)

type RequestUrgency string

const (
	UrgencyEmergency RequestUrgency = "emergency"
	UrgencyUrgent    RequestUrgency = "urgent"
	UrgencyNormal    RequestUrgency = "normal"
)

type RequestType string

const (
	RequestTypeSelf   RequestType = "self"
	RequestTypeOthers RequestType = "others"
)

// Request is a need for blood. It is satisfied either by an organization
// deducting warehoused inventory, or peer-to-peer by a donor whose linked
// donation the organization accepts.
type Request struct {
	ID        int32  `json:"id"`
	Reference string `json:"reference"`

	RequesterID   *int32      `json:"requester_id,omitempty"`
	RequestType   RequestType `json:"request_type"`
	PatientName   string      `json:"patient_name"`
	ContactPerson string      `json:"contact_person,omitempty"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`

	BloodGroup    BloodGroup     `json:"blood_group"`
	DonationType  DonationType   `json:"donation_type"`
	UnitsRequired int32          `json:"units_required"`
	Urgency       RequestUrgency `json:"urgency"`
	RequiredDate  Date           `json:"required_date"`

	HospitalName    string `json:"hospital_name"`
	HospitalAddress string `json:"hospital_address"`
	City            string `json:"city"`
	State           string `json:"state"`
	ZipCode         string `json:"zip_code"`

	PatientCondition string `json:"patient_condition,omitempty"`
	DoctorName       string `json:"doctor_name,omitempty"`
	DoctorContact    string `json:"doctor_contact,omitempty"`

	Status    RequestStatus `json:"status"`
	CreatedOn string        `json:"created_on"`
	UpdatedOn string        `json:"updated_on"`
}

// IsTerminal reports whether the request can no longer be modified.
func (r *Request) IsTerminal() bool {
	return r.Status == RequestStatusFulfilled || r.Status == RequestStatusCancelled
}
