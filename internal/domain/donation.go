package domain

import "time"

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusApproved  DonationStatus = "approved"
	DonationStatusScheduled DonationStatus = "scheduled"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusCancelled DonationStatus = "cancelled"
)

// DonationType is the collected blood product. Each type carries its own
// shelf life (configured, see config.DonationConfig).
type DonationType string

const (
	DonationTypeWholeBlood     DonationType = "Whole Blood"
	DonationTypePlasma         DonationType = "Plasma"
	DonationTypeRedBloodCells  DonationType = "Red Blood Cells"
	DonationTypePlatelets      DonationType = "Platelets"
	DonationTypeDoubleRedCells DonationType = "Double Red Cells"
	DonationTypeCryo           DonationType = "Cryo"
	DonationTypeWhiteCells     DonationType = "White Cells"
	DonationTypeGranulocytes   DonationType = "Granulocytes"
)

// DonationTypes lists all supported product types.
var DonationTypes = []DonationType{
	DonationTypeWholeBlood,
	DonationTypePlasma,
	DonationTypeRedBloodCells,
	DonationTypePlatelets,
	DonationTypeDoubleRedCells,
	DonationTypeCryo,
	DonationTypeWhiteCells,
	DonationTypeGranulocytes,
}

// Donation is one donor's commitment to give blood: standalone (donor picked
// an organization), event-linked, or request-linked (peer-to-peer).
type Donation struct {
	ID        int32  `json:"id"`
	Reference string `json:"reference"`

	// Contact snapshot. DonorID is nil for anonymous walk-in submissions.
	DonorID  *int32     `json:"donor_id,omitempty"`
	FullName string     `json:"full_name"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
	Age      int32      `json:"age"`
	BloodGroup BloodGroup `json:"blood_group"`
	Address  string     `json:"address"`
	City     string     `json:"city"`
	State    string     `json:"state"`
	ZipCode  string     `json:"zip_code"`

	// Donor's free-form ask.
	PreferredDate *Date  `json:"preferred_date,omitempty"`
	PreferredTime string `json:"preferred_time,omitempty"` // "HH:MM", empty when none

	// Organization-confirmed appointment.
	ScheduledDate *Date  `json:"scheduled_date,omitempty"`
	ScheduledTime string `json:"scheduled_time,omitempty"`

	// EventDate is the single authoritative instant: the appointment once
	// scheduling resolves, overwritten with the actual completion instant
	// when the donation completes. The cooldown clock keys off it.
	EventDate *time.Time `json:"event_date,omitempty"`

	EventID   *int32 `json:"event_id,omitempty"`
	EventName string `json:"event_name,omitempty"`

	RequestID *int32 `json:"request_id,omitempty"`

	// SelectedOrganization is the name the donor picked at submission.
	// OrganizationID is the resolved owner, set when an organization
	// approves or accepts the donation; it is the authoritative link.
	SelectedOrganization string `json:"selected_organization,omitempty"`
	OrganizationID       *int32 `json:"organization_id,omitempty"`

	// Collected product, captured at approval. Defaults to Whole Blood / 1
	// when the organization does not record them.
	DonationType DonationType `json:"donation_type"`
	Units        int32        `json:"units"`

	Status    DonationStatus `json:"status"`
	CreatedOn string         `json:"created_on"`
	UpdatedOn string         `json:"updated_on"`
}

// IsStandalone reports whether the donation is tied to neither an event nor
// a request; scheduling for these comes solely from the donation itself.
func (d *Donation) IsStandalone() bool {
	return d.EventID == nil && d.RequestID == nil
}

// CanTransition reports whether moving from the current status to target is
// a legal state-machine edge. completed and cancelled are terminal.
func (d *Donation) CanTransition(target DonationStatus) bool {
	switch d.Status {
	case DonationStatusPending:
		switch target {
		case DonationStatusApproved, DonationStatusScheduled,
			DonationStatusCompleted, DonationStatusCancelled:
			return true
		}
	case DonationStatusApproved, DonationStatusScheduled:
		switch target {
		case DonationStatusCompleted, DonationStatusCancelled:
			return true
		}
	}
	return false
}

// AppointmentInstant derives the single instant governing time-window
// checks: EventDate when set, otherwise the scheduled date combined with
// the scheduled time (falling back to the preferred time, then midnight).
// ok is false when the donation has no date to anchor on.
func (d *Donation) AppointmentInstant(loc *time.Location) (instant time.Time, ok bool) {
	if d.EventDate != nil {
		return *d.EventDate, true
	}
	if d.ScheduledDate == nil {
		return time.Time{}, false
	}
	clockTime := d.ScheduledTime
	if clockTime == "" {
		clockTime = d.PreferredTime
	}
	return d.ScheduledDate.At(clockTime, loc), true
}
