package domain

type RescheduleStatus string

const (
	RescheduleStatusPending  RescheduleStatus = "pending"
	RescheduleStatusApproved RescheduleStatus = "approved"
	RescheduleStatusRejected RescheduleStatus = "rejected"
)

// RescheduleRequest is a donor's ask to move an already-confirmed
// appointment. At most one pending request may exist per donation; approval
// rewrites the parent donation's schedule, rejection leaves it untouched.
type RescheduleRequest struct {
	ID             int32  `json:"id"`
	DonationID     int32  `json:"donation_id"`
	DonorID        int32  `json:"donor_id"`
	OrganizationID *int32 `json:"organization_id,omitempty"`

	// Snapshot of the schedule being moved away from.
	OldDate *Date  `json:"old_date,omitempty"`
	OldTime string `json:"old_time,omitempty"`

	NewDate Date   `json:"new_date"`
	NewTime string `json:"new_time,omitempty"`

	Reason          string           `json:"reason,omitempty"`
	Status          RescheduleStatus `json:"status"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	CreatedOn       string           `json:"created_on"`
	UpdatedOn       string           `json:"updated_on"`
}
