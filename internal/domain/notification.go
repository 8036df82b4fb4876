package domain

// Notification is an in-app record for a donor; delivery transport is out
// of scope, only the record is kept.
type Notification struct {
	ID          int32  `json:"id"`
	DonorID     int32  `json:"donor_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Read        bool   `json:"read"`
	RelatedID   *int32 `json:"related_id,omitempty"`
	RelatedType string `json:"related_type,omitempty"`
	CreatedOn   string `json:"created_on"`
}

// Notification types emitted by the engine.
const (
	NotificationDonationApproved    = "donation_approved"
	NotificationDonationCompleted   = "donation_completed"
	NotificationDonationCancelled   = "donation_cancelled"
	NotificationRescheduleApproved  = "reschedule_approved"
	NotificationRescheduleRejected  = "reschedule_rejected"
	NotificationAppointmentReminder = "appointment_reminder"
)
