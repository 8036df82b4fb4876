package domain

import "time"

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event is an organization-run donation drive. A donation linked to an
// event takes its appointment slot from the event and is owned by the
// event's organization for authorization purposes.
type Event struct {
	ID             int32       `json:"id"`
	OrganizationID int32       `json:"organization_id"`
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	EventDate      time.Time   `json:"event_date"`
	Location       string      `json:"location,omitempty"`
	City           string      `json:"city,omitempty"`
	Status         EventStatus `json:"status"`
	CreatedOn      string      `json:"created_on"`
}
