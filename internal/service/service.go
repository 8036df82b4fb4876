package service

import (
	"context"
	"time"

	"bloodlink-backend/internal/domain"
)

// CreateDonationInput carries a public donation sign-up. Contact
// fields are snapshotted onto the donation so walk-ins without an
// account can still be processed.
type CreateDonationInput struct {
	FullName             string             `validate:"required"`
	Email                string             `validate:"required,email"`
	Phone                string             `validate:"required"`
	Age                  int32              `validate:"required,gte=18,lte=65"`
	BloodGroup           domain.BloodGroup  `validate:"required"`
	Address              string             `validate:"required"`
	City                 string             `validate:"required"`
	State                string             `validate:"required"`
	ZipCode              string             `validate:"required"`
	PreferredDate        *domain.Date
	PreferredTime        string
	SelectedOrganization string
	EventID              *int32
}

// ScheduleOverrides are the optional fields an organization may set
// while approving a donation. Zero values mean "keep what the donor
// asked for" (or the configured defaults for type and units).
type ScheduleOverrides struct {
	ScheduledDate *domain.Date
	ScheduledTime string
	DonationType  domain.DonationType
	Units         int32
}

type CreateRequestInput struct {
	PatientName   string              `validate:"required"`
	Email         string              `validate:"required,email"`
	Phone         string              `validate:"required"`
	BloodGroup    domain.BloodGroup   `validate:"required"`
	DonationType  domain.DonationType
	UnitsRequired int32               `validate:"required,gt=0"`
	Urgency       domain.RequestUrgency
	RequestType   domain.RequestType
	HospitalName  string `validate:"required"`
	City          string `validate:"required"`
	RequiredDate  *domain.Date
	Notes         string
}

type CreateEventInput struct {
	Name        string      `validate:"required"`
	Description string
	EventDate   domain.Date `validate:"required"`
	StartTime   string
	EndTime     string
	Location    string      `validate:"required"`
	Capacity    int32
}

// EligibilityStatus reports where a donor stands against the donation
// cooldown as of the moment it was computed.
type EligibilityStatus struct {
	Eligible       bool       `json:"eligible"`
	DaysSince      int        `json:"daysSinceLastDonation"`
	DaysRemaining  int        `json:"daysRemaining"`
	LastDonationAt *time.Time `json:"lastDonationAt,omitempty"`
}

type DonationService interface {
	CreateDonation(ctx context.Context, donorID *int32, input CreateDonationInput) (*domain.Donation, error)
	GetDonation(ctx context.Context, donationID int32) (*domain.Donation, error)
	ListDonationsByDonor(ctx context.Context, donorID int32, status domain.DonationStatus) ([]domain.Donation, error)
	ListDonationsByOrganization(ctx context.Context, organizationID int32, status domain.DonationStatus) ([]domain.Donation, error)
	SetDonationStatus(ctx context.Context, organizationID, donationID int32, status domain.DonationStatus, overrides ScheduleOverrides) (*domain.Donation, error)
	CancelDonation(ctx context.Context, donorID, donationID int32) (*domain.Donation, error)
	MarkDonationCompleted(ctx context.Context, organizationID, donationID int32) (*domain.Donation, error)
	GetDonorEligibility(ctx context.Context, donorID int32) (*EligibilityStatus, error)
}

type InventoryService interface {
	RecordDonation(ctx context.Context, donation *domain.Donation, organizationID int32) (*domain.InventoryLot, error)
	Deduct(ctx context.Context, organizationID int32, bloodGroup domain.BloodGroup, donationType domain.DonationType, units int32) error
	GetInventory(ctx context.Context, organizationID int32) ([]domain.InventoryLot, *domain.InventorySummary, error)
	ExpireLots(ctx context.Context) (int64, error)
}

type RequestService interface {
	CreateRequest(ctx context.Context, requesterID *int32, input CreateRequestInput) (*domain.Request, int32, error)
	GetRequest(ctx context.Context, requestID int32) (*domain.Request, error)
	ListRequestsByRequester(ctx context.Context, requesterID int32) ([]domain.Request, error)
	ListOpenRequests(ctx context.Context, city string) ([]domain.Request, error)
	CancelRequest(ctx context.Context, requesterID, requestID int32) (*domain.Request, error)
	UpdateRequestStatus(ctx context.Context, requesterID, requestID int32, status domain.RequestStatus) (*domain.Request, error)
	FulfillRequest(ctx context.Context, organizationID, requestID int32) (*domain.Request, error)
	ExpressInterest(ctx context.Context, donorID, requestID int32) (*domain.Donation, error)
	AcceptRequestAndDonation(ctx context.Context, organizationID, requestID, donationID int32) (*domain.Request, *domain.Donation, error)
}

type RescheduleService interface {
	RequestReschedule(ctx context.Context, donorID, donationID int32, newDate domain.Date, newTime, reason string) (*domain.RescheduleRequest, error)
	ResolveReschedule(ctx context.Context, organizationID, rescheduleID int32, approve bool, rejectionReason string) (*domain.RescheduleRequest, error)
	ListPendingReschedules(ctx context.Context, organizationID int32) ([]domain.RescheduleRequest, error)
}

type EventService interface {
	CreateEvent(ctx context.Context, organizationID int32, input CreateEventInput) (*domain.Event, error)
	GetEvent(ctx context.Context, eventID int32) (*domain.Event, error)
	ListEvents(ctx context.Context, organizationID int32) ([]domain.Event, error)
}

type NotificationService interface {
	ListNotifications(ctx context.Context, donorID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkNotificationRead(ctx context.Context, donorID, notificationID int32) error
}
