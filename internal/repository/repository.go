package repository

import (
	"context"
	"time"

	"bloodlink-backend/internal/domain"
)

type DonorRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Donor, error)
	UpdateLastDonation(ctx context.Context, donorID int32, at time.Time) error

	// CountEligible counts active donors of the given blood group and city
	// whose last donation is absent or on/before the cutoff.
	CountEligible(ctx context.Context, group domain.BloodGroup, city string, cutoff time.Time) (int32, error)
}

type OrganizationRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Organization, error)
	GetByName(ctx context.Context, name string) (*domain.Organization, error)
	List(ctx context.Context, city string) ([]domain.Organization, error)
}

type DonationRepository interface {
	Create(ctx context.Context, d *domain.Donation) error
	GetByID(ctx context.Context, id int32) (*domain.Donation, error)
	Update(ctx context.Context, d *domain.Donation) error
	ListByDonor(ctx context.Context, donorID int32, status string) ([]domain.Donation, error)

	// ListByOrganization returns donations owned by the organization via the
	// resolved FK, the selected-organization name, or one of its events.
	ListByOrganization(ctx context.Context, orgID int32, orgName string, status string) ([]domain.Donation, error)

	// FindOpenByRequestAndDonor returns the donor's non-terminal donation
	// linked to a request, if any (duplicate-interest guard).
	FindOpenByRequestAndDonor(ctx context.Context, requestID, donorID int32) (*domain.Donation, error)

	// MarkCompleted flips the donation to completed, overwrites event_date
	// with the completion instant, resolves the owning organization, and
	// advances the donor's cooldown clock, all in one transaction.
	MarkCompleted(ctx context.Context, donationID int32, donorID *int32, orgID int32, completedAt time.Time) error

	// ListWithAppointmentsBetween returns approved or scheduled donations
	// whose appointment instant falls inside [from, to).
	ListWithAppointmentsBetween(ctx context.Context, from, to time.Time) ([]domain.Donation, error)
}

type RequestRepository interface {
	Create(ctx context.Context, r *domain.Request) error
	GetByID(ctx context.Context, id int32) (*domain.Request, error)
	Update(ctx context.Context, r *domain.Request) error
	ListByRequester(ctx context.Context, requesterID int32, status string) ([]domain.Request, error)
	ListPendingByCity(ctx context.Context, city string) ([]domain.Request, error)

	// AcceptPeerDonation fulfils the request and completes the linked
	// donation in one transaction: request → fulfilled, donation →
	// completed with the local completion instant and accepting
	// organization, donor cooldown clock started. No inventory is touched.
	AcceptPeerDonation(ctx context.Context, requestID, donationID, orgID int32, orgName string, donorID *int32, completedAt time.Time) error
}

type InventoryRepository interface {
	Create(ctx context.Context, lot *domain.InventoryLot) error
	GetByDonationID(ctx context.Context, donationID int32) (*domain.InventoryLot, error)

	// FindActiveLot locates the mergeable active lot for (organization,
	// blood group, product type, expiration date).
	FindActiveLot(ctx context.Context, orgID int32, group domain.BloodGroup, dtype domain.DonationType, expiration domain.Date) (*domain.InventoryLot, error)

	AddUnits(ctx context.Context, lotID int32, units int32) error
	SetStatus(ctx context.Context, lotID int32, status domain.LotStatus) error
	ListByOrganization(ctx context.Context, orgID int32) ([]domain.InventoryLot, error)

	// DeductFIFO consumes units from unexpired active lots, oldest
	// expiration first, inside one transaction with the rows locked.
	// Fully drained lots are deleted, the boundary lot is decremented.
	// When fulfillRequestID is set the request's transition to fulfilled
	// commits in the same transaction. Returns
	// domain.InsufficientInventoryError without touching any lot when
	// stock is short.
	DeductFIFO(ctx context.Context, orgID int32, group domain.BloodGroup, dtype domain.DonationType, units int32, asOf time.Time, fulfillRequestID *int32) error

	// MarkExpired flips active lots whose expiration date has passed to
	// expired, returning the number of lots reclassified.
	MarkExpired(ctx context.Context, asOf time.Time) (int64, error)
}

type RescheduleRepository interface {
	Create(ctx context.Context, rr *domain.RescheduleRequest) error
	GetByID(ctx context.Context, id int32) (*domain.RescheduleRequest, error)
	Update(ctx context.Context, rr *domain.RescheduleRequest) error
	FindPendingByDonation(ctx context.Context, donationID int32) (*domain.RescheduleRequest, error)
	ListPendingByOrganization(ctx context.Context, orgID int32) ([]domain.RescheduleRequest, error)

	// Approve marks the reschedule request approved and rewrites the parent
	// donation's schedule in one transaction.
	Approve(ctx context.Context, rr *domain.RescheduleRequest, newEventDate time.Time) error
}

type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id int32) (*domain.Event, error)
	ListByOrganization(ctx context.Context, orgID int32) ([]domain.Event, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, donorID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, donorID int32) error
}
