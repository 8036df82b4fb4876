package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"bloodlink-backend/internal/clock"
	"bloodlink-backend/internal/config"
	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/logger"
	"bloodlink-backend/internal/repository"
)

type donationService struct {
	donationRepo repository.DonationRepository
	donorRepo    repository.DonorRepository
	orgRepo      repository.OrganizationRepository
	eventRepo    repository.EventRepository
	noteRepo     repository.NotificationRepository
	inventorySvc InventoryService
	eligibility  *Eligibility
	cfg          *config.DonationConfig
	clk          clock.Clock
	validate     *validator.Validate
}

func NewDonationService(
	donationRepo repository.DonationRepository,
	donorRepo repository.DonorRepository,
	orgRepo repository.OrganizationRepository,
	eventRepo repository.EventRepository,
	noteRepo repository.NotificationRepository,
	inventorySvc InventoryService,
	cfg *config.DonationConfig,
	clk clock.Clock,
) DonationService {
	return &donationService{
		donationRepo: donationRepo,
		donorRepo:    donorRepo,
		orgRepo:      orgRepo,
		eventRepo:    eventRepo,
		noteRepo:     noteRepo,
		inventorySvc: inventorySvc,
		eligibility:  NewEligibility(cfg),
		cfg:          cfg,
		clk:          clk,
		validate:     validator.New(),
	}
}

func (s *donationService) CreateDonation(ctx context.Context, donorID *int32, input CreateDonationInput) (*domain.Donation, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	if !domain.ValidBloodGroup(input.BloodGroup) {
		return nil, fmt.Errorf("invalid blood group %q", input.BloodGroup)
	}

	d := &domain.Donation{
		Reference:            uuid.NewString(),
		DonorID:              donorID,
		FullName:             input.FullName,
		Email:                input.Email,
		Phone:                input.Phone,
		Age:                  input.Age,
		BloodGroup:           input.BloodGroup,
		Address:              input.Address,
		City:                 input.City,
		State:                input.State,
		ZipCode:              input.ZipCode,
		PreferredDate:        input.PreferredDate,
		PreferredTime:        input.PreferredTime,
		SelectedOrganization: input.SelectedOrganization,
		EventID:              input.EventID,
		Status:               domain.DonationStatusPending,
	}

	// Registered donors must be outside the cooldown window.
	if donorID != nil {
		donor, err := s.donorRepo.GetByID(ctx, *donorID)
		if err != nil {
			return nil, err
		}
		if err := s.eligibility.Check(donor, s.clk.Now()); err != nil {
			return nil, err
		}
	}

	// Event-linked donations take their appointment from the event.
	if input.EventID != nil {
		event, err := s.eventRepo.GetByID(ctx, *input.EventID)
		if err != nil {
			return nil, err
		}
		d.EventName = event.Name
		d.EventDate = &event.EventDate
	}

	if err := s.donationRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *donationService) GetDonation(ctx context.Context, donationID int32) (*domain.Donation, error) {
	return s.donationRepo.GetByID(ctx, donationID)
}

func (s *donationService) ListDonationsByDonor(ctx context.Context, donorID int32, status domain.DonationStatus) ([]domain.Donation, error) {
	return s.donationRepo.ListByDonor(ctx, donorID, string(status))
}

func (s *donationService) ListDonationsByOrganization(ctx context.Context, organizationID int32, status domain.DonationStatus) ([]domain.Donation, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.donationRepo.ListByOrganization(ctx, org.ID, org.Name, string(status))
}

func (s *donationService) SetDonationStatus(ctx context.Context, organizationID, donationID int32, status domain.DonationStatus, overrides ScheduleOverrides) (*domain.Donation, error) {
	// Completion has its own time-window gate; never a plain status write.
	if status == domain.DonationStatusCompleted {
		return s.MarkDonationCompleted(ctx, organizationID, donationID)
	}

	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	owned, err := donationOwnedBy(ctx, s.eventRepo, d, org)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, &domain.ForbiddenError{Reason: "donation does not belong to your organization"}
	}
	if !d.CanTransition(status) {
		return nil, &domain.InvalidTransitionError{From: d.Status, To: status}
	}

	switch status {
	case domain.DonationStatusApproved, domain.DonationStatusScheduled:
		s.applyApproval(d, org, overrides)
		s.notify(ctx, d, domain.NotificationDonationApproved, "Donation approved",
			fmt.Sprintf("Your donation appointment with %s has been confirmed.", org.Name))
	case domain.DonationStatusCancelled:
		s.notify(ctx, d, domain.NotificationDonationCancelled, "Donation cancelled",
			fmt.Sprintf("Your donation with %s has been cancelled.", org.Name))
	}

	d.Status = status
	if err := s.donationRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// applyApproval pins down the appointment and the collected product at the
// moment an organization confirms a donation.
func (s *donationService) applyApproval(d *domain.Donation, org *domain.Organization, overrides ScheduleOverrides) {
	if overrides.ScheduledDate != nil {
		d.ScheduledDate = overrides.ScheduledDate
	}
	if overrides.ScheduledTime != "" {
		d.ScheduledTime = overrides.ScheduledTime
	}
	if d.IsStandalone() {
		if d.ScheduledDate == nil {
			d.ScheduledDate = d.PreferredDate
		}
		if d.ScheduledTime == "" {
			d.ScheduledTime = d.PreferredTime
		}
		if instant, ok := d.AppointmentInstant(time.Local); ok {
			d.EventDate = &instant
		}
	}

	d.OrganizationID = &org.ID

	d.DonationType = overrides.DonationType
	if d.DonationType == "" {
		d.DonationType = domain.DonationType(s.cfg.DefaultDonationType)
	}
	d.Units = overrides.Units
	if d.Units <= 0 {
		d.Units = s.cfg.DefaultUnits
	}
}

func (s *donationService) CancelDonation(ctx context.Context, donorID, donationID int32) (*domain.Donation, error) {
	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if d.DonorID == nil || *d.DonorID != donorID {
		return nil, &domain.ForbiddenError{Reason: "donation does not belong to you"}
	}
	if !d.CanTransition(domain.DonationStatusCancelled) {
		return nil, &domain.InvalidTransitionError{From: d.Status, To: domain.DonationStatusCancelled}
	}
	d.Status = domain.DonationStatusCancelled
	if err := s.donationRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *donationService) MarkDonationCompleted(ctx context.Context, organizationID, donationID int32) (*domain.Donation, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	owned, err := donationOwnedBy(ctx, s.eventRepo, d, org)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, &domain.ForbiddenError{Reason: "donation does not belong to your organization"}
	}
	if d.Status != domain.DonationStatusApproved && d.Status != domain.DonationStatusScheduled {
		return nil, &domain.InvalidStateError{Entity: "donation", Status: string(d.Status)}
	}

	appointment, ok := d.AppointmentInstant(time.Local)
	if !ok {
		return nil, &domain.InvalidStateError{Entity: "donation", Status: "unscheduled"}
	}
	now := s.clk.Now()
	if err := s.checkCompletionWindow(appointment, now); err != nil {
		return nil, err
	}

	if err := s.donationRepo.MarkCompleted(ctx, d.ID, d.DonorID, org.ID, now); err != nil {
		return nil, err
	}
	d.Status = domain.DonationStatusCompleted
	d.EventDate = &now
	d.OrganizationID = &org.ID

	// Inventory recording must never roll back a completed donation; a
	// failure here is logged and the lot reconciled manually.
	if _, err := s.inventorySvc.RecordDonation(ctx, d, org.ID); err != nil {
		logger.Error("failed to record completed donation in inventory",
			"donation_id", d.ID, "organization_id", org.ID, "error", err)
	}

	s.notify(ctx, d, domain.NotificationDonationCompleted, "Donation completed",
		fmt.Sprintf("Thank you for donating with %s.", org.Name))
	return d, nil
}

// checkCompletionWindow gates completion to [appointment - early hours,
// end of day (appointment + late days)].
func (s *donationService) checkCompletionWindow(appointment, now time.Time) error {
	opens := appointment.Add(-time.Duration(s.cfg.MarkCompletedEarlyHours) * time.Hour)
	if now.Before(opens) {
		hours := int(opens.Sub(now).Hours())
		if opens.Sub(now)%time.Hour != 0 {
			hours++
		}
		return &domain.WindowNotYetOpenError{HoursUntil: hours}
	}

	lastDay := domain.DateOf(appointment).AddDays(s.cfg.MarkCompletedLateDays)
	closes := time.Date(lastDay.Year, time.Month(lastDay.Month), lastDay.Day,
		23, 59, 59, int(999*time.Millisecond), appointment.Location())
	if now.After(closes) {
		return &domain.WindowClosedError{DaysPast: int(now.Sub(closes).Hours() / 24)}
	}
	return nil
}

func (s *donationService) GetDonorEligibility(ctx context.Context, donorID int32) (*EligibilityStatus, error) {
	donor, err := s.donorRepo.GetByID(ctx, donorID)
	if err != nil {
		return nil, err
	}
	return s.eligibility.Status(donor, s.clk.Now()), nil
}

// notify writes an in-app notification for the donation's donor, if any.
// Notification failures are logged, never surfaced.
func (s *donationService) notify(ctx context.Context, d *domain.Donation, noteType, title, message string) {
	if d.DonorID == nil {
		return
	}
	note := &domain.Notification{
		DonorID:     *d.DonorID,
		Type:        noteType,
		Title:       title,
		Message:     message,
		RelatedID:   &d.ID,
		RelatedType: "donation",
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("failed to create notification", "donor_id", *d.DonorID, "type", noteType, "error", err)
	}
}

// donationOwnedBy reports whether the organization owns the donation: via
// the resolved FK, the name the donor selected, or its hosting event.
func donationOwnedBy(ctx context.Context, eventRepo repository.EventRepository, d *domain.Donation, org *domain.Organization) (bool, error) {
	if d.OrganizationID != nil {
		return *d.OrganizationID == org.ID, nil
	}
	if d.SelectedOrganization != "" && d.SelectedOrganization == org.Name {
		return true, nil
	}
	if d.EventID != nil {
		event, err := eventRepo.GetByID(ctx, *d.EventID)
		if err != nil {
			var nf *domain.NotFoundError
			if errors.As(err, &nf) {
				return false, nil
			}
			return false, err
		}
		return event.OrganizationID == org.ID, nil
	}
	return false, nil
}
