package service

import (
	"context"
	"fmt"
	"time"

	"bloodlink-backend/internal/clock"
	"bloodlink-backend/internal/config"
	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/logger"
	"bloodlink-backend/internal/repository"
)

type rescheduleService struct {
	rescheduleRepo repository.RescheduleRepository
	donationRepo   repository.DonationRepository
	orgRepo        repository.OrganizationRepository
	eventRepo      repository.EventRepository
	noteRepo       repository.NotificationRepository
	cfg            *config.DonationConfig
	clk            clock.Clock
}

func NewRescheduleService(
	rescheduleRepo repository.RescheduleRepository,
	donationRepo repository.DonationRepository,
	orgRepo repository.OrganizationRepository,
	eventRepo repository.EventRepository,
	noteRepo repository.NotificationRepository,
	cfg *config.DonationConfig,
	clk clock.Clock,
) RescheduleService {
	return &rescheduleService{
		rescheduleRepo: rescheduleRepo,
		donationRepo:   donationRepo,
		orgRepo:        orgRepo,
		eventRepo:      eventRepo,
		noteRepo:       noteRepo,
		cfg:            cfg,
		clk:            clk,
	}
}

// RequestReschedule files a donor's ask to move a confirmed appointment.
// Only approved or scheduled donations qualify, at most one pending request
// may exist per donation, and the ask must come in before the cutoff ahead
// of the current appointment.
func (s *rescheduleService) RequestReschedule(ctx context.Context, donorID, donationID int32, newDate domain.Date, newTime, reason string) (*domain.RescheduleRequest, error) {
	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if d.DonorID == nil || *d.DonorID != donorID {
		return nil, &domain.ForbiddenError{Reason: "donation does not belong to you"}
	}
	if d.Status != domain.DonationStatusApproved && d.Status != domain.DonationStatusScheduled {
		return nil, &domain.InvalidStateError{Entity: "donation", Status: string(d.Status)}
	}
	if newDate.IsZero() {
		return nil, fmt.Errorf("new date is required")
	}

	pending, err := s.rescheduleRepo.FindPendingByDonation(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, &domain.DuplicatePendingError{DonationID: d.ID}
	}

	appointment, ok := d.AppointmentInstant(time.Local)
	if !ok {
		return nil, &domain.InvalidStateError{Entity: "donation", Status: "unscheduled"}
	}
	// The cutoff itself is too late: strictly more than the configured
	// hours must remain before the appointment.
	cutoff := time.Duration(s.cfg.RescheduleCutoffHours) * time.Hour
	if !s.clk.Now().Before(appointment.Add(-cutoff)) {
		return nil, &domain.TooLateError{CutoffHours: s.cfg.RescheduleCutoffHours}
	}

	rr := &domain.RescheduleRequest{
		DonationID:     d.ID,
		DonorID:        donorID,
		OrganizationID: d.OrganizationID,
		OldDate:        d.ScheduledDate,
		OldTime:        d.ScheduledTime,
		NewDate:        newDate,
		NewTime:        newTime,
		Reason:         reason,
		Status:         domain.RescheduleStatusPending,
	}
	if err := s.rescheduleRepo.Create(ctx, rr); err != nil {
		return nil, err
	}
	return rr, nil
}

// ResolveReschedule is the organization's verdict. Approval rewrites the
// parent donation's schedule and appointment instant in one transaction
// with the status flip; rejection records the reason and leaves the
// donation untouched.
func (s *rescheduleService) ResolveReschedule(ctx context.Context, organizationID, rescheduleID int32, approve bool, rejectionReason string) (*domain.RescheduleRequest, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	rr, err := s.rescheduleRepo.GetByID(ctx, rescheduleID)
	if err != nil {
		return nil, err
	}
	if rr.Status != domain.RescheduleStatusPending {
		return nil, &domain.InvalidStateError{Entity: "reschedule request", Status: string(rr.Status)}
	}
	d, err := s.donationRepo.GetByID(ctx, rr.DonationID)
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

	if !approve {
		rr.Status = domain.RescheduleStatusRejected
		rr.RejectionReason = rejectionReason
		if err := s.rescheduleRepo.Update(ctx, rr); err != nil {
			return nil, err
		}
		s.notifyDonor(ctx, rr, domain.NotificationRescheduleRejected, "Reschedule rejected",
			fmt.Sprintf("Your reschedule request was rejected: %s", rejectionReason))
		return rr, nil
	}

	newTime := rr.NewTime
	if newTime == "" {
		newTime = d.ScheduledTime
	}
	newEventDate := rr.NewDate.At(newTime, time.Local)
	if err := s.rescheduleRepo.Approve(ctx, rr, newEventDate); err != nil {
		return nil, err
	}
	rr.Status = domain.RescheduleStatusApproved
	s.notifyDonor(ctx, rr, domain.NotificationRescheduleApproved, "Reschedule approved",
		fmt.Sprintf("Your appointment has been moved to %s.", rr.NewDate))
	return rr, nil
}

func (s *rescheduleService) ListPendingReschedules(ctx context.Context, organizationID int32) ([]domain.RescheduleRequest, error) {
	return s.rescheduleRepo.ListPendingByOrganization(ctx, organizationID)
}

func (s *rescheduleService) notifyDonor(ctx context.Context, rr *domain.RescheduleRequest, noteType, title, message string) {
	note := &domain.Notification{
		DonorID:     rr.DonorID,
		Type:        noteType,
		Title:       title,
		Message:     message,
		RelatedID:   &rr.DonationID,
		RelatedType: "donation",
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("failed to create notification", "donor_id", rr.DonorID, "type", noteType, "error", err)
	}
}
