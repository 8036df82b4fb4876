package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"bloodlink-backend/internal/clock"
	"bloodlink-backend/internal/config"
	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/logger"
	"bloodlink-backend/internal/repository"
)

type requestService struct {
	requestRepo  repository.RequestRepository
	donationRepo repository.DonationRepository
	donorRepo    repository.DonorRepository
	orgRepo      repository.OrganizationRepository
	invRepo      repository.InventoryRepository
	noteRepo     repository.NotificationRepository
	eligibility  *Eligibility
	cfg          *config.DonationConfig
	clk          clock.Clock
	validate     *validator.Validate
}

func NewRequestService(
	requestRepo repository.RequestRepository,
	donationRepo repository.DonationRepository,
	donorRepo repository.DonorRepository,
	orgRepo repository.OrganizationRepository,
	invRepo repository.InventoryRepository,
	noteRepo repository.NotificationRepository,
	cfg *config.DonationConfig,
	clk clock.Clock,
) RequestService {
	return &requestService{
		requestRepo:  requestRepo,
		donationRepo: donationRepo,
		donorRepo:    donorRepo,
		orgRepo:      orgRepo,
		invRepo:      invRepo,
		noteRepo:     noteRepo,
		eligibility:  NewEligibility(cfg),
		cfg:          cfg,
		clk:          clk,
		validate:     validator.New(),
	}
}

// CreateRequest registers a need for blood and reports how many donors in
// the request's city could answer it right now (matching blood group,
// outside the cooldown).
func (s *requestService) CreateRequest(ctx context.Context, requesterID *int32, input CreateRequestInput) (*domain.Request, int32, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, 0, err
	}
	if !domain.ValidBloodGroup(input.BloodGroup) {
		return nil, 0, fmt.Errorf("invalid blood group %q", input.BloodGroup)
	}

	r := &domain.Request{
		Reference:     uuid.NewString(),
		RequesterID:   requesterID,
		RequestType:   input.RequestType,
		PatientName:   input.PatientName,
		Email:         input.Email,
		Phone:         input.Phone,
		BloodGroup:    input.BloodGroup,
		DonationType:  input.DonationType,
		UnitsRequired: input.UnitsRequired,
		Urgency:       input.Urgency,
		HospitalName:  input.HospitalName,
		City:          input.City,
		Status:        domain.RequestStatusPending,
	}
	if input.RequiredDate != nil {
		r.RequiredDate = *input.RequiredDate
	}
	if r.DonationType == "" {
		r.DonationType = domain.DonationType(s.cfg.DefaultDonationType)
	}
	if r.Urgency == "" {
		r.Urgency = domain.UrgencyNormal
	}
	if r.RequestType == "" {
		r.RequestType = domain.RequestTypeSelf
	}

	if err := s.requestRepo.Create(ctx, r); err != nil {
		return nil, 0, err
	}

	cutoff := s.clk.Now().AddDate(0, 0, -s.cfg.CooldownDays)
	potential, err := s.donorRepo.CountEligible(ctx, r.BloodGroup, r.City, cutoff)
	if err != nil {
		logger.Warn("failed to count potential donors", "request_id", r.ID, "error", err)
		potential = 0
	}
	return r, potential, nil
}

func (s *requestService) GetRequest(ctx context.Context, requestID int32) (*domain.Request, error) {
	return s.requestRepo.GetByID(ctx, requestID)
}

func (s *requestService) ListRequestsByRequester(ctx context.Context, requesterID int32) ([]domain.Request, error) {
	return s.requestRepo.ListByRequester(ctx, requesterID, "")
}

func (s *requestService) ListOpenRequests(ctx context.Context, city string) ([]domain.Request, error) {
	return s.requestRepo.ListPendingByCity(ctx, city)
}

func (s *requestService) CancelRequest(ctx context.Context, requesterID, requestID int32) (*domain.Request, error) {
	r, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r.RequesterID == nil || *r.RequesterID != requesterID {
		return nil, &domain.ForbiddenError{Reason: "request does not belong to you"}
	}
	if r.IsTerminal() {
		return nil, &domain.InvalidStateError{Entity: "request", Status: string(r.Status)}
	}
	r.Status = domain.RequestStatusCancelled
	if err := s.requestRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// UpdateRequestStatus moves a request between its open states. The
// fulfilled status is reserved for FulfillRequest and
// AcceptRequestAndDonation, which carry the side effects.
func (s *requestService) UpdateRequestStatus(ctx context.Context, requesterID, requestID int32, status domain.RequestStatus) (*domain.Request, error) {
	switch status {
	case domain.RequestStatusPending, domain.RequestStatusMatched, domain.RequestStatusCancelled:
	default:
		return nil, &domain.InvalidStateError{Entity: "request status", Status: string(status)}
	}
	r, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r.RequesterID == nil || *r.RequesterID != requesterID {
		return nil, &domain.ForbiddenError{Reason: "request does not belong to you"}
	}
	if r.IsTerminal() {
		return nil, &domain.InvalidStateError{Entity: "request", Status: string(r.Status)}
	}
	r.Status = status
	if err := s.requestRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// FulfillRequest satisfies a pending request from the organization's own
// stock. The deduction and the request's transition to fulfilled commit in
// one transaction; a short stock leaves both untouched.
func (s *requestService) FulfillRequest(ctx context.Context, organizationID, requestID int32) (*domain.Request, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	r, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r.Status != domain.RequestStatusPending {
		return nil, &domain.InvalidStateError{Entity: "request", Status: string(r.Status)}
	}

	dtype := r.DonationType
	if dtype == "" {
		dtype = domain.DonationType(s.cfg.DefaultDonationType)
	}
	if err := s.invRepo.DeductFIFO(ctx, org.ID, r.BloodGroup, dtype, r.UnitsRequired, s.clk.Now(), &r.ID); err != nil {
		return nil, err
	}
	r.Status = domain.RequestStatusFulfilled
	return r, nil
}

// ExpressInterest creates a pending donation linked to the request on
// behalf of an eligible donor with a matching blood group.
func (s *requestService) ExpressInterest(ctx context.Context, donorID, requestID int32) (*domain.Donation, error) {
	r, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r.Status != domain.RequestStatusPending {
		return nil, &domain.InvalidStateError{Entity: "request", Status: string(r.Status)}
	}
	donor, err := s.donorRepo.GetByID(ctx, donorID)
	if err != nil {
		return nil, err
	}
	if donor.BloodGroup != r.BloodGroup {
		return nil, &domain.MismatchError{
			Reason: fmt.Sprintf("donor blood group %s does not match requested %s", donor.BloodGroup, r.BloodGroup),
		}
	}
	if err := s.eligibility.Check(donor, s.clk.Now()); err != nil {
		return nil, err
	}
	open, err := s.donationRepo.FindOpenByRequestAndDonor(ctx, r.ID, donor.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, &domain.InvalidStateError{Entity: "donation", Status: string(open.Status)}
	}

	d := &domain.Donation{
		Reference:  uuid.NewString(),
		DonorID:    &donor.ID,
		FullName:   donor.FullName,
		Email:      donor.Email,
		Phone:      donor.Phone,
		Age:        donor.Age,
		BloodGroup: donor.BloodGroup,
		City:       donor.City,
		State:      donor.State,
		RequestID:  &r.ID,
		Status:     domain.DonationStatusPending,
	}
	if d.City == "" {
		d.City = r.City
	}
	if err := s.donationRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// AcceptRequestAndDonation closes the peer-to-peer loop: the accepting
// organization takes the donor's offered donation against the request. The
// request is fulfilled and the donation completed in one transaction; the
// collected blood goes with the patient, never into inventory.
func (s *requestService) AcceptRequestAndDonation(ctx context.Context, organizationID, requestID, donationID int32) (*domain.Request, *domain.Donation, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, nil, err
	}
	r, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, nil, err
	}

	if d.RequestID == nil || *d.RequestID != r.ID {
		return nil, nil, &domain.MismatchError{Reason: "donation is not linked to this request"}
	}
	if r.City != org.City {
		return nil, nil, &domain.ForbiddenError{Reason: "request is outside your organization's city"}
	}
	if r.Status != domain.RequestStatusPending {
		return nil, nil, &domain.InvalidStateError{Entity: "request", Status: string(r.Status)}
	}
	if d.Status != domain.DonationStatusPending {
		return nil, nil, &domain.InvalidStateError{Entity: "donation", Status: string(d.Status)}
	}

	completedAt := s.clk.Now()
	if err := s.requestRepo.AcceptPeerDonation(ctx, r.ID, d.ID, org.ID, org.Name, d.DonorID, completedAt); err != nil {
		return nil, nil, err
	}
	r.Status = domain.RequestStatusFulfilled
	d.Status = domain.DonationStatusCompleted
	d.EventDate = &completedAt
	d.OrganizationID = &org.ID
	d.SelectedOrganization = org.Name

	if d.DonorID != nil {
		note := &domain.Notification{
			DonorID:     *d.DonorID,
			Type:        domain.NotificationDonationCompleted,
			Title:       "Donation completed",
			Message:     fmt.Sprintf("Thank you, your donation for %s was accepted by %s.", r.PatientName, org.Name),
			RelatedID:   &d.ID,
			RelatedType: "donation",
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Error("failed to create notification", "donor_id", *d.DonorID, "error", err)
		}
	}
	return r, d, nil
}
