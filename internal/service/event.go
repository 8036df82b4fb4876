package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository"
)

type eventService struct {
	eventRepo repository.EventRepository
	orgRepo   repository.OrganizationRepository
	validate  *validator.Validate
}

func NewEventService(eventRepo repository.EventRepository, orgRepo repository.OrganizationRepository) EventService {
	return &eventService{eventRepo: eventRepo, orgRepo: orgRepo, validate: validator.New()}
}

func (s *eventService) CreateEvent(ctx context.Context, organizationID int32, input CreateEventInput) (*domain.Event, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	e := &domain.Event{
		OrganizationID: org.ID,
		Name:           input.Name,
		Description:    input.Description,
		EventDate:      input.EventDate.At(input.StartTime, time.Local),
		Location:       input.Location,
		City:           org.City,
		Status:         domain.EventStatusUpcoming,
	}
	if err := s.eventRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID int32) (*domain.Event, error) {
	return s.eventRepo.GetByID(ctx, eventID)
}

func (s *eventService) ListEvents(ctx context.Context, organizationID int32) ([]domain.Event, error) {
	return s.eventRepo.ListByOrganization(ctx, organizationID)
}
