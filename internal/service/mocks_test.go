package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"bloodlink-backend/internal/domain"
)

// MockDonorRepo
type MockDonorRepo struct {
	mock.Mock
}

func (m *MockDonorRepo) GetByID(ctx context.Context, id int32) (*domain.Donor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donor), args.Error(1)
}
func (m *MockDonorRepo) UpdateLastDonation(ctx context.Context, donorID int32, at time.Time) error {
	args := m.Called(ctx, donorID, at)
	return args.Error(0)
}
func (m *MockDonorRepo) CountEligible(ctx context.Context, group domain.BloodGroup, city string, cutoff time.Time) (int32, error) {
	args := m.Called(ctx, group, city, cutoff)
	return args.Get(0).(int32), args.Error(1)
}

// MockOrganizationRepo
type MockOrganizationRepo struct {
	mock.Mock
}

func (m *MockOrganizationRepo) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) GetByName(ctx context.Context, name string) (*domain.Organization, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) List(ctx context.Context, city string) ([]domain.Organization, error) {
	args := m.Called(ctx, city)
	return args.Get(0).([]domain.Organization), args.Error(1)
}

// MockDonationRepo
type MockDonationRepo struct {
	mock.Mock
}

func (m *MockDonationRepo) Create(ctx context.Context, d *domain.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDonationRepo) GetByID(ctx context.Context, id int32) (*domain.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) Update(ctx context.Context, d *domain.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDonationRepo) ListByDonor(ctx context.Context, donorID int32, status string) ([]domain.Donation, error) {
	args := m.Called(ctx, donorID, status)
	return args.Get(0).([]domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) ListByOrganization(ctx context.Context, orgID int32, orgName string, status string) ([]domain.Donation, error) {
	args := m.Called(ctx, orgID, orgName, status)
	return args.Get(0).([]domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) FindOpenByRequestAndDonor(ctx context.Context, requestID, donorID int32) (*domain.Donation, error) {
	args := m.Called(ctx, requestID, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) MarkCompleted(ctx context.Context, donationID int32, donorID *int32, orgID int32, completedAt time.Time) error {
	args := m.Called(ctx, donationID, donorID, orgID, completedAt)
	return args.Error(0)
}
func (m *MockDonationRepo) ListWithAppointmentsBetween(ctx context.Context, from, to time.Time) ([]domain.Donation, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Donation), args.Error(1)
}

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, r *domain.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id int32) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}
func (m *MockRequestRepo) Update(ctx context.Context, r *domain.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRequestRepo) ListByRequester(ctx context.Context, requesterID int32, status string) ([]domain.Request, error) {
	args := m.Called(ctx, requesterID, status)
	return args.Get(0).([]domain.Request), args.Error(1)
}
func (m *MockRequestRepo) ListPendingByCity(ctx context.Context, city string) ([]domain.Request, error) {
	args := m.Called(ctx, city)
	return args.Get(0).([]domain.Request), args.Error(1)
}
func (m *MockRequestRepo) AcceptPeerDonation(ctx context.Context, requestID, donationID, orgID int32, orgName string, donorID *int32, completedAt time.Time) error {
	args := m.Called(ctx, requestID, donationID, orgID, orgName, donorID, completedAt)
	return args.Error(0)
}

// MockInventoryRepo
type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) Create(ctx context.Context, lot *domain.InventoryLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}
func (m *MockInventoryRepo) GetByDonationID(ctx context.Context, donationID int32) (*domain.InventoryLot, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryLot), args.Error(1)
}
func (m *MockInventoryRepo) FindActiveLot(ctx context.Context, orgID int32, group domain.BloodGroup, dtype domain.DonationType, expiration domain.Date) (*domain.InventoryLot, error) {
	args := m.Called(ctx, orgID, group, dtype, expiration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryLot), args.Error(1)
}
func (m *MockInventoryRepo) AddUnits(ctx context.Context, lotID int32, units int32) error {
	args := m.Called(ctx, lotID, units)
	return args.Error(0)
}
func (m *MockInventoryRepo) SetStatus(ctx context.Context, lotID int32, status domain.LotStatus) error {
	args := m.Called(ctx, lotID, status)
	return args.Error(0)
}
func (m *MockInventoryRepo) ListByOrganization(ctx context.Context, orgID int32) ([]domain.InventoryLot, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.InventoryLot), args.Error(1)
}
func (m *MockInventoryRepo) DeductFIFO(ctx context.Context, orgID int32, group domain.BloodGroup, dtype domain.DonationType, units int32, asOf time.Time, fulfillRequestID *int32) error {
	args := m.Called(ctx, orgID, group, dtype, units, asOf, fulfillRequestID)
	return args.Error(0)
}
func (m *MockInventoryRepo) MarkExpired(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

// MockRescheduleRepo
type MockRescheduleRepo struct {
	mock.Mock
}

func (m *MockRescheduleRepo) Create(ctx context.Context, rr *domain.RescheduleRequest) error {
	args := m.Called(ctx, rr)
	return args.Error(0)
}
func (m *MockRescheduleRepo) GetByID(ctx context.Context, id int32) (*domain.RescheduleRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RescheduleRequest), args.Error(1)
}
func (m *MockRescheduleRepo) Update(ctx context.Context, rr *domain.RescheduleRequest) error {
	args := m.Called(ctx, rr)
	return args.Error(0)
}
func (m *MockRescheduleRepo) FindPendingByDonation(ctx context.Context, donationID int32) (*domain.RescheduleRequest, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RescheduleRequest), args.Error(1)
}
func (m *MockRescheduleRepo) ListPendingByOrganization(ctx context.Context, orgID int32) ([]domain.RescheduleRequest, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.RescheduleRequest), args.Error(1)
}
func (m *MockRescheduleRepo) Approve(ctx context.Context, rr *domain.RescheduleRequest, newEventDate time.Time) error {
	args := m.Called(ctx, rr, newEventDate)
	return args.Error(0)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, e *domain.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockEventRepo) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) ListByOrganization(ctx context.Context, orgID int32) ([]domain.Event, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Event), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, donorID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, donorID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, donorID int32) error {
	args := m.Called(ctx, id, donorID)
	return args.Error(0)
}

// MockInventoryService
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) RecordDonation(ctx context.Context, donation *domain.Donation, organizationID int32) (*domain.InventoryLot, error) {
	args := m.Called(ctx, donation, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryLot), args.Error(1)
}
func (m *MockInventoryService) Deduct(ctx context.Context, organizationID int32, bloodGroup domain.BloodGroup, donationType domain.DonationType, units int32) error {
	args := m.Called(ctx, organizationID, bloodGroup, donationType, units)
	return args.Error(0)
}
func (m *MockInventoryService) GetInventory(ctx context.Context, organizationID int32) ([]domain.InventoryLot, *domain.InventorySummary, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.InventoryLot), args.Get(1).(*domain.InventorySummary), args.Error(2)
}
func (m *MockInventoryService) ExpireLots(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
