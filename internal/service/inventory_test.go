package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bloodlink-backend/internal/clock"
	"bloodlink-backend/internal/domain"
)

func TestInventoryService_RecordDonation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC)
	orgID := int32(5)
	donationID := int32(31)

	donation := &domain.Donation{
		ID:           donationID,
		BloodGroup:   domain.BloodGroupOPos,
		DonationType: domain.DonationTypeWholeBlood,
		Units:        1,
	}

	t.Run("NewLotWithShelfLife", func(t *testing.T) {
		invRepo := new(MockInventoryRepo)
		svc := NewInventoryService(invRepo, testDonationConfig(), clock.Fixed(now))

		invRepo.On("GetByDonationID", ctx, donationID).Return(nil, nil)
		wantExpiration := domain.Date{Year: 2026, Month: 10, Day: 9} // 42 days out
		invRepo.On("FindActiveLot", ctx, orgID, domain.BloodGroupOPos, domain.DonationTypeWholeBlood, wantExpiration).Return(nil, nil)
		invRepo.On("Create", ctx, mock.AnythingOfType("*domain.InventoryLot")).Return(nil)

		lot, err := svc.RecordDonation(ctx, donation, orgID)
		assert.NoError(t, err)
		assert.Equal(t, wantExpiration, lot.ExpirationDate)
		assert.Equal(t, domain.LotStatusActive, lot.Status)
		assert.Equal(t, int32(1), lot.Units)
		assert.Equal(t, &donationID, lot.DonationID)
	})

	t.Run("PlateletsExpireInFiveDays", func(t *testing.T) {
		invRepo := new(MockInventoryRepo)
		svc := NewInventoryService(invRepo, testDonationConfig(), clock.Fixed(now))

		platelets := &domain.Donation{ID: 32, BloodGroup: domain.BloodGroupANeg, DonationType: domain.DonationTypePlatelets, Units: 2}
		invRepo.On("GetByDonationID", ctx, int32(32)).Return(nil, nil)
		wantExpiration := domain.Date{Year: 2026, Month: 9, Day: 2}
		invRepo.On("FindActiveLot", ctx, orgID, domain.BloodGroupANeg, domain.DonationTypePlatelets, wantExpiration).Return(nil, nil)
		invRepo.On("Create", ctx, mock.AnythingOfType("*domain.InventoryLot")).Return(nil)

		lot, err := svc.RecordDonation(ctx, platelets, orgID)
		assert.NoError(t, err)
		assert.Equal(t, wantExpiration, lot.ExpirationDate)
	})

	t.Run("MergesIntoMatchingLot", func(t *testing.T) {
		invRepo := new(MockInventoryRepo)
		svc := NewInventoryService(invRepo, testDonationConfig(), clock.Fixed(now))

		existing := &domain.InventoryLot{ID: 8, Units: 3, Status: domain.LotStatusActive}
		invRepo.On("GetByDonationID", ctx, donationID).Return(nil, nil)
		invRepo.On("FindActiveLot", ctx, orgID, domain.BloodGroupOPos, domain.DonationTypeWholeBlood, mock.AnythingOfType("domain.Date")).Return(existing, nil)
		invRepo.On("AddUnits", ctx, existing.ID, int32(1)).Return(nil)

		lot, err := svc.RecordDonation(ctx, donation, orgID)
		assert.NoError(t, err)
		assert.Equal(t, existing.ID, lot.ID)
		assert.Equal(t, int32(4), lot.Units)
		invRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("IdempotentByDonation", func(t *testing.T) {
		invRepo := new(MockInventoryRepo)
		svc := NewInventoryService(invRepo, testDonationConfig(), clock.Fixed(now))

		recorded := &domain.InventoryLot{ID: 9, DonationID: &donationID, Units: 1, Status: domain.LotStatusDiscarded}
		invRepo.On("GetByDonationID", ctx, donationID).Return(recorded, nil)
		invRepo.On("SetStatus", ctx, recorded.ID, domain.LotStatusActive).Return(nil)

		lot, err := svc.RecordDonation(ctx, donation, orgID)
		assert.NoError(t, err)
		assert.Equal(t, recorded.ID, lot.ID)
		assert.Equal(t, domain.LotStatusActive, lot.Status)
		invRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		invRepo.AssertNotCalled(t, "AddUnits", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DefaultsForMissingTypeAndUnits", func(t *testing.T) {
		invRepo := new(MockInventoryRepo)
		svc := NewInventoryService(invRepo, testDonationConfig(), clock.Fixed(now))

		bare := &domain.Donation{ID: 33, BloodGroup: domain.BloodGroupBPos}
		invRepo.On("GetByDonationID", ctx, int32(33)).Return(nil, nil)
		invRepo.On("FindActiveLot", ctx, orgID, domain.BloodGroupBPos, domain.DonationTypeWholeBlood, mock.AnythingOfType("domain.Date")).Return(nil, nil)
		invRepo.On("Create", ctx, mock.AnythingOfType("*domain.InventoryLot")).Return(nil)

		lot, err := svc.RecordDonation(ctx, bare, orgID)
		assert.NoError(t, err)
		assert.Equal(t, domain.DonationTypeWholeBlood, lot.DonationType)
		assert.Equal(t, int32(1), lot.Units)
	})
}

func TestInventoryService_GetInventory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC)
	orgID := int32(5)

	invRepo := new(MockInventoryRepo)
	svc := NewInventoryService(invRepo, testDonationConfig(), clock.Fixed(now))

	lots := []domain.InventoryLot{
		{ID: 1, BloodGroup: domain.BloodGroupOPos, DonationType: domain.DonationTypeWholeBlood, Units: 4,
			ExpirationDate: domain.Date{Year: 2026, Month: 10, Day: 1}, Status: domain.LotStatusActive},
		{ID: 2, BloodGroup: domain.BloodGroupOPos, DonationType: domain.DonationTypePlatelets, Units: 2,
			ExpirationDate: domain.Date{Year: 2026, Month: 9, Day: 1}, Status: domain.LotStatusActive},
		{ID: 3, BloodGroup: domain.BloodGroupANeg, DonationType: domain.DonationTypeWholeBlood, Units: 3,
			ExpirationDate: domain.Date{Year: 2026, Month: 8, Day: 20}, Status: domain.LotStatusActive}, // past date, still flagged active
	}
	invRepo.On("ListByOrganization", ctx, orgID).Return(lots, nil)

	got, summary, err := svc.GetInventory(ctx, orgID)
	assert.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, int32(6), summary.TotalUnits)
	assert.Equal(t, int32(3), summary.ExpiredUnits)
	assert.Equal(t, int32(2), summary.ActiveCount)
	assert.Equal(t, int32(1), summary.ExpiredCount)
	assert.Equal(t, int32(1), summary.UniqueBloodGroups)
	assert.Equal(t, int32(2), summary.UniqueProductTypes)
}

func TestInventoryService_Deduct(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC)

	invRepo := new(MockInventoryRepo)
	svc := NewInventoryService(invRepo, testDonationConfig(), clock.Fixed(now))

	invRepo.On("DeductFIFO", ctx, int32(5), domain.BloodGroupOPos, domain.DonationTypeWholeBlood, int32(2), now, (*int32)(nil)).Return(nil)
	assert.NoError(t, svc.Deduct(ctx, 5, domain.BloodGroupOPos, domain.DonationTypeWholeBlood, 2))

	// A non-positive ask is a no-op.
	assert.NoError(t, svc.Deduct(ctx, 5, domain.BloodGroupOPos, domain.DonationTypeWholeBlood, 0))
	invRepo.AssertNumberOfCalls(t, "DeductFIFO", 1)
}
