package service

import (
	"context"

	"bloodlink-backend/internal/clock"
	"bloodlink-backend/internal/config"
	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository"
)

type inventoryService struct {
	invRepo repository.InventoryRepository
	cfg     *config.DonationConfig
	clk     clock.Clock
}

func NewInventoryService(invRepo repository.InventoryRepository, cfg *config.DonationConfig, clk clock.Clock) InventoryService {
	return &inventoryService{invRepo: invRepo, cfg: cfg, clk: clk}
}

// RecordDonation turns a completed donation into warehoused stock. Keyed by
// donation ID it is idempotent: re-recording the same donation reactivates
// its existing lot instead of double counting. Units land on the existing
// active lot with the same (blood group, product type, expiration date)
// when one exists, otherwise a fresh lot is opened with the product's
// configured shelf life.
func (s *inventoryService) RecordDonation(ctx context.Context, donation *domain.Donation, organizationID int32) (*domain.InventoryLot, error) {
	existing, err := s.invRepo.GetByDonationID(ctx, donation.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status != domain.LotStatusActive {
			if err := s.invRepo.SetStatus(ctx, existing.ID, domain.LotStatusActive); err != nil {
				return nil, err
			}
			existing.Status = domain.LotStatusActive
		}
		return existing, nil
	}

	dtype := donation.DonationType
	if dtype == "" {
		dtype = domain.DonationType(s.cfg.DefaultDonationType)
	}
	units := donation.Units
	if units <= 0 {
		units = s.cfg.DefaultUnits
	}
	expiration := domain.DateOf(s.clk.Now()).AddDays(s.cfg.ShelfLife(dtype))

	lot, err := s.invRepo.FindActiveLot(ctx, organizationID, donation.BloodGroup, dtype, expiration)
	if err != nil {
		return nil, err
	}
	if lot != nil {
		if err := s.invRepo.AddUnits(ctx, lot.ID, units); err != nil {
			return nil, err
		}
		lot.Units += units
		return lot, nil
	}

	lot = &domain.InventoryLot{
		OrganizationID: organizationID,
		DonationID:     &donation.ID,
		BloodGroup:     donation.BloodGroup,
		DonationType:   dtype,
		Units:          units,
		ExpirationDate: expiration,
		Status:         domain.LotStatusActive,
	}
	if err := s.invRepo.Create(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

func (s *inventoryService) Deduct(ctx context.Context, organizationID int32, bloodGroup domain.BloodGroup, donationType domain.DonationType, units int32) error {
	if units <= 0 {
		return nil
	}
	return s.invRepo.DeductFIFO(ctx, organizationID, bloodGroup, donationType, units, s.clk.Now(), nil)
}

func (s *inventoryService) GetInventory(ctx context.Context, organizationID int32) ([]domain.InventoryLot, *domain.InventorySummary, error) {
	lots, err := s.invRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, nil, err
	}
	now := s.clk.Now()
	summary := &domain.InventorySummary{}
	groups := make(map[domain.BloodGroup]struct{})
	types := make(map[domain.DonationType]struct{})
	for i := range lots {
		lot := &lots[i]
		if lot.IsExpired(now) {
			summary.ExpiredUnits += lot.Units
			summary.ExpiredCount++
			continue
		}
		summary.TotalUnits += lot.Units
		summary.ActiveCount++
		groups[lot.BloodGroup] = struct{}{}
		types[lot.DonationType] = struct{}{}
	}
	summary.UniqueBloodGroups = int32(len(groups))
	summary.UniqueProductTypes = int32(len(types))
	return lots, summary, nil
}

func (s *inventoryService) ExpireLots(ctx context.Context) (int64, error) {
	return s.invRepo.MarkExpired(ctx, s.clk.Now())
}
