package domain

import "time"

type LotStatus string

const (
	LotStatusActive    LotStatus = "active"
	LotStatusExpired   LotStatus = "expired"
	LotStatusUsed      LotStatus = "used"
	LotStatusDiscarded LotStatus = "discarded"
)

// InventoryLot is a perishable batch of collected units held by one
// organization, keyed by (organization, blood group, product type,
// expiration date). Units never go negative; a lot drained to zero is
// deleted, not kept as a zero row.
type InventoryLot struct {
	ID             int32        `json:"id"`
	OrganizationID int32        `json:"organization_id"`
	DonationID     *int32       `json:"donation_id,omitempty"`
	BloodGroup     BloodGroup   `json:"blood_group"`
	DonationType   DonationType `json:"donation_type"`
	Units          int32        `json:"units"`
	ExpirationDate Date         `json:"expiration_date"`
	Status         LotStatus    `json:"status"`
	CreatedOn      string       `json:"created_on"`
	UpdatedOn      string       `json:"updated_on"`
}

// IsExpired classifies the lot for reporting: expired when flagged so or
// when its expiration date is on or before asOf. Deduction never trusts the
// flag alone; it re-checks the date.
func (l *InventoryLot) IsExpired(asOf time.Time) bool {
	if l.Status == LotStatusExpired {
		return true
	}
	return !DateOf(asOf).Before(l.ExpirationDate)
}

// InventorySummary aggregates an organization's stock for reporting.
type InventorySummary struct {
	TotalUnits         int32 `json:"total_units"`
	ExpiredUnits       int32 `json:"expired_units"`
	UniqueBloodGroups  int32 `json:"unique_blood_groups"`
	UniqueProductTypes int32 `json:"unique_product_types"`
	ActiveCount        int32 `json:"active_count"`
	ExpiredCount       int32 `json:"expired_count"`
}
