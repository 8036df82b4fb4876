package service

import (
	"time"

	"bloodlink-backend/internal/config"
	"bloodlink-backend/internal/domain"
)

// Eligibility evaluates the donor cooldown. A donor with no recorded
// donation is always eligible; otherwise they must wait the configured
// number of whole days since their last completed donation.
type Eligibility struct {
	cooldownDays int
}

func NewEligibility(cfg *config.DonationConfig) *Eligibility {
	return &Eligibility{cooldownDays: cfg.CooldownDays}
}

// DaysSince returns the number of whole days elapsed since the donor's
// last donation. The second return is false when the donor has never
// donated.
func (e *Eligibility) DaysSince(donor *domain.Donor, asOf time.Time) (int, bool) {
	if donor.LastDonationAt == nil {
		return 0, false
	}
	elapsed := asOf.Sub(*donor.LastDonationAt)
	if elapsed < 0 {
		return 0, true
	}
	return int(elapsed / (24 * time.Hour)), true
}

func (e *Eligibility) IsEligible(donor *domain.Donor, asOf time.Time) bool {
	days, donated := e.DaysSince(donor, asOf)
	return !donated || days >= e.cooldownDays
}

// DaysRemaining returns how many days until the donor becomes eligible
// again, zero if they already are.
func (e *Eligibility) DaysRemaining(donor *domain.Donor, asOf time.Time) int {
	days, donated := e.DaysSince(donor, asOf)
	if !donated || days >= e.cooldownDays {
		return 0
	}
	return e.cooldownDays - days
}

// Check returns a CooldownActiveError when the donor is still inside
// the cooldown window, nil otherwise.
func (e *Eligibility) Check(donor *domain.Donor, asOf time.Time) error {
	if remaining := e.DaysRemaining(donor, asOf); remaining > 0 {
		return &domain.CooldownActiveError{DaysRemaining: remaining}
	}
	return nil
}

// Status assembles the full eligibility report for a donor.
func (e *Eligibility) Status(donor *domain.Donor, asOf time.Time) *EligibilityStatus {
	days, _ := e.DaysSince(donor, asOf)
	return &EligibilityStatus{
		Eligible:       e.IsEligible(donor, asOf),
		DaysSince:      days,
		DaysRemaining:  e.DaysRemaining(donor, asOf),
		LastDonationAt: donor.LastDonationAt,
	}
}
