package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bloodlink-backend/internal/config"
	"bloodlink-backend/internal/domain"
)

func testDonationConfig() *config.DonationConfig {
	return &config.DonationConfig{
		CooldownDays:            56,
		MarkCompletedEarlyHours: 1,
		MarkCompletedLateDays:   2,
		RescheduleCutoffHours:   24,
		DefaultDonationType:     string(domain.DonationTypeWholeBlood),
		DefaultUnits:            1,
		ShelfLifeDays: map[string]int{
			string(domain.DonationTypeWholeBlood):     42,
			string(domain.DonationTypeRedBloodCells):  42,
			string(domain.DonationTypeDoubleRedCells): 42,
			string(domain.DonationTypePlatelets):      5,
			string(domain.DonationTypePlasma):         365,
			string(domain.DonationTypeCryo):           365,
			string(domain.DonationTypeWhiteCells):     1,
			string(domain.DonationTypeGranulocytes):   1,
		},
	}
}

func TestEligibility(t *testing.T) {
	e := NewEligibility(testDonationConfig())
	asOf := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	donorWithLast := func(daysAgo int) *domain.Donor {
		last := asOf.AddDate(0, 0, -daysAgo)
		return &domain.Donor{ID: 1, LastDonationAt: &last}
	}

	t.Run("NeverDonated", func(t *testing.T) {
		donor := &domain.Donor{ID: 1}
		assert.True(t, e.IsEligible(donor, asOf))
		assert.Equal(t, 0, e.DaysRemaining(donor, asOf))
		assert.NoError(t, e.Check(donor, asOf))
	})

	t.Run("Day55StillBlocked", func(t *testing.T) {
		donor := donorWithLast(55)
		assert.False(t, e.IsEligible(donor, asOf))
		assert.Equal(t, 1, e.DaysRemaining(donor, asOf))

		err := e.Check(donor, asOf)
		var cooldown *domain.CooldownActiveError
		assert.ErrorAs(t, err, &cooldown)
		assert.Equal(t, 1, cooldown.DaysRemaining)
	})

	t.Run("Day56Eligible", func(t *testing.T) {
		donor := donorWithLast(56)
		assert.True(t, e.IsEligible(donor, asOf))
		assert.NoError(t, e.Check(donor, asOf))
	})

	t.Run("Day57Eligible", func(t *testing.T) {
		assert.True(t, e.IsEligible(donorWithLast(57), asOf))
	})

	t.Run("PartialDaysRoundDown", func(t *testing.T) {
		// 55 days and 20 hours ago is still day 55.
		last := asOf.Add(-55*24*time.Hour - 20*time.Hour)
		donor := &domain.Donor{ID: 1, LastDonationAt: &last}
		days, donated := e.DaysSince(donor, asOf)
		assert.True(t, donated)
		assert.Equal(t, 55, days)
		assert.False(t, e.IsEligible(donor, asOf))
	})

	t.Run("FutureTimestampClamped", func(t *testing.T) {
		last := asOf.Add(2 * time.Hour)
		donor := &domain.Donor{ID: 1, LastDonationAt: &last}
		days, donated := e.DaysSince(donor, asOf)
		assert.True(t, donated)
		assert.Equal(t, 0, days)
	})

	t.Run("StatusReport", func(t *testing.T) {
		donor := donorWithLast(10)
		status := e.Status(donor, asOf)
		assert.False(t, status.Eligible)
		assert.Equal(t, 10, status.DaysSince)
		assert.Equal(t, 46, status.DaysRemaining)
		assert.Equal(t, donor.LastDonationAt, status.LastDonationAt)
	})
}
