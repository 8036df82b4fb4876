package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink-backend/internal/domain"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
database:
  host: localhost
  user: bloodlink
  database: bloodlink_test
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 56, cfg.Donation.CooldownDays)
	assert.Equal(t, 1, cfg.Donation.MarkCompletedEarlyHours)
	assert.Equal(t, 2, cfg.Donation.MarkCompletedLateDays)
	assert.Equal(t, 24, cfg.Donation.RescheduleCutoffHours)
	assert.Equal(t, string(domain.DonationTypeWholeBlood), cfg.Donation.DefaultDonationType)
	assert.Equal(t, int32(1), cfg.Donation.DefaultUnits)

	assert.Equal(t, 42, cfg.Donation.ShelfLife(domain.DonationTypeWholeBlood))
	assert.Equal(t, 5, cfg.Donation.ShelfLife(domain.DonationTypePlatelets))
	assert.Equal(t, 365, cfg.Donation.ShelfLife(domain.DonationTypePlasma))
	assert.Equal(t, 1, cfg.Donation.ShelfLife(domain.DonationTypeGranulocytes))
	// Unknown product types fall back to the whole-blood shelf life.
	assert.Equal(t, 42, cfg.Donation.ShelfLife(domain.DonationType("Exotic")))

	assert.Equal(t, "0 0 2 * * *", cfg.Scheduler.ExpireInventoryLots)
	assert.Equal(t, "0 0 9 * * *", cfg.Scheduler.SendAppointmentReminders)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadExplicitValuesKept(t *testing.T) {
	path := writeConfigFile(t, `
database:
  host: db.internal
  user: app
  database: bloodlink
donation:
  cooldown_days: 90
  shelf_life_days:
    "Platelets": 7
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.Donation.CooldownDays)
	assert.Equal(t, 7, cfg.Donation.ShelfLife(domain.DonationTypePlatelets))
	// Types the file does not mention still get defaults.
	assert.Equal(t, 42, cfg.Donation.ShelfLife(domain.DonationTypeWholeBlood))
}

func TestLoadRejectsMissingDatabase(t *testing.T) {
	path := writeConfigFile(t, `
log:
  level: debug
`)

	_, err := Load(path)
	assert.Error(t, err)
}
