package config

import (
	"fmt"
	"os"

	"bloodlink-backend/internal/domain"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Donation  DonationConfig  `yaml:"donation"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// DonationConfig gathers the tunables of the donation lifecycle and the
// inventory ledger in one place: the donor cooldown, the shelf-life table
// per product type, the mark-completed window and the reschedule cutoff.
// Everything has a default so a minimal YAML file works.
type DonationConfig struct {
	CooldownDays int `yaml:"cooldown_days"`

	// Mark-completed window: from MarkCompletedEarlyHours before the
	// appointment until end of day MarkCompletedLateDays after it.
	MarkCompletedEarlyHours int `yaml:"mark_completed_early_hours"`
	MarkCompletedLateDays   int `yaml:"mark_completed_late_days"`

	RescheduleCutoffHours int `yaml:"reschedule_cutoff_hours"`

	DefaultDonationType string `yaml:"default_donation_type"`
	DefaultUnits        int32  `yaml:"default_units"`

	// Shelf life in days per product type.
	ShelfLifeDays map[string]int `yaml:"shelf_life_days"`
}

// ShelfLife returns the shelf life in days for a product type, falling back
// to the whole-blood shelf life for unknown types.
func (c *DonationConfig) ShelfLife(t domain.DonationType) int {
	if days, ok := c.ShelfLifeDays[string(t)]; ok {
		return days
	}
	return c.ShelfLifeDays[string(domain.DonationTypeWholeBlood)]
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ExpireInventoryLots      string `yaml:"expire_inventory_lots"`
	SendAppointmentReminders string `yaml:"send_appointment_reminders"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// Donation lifecycle defaults
	if c.Donation.CooldownDays == 0 {
		c.Donation.CooldownDays = 56
	}
	if c.Donation.MarkCompletedEarlyHours == 0 {
		c.Donation.MarkCompletedEarlyHours = 1
	}
	if c.Donation.MarkCompletedLateDays == 0 {
		c.Donation.MarkCompletedLateDays = 2
	}
	if c.Donation.RescheduleCutoffHours == 0 {
		c.Donation.RescheduleCutoffHours = 24
	}
	if c.Donation.DefaultDonationType == "" {
		c.Donation.DefaultDonationType = string(domain.DonationTypeWholeBlood)
	}
	if c.Donation.DefaultUnits == 0 {
		c.Donation.DefaultUnits = 1
	}
	if c.Donation.ShelfLifeDays == nil {
		c.Donation.ShelfLifeDays = map[string]int{}
	}
	for t, days := range defaultShelfLifeDays {
		if _, ok := c.Donation.ShelfLifeDays[t]; !ok {
			c.Donation.ShelfLifeDays[t] = days
		}
	}

	// Scheduler defaults
	if c.Scheduler.ExpireInventoryLots == "" {
		c.Scheduler.ExpireInventoryLots = "0 0 2 * * *"
	}
	if c.Scheduler.SendAppointmentReminders == "" {
		c.Scheduler.SendAppointmentReminders = "0 0 9 * * *"
	}

	return nil
}

var defaultShelfLifeDays = map[string]int{
	string(domain.DonationTypeWholeBlood):     42,
	string(domain.DonationTypeRedBloodCells):  42,
	string(domain.DonationTypeDoubleRedCells): 42,
	string(domain.DonationTypePlatelets):      5,
	string(domain.DonationTypePlasma):         365,
	string(domain.DonationTypeCryo):           365,
	string(domain.DonationTypeWhiteCells):     1,
	string(domain.DonationTypeGranulocytes):   1,
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}
