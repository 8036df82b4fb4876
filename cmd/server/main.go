package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"bloodlink-backend/internal/clock"
	"bloodlink-backend/internal/config"
	"bloodlink-backend/internal/jobs"
	"bloodlink-backend/internal/logger"
	"bloodlink-backend/internal/repository/postgres"
	"bloodlink-backend/internal/scheduler"
	"bloodlink-backend/internal/service"
)

// application bundles the wired engine: every service the transport layer
// binds to, plus the in-process job scheduler.
type application struct {
	Donation     service.DonationService
	Inventory    service.InventoryService
	Request      service.RequestService
	Reschedule   service.RescheduleService
	Event        service.EventService
	Notification service.NotificationService

	scheduler *scheduler.Scheduler
}

func newApplication(store *postgres.Store, cfg *config.Config, clk clock.Clock) *application {
	inventorySvc := service.NewInventoryService(store.InventoryRepository, &cfg.Donation, clk)
	donationSvc := service.NewDonationService(
		store.DonationRepository,
		store.DonorRepository,
		store.OrganizationRepository,
		store.EventRepository,
		store.NotificationRepository,
		inventorySvc,
		&cfg.Donation,
		clk,
	)
	requestSvc := service.NewRequestService(
		store.RequestRepository,
		store.DonationRepository,
		store.DonorRepository,
		store.OrganizationRepository,
		store.InventoryRepository,
		store.NotificationRepository,
		&cfg.Donation,
		clk,
	)
	rescheduleSvc := service.NewRescheduleService(
		store.RescheduleRepository,
		store.DonationRepository,
		store.OrganizationRepository,
		store.EventRepository,
		store.NotificationRepository,
		&cfg.Donation,
		clk,
	)

	jobRunner := jobs.NewJobRunner(store, &jobs.Services{Inventory: inventorySvc}, cfg, clk)

	return &application{
		Donation:     donationSvc,
		Inventory:    inventorySvc,
		Request:      requestSvc,
		Reschedule:   rescheduleSvc,
		Event:        service.NewEventService(store.EventRepository, store.OrganizationRepository),
		Notification: service.NewNotificationService(store.NotificationRepository),
		scheduler:    scheduler.NewScheduler(jobRunner),
	}
}

// run starts the background jobs and blocks until an interrupt arrives.
func (a *application) run() {
	a.scheduler.Start()
	defer a.scheduler.Stop()

	logger.Info("BloodLink engine is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
}

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting BloodLink Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	app := newApplication(postgres.NewStore(db), cfg, clock.System())
	app.run()
}
