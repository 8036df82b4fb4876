package postgres

import (
	"database/sql"

	"bloodlink-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.DonorRepository
	repository.OrganizationRepository
	repository.DonationRepository
	repository.RequestRepository
	repository.InventoryRepository
	repository.RescheduleRepository
	repository.EventRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		DonorRepository:        NewDonorRepository(db),
		OrganizationRepository: NewOrganizationRepository(db),
		DonationRepository:     NewDonationRepository(db),
		RequestRepository:      NewRequestRepository(db),
		InventoryRepository:    NewInventoryRepository(db),
		RescheduleRepository:   NewRescheduleRepository(db),
		EventRepository:        NewEventRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
