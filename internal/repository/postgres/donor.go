package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository"
)

type donorRepository struct {
	db *sql.DB
}

func NewDonorRepository(db *sql.DB) repository.DonorRepository {
	return &donorRepository{db: db}
}

func (r *donorRepository) GetByID(ctx context.Context, id int32) (*domain.Donor, error) {
	d := &domain.Donor{}
	query := `SELECT id, full_name, email, COALESCE(phone, ''), COALESCE(age, 0), blood_group, COALESCE(city, ''), COALESCE(state, ''), is_active, last_donation_at, created_on, updated_on
	          FROM donors WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.FullName, &d.Email, &d.Phone, &d.Age, &d.BloodGroup, &d.City, &d.State, &d.IsActive, &d.LastDonationAt, &d.CreatedOn, &d.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "donor", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *donorRepository) UpdateLastDonation(ctx context.Context, donorID int32, at time.Time) error {
	query := `UPDATE donors SET last_donation_at = $1, updated_on = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, at, time.Now(), donorID)
	return err
}

func (r *donorRepository) CountEligible(ctx context.Context, group domain.BloodGroup, city string, cutoff time.Time) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM donors
	          WHERE blood_group = $1 AND city = $2 AND is_active = true
	          AND (last_donation_at IS NULL OR last_donation_at <= $3)`
	err := r.db.QueryRowContext(ctx, query, group, city, cutoff).Scan(&count)
	return count, err
}
