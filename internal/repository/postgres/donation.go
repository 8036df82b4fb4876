package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository"
)

type donationRepository struct {
	db *sql.DB
}

func NewDonationRepository(db *sql.DB) repository.DonationRepository {
	return &donationRepository{db: db}
}

const donationColumns = `d.id, d.reference, d.donor_id, d.full_name, d.email, COALESCE(d.phone, ''), d.age, d.blood_group, COALESCE(d.address, ''), COALESCE(d.city, ''), COALESCE(d.state, ''), COALESCE(d.zip_code, ''), d.preferred_date, COALESCE(d.preferred_time, ''), d.scheduled_date, COALESCE(d.scheduled_time, ''), d.event_date, d.event_id, COALESCE(d.event_name, ''), d.request_id, COALESCE(d.selected_organization, ''), d.organization_id, d.donation_type, d.units, d.status, d.created_on, d.updated_on`

// dateParam converts an optional calendar date into a driver value.
func dateParam(d *domain.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

func dateFromNull(t sql.NullTime) *domain.Date {
	if !t.Valid {
		return nil
	}
	d := domain.DateOf(t.Time)
	return &d
}

func scanDonation(row interface{ Scan(...interface{}) error }, d *domain.Donation) error {
	var preferredDate, scheduledDate, eventDate sql.NullTime
	err := row.Scan(&d.ID, &d.Reference, &d.DonorID, &d.FullName, &d.Email, &d.Phone, &d.Age, &d.BloodGroup, &d.Address, &d.City, &d.State, &d.ZipCode,
		&preferredDate, &d.PreferredTime, &scheduledDate, &d.ScheduledTime, &eventDate, &d.EventID, &d.EventName, &d.RequestID,
		&d.SelectedOrganization, &d.OrganizationID, &d.DonationType, &d.Units, &d.Status, &d.CreatedOn, &d.UpdatedOn)
	if err != nil {
		return err
	}
	d.PreferredDate = dateFromNull(preferredDate)
	d.ScheduledDate = dateFromNull(scheduledDate)
	if eventDate.Valid {
		t := eventDate.Time
		d.EventDate = &t
	}
	return nil
}

func (r *donationRepository) Create(ctx context.Context, d *domain.Donation) error {
	query := `INSERT INTO donations (reference, donor_id, full_name, email, phone, age, blood_group, address, city, state, zip_code,
	            preferred_date, preferred_time, scheduled_date, scheduled_time, event_date, event_id, event_name, request_id,
	            selected_organization, organization_id, donation_type, units, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
	          RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		d.Reference, d.DonorID, d.FullName, d.Email, d.Phone, d.Age, d.BloodGroup, d.Address, d.City, d.State, d.ZipCode,
		dateParam(d.PreferredDate), d.PreferredTime, dateParam(d.ScheduledDate), d.ScheduledTime, d.EventDate, d.EventID, d.EventName, d.RequestID,
		d.SelectedOrganization, d.OrganizationID, d.DonationType, d.Units, d.Status, now, now,
	).Scan(&d.ID)
}

func (r *donationRepository) GetByID(ctx context.Context, id int32) (*domain.Donation, error) {
	d := &domain.Donation{}
	query := `SELECT ` + donationColumns + ` FROM donations d WHERE d.id = $1`
	err := scanDonation(r.db.QueryRowContext(ctx, query, id), d)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "donation", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *donationRepository) Update(ctx context.Context, d *domain.Donation) error {
	query := `UPDATE donations SET
	            scheduled_date=$1, scheduled_time=$2, event_date=$3, selected_organization=$4, organization_id=$5,
	            donation_type=$6, units=$7, status=$8, updated_on=$9
	          WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query,
		dateParam(d.ScheduledDate), d.ScheduledTime, d.EventDate, d.SelectedOrganization, d.OrganizationID,
		d.DonationType, d.Units, d.Status, time.Now(), d.ID)
	return err
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID int32, status string) ([]domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations d WHERE d.donor_id = $1`
	args := []interface{}{donorID}
	if status != "" {
		query += ` AND d.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY d.created_on DESC`
	return r.queryDonations(ctx, query, args...)
}

func (r *donationRepository) ListByOrganization(ctx context.Context, orgID int32, orgName string, status string) ([]domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations d
	          LEFT JOIN events e ON d.event_id = e.id
	          WHERE (d.organization_id = $1 OR d.selected_organization = $2 OR e.organization_id = $1)`
	args := []interface{}{orgID, orgName}
	if status != "" {
		query += ` AND d.status = $3`
		args = append(args, status)
	}
	query += ` ORDER BY d.created_on DESC`
	return r.queryDonations(ctx, query, args...)
}

func (r *donationRepository) FindOpenByRequestAndDonor(ctx context.Context, requestID, donorID int32) (*domain.Donation, error) {
	d := &domain.Donation{}
	query := `SELECT ` + donationColumns + ` FROM donations d
	          WHERE d.request_id = $1 AND d.donor_id = $2 AND d.status IN ('pending', 'approved', 'scheduled')
	          LIMIT 1`
	err := scanDonation(r.db.QueryRowContext(ctx, query, requestID, donorID), d)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// MarkCompleted commits the donation completion and the donor cooldown
// start together; a crash between the two must not leave a completed
// donation with a stale cooldown clock.
func (r *donationRepository) MarkCompleted(ctx context.Context, donationID int32, donorID *int32, orgID int32, completedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The status predicate is the write-time guard: a concurrent
	// completion or cancellation that lands first leaves zero rows here.
	result, err := tx.ExecContext(ctx,
		`UPDATE donations SET status='completed', event_date=$1, organization_id=$2, updated_on=$3
		 WHERE id=$4 AND status IN ('approved', 'scheduled')`,
		completedAt, orgID, time.Now(), donationID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &domain.InvalidStateError{Entity: "donation", Status: "not open for completion"}
	}

	if donorID != nil {
		_, err = tx.ExecContext(ctx,
			`UPDATE donors SET last_donation_at=$1, updated_on=$2 WHERE id=$3`,
			completedAt, time.Now(), *donorID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *donationRepository) ListWithAppointmentsBetween(ctx context.Context, from, to time.Time) ([]domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations d
	          WHERE d.status IN ('approved', 'scheduled') AND d.event_date >= $1 AND d.event_date < $2
	          ORDER BY d.event_date ASC`
	return r.queryDonations(ctx, query, from, to)
}

func (r *donationRepository) queryDonations(ctx context.Context, query string, args ...interface{}) ([]domain.Donation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := scanDonation(rows, &d); err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}
