package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository"
)

type rescheduleRepository struct {
	db *sql.DB
}

func NewRescheduleRepository(db *sql.DB) repository.RescheduleRepository {
	return &rescheduleRepository{db: db}
}

const rescheduleColumns = `id, donation_id, donor_id, organization_id, old_date, COALESCE(old_time, ''), new_date, COALESCE(new_time, ''), COALESCE(reason, ''), status, COALESCE(rejection_reason, ''), created_on, updated_on`

func scanReschedule(row interface{ Scan(...interface{}) error }, rr *domain.RescheduleRequest) error {
	var oldDate sql.NullTime
	var newDate time.Time
	err := row.Scan(&rr.ID, &rr.DonationID, &rr.DonorID, &rr.OrganizationID, &oldDate, &rr.OldTime, &newDate, &rr.NewTime,
		&rr.Reason, &rr.Status, &rr.RejectionReason, &rr.CreatedOn, &rr.UpdatedOn)
	if err != nil {
		return err
	}
	rr.OldDate = dateFromNull(oldDate)
	rr.NewDate = domain.DateOf(newDate)
	return nil
}

func (r *rescheduleRepository) Create(ctx context.Context, rr *domain.RescheduleRequest) error {
	query := `INSERT INTO reschedule_requests (donation_id, donor_id, organization_id, old_date, old_time, new_date, new_time, reason, status, rejection_reason, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		rr.DonationID, rr.DonorID, rr.OrganizationID, dateParam(rr.OldDate), rr.OldTime, rr.NewDate.String(), rr.NewTime,
		rr.Reason, rr.Status, rr.RejectionReason, now, now,
	).Scan(&rr.ID)
}

func (r *rescheduleRepository) GetByID(ctx context.Context, id int32) (*domain.RescheduleRequest, error) {
	rr := &domain.RescheduleRequest{}
	err := scanReschedule(r.db.QueryRowContext(ctx, `SELECT `+rescheduleColumns+` FROM reschedule_requests WHERE id = $1`, id), rr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "reschedule request", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return rr, nil
}

func (r *rescheduleRepository) Update(ctx context.Context, rr *domain.RescheduleRequest) error {
	query := `UPDATE reschedule_requests SET status=$1, rejection_reason=$2, updated_on=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, rr.Status, rr.RejectionReason, time.Now(), rr.ID)
	return err
}

func (r *rescheduleRepository) FindPendingByDonation(ctx context.Context, donationID int32) (*domain.RescheduleRequest, error) {
	rr := &domain.RescheduleRequest{}
	query := `SELECT ` + rescheduleColumns + ` FROM reschedule_requests WHERE donation_id = $1 AND status = 'pending' LIMIT 1`
	err := scanReschedule(r.db.QueryRowContext(ctx, query, donationID), rr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rr, nil
}

func (r *rescheduleRepository) ListPendingByOrganization(ctx context.Context, orgID int32) ([]domain.RescheduleRequest, error) {
	query := `SELECT ` + rescheduleColumns + ` FROM reschedule_requests WHERE organization_id = $1 AND status = 'pending'
	          ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.RescheduleRequest
	for rows.Next() {
		var rr domain.RescheduleRequest
		if err := scanReschedule(rows, &rr); err != nil {
			return nil, err
		}
		requests = append(requests, rr)
	}
	return requests, rows.Err()
}

// Approve flips the reschedule request and rewrites the parent donation's
// schedule together; an approved request whose donation still shows the old
// slot would be worse than no approval at all.
func (r *rescheduleRepository) Approve(ctx context.Context, rr *domain.RescheduleRequest, newEventDate time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE reschedule_requests SET status='approved', updated_on=$1 WHERE id=$2 AND status='pending'`,
		time.Now(), rr.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.InvalidStateError{Entity: "reschedule request", Status: "not pending"}
	}

	newTime := rr.NewTime
	if _, err := tx.ExecContext(ctx,
		`UPDATE donations SET scheduled_date=$1, scheduled_time=COALESCE(NULLIF($2, ''), scheduled_time), event_date=$3, updated_on=$4 WHERE id=$5`,
		rr.NewDate.String(), newTime, newEventDate, time.Now(), rr.DonationID); err != nil {
		return err
	}

	return tx.Commit()
}
