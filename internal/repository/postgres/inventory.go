package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository"
)

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

const lotColumns = `id, organization_id, donation_id, blood_group, donation_type, units, expiration_date, status, created_on, updated_on`

func scanLot(row interface{ Scan(...interface{}) error }, l *domain.InventoryLot) error {
	var expiration time.Time
	err := row.Scan(&l.ID, &l.OrganizationID, &l.DonationID, &l.BloodGroup, &l.DonationType, &l.Units, &expiration, &l.Status, &l.CreatedOn, &l.UpdatedOn)
	if err != nil {
		return err
	}
	l.ExpirationDate = domain.DateOf(expiration)
	return nil
}

func (r *inventoryRepository) Create(ctx context.Context, lot *domain.InventoryLot) error {
	query := `INSERT INTO inventory_lots (organization_id, donation_id, blood_group, donation_type, units, expiration_date, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		lot.OrganizationID, lot.DonationID, lot.BloodGroup, lot.DonationType, lot.Units, lot.ExpirationDate.String(), lot.Status, now, now,
	).Scan(&lot.ID)
}

func (r *inventoryRepository) GetByDonationID(ctx context.Context, donationID int32) (*domain.InventoryLot, error) {
	l := &domain.InventoryLot{}
	query := `SELECT ` + lotColumns + ` FROM inventory_lots WHERE donation_id = $1`
	err := scanLot(r.db.QueryRowContext(ctx, query, donationID), l)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *inventoryRepository) FindActiveLot(ctx context.Context, orgID int32, group domain.BloodGroup, dtype domain.DonationType, expiration domain.Date) (*domain.InventoryLot, error) {
	l := &domain.InventoryLot{}
	query := `SELECT ` + lotColumns + ` FROM inventory_lots
	          WHERE organization_id = $1 AND blood_group = $2 AND donation_type = $3 AND expiration_date = $4 AND status = 'active'
	          LIMIT 1`
	err := scanLot(r.db.QueryRowContext(ctx, query, orgID, group, dtype, expiration.String()), l)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *inventoryRepository) AddUnits(ctx context.Context, lotID int32, units int32) error {
	query := `UPDATE inventory_lots SET units = units + $1, updated_on = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, units, time.Now(), lotID)
	return err
}

func (r *inventoryRepository) SetStatus(ctx context.Context, lotID int32, status domain.LotStatus) error {
	query := `UPDATE inventory_lots SET status = $1, updated_on = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), lotID)
	return err
}

func (r *inventoryRepository) ListByOrganization(ctx context.Context, orgID int32) ([]domain.InventoryLot, error) {
	query := `SELECT ` + lotColumns + ` FROM inventory_lots WHERE organization_id = $1
	          ORDER BY blood_group ASC, donation_type ASC, expiration_date ASC`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lots []domain.InventoryLot
	for rows.Next() {
		var l domain.InventoryLot
		if err := scanLot(rows, &l); err != nil {
			return nil, err
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

// DeductFIFO walks the organization's unexpired active lots oldest
// expiration first and consumes exactly the requested units, deleting
// drained lots and decrementing the boundary lot. The selected rows are
// locked for the duration of the transaction so two concurrent deductions
// cannot spend the same units, and the optional request fulfilment commits
// atomically with the stock movement.
func (r *inventoryRepository) DeductFIFO(ctx context.Context, orgID int32, group domain.BloodGroup, dtype domain.DonationType, units int32, asOf time.Time, fulfillRequestID *int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT id, units FROM inventory_lots
		 WHERE organization_id = $1 AND blood_group = $2 AND donation_type = $3 AND status = 'active' AND expiration_date >= $4
		 ORDER BY expiration_date ASC, id ASC
		 FOR UPDATE`,
		orgID, group, dtype, asOf)
	if err != nil {
		return err
	}

	type lotRow struct {
		id    int32
		units int32
	}
	var lots []lotRow
	var available int32
	for rows.Next() {
		var l lotRow
		if err := rows.Scan(&l.id, &l.units); err != nil {
			rows.Close()
			return err
		}
		available += l.units
		lots = append(lots, l)
	}
	if err := rows.Close(); err != nil {
		return err
	}

	if available < units {
		return &domain.InsufficientInventoryError{Available: available, Required: units}
	}

	remaining := units
	for _, l := range lots {
		if remaining <= 0 {
			break
		}
		if l.units <= remaining {
			// Fully consumed lots are removed, never kept as zero rows.
			if _, err := tx.ExecContext(ctx, `DELETE FROM inventory_lots WHERE id = $1`, l.id); err != nil {
				return err
			}
			remaining -= l.units
		} else {
			if _, err := tx.ExecContext(ctx,
				`UPDATE inventory_lots SET units = units - $1, updated_on = $2 WHERE id = $3`,
				remaining, time.Now(), l.id); err != nil {
				return err
			}
			remaining = 0
		}
	}

	if fulfillRequestID != nil {
		result, err := tx.ExecContext(ctx,
			`UPDATE requests SET status = 'fulfilled', updated_on = $1 WHERE id = $2 AND status = 'pending'`,
			time.Now(), *fulfillRequestID)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			// The request moved out of pending underneath us; abort the
			// whole deduction rather than spend stock on a stale request.
			return &domain.InvalidStateError{Entity: "request", Status: "not pending"}
		}
	}

	return tx.Commit()
}

func (r *inventoryRepository) MarkExpired(ctx context.Context, asOf time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE inventory_lots SET status = 'expired', updated_on = $1 WHERE status = 'active' AND expiration_date <= $2`,
		time.Now(), domain.DateOf(asOf).String())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
