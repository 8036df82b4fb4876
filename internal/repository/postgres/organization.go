package postgres

import (
	"context"
	"database/sql"
	"errors"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

const orgColumns = `id, name, email, COALESCE(phone, ''), COALESCE(address, ''), COALESCE(city, ''), COALESCE(state, ''), COALESCE(zip_code, ''), COALESCE(description, ''), COALESCE(website, ''), is_active, created_on`

func scanOrganization(row interface{ Scan(...interface{}) error }, o *domain.Organization) error {
	return row.Scan(&o.ID, &o.Name, &o.Email, &o.Phone, &o.Address, &o.City, &o.State, &o.ZipCode, &o.Description, &o.Website, &o.IsActive, &o.CreatedOn)
}

func (r *organizationRepository) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	o := &domain.Organization{}
	err := scanOrganization(r.db.QueryRowContext(ctx, `SELECT `+orgColumns+` FROM organizations WHERE id = $1`, id), o)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "organization", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *organizationRepository) GetByName(ctx context.Context, name string) (*domain.Organization, error) {
	o := &domain.Organization{}
	err := scanOrganization(r.db.QueryRowContext(ctx, `SELECT `+orgColumns+` FROM organizations WHERE name = $1`, name), o)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "organization"}
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *organizationRepository) List(ctx context.Context, city string) ([]domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE is_active = true`
	args := []interface{}{}
	if city != "" {
		query += ` AND city = $1`
		args = append(args, city)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var o domain.Organization
		if err := scanOrganization(rows, &o); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}
