package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, organization_id, name, COALESCE(description, ''), event_date, COALESCE(location, ''), COALESCE(city, ''), status, created_on`

func scanEvent(row interface{ Scan(...interface{}) error }, e *domain.Event) error {
	return row.Scan(&e.ID, &e.OrganizationID, &e.Name, &e.Description, &e.EventDate, &e.Location, &e.City, &e.Status, &e.CreatedOn)
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (organization_id, name, description, event_date, location, city, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		e.OrganizationID, e.Name, e.Description, e.EventDate, e.Location, e.City, e.Status, time.Now(),
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	e := &domain.Event{}
	err := scanEvent(r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id), e)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "event", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByOrganization(ctx context.Context, orgID int32) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events WHERE organization_id = $1 ORDER BY event_date DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
