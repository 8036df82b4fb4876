package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository"
)

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `id, reference, requester_id, request_type, patient_name, COALESCE(contact_person, ''), email, COALESCE(phone, ''), blood_group, donation_type, units_required, urgency, required_date, hospital_name, COALESCE(hospital_address, ''), COALESCE(city, ''), COALESCE(state, ''), COALESCE(zip_code, ''), COALESCE(patient_condition, ''), COALESCE(doctor_name, ''), COALESCE(doctor_contact, ''), status, created_on, updated_on`

func scanRequest(row interface{ Scan(...interface{}) error }, q *domain.Request) error {
	var requiredDate time.Time
	err := row.Scan(&q.ID, &q.Reference, &q.RequesterID, &q.RequestType, &q.PatientName, &q.ContactPerson, &q.Email, &q.Phone,
		&q.BloodGroup, &q.DonationType, &q.UnitsRequired, &q.Urgency, &requiredDate, &q.HospitalName, &q.HospitalAddress,
		&q.City, &q.State, &q.ZipCode, &q.PatientCondition, &q.DoctorName, &q.DoctorContact, &q.Status, &q.CreatedOn, &q.UpdatedOn)
	if err != nil {
		return err
	}
	q.RequiredDate = domain.DateOf(requiredDate)
	return nil
}

func (r *requestRepository) Create(ctx context.Context, q *domain.Request) error {
	query := `INSERT INTO requests (reference, requester_id, request_type, patient_name, contact_person, email, phone, blood_group, donation_type, units_required, urgency, required_date, hospital_name, hospital_address, city, state, zip_code, patient_condition, doctor_name, doctor_contact, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	          RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		q.Reference, q.RequesterID, q.RequestType, q.PatientName, q.ContactPerson, q.Email, q.Phone, q.BloodGroup, q.DonationType,
		q.UnitsRequired, q.Urgency, q.RequiredDate.String(), q.HospitalName, q.HospitalAddress, q.City, q.State, q.ZipCode,
		q.PatientCondition, q.DoctorName, q.DoctorContact, q.Status, now, now,
	).Scan(&q.ID)
}

func (r *requestRepository) GetByID(ctx context.Context, id int32) (*domain.Request, error) {
	q := &domain.Request{}
	err := scanRequest(r.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1`, id), q)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "request", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *requestRepository) Update(ctx context.Context, q *domain.Request) error {
	query := `UPDATE requests SET
	            patient_name=$1, contact_person=$2, email=$3, phone=$4, blood_group=$5, donation_type=$6, units_required=$7,
	            urgency=$8, required_date=$9, hospital_name=$10, hospital_address=$11, city=$12, state=$13, zip_code=$14,
	            patient_condition=$15, doctor_name=$16, doctor_contact=$17, status=$18, updated_on=$19
	          WHERE id=$20`
	_, err := r.db.ExecContext(ctx, query,
		q.PatientName, q.ContactPerson, q.Email, q.Phone, q.BloodGroup, q.DonationType, q.UnitsRequired,
		q.Urgency, q.RequiredDate.String(), q.HospitalName, q.HospitalAddress, q.City, q.State, q.ZipCode,
		q.PatientCondition, q.DoctorName, q.DoctorContact, q.Status, time.Now(), q.ID)
	return err
}

func (r *requestRepository) ListByRequester(ctx context.Context, requesterID int32, status string) ([]domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE requester_id = $1`
	args := []interface{}{requesterID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_on DESC`
	return r.queryRequests(ctx, query, args...)
}

func (r *requestRepository) ListPendingByCity(ctx context.Context, city string) ([]domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE city = $1 AND status = 'pending'
	          ORDER BY urgency ASC, required_date ASC`
	return r.queryRequests(ctx, query, city)
}

// AcceptPeerDonation is the peer-to-peer acceptance unit of work: the
// request fulfilment, the donation completion and the donor cooldown start
// either all commit or none do. Inventory is deliberately untouched; the
// unit goes straight from donor to recipient.
func (r *requestRepository) AcceptPeerDonation(ctx context.Context, requestID, donationID, orgID int32, orgName string, donorID *int32, completedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE requests SET status='fulfilled', updated_on=$1 WHERE id=$2 AND status='pending'`,
		time.Now(), requestID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.InvalidStateError{Entity: "request", Status: "not pending"}
	}

	result, err = tx.ExecContext(ctx,
		`UPDATE donations SET status='completed', event_date=$1, selected_organization=$2, organization_id=$3, updated_on=$4
		 WHERE id=$5 AND status='pending'`,
		completedAt, orgName, orgID, time.Now(), donationID)
	if err != nil {
		return err
	}
	affected, err = result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.InvalidStateError{Entity: "donation", Status: "not pending"}
	}

	if donorID != nil {
		if _, err := tx.ExecContext(ctx,
			`UPDATE donors SET last_donation_at=$1, updated_on=$2 WHERE id=$3`,
			completedAt, time.Now(), *donorID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *requestRepository) queryRequests(ctx context.Context, query string, args ...interface{}) ([]domain.Request, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		var q domain.Request
		if err := scanRequest(rows, &q); err != nil {
			return nil, err
		}
		requests = append(requests, q)
	}
	return requests, rows.Err()
}
