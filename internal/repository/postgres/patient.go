package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ameerdental/clinic-api/internal/model"
	"github.com/ameerdental/clinic-api/internal/repository"
	"github.com/ameerdental/clinic-api/pkg/metrics"
)

type patientRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

func NewPatientRepository(db *sqlx.DB, m *metrics.Metrics) repository.PatientRepository {
	return &patientRepository{db: db, metrics: m}
}

func (r *patientRepository) List(ctx context.Context) (_ []*model.Patient, err error) {
	defer observeOp(r.metrics, "patients_list", time.Now(), &err)

	query := `
		SELECT id, name, phone, dob, email, occupation, address, gender,
		       medical_history, chart, created_at
		FROM patients
		ORDER BY created_at DESC
	`
	var patients []*model.Patient
	if err = r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (_ *model.Patient, err error) {
	defer observeOp(r.metrics, "patients_get", time.Now(), &err)

	query := `
		SELECT id, name, phone, dob, email, occupation, address, gender,
		       medical_history, chart, created_at
		FROM patients
		WHERE id = $1
	`
	var patient model.Patient
	if err = r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

// Upsert inserts or fully replaces the record keyed by id. created_at is
// written only on insert; the conflict branch leaves it untouched.
func (r *patientRepository) Upsert(ctx context.Context, patient *model.Patient) (err error) {
	defer observeOp(r.metrics, "patients_upsert", time.Now(), &err)

	query := `
		INSERT INTO patients (
			id, name, phone, dob, email, occupation, address, gender,
			medical_history, chart, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			dob = EXCLUDED.dob,
			email = EXCLUDED.email,
			occupation = EXCLUDED.occupation,
			address = EXCLUDED.address,
			gender = EXCLUDED.gender,
			medical_history = EXCLUDED.medical_history,
			chart = EXCLUDED.chart
	`
	_, err = r.db.ExecContext(ctx, query,
		patient.ID,
		patient.Name,
		patient.Phone,
		patient.DOB,
		patient.Email,
		patient.Occupation,
		patient.Address,
		patient.Gender,
		patient.History,
		patient.Chart,
		patient.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save patient: %w", err)
	}
	return nil
}

// Delete removes the patient and their appointments in one transaction.
func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	defer observeOp(r.metrics, "patients_delete", time.Now(), &err)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM appointments WHERE patient_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete patient appointments: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	return tx.Commit()
}
