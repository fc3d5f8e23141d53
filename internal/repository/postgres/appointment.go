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

type appointmentRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

func NewAppointmentRepository(db *sqlx.DB, m *metrics.Metrics) repository.AppointmentRepository {
	return &appointmentRepository{db: db, metrics: m}
}

// List returns all appointments ordered ascending by date-time. date_time is
// TEXT in the zero-padded ISO layout, so the textual ORDER BY is
// chronological.
func (r *appointmentRepository) List(ctx context.Context) (_ []*model.Appointment, err error) {
	defer observeOp(r.metrics, "appointments_list", time.Now(), &err)

	query := `
		SELECT id, patient_id, patient_name, date_time, duration, reason, status, notes
		FROM appointments
		ORDER BY date_time ASC
	`
	var appointments []*model.Appointment
	if err = r.db.SelectContext(ctx, &appointments, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (_ *model.Appointment, err error) {
	defer observeOp(r.metrics, "appointments_get", time.Now(), &err)

	query := `
		SELECT id, patient_id, patient_name, date_time, duration, reason, status, notes
		FROM appointments
		WHERE id = $1
	`
	var apt model.Appointment
	if err = r.db.GetContext(ctx, &apt, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) Upsert(ctx context.Context, apt *model.Appointment) (err error) {
	defer observeOp(r.metrics, "appointments_upsert", time.Now(), &err)

	query := `
		INSERT INTO appointments (
			id, patient_id, patient_name, date_time, duration, reason, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			date_time = EXCLUDED.date_time,
			duration = EXCLUDED.duration,
			reason = EXCLUDED.reason,
			status = EXCLUDED.status,
			notes = EXCLUDED.notes
	`
	_, err = r.db.ExecContext(ctx, query,
		apt.ID,
		apt.PatientID,
		apt.PatientName,
		apt.DateTime,
		apt.Duration,
		apt.Reason,
		apt.Status,
		apt.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to save appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	defer observeOp(r.metrics, "appointments_delete", time.Now(), &err)

	if _, err = r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}
