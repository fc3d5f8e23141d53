package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ameerdental/clinic-api/internal/model"
)

// PatientRepository persists patient records. Upsert is last-write-wins
// keyed by id; errors propagate to the caller with no retry.
type PatientRepository interface {
	List(ctx context.Context) ([]*model.Patient, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	Upsert(ctx context.Context, patient *model.Patient) error
	// Delete removes the patient and cascades to their appointments.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AppointmentRepository persists appointments. List returns them ordered
// ascending by date-time.
type AppointmentRepository interface {
	List(ctx context.Context) ([]*model.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Upsert(ctx context.Context, apt *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
