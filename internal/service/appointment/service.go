package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/ameerdental/clinic-api/internal/model"
	"github.com/ameerdental/clinic-api/internal/repository"
	apperrors "github.com/ameerdental/clinic-api/pkg/errors"
	"github.com/ameerdental/clinic-api/pkg/metrics"
)

// MissingPatientPolicy decides what a booking against an unknown patient id
// does. The historical behavior is a silent no-op; reject surfaces it as a
// validation error instead.
type MissingPatientPolicy string

const (
	MissingPatientIgnore MissingPatientPolicy = "ignore"
	MissingPatientReject MissingPatientPolicy = "reject"
)

const (
	rosterCacheKey = "roster"
	rosterCacheTTL = 30 * time.Second
)

// Service owns the booking workflow. There is deliberately no double-booking
// detection: two appointments may share a date-time, even for one patient.
type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	policy      MissingPatientPolicy
	roster      *cache.Cache
	metrics     *metrics.Metrics
}

func NewService(repo repository.AppointmentRepository, patientRepo repository.PatientRepository, policy MissingPatientPolicy, m *metrics.Metrics) *Service {
	if policy == "" {
		policy = MissingPatientIgnore
	}
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		policy:      policy,
		roster:      cache.New(rosterCacheTTL, 5*time.Minute),
		metrics:     m,
	}
}

// BookAppointment validates the form against the roster and persists a new
// appointment. The patient's name is snapshotted onto the record at booking
// time and never resynced. Returns (nil, nil) when the patient is unknown
// and the policy is ignore.
func (s *Service) BookAppointment(ctx context.Context, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	patient, err := s.resolvePatient(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		switch s.policy {
		case MissingPatientReject:
			return nil, apperrors.NewValidation("unknown patient")
		default:
			if s.metrics != nil {
				s.metrics.BookingsIgnored.Inc()
			}
			return nil, nil
		}
	}

	status := req.Status
	if status == "" {
		status = model.AppointmentStatusScheduled
	}

	apt := &model.Appointment{
		ID:          uuid.New(),
		PatientID:   patient.ID,
		PatientName: patient.Name,
		DateTime:    req.DateTimeValue(),
		Duration:    model.DefaultDurationMinutes,
		Reason:      req.Reason,
		Status:      status,
		Notes:       req.Notes,
	}

	if err := s.repo.Upsert(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to book appointment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.AppointmentsBooked.WithLabelValues("create").Inc()
	}
	return apt, nil
}

// UpdateAppointment replaces everything except the identifier and the
// patient reference, which are immutable once booked. Status transitions are
// unrestricted: any state may move to any other.
func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFound("appointment", err)
	}

	status := req.Status
	if status == "" {
		status = existing.Status
	}

	apt := &model.Appointment{
		ID:          existing.ID,
		PatientID:   existing.PatientID,
		PatientName: existing.PatientName,
		DateTime:    req.DateTimeValue(),
		Duration:    existing.Duration,
		Reason:      req.Reason,
		Status:      status,
		Notes:       req.Notes,
	}

	if err := s.repo.Upsert(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.AppointmentsBooked.WithLabelValues("update").Inc()
	}
	return apt, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFound("appointment", err)
	}
	return apt, nil
}

// ListAppointments returns all appointments ascending by date-time, as
// persisted.
func (s *Service) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}

// resolvePatient looks the patient up in the roster, which is cached briefly
// because the booking form re-resolves it on every submit. A cache miss on
// the id falls through to a fresh load so a just-created patient is always
// bookable. A missing patient is (nil, nil), not an error; the policy
// decides what that means.
func (s *Service) resolvePatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	if cached, ok := s.roster.Get(rosterCacheKey); ok {
		for _, p := range cached.([]*model.Patient) {
			if p.ID == id {
				return p, nil
			}
		}
	}

	patients, err := s.patientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient roster: %w", err)
	}
	s.roster.SetDefault(rosterCacheKey, patients)

	for _, p := range patients {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
