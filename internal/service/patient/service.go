package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ameerdental/clinic-api/internal/model"
	"github.com/ameerdental/clinic-api/internal/repository"
	apperrors "github.com/ameerdental/clinic-api/pkg/errors"
	"github.com/ameerdental/clinic-api/pkg/metrics"
)

// Service owns the patient-record workflow: intake validation, identity,
// chart custody. Every write is one read-modify-write against the
// repository; last write wins.
type Service struct {
	repo    repository.PatientRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo repository.PatientRepository, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		metrics: m,
		now:     time.Now,
	}
}

// WithClock overrides the clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	if err := validateIntake(req.Name, req.Phone); err != nil {
		return nil, err
	}

	patient := &model.Patient{
		ID:         uuid.New(),
		Name:       req.Name,
		Phone:      req.Phone,
		DOB:        req.DOB,
		Email:      req.Email,
		Occupation: req.Occupation,
		Address:    req.Address,
		Gender:     req.Gender,
		History:    req.History,
		Chart:      model.Chart{},
		CreatedAt:  s.now(),
	}

	if err := s.repo.Upsert(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	if s.metrics != nil {
		s.metrics.PatientsCreated.Inc()
	}
	return patient, nil
}

// UpdatePatient replaces the demographic fields wholesale. ID, CreatedAt and
// (unless the request carries one) the chart are carried over from the
// stored record, so a demographic-only edit can never clobber treatment
// history.
func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	if err := validateIntake(req.Name, req.Phone); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFound("patient", err)
	}

	chart := existing.Chart
	if req.Chart != nil {
		chart = req.Chart
	}

	patient := &model.Patient{
		ID:         existing.ID,
		Name:       req.Name,
		Phone:      req.Phone,
		DOB:        req.DOB,
		Email:      req.Email,
		Occupation: req.Occupation,
		Address:    req.Address,
		Gender:     req.Gender,
		History:    req.History,
		Chart:      chart,
		CreatedAt:  existing.CreatedAt,
	}

	if err := s.repo.Upsert(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

// AppendToothEvent records one treatment on a tooth. The chart append is a
// pure value operation; the stored record only changes if the upsert
// succeeds.
func (s *Service) AppendToothEvent(ctx context.Context, patientID uuid.UUID, toothID string, req *model.AppendToothEventRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, patientID)
	if err != nil {
		return nil, apperrors.NewNotFound("patient", err)
	}

	chart, err := patient.Chart.AppendEvent(toothID, req.Status, req.Note, s.now())
	if err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}

	updated := *patient
	updated.Chart = chart

	if err := s.repo.Upsert(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save chart: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ChartEventsLogged.WithLabelValues(string(req.Status)).Inc()
	}
	return &updated, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFound("patient", err)
	}
	return patient, nil
}

// ListPatients returns the roster, optionally filtered by a name/phone
// substring.
func (s *Service) ListPatients(ctx context.Context, search string) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	if search == "" {
		return patients, nil
	}

	needle := strings.ToLower(search)
	filtered := make([]*model.Patient, 0, len(patients))
	for _, p := range patients {
		if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(p.Phone, needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func validateIntake(name, phone string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidation("patient name is required")
	}
	if strings.TrimSpace(phone) == "" {
		return apperrors.NewValidation("patient phone is required")
	}
	return nil
}
