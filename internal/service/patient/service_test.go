package patient

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameerdental/clinic-api/internal/model"
	apperrors "github.com/ameerdental/clinic-api/pkg/errors"
)

type fakePatientRepo struct {
	records map[uuid.UUID]*model.Patient
	writes  int
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{records: make(map[uuid.UUID]*model.Patient)}
}

func (r *fakePatientRepo) List(ctx context.Context) ([]*model.Patient, error) {
	out := make([]*model.Patient, 0, len(r.records))
	for _, p := range r.records {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("no patient %s", id)
	}
	cp := *p
	return &cp, nil
}

func (r *fakePatientRepo) Upsert(ctx context.Context, p *model.Patient) error {
	cp := *p
	r.records[p.ID] = &cp
	r.writes++
	return nil
}

func (r *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

var fixedNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestService(repo *fakePatientRepo) *Service {
	return NewService(repo, nil).WithClock(func() time.Time { return fixedNow })
}

func TestCreatePatient(t *testing.T) {
	repo := newFakePatientRepo()
	svc := newTestService(repo)

	patient, err := svc.CreatePatient(context.Background(), &model.CreatePatientRequest{
		Name:   "Sara Ahmed",
		Phone:  "0100000000",
		Gender: model.GenderFemale,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, patient.ID)
	assert.Equal(t, fixedNow, patient.CreatedAt)
	assert.NotNil(t, patient.Chart)
	assert.Empty(t, patient.Chart)
	assert.Equal(t, 1, repo.writes)
}

func TestCreatePatientRequiresNameAndPhone(t *testing.T) {
	repo := newFakePatientRepo()
	svc := newTestService(repo)

	_, err := svc.CreatePatient(context.Background(), &model.CreatePatientRequest{
		Name:  "",
		Phone: "0100000000",
	})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.CreatePatient(context.Background(), &model.CreatePatientRequest{
		Name:  "Sara Ahmed",
		Phone: "   ",
	})
	assert.True(t, apperrors.IsValidation(err))

	// Validation blocks the save before any write is attempted.
	assert.Equal(t, 0, repo.writes)
}

func TestUpdatePatientPreservesChartAndCreatedAt(t *testing.T) {
	repo := newFakePatientRepo()
	svc := newTestService(repo)

	created, err := svc.CreatePatient(context.Background(), &model.CreatePatientRequest{
		Name:  "Sara Ahmed",
		Phone: "0100000000",
	})
	require.NoError(t, err)

	_, err = svc.AppendToothEvent(context.Background(), created.ID, "11", &model.AppendToothEventRequest{
		Status: model.ToothStatusDecay,
	})
	require.NoError(t, err)

	updated, err := svc.UpdatePatient(context.Background(), created.ID, &model.UpdatePatientRequest{
		Name:  "Sara A. Mahmoud",
		Phone: "0111111111",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, model.ToothStatusDecay, updated.Chart.CurrentStatus("11"))
	assert.Equal(t, "Sara A. Mahmoud", updated.Name)
}

func TestUpdatePatientAcceptsExplicitChart(t *testing.T) {
	repo := newFakePatientRepo()
	svc := newTestService(repo)

	created, err := svc.CreatePatient(context.Background(), &model.CreatePatientRequest{
		Name:  "Omar Khaled",
		Phone: "0122222222",
	})
	require.NoError(t, err)

	chart, err := model.Chart{}.AppendEvent("32", model.ToothStatusFilled, "", fixedNow)
	require.NoError(t, err)

	updated, err := svc.UpdatePatient(context.Background(), created.ID, &model.UpdatePatientRequest{
		Name:  "Omar Khaled",
		Phone: "0122222222",
		Chart: chart,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ToothStatusFilled, updated.Chart.CurrentStatus("32"))
}

func TestAppendToothEventAccumulatesHistory(t *testing.T) {
	repo := newFakePatientRepo()
	svc := newTestService(repo)

	created, err := svc.CreatePatient(context.Background(), &model.CreatePatientRequest{
		Name:  "Sara Ahmed",
		Phone: "0100000000",
	})
	require.NoError(t, err)

	_, err = svc.AppendToothEvent(context.Background(), created.ID, "11", &model.AppendToothEventRequest{
		Status: model.ToothStatusDecay, Note: "distal caries",
	})
	require.NoError(t, err)

	patient, err := svc.AppendToothEvent(context.Background(), created.ID, "11", &model.AppendToothEventRequest{
		Status: model.ToothStatusFilled, Note: "composite",
	})
	require.NoError(t, err)

	assert.Equal(t, model.ToothStatusFilled, patient.Chart.CurrentStatus("11"))
	assert.Len(t, patient.Chart.History("11"), 2)
	assert.Equal(t, model.ToothStatusHealthy, patient.Chart.CurrentStatus("12"))

	stored, err := svc.GetPatient(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Chart.History("11"), 2)
}

func TestAppendToothEventRejectsBadToothWithoutWriting(t *testing.T) {
	repo := newFakePatientRepo()
	svc := newTestService(repo)

	created, err := svc.CreatePatient(context.Background(), &model.CreatePatientRequest{
		Name:  "Sara Ahmed",
		Phone: "0100000000",
	})
	require.NoError(t, err)
	writesAfterCreate := repo.writes

	_, err = svc.AppendToothEvent(context.Background(), created.ID, "99", &model.AppendToothEventRequest{
		Status: model.ToothStatusDecay,
	})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, writesAfterCreate, repo.writes)
}

func TestListPatientsFiltersBySubstring(t *testing.T) {
	repo := newFakePatientRepo()
	svc := newTestService(repo)

	_, err := svc.CreatePatient(context.Background(), &model.CreatePatientRequest{Name: "Sara Ahmed", Phone: "0100000000"})
	require.NoError(t, err)
	_, err = svc.CreatePatient(context.Background(), &model.CreatePatientRequest{Name: "Omar Khaled", Phone: "0122222222"})
	require.NoError(t, err)

	matches, err := svc.ListPatients(context.Background(), "sara")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Sara Ahmed", matches[0].Name)

	matches, err = svc.ListPatients(context.Background(), "0122")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Omar Khaled", matches[0].Name)

	all, err := svc.ListPatients(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
