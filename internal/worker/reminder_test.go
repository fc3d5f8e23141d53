package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameerdental/clinic-api/internal/model"
)

type stubAppointments struct {
	list []*model.Appointment
}

func (s *stubAppointments) List(ctx context.Context) ([]*model.Appointment, error) {
	return s.list, nil
}

func (s *stubAppointments) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	for _, apt := range s.list {
		if apt.ID == id {
			return apt, nil
		}
	}
	return nil, fmt.Errorf("no appointment %s", id)
}

func (s *stubAppointments) Upsert(ctx context.Context, apt *model.Appointment) error { return nil }
func (s *stubAppointments) Delete(ctx context.Context, id uuid.UUID) error           { return nil }

type stubPatients struct {
	byID map[uuid.UUID]*model.Patient
}

func (s *stubPatients) List(ctx context.Context) ([]*model.Patient, error) { return nil, nil }
func (s *stubPatients) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("no patient %s", id)
	}
	return p, nil
}
func (s *stubPatients) Upsert(ctx context.Context, p *model.Patient) error { return nil }
func (s *stubPatients) Delete(ctx context.Context, id uuid.UUID) error     { return nil }

type recordingMailer struct {
	sent    []string
	failFor string
}

func (m *recordingMailer) SendAppointmentReminder(ctx context.Context, to, patientName, dateTime string) error {
	if to == m.failFor {
		return errors.New("smtp refused")
	}
	m.sent = append(m.sent, to)
	return nil
}

func reminderFixture(t *testing.T) (*stubAppointments, *stubPatients, func() time.Time) {
	t.Helper()

	now := func() time.Time { return time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC) }

	withEmail := &model.Patient{ID: uuid.New(), Name: "Sara Ahmed", Phone: "0100000000", Email: "sara@example.com"}
	noEmail := &model.Patient{ID: uuid.New(), Name: "Omar Khaled", Phone: "0122222222"}

	appointments := &stubAppointments{list: []*model.Appointment{
		{ID: uuid.New(), PatientID: withEmail.ID, PatientName: withEmail.Name,
			DateTime: "2024-03-11T09:00", Status: model.AppointmentStatusScheduled},
		// Same day but already cancelled.
		{ID: uuid.New(), PatientID: withEmail.ID, PatientName: withEmail.Name,
			DateTime: "2024-03-11T11:00", Status: model.AppointmentStatusCancelled},
		// Patient has no email on file.
		{ID: uuid.New(), PatientID: noEmail.ID, PatientName: noEmail.Name,
			DateTime: "2024-03-11T13:00", Status: model.AppointmentStatusScheduled},
		// Not tomorrow.
		{ID: uuid.New(), PatientID: withEmail.ID, PatientName: withEmail.Name,
			DateTime: "2024-03-12T09:00", Status: model.AppointmentStatusScheduled},
	}}
	patients := &stubPatients{byID: map[uuid.UUID]*model.Patient{
		withEmail.ID: withEmail,
		noEmail.ID:   noEmail,
	}}
	return appointments, patients, now
}

func TestRunOnceRemindsTomorrowsScheduledOnly(t *testing.T) {
	appointments, patients, now := reminderFixture(t)
	mailer := &recordingMailer{}

	p := NewReminderProcessor(appointments, patients, mailer, time.Minute, nil).WithClock(now)
	require.NoError(t, p.RunOnce(context.Background()))

	assert.Equal(t, []string{"sara@example.com"}, mailer.sent)
}

func TestRunOnceContinuesPastSendFailure(t *testing.T) {
	appointments, patients, now := reminderFixture(t)

	second := &model.Patient{ID: uuid.New(), Name: "Nour Hassan", Phone: "0133333333", Email: "nour@example.com"}
	patients.byID[second.ID] = second
	appointments.list = append(appointments.list, &model.Appointment{
		ID: uuid.New(), PatientID: second.ID, PatientName: second.Name,
		DateTime: "2024-03-11T16:00", Status: model.AppointmentStatusScheduled,
	})

	mailer := &recordingMailer{failFor: "sara@example.com"}
	p := NewReminderProcessor(appointments, patients, mailer, time.Minute, nil).WithClock(now)

	// One broken mailbox must not stop the rest of the batch.
	require.NoError(t, p.RunOnce(context.Background()))
	assert.Equal(t, []string{"nour@example.com"}, mailer.sent)
}
