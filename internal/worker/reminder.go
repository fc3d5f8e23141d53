package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ameerdental/clinic-api/internal/email"
	"github.com/ameerdental/clinic-api/internal/model"
	"github.com/ameerdental/clinic-api/internal/repository"
	"github.com/ameerdental/clinic-api/internal/schedule"
	"github.com/ameerdental/clinic-api/pkg/metrics"
)

// ReminderProcessor periodically emails patients whose appointments fall on
// the next calendar day. A failed send is logged and skipped; it is retried
// on the next cycle, never within one.
type ReminderProcessor struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	mailer       email.Service
	interval     time.Duration
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewReminderProcessor(
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	mailer email.Service,
	interval time.Duration,
	m *metrics.Metrics,
) *ReminderProcessor {
	return &ReminderProcessor{
		appointments: appointments,
		patients:     patients,
		mailer:       mailer,
		interval:     interval,
		metrics:      m,
		now:          time.Now,
	}
}

// WithClock overrides the clock, for tests.
func (p *ReminderProcessor) WithClock(now func() time.Time) *ReminderProcessor {
	p.now = now
	return p
}

func (p *ReminderProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", p.interval).Msg("reminder processor started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reminder processor stopped")
			return
		case <-ticker.C:
			if err := p.RunOnce(ctx); err != nil {
				log.Error().Err(err).Msg("reminder cycle failed")
			}
		}
	}
}

// RunOnce sends reminders for tomorrow's scheduled appointments.
func (p *ReminderProcessor) RunOnce(ctx context.Context) error {
	appointments, err := p.appointments.List(ctx)
	if err != nil {
		return err
	}

	tomorrow := p.now().AddDate(0, 0, 1).Format(model.DateLayout)
	due := schedule.DayBucket(appointments, tomorrow)

	for _, apt := range due {
		if apt.Status != model.AppointmentStatusScheduled {
			continue
		}

		patient, err := p.patients.Get(ctx, apt.PatientID)
		if err != nil {
			log.Warn().Err(err).Str("appointment_id", apt.ID.String()).Msg("skipping reminder, patient lookup failed")
			continue
		}
		if patient.Email == "" {
			continue
		}

		if err := p.mailer.SendAppointmentReminder(ctx, patient.Email, apt.PatientName, apt.DateTime); err != nil {
			if p.metrics != nil {
				p.metrics.RemindersFailed.Inc()
			}
			log.Error().Err(err).Str("appointment_id", apt.ID.String()).Msg("failed to send reminder")
			continue
		}
		if p.metrics != nil {
			p.metrics.RemindersSent.Inc()
		}
		log.Info().Str("appointment_id", apt.ID.String()).Str("date_time", apt.DateTime).Msg("reminder sent")
	}
	return nil
}
