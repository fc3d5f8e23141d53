package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/ameerdental/clinic-api/internal/config"
)

// Service sends clinic mail. The only template today is the appointment
// reminder.
type Service interface {
	SendAppointmentReminder(ctx context.Context, to, patientName, dateTime string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.SMTPConfig, user, password string) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, user, password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendAppointmentReminder(ctx context.Context, to, patientName, dateTime string) error {
	if to == "" {
		return fmt.Errorf("patient has no email address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Appointment reminder")
	m.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nThis is a reminder of your dental appointment on %s.\n\nAmeer Dental Clinic",
		patientName, dateTime,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder to %s: %w", to, err)
	}
	return nil
}
