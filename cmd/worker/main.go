package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/ameerdental/clinic-api/internal/config"
	"github.com/ameerdental/clinic-api/internal/email"
	"github.com/ameerdental/clinic-api/internal/repository/postgres"
	"github.com/ameerdental/clinic-api/internal/worker"
	"github.com/ameerdental/clinic-api/pkg/logger"
	"github.com/ameerdental/clinic-api/pkg/metrics"
)

// Standalone reminder worker, for deployments that keep mail delivery out of
// the API process.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(logger.Config{
		Level:   cfg.Logging.Level,
		Pretty:  cfg.Logging.Pretty,
		Service: "clinic-worker",
	})

	secrets, err := config.LoadSecrets()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load secrets")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("clinic", "worker")
	mailer := email.NewSMTPService(cfg.SMTP, secrets.SMTPUser, secrets.SMTPPassword)
	reminder := worker.NewReminderProcessor(
		postgres.NewAppointmentRepository(db, m),
		postgres.NewPatientRepository(db, m),
		mailer,
		cfg.Reminder.Interval,
		m,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go reminder.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cancel()
	log.Info().Msg("worker exited")
}
