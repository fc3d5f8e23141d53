package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ameerdental/clinic-api/internal/ai"
	"github.com/ameerdental/clinic-api/internal/config"
	"github.com/ameerdental/clinic-api/internal/email"
	"github.com/ameerdental/clinic-api/internal/handler"
	appointmentHandler "github.com/ameerdental/clinic-api/internal/handler/appointment"
	diagnosisHandler "github.com/ameerdental/clinic-api/internal/handler/diagnosis"
	patientHandler "github.com/ameerdental/clinic-api/internal/handler/patient"
	scheduleHandler "github.com/ameerdental/clinic-api/internal/handler/schedule"
	"github.com/ameerdental/clinic-api/internal/middleware"
	"github.com/ameerdental/clinic-api/internal/repository/postgres"
	"github.com/ameerdental/clinic-api/internal/router"
	appointmentService "github.com/ameerdental/clinic-api/internal/service/appointment"
	diagnosisService "github.com/ameerdental/clinic-api/internal/service/diagnosis"
	patientService "github.com/ameerdental/clinic-api/internal/service/patient"
	"github.com/ameerdental/clinic-api/internal/worker"
	"github.com/ameerdental/clinic-api/pkg/logger"
	"github.com/ameerdental/clinic-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(logger.Config{
		Level:   cfg.Logging.Level,
		Pretty:  cfg.Logging.Pretty,
		Service: "clinic-api",
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

	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure database schema")
	}

	m := metrics.NewMetrics("clinic", "api")

	// Repositories
	patientRepo := postgres.NewPatientRepository(db, m)
	appointmentRepo := postgres.NewAppointmentRepository(db, m)

	// Services
	patientSvc := patientService.NewService(patientRepo, m)
	appointmentSvc := appointmentService.NewService(
		appointmentRepo,
		patientRepo,
		appointmentService.MissingPatientPolicy(cfg.Booking.MissingPatientPolicy),
		m,
	)
	analyzer := ai.NewGeminiClient(ai.GeminiConfig{
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		APIKey:  secrets.GeminiAPIKey,
		Timeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
	})
	diagnosisSvc := diagnosisService.NewService(analyzer, cfg.AI.BreakerWindow, m)

	// Handlers
	handler.RegisterValidations()
	healthHandler := handler.NewHandler(db)
	r := router.NewRouter(
		router.RouterConfig{
			RateLimitRPS:  100,
			RateBurst:     200,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "clinic",
		},
		healthHandler,
		patientHandler.NewHandler(patientSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		scheduleHandler.NewHandler(appointmentSvc),
		diagnosisHandler.NewHandler(diagnosisSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	// Reminder processor runs in-process when enabled; cmd/worker runs it
	// standalone.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if cfg.Reminder.Enabled {
		mailer := email.NewSMTPService(cfg.SMTP, secrets.SMTPUser, secrets.SMTPPassword)
		reminder := worker.NewReminderProcessor(appointmentRepo, patientRepo, mailer, cfg.Reminder.Interval, m)
		go reminder.Start(workerCtx)
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	stopWorker()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}
