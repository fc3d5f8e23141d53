package postgres

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/ameerdental/clinic-api/internal/config"
	"github.com/ameerdental/clinic-api/pkg/metrics"
)

func NewDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// observeOp records one repository call. Deferred with a pointer so the
// status reflects the named return, not its value at defer time.
func observeOp(m *metrics.Metrics, op string, start time.Time, err *error) {
	if m == nil {
		return
	}
	status := "success"
	if *err != nil {
		status = "error"
	}
	m.DatabaseOperations.WithLabelValues(op, status).Inc()
	m.DatabaseLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
