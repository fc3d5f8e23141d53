package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// EnsureSchema creates the tables on first run. Idempotent.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS patients (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			dob TEXT,
			email TEXT,
			occupation TEXT,
			address TEXT,
			gender TEXT,
			medical_history JSONB DEFAULT '{}'::jsonb,
			chart JSONB DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS appointments (
			id UUID PRIMARY KEY,
			patient_id UUID REFERENCES patients(id) ON DELETE CASCADE,
			patient_name TEXT,
			date_time TEXT NOT NULL,
			duration INTEGER,
			reason TEXT,
			status TEXT DEFAULT 'Scheduled',
			notes TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_date_time ON appointments (date_time)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
