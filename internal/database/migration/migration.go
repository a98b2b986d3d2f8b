package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"clinicapi/internal/config"
)

// Step is one named DDL statement.
type Step struct {
	Name string
	SQL  string
}

// dialect carries the few DDL fragments that differ between PostgreSQL and SQLite.
type dialect struct {
	pk       string
	sentinel string
}

var dialects = map[string]dialect{
	config.DriverPostgres: {
		pk:       "BIGSERIAL PRIMARY KEY",
		sentinel: "SELECT to_regclass('public.documents') IS NOT NULL",
	},
	config.DriverSQLite: {
		pk:       "INTEGER PRIMARY KEY AUTOINCREMENT",
		sentinel: "SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = 'documents'",
	},
}

// Steps returns the ordered schema bootstrap for a driver.
func Steps(driver string) ([]Step, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	return []Step{
		{
			Name: "create_table_users",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
  id         %s,
  name       TEXT NOT NULL,
  email      TEXT NOT NULL UNIQUE,
  password   TEXT NOT NULL,
  created_at TEXT NOT NULL
);`, d.pk),
		},
		{
			Name: "create_table_patients",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS patients (
  id                         %s,
  user_id                    BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  creation_date              TEXT NOT NULL,
  name                       TEXT NOT NULL,
  sex                        TEXT NOT NULL,
  date_of_birth              TEXT NOT NULL,
  phone                      TEXT NOT NULL DEFAULT '',
  address                    TEXT NOT NULL DEFAULT '',
  personal_medical_history   TEXT NOT NULL DEFAULT '',
  familial_medical_history   TEXT NOT NULL DEFAULT '',
  current_medical_conditions TEXT NOT NULL DEFAULT '',
  current_medications        TEXT NOT NULL DEFAULT '',
  allergies                  TEXT NOT NULL DEFAULT '',
  surgeries                  TEXT NOT NULL DEFAULT '',
  vaccines                   TEXT NOT NULL DEFAULT '',
  UNIQUE (user_id, name)
);`, d.pk),
		},
		{
			Name: "create_table_visits",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS visits (
  id                                  %s,
  patient_id                          BIGINT NOT NULL REFERENCES patients (id) ON DELETE CASCADE,
  user_id                             BIGINT NOT NULL,
  visit_reason                        TEXT NOT NULL,
  visit_weight                        TEXT NOT NULL DEFAULT '',
  visit_weight_percentile             TEXT NOT NULL DEFAULT '',
  visit_height                        TEXT NOT NULL DEFAULT '',
  visit_height_percentile             TEXT NOT NULL DEFAULT '',
  visit_head_circumference            TEXT NOT NULL DEFAULT '',
  visit_head_circumference_percentile TEXT NOT NULL DEFAULT '',
  visit_bmi                           TEXT NOT NULL DEFAULT '',
  visit_physical_examination          TEXT NOT NULL DEFAULT '',
  visit_diagnosis                     TEXT NOT NULL DEFAULT '',
  visit_date                          TEXT NOT NULL,
  visit_hour                          TEXT NOT NULL
);`, d.pk),
		},
		{
			Name: "create_table_medications",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS medications (
  id                  %s,
  patient_id          BIGINT NOT NULL REFERENCES patients (id) ON DELETE CASCADE,
  user_id             BIGINT NOT NULL,
  medication_name     TEXT NOT NULL,
  medication_date     TEXT NOT NULL,
  medication_duration TEXT NOT NULL DEFAULT '',
  dosage_form         TEXT NOT NULL DEFAULT '',
  times_per_day       TEXT NOT NULL DEFAULT '',
  amount              TEXT NOT NULL DEFAULT ''
);`, d.pk),
		},
		{
			Name: "create_table_lab_tests",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS lab_tests (
  id            %s,
  patient_id    BIGINT NOT NULL REFERENCES patients (id) ON DELETE CASCADE,
  user_id       BIGINT NOT NULL,
  lab_test_name TEXT NOT NULL,
  lab_test_date TEXT NOT NULL
);`, d.pk),
		},
		{
			Name: "create_table_waiting_room",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS waiting_room (
  id                %s,
  patient_id        BIGINT NOT NULL REFERENCES patients (id) ON DELETE CASCADE,
  arrival_timestamp TEXT NOT NULL,
  status            TEXT NOT NULL DEFAULT 'en attente',
  call_timestamp    TEXT
);`, d.pk),
		},
		{
			// documents is created last: it is the sentinel table.
			Name: "create_table_documents",
			SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS documents (
  id            %s,
  patient_id    BIGINT NOT NULL REFERENCES patients (id) ON DELETE CASCADE,
  document_name TEXT NOT NULL,
  document_path TEXT NOT NULL UNIQUE,
  upload_date   TEXT NOT NULL
);`, d.pk),
		},
		{
			Name: "create_index_documents_patient_id",
			SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_patient_id ON documents (patient_id);`,
		},
		{
			Name: "create_index_visits_patient_id",
			SQL:  `CREATE INDEX IF NOT EXISTS idx_visits_patient_id ON visits (patient_id);`,
		},
		{
			Name: "create_index_waiting_room_status",
			SQL:  `CREATE INDEX IF NOT EXISTS idx_waiting_room_status ON waiting_room (status);`,
		},
	}, nil
}

// EnsureMigrated checks if the 'documents' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, driver string, log zerolog.Logger) error {
	start := time.Now()
	log = log.With().Str("component", "database").Str("db_driver", driver).Logger()

	steps, err := Steps(driver)
	if err != nil {
		return err
	}

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Send()

	var exists bool
	if err := db.QueryRowContext(ctx, dialects[driver].sentinel).Scan(&exists); err != nil {
		log.Error().
			Str("event", "db_migration_failed").
			Str("status", "error").
			Err(err).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Send()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Err(err).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Send()
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Debug().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Send()
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Send()

	return nil
}
