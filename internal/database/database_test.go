package database

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicapi/internal/config"
)

// stubOpen makes the next sqlOpen call hand back db (or openErr).
func stubOpen(t *testing.T, db *sql.DB, openErr error) {
	t.Helper()
	orig := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return db, openErr }
	t.Cleanup(func() { sqlOpen = orig })
}

func TestBuildDSN(t *testing.T) {
	pg := config.DatabaseConfig{Host: "db", Port: "5432", User: "clinic", Name: "clinic"}

	tests := []struct {
		name    string
		build   func(config.DatabaseConfig) (string, error)
		config  config.DatabaseConfig
		want    string
		wantErr bool
	}{
		{
			name:   "postgres with password and sslmode",
			build:  BuildPostgresDSN,
			config: config.DatabaseConfig{Host: "db", Port: "5432", User: "clinic", Password: "s3cret", Name: "clinic", SSLMode: "disable"},
			want:   "postgres://clinic:s3cret@db:5432/clinic?sslmode=disable",
		},
		{
			name:   "postgres without password or sslmode",
			build:  BuildPostgresDSN,
			config: pg,
			want:   "postgres://clinic@db:5432/clinic",
		},
		{name: "postgres missing host", build: BuildPostgresDSN, config: config.DatabaseConfig{Port: "5432", User: "u", Name: "n"}, wantErr: true},
		{name: "postgres missing port", build: BuildPostgresDSN, config: config.DatabaseConfig{Host: "h", User: "u", Name: "n"}, wantErr: true},
		{name: "postgres missing user", build: BuildPostgresDSN, config: config.DatabaseConfig{Host: "h", Port: "1", Name: "n"}, wantErr: true},
		{name: "postgres missing name", build: BuildPostgresDSN, config: config.DatabaseConfig{Host: "h", Port: "1", User: "u"}, wantErr: true},
		{
			name:   "sqlite file",
			build:  BuildSQLiteDSN,
			config: config.DatabaseConfig{Path: "/var/lib/clinic/medDatabase.db"},
			want:   "file:/var/lib/clinic/medDatabase.db?_pragma=foreign_keys%281%29&_pragma=busy_timeout%285000%29",
		},
		{name: "sqlite missing path", build: BuildSQLiteDSN, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.build(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpen_Stubbed(t *testing.T) {
	pg := config.DatabaseConfig{
		Driver: config.DriverPostgres, Host: "db", Port: "5432", User: "clinic", Name: "clinic",
		MaxOpenConns: 10, MaxIdleConns: 5, ConnMaxLifetimeSec: 300,
	}
	lite := config.DatabaseConfig{Driver: config.DriverSQLite, Path: "clinic.db"}

	tests := []struct {
		name    string
		config  config.DatabaseConfig
		openErr error
		pingErr error
		wantErr string
	}{
		{name: "postgres", config: pg},
		{name: "sqlite", config: lite},
		{name: "postgres open error", config: pg, openErr: errors.New("open error"), wantErr: "sql open: open error"},
		{name: "postgres ping error", config: pg, pingErr: errors.New("ping failed"), wantErr: "db ping: ping failed"},
		{name: "sqlite ping error", config: lite, pingErr: errors.New("locked"), wantErr: "db ping: locked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })

			if tt.openErr != nil {
				stubOpen(t, nil, tt.openErr)
			} else {
				stubOpen(t, db, nil)
				mock.ExpectPing().WillReturnError(tt.pingErr)
			}

			got, err := Open(tt.config)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Same(t, db, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOpen_Rejects(t *testing.T) {
	for name, c := range map[string]config.DatabaseConfig{
		"unsupported driver": {Driver: "oracle"},
		"postgres no host":   {Driver: config.DriverPostgres},
		"sqlite no path":     {Driver: config.DriverSQLite},
	} {
		t.Run(name, func(t *testing.T) {
			db, err := Open(c)
			assert.Error(t, err)
			assert.Nil(t, db)
		})
	}
}

func TestOpen_SQLiteFile(t *testing.T) {
	db, err := Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "clinic.db"),
	})
	require.NoError(t, err)
	defer db.Close()

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}
