package migrations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/parts-catalog/internal/infrastructure/migrations"
	"github.com/jhoicas/parts-catalog/pkg/config"
)

func TestDatabaseURL_Postgres(t *testing.T) {
	dir, url, err := migrations.DatabaseURL(config.DBConfig{
		Driver:      config.DriverPostgres,
		DatabaseURL: "postgresql://u:p@db:5432/cat?sslmode=disable",
	})
	require.NoError(t, err)
	assert.Equal(t, "postgres", dir)
	assert.Equal(t, "pgx5://u:p@db:5432/cat?sslmode=disable", url)
}

func TestDatabaseURL_SQLite(t *testing.T) {
	dir, url, err := migrations.DatabaseURL(config.DBConfig{Driver: config.DriverSQLite, SQLitePath: "/tmp/c.db"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", dir)
	assert.Equal(t, "sqlite:///tmp/c.db", url)
}

func TestDatabaseURL_DriverDesconocido(t *testing.T) {
	_, _, err := migrations.DatabaseURL(config.DBConfig{Driver: "mysql"})
	assert.Error(t, err)
}
