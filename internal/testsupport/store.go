// Package testsupport helpers compartidos por los tests: store SQLite temporal con el esquema aplicado.
package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jhoicas/parts-catalog/internal/infrastructure/migrations"
	"github.com/jhoicas/parts-catalog/internal/infrastructure/sqlite"
	"github.com/jhoicas/parts-catalog/internal/infrastructure/storage"
	"github.com/jhoicas/parts-catalog/pkg/config"
	"github.com/jhoicas/parts-catalog/pkg/logger"
)

// MustOpenSQLite crea una base SQLite en un directorio temporal, aplica las migraciones y
// la cierra al terminar el test.
func MustOpenSQLite(t testing.TB) *sqlite.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	cfg := config.DBConfig{Driver: config.DriverSQLite, SQLitePath: path}
	if err := migrations.Up(cfg, logger.Nop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store, err := sqlite.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// MustOpenBackend igual que MustOpenSQLite pero devuelve el Backend completo.
func MustOpenBackend(t testing.TB) *storage.Backend {
	t.Helper()
	return storage.FromSQLite(MustOpenSQLite(t))
}
