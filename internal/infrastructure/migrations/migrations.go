// Package migrations contiene el esquema versionado del Catalog Store (PostgreSQL y SQLite)
// embebido en el binario y aplicado con golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/jhoicas/parts-catalog/pkg/config"
	"github.com/jhoicas/parts-catalog/pkg/logger"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Up aplica todas las migraciones pendientes. Sin cambios no es error.
func Up(cfg config.DBConfig, log *logger.Logger) error {
	m, err := newMigrate(cfg)
	if err != nil {
		return err
	}
	defer closeMigrate(m, log)

	log.Info().Str("driver", cfg.Driver).Msg("aplicando migraciones")
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	logVersion(m, log)
	return nil
}

// Down revierte una migración (la última aplicada).
func Down(cfg config.DBConfig, log *logger.Logger) error {
	m, err := newMigrate(cfg)
	if err != nil {
		return err
	}
	defer closeMigrate(m, log)

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	logVersion(m, log)
	return nil
}

func newMigrate(cfg config.DBConfig) (*migrate.Migrate, error) {
	dir, url, err := DatabaseURL(cfg)
	if err != nil {
		return nil, err
	}
	src, err := iofs.New(files, dir)
	if err != nil {
		return nil, fmt.Errorf("migrations source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return nil, fmt.Errorf("migrate init: %w", err)
	}
	return m, nil
}

// DatabaseURL devuelve el directorio de migraciones y la URL de golang-migrate para el driver.
func DatabaseURL(cfg config.DBConfig) (dir, url string, err error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		dsn := cfg.ConnectionString()
		for _, scheme := range []string{"postgresql://", "postgres://"} {
			if strings.HasPrefix(dsn, scheme) {
				return "postgres", "pgx5://" + strings.TrimPrefix(dsn, scheme), nil
			}
		}
		return "", "", fmt.Errorf("DSN de postgres sin esquema postgres://")
	case config.DriverSQLite:
		return "sqlite", "sqlite://" + cfg.SQLitePath, nil
	default:
		return "", "", fmt.Errorf("driver no soportado: %s", cfg.Driver)
	}
}

func logVersion(m *migrate.Migrate, log *logger.Logger) {
	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info().Msg("esquema sin migraciones aplicadas")
			return
		}
		log.Warn().Err(err).Msg("no se pudo leer la versión del esquema")
		return
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("esquema actualizado")
}

func closeMigrate(m *migrate.Migrate, log *logger.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil || dbErr != nil {
		log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("cerrar migrate")
	}
}
