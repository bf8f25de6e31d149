// Package storage selecciona el Catalog Store según DB_DRIVER y entrega los repositorios listos.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/parts-catalog/internal/application/inventory"
	"github.com/jhoicas/parts-catalog/internal/domain/repository"
	"github.com/jhoicas/parts-catalog/internal/infrastructure/migrations"
	"github.com/jhoicas/parts-catalog/internal/infrastructure/postgres"
	"github.com/jhoicas/parts-catalog/internal/infrastructure/sqlite"
	"github.com/jhoicas/parts-catalog/pkg/config"
	"github.com/jhoicas/parts-catalog/pkg/logger"
)

// Backend repositorios fuera de transacción + runner transaccional sobre el mismo store.
type Backend struct {
	Driver    string
	Parts     repository.PartRepository
	Locations repository.LocationRepository
	History   repository.HistoryRepository
	Users     repository.UserRepository
	Tx        inventory.TxRunner

	closeFn func() error
}

// Close libera el pool o la conexión.
func (b *Backend) Close() error {
	if b == nil || b.closeFn == nil {
		return nil
	}
	return b.closeFn()
}

// Open aplica migraciones si DB_AUTO_MIGRATE está activo y abre el store configurado.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Backend, error) {
	if cfg.AutoMigrate {
		if err := migrations.Up(cfg, log); err != nil {
			return nil, err
		}
	}

	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Driver:    cfg.Driver,
			Parts:     postgres.NewPartRepository(pool),
			Locations: postgres.NewLocationRepository(pool),
			History:   postgres.NewHistoryRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			closeFn: func() error {
				pool.Close()
				return nil
			},
		}, nil
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return FromSQLite(store), nil
	default:
		return nil, fmt.Errorf("storage: driver no soportado %q", cfg.Driver)
	}
}

// FromSQLite arma el Backend sobre un store SQLite ya abierto (CLI y tests).
func FromSQLite(store *sqlite.Store) *Backend {
	return &Backend{
		Driver:    config.DriverSQLite,
		Parts:     store.Parts(),
		Locations: store.Locations(),
		History:   store.History(),
		Users:     store.Users(),
		Tx:        store.TxRunner(),
		closeFn:   store.Close,
	}
}
