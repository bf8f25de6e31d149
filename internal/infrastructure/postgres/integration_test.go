//go:build integration

// Tests contra un PostgreSQL real: go test -tags integration ./internal/infrastructure/postgres/...
// con DATABASE_URL apuntando a una base desechable (las tablas se vacían en cada test).
package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/parts-catalog/internal/application/inventory"
	"github.com/jhoicas/parts-catalog/internal/domain"
	"github.com/jhoicas/parts-catalog/internal/infrastructure/migrations"
	"github.com/jhoicas/parts-catalog/internal/infrastructure/postgres"
	"github.com/jhoicas/parts-catalog/pkg/config"
	"github.com/jhoicas/parts-catalog/pkg/logger"
)

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mustPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx := context.Background()
	cfg := config.DBConfig{Driver: config.DriverPostgres, DatabaseURL: url}
	require.NoError(t, migrations.Up(cfg, logger.Nop()))

	pool, err := postgres.NewPool(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE history_entries, locations, parts, users CASCADE`)
	require.NoError(t, err)
	return pool
}

func TestPostgres_AltaFusionaUbicacionYRegistraHistorial(t *testing.T) {
	ctx := context.Background()
	pool := mustPool(t)
	uc := inventory.NewStockUseCase(postgres.NewTxRunner(pool))

	first, err := uc.AddStock(ctx, inventory.AddStockInput{Code: "P-1", Description: "Schraube", Shelf: "A1", Section: "1", Quantity: qty("5")})
	require.NoError(t, err)
	assert.True(t, first.PartCreated)

	second, err := uc.AddStock(ctx, inventory.AddStockInput{Code: " p-1 ", Shelf: "A1", Section: "1", Quantity: qty("2.5")})
	require.NoError(t, err)
	assert.False(t, second.PartCreated)
	assert.Equal(t, first.Location.ID, second.Location.ID)
	assert.True(t, qty("7.5").Equal(second.Location.Quantity))
	assert.True(t, qty("5").Equal(second.Entry.QuantityBefore))

	entries, err := postgres.NewHistoryRepository(pool).ListByPart(ctx, first.Part.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.Entry.ID, entries[0].ID, "más reciente primero")
	for _, e := range entries {
		assert.True(t, e.QuantityAfter.Sub(e.QuantityBefore).Equal(e.Change()))
	}
}

func TestPostgres_RetiroInsuficienteNoModificaNada(t *testing.T) {
	ctx := context.Background()
	pool := mustPool(t)
	uc := inventory.NewStockUseCase(postgres.NewTxRunner(pool))

	res, err := uc.AddStock(ctx, inventory.AddStockInput{Code: "W-1", Shelf: "B", Quantity: qty("3")})
	require.NoError(t, err)

	_, err = uc.WithdrawStock(ctx, inventory.WithdrawInput{LocationID: res.Location.ID, Quantity: qty("4")})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	out, err := uc.WithdrawStock(ctx, inventory.WithdrawInput{LocationID: res.Location.ID, Quantity: qty("3")})
	require.NoError(t, err)
	assert.True(t, out.Location.Quantity.IsZero())

	loc, err := postgres.NewLocationRepository(pool).GetByID(ctx, res.Location.ID)
	require.NoError(t, err)
	require.NotNil(t, loc, "la ubicación en cero se conserva")
	assert.True(t, loc.Quantity.IsZero())
}

func TestPostgres_RetirosConcurrentesNoDejanStockNegativo(t *testing.T) {
	ctx := context.Background()
	pool := mustPool(t)
	uc := inventory.NewStockUseCase(postgres.NewTxRunner(pool))

	res, err := uc.AddStock(ctx, inventory.AddStockInput{Code: "C-1", Shelf: "C", Quantity: qty("10")})
	require.NoError(t, err)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.WithdrawStock(ctx, inventory.WithdrawInput{LocationID: res.Location.ID, Quantity: qty("1")}); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	loc, err := postgres.NewLocationRepository(pool).GetByID(ctx, res.Location.ID)
	require.NoError(t, err)
	assert.True(t, loc.Quantity.IsZero())
}

func TestPostgres_AltasConcurrentesMismoCodigoCreanUnaPieza(t *testing.T) {
	ctx := context.Background()
	pool := mustPool(t)
	uc := inventory.NewStockUseCase(postgres.NewTxRunner(pool))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.AddStock(ctx, inventory.AddStockInput{Code: "N-1", Shelf: "D", Quantity: qty("1")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	parts, err := postgres.NewPartRepository(pool).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	locs, err := postgres.NewLocationRepository(pool).ListByPart(ctx, parts[0].ID)
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.True(t, qty("8").Equal(locs[0].Quantity))
}

func TestPostgres_StockAcumuladoFueraDeRango(t *testing.T) {
	ctx := context.Background()
	pool := mustPool(t)
	uc := inventory.NewStockUseCase(postgres.NewTxRunner(pool))

	_, err := uc.AddStock(ctx, inventory.AddStockInput{Code: "BIG", Shelf: "E", Quantity: qty("90000000000000")})
	require.NoError(t, err)

	_, err = uc.AddStock(ctx, inventory.AddStockInput{Code: "BIG", Shelf: "E", Quantity: qty("10000000000000")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPostgres_SearchCodigoConUmlauts(t *testing.T) {
	ctx := context.Background()
	pool := mustPool(t)
	uc := inventory.NewStockUseCase(postgres.NewTxRunner(pool))

	_, err := uc.AddStock(ctx, inventory.AddStockInput{Code: "ÖL-FILTER-7", Shelf: "F", Quantity: qty("1")})
	require.NoError(t, err)

	repo := postgres.NewPartRepository(pool)
	for _, q := range []string{"öl-filter", "ÖL", "100%"} {
		got, err := repo.Search(ctx, q, 10, 0)
		require.NoError(t, err)
		if q == "100%" {
			assert.Empty(t, got)
			continue
		}
		assert.Len(t, got, 1, "búsqueda %q", q)
	}
}
