package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/parts-catalog/internal/application/inventory"
	"github.com/jhoicas/parts-catalog/internal/infrastructure/sqlite"
	"github.com/jhoicas/parts-catalog/internal/infrastructure/storage"
)

// runCLI ejecuta el comando raíz con args y devuelve la salida estándar.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setupCLI(t *testing.T) string {
	t.Helper()
	t.Setenv("APP_ENV", "development")
	t.Setenv("CLASSIFIER_PROVIDER", "heuristic")
	return filepath.Join(t.TempDir(), "catalog.db")
}

func seedStock(t *testing.T, dbPath string) {
	t.Helper()
	ctx := context.Background()
	store, err := sqlite.Open(ctx, dbPath)
	require.NoError(t, err)
	defer store.Close()
	uc := inventory.NewStockUseCase(storage.FromSQLite(store).Tx)
	_, err = uc.AddStock(ctx, inventory.AddStockInput{Code: "P-1", Description: "Hex bolt", Shelf: "A1", Section: "2", Quantity: decimal.NewFromInt(4)})
	require.NoError(t, err)
}

func TestCLI_MigrateYUserCreate(t *testing.T) {
	db := setupCLI(t)

	out, err := runCLI(t, "", "migrate", "up", "--sqlite", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Migraciones aplicadas")

	out, err = runCLI(t, "", "user", "create", "--sqlite", db,
		"--email", "admin@taller.de", "--password", "admin-clave", "--role", "admin")
	require.NoError(t, err)
	assert.Contains(t, out, "admin@taller.de")
	assert.Contains(t, out, "rol admin")

	_, err = runCLI(t, "", "user", "create", "--sqlite", db, "--email", "admin@taller.de", "--password", "admin-clave")
	assert.Error(t, err, "email duplicado")
}

func TestCLI_ShelvesYExport(t *testing.T) {
	db := setupCLI(t)
	_, err := runCLI(t, "", "migrate", "up", "--sqlite", db)
	require.NoError(t, err)
	seedStock(t, db)

	out, err := runCLI(t, "", "shelves", "--sqlite", db)
	require.NoError(t, err)
	assert.Contains(t, out, "A1")

	out, err = runCLI(t, "", "shelves", "A1", "--sqlite", db)
	require.NoError(t, err)
	assert.Contains(t, out, "P-1")
	assert.Contains(t, out, "Hex bolt")

	pdfPath := filepath.Join(t.TempDir(), "lista.pdf")
	out, err = runCLI(t, "", "export", "--mode", "full", "--out", pdfPath, "--sqlite", db)
	require.NoError(t, err)
	assert.Contains(t, out, pdfPath)
	content, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))

	_, err = runCLI(t, "", "export", "--mode", "otro", "--out", pdfPath, "--sqlite", db)
	assert.Error(t, err)
}

func TestCLI_Classify(t *testing.T) {
	db := setupCLI(t)
	in := `{"fragments":[{"text":"P-1234","confidence":90},{"text":"Stainless steel bolt","confidence":80}]}`

	out, err := runCLI(t, in, "classify", "--sqlite", db)
	require.NoError(t, err)
	assert.Contains(t, out, "P-1234")
	assert.Contains(t, out, "code")
	assert.Contains(t, out, "description")
}
