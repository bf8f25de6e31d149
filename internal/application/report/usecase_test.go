package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/parts-catalog/internal/application/inventory"
	"github.com/jhoicas/parts-catalog/internal/application/ports"
	"github.com/jhoicas/parts-catalog/internal/application/report"
	"github.com/jhoicas/parts-catalog/internal/domain"
	"github.com/jhoicas/parts-catalog/internal/testsupport"
)

type captureRenderer struct {
	doc ports.ReportDocument
}

func (c *captureRenderer) Render(_ context.Context, doc ports.ReportDocument) ([]byte, error) {
	c.doc = doc
	return []byte("%PDF-fake"), nil
}

func seed(t *testing.T) (*report.UseCase, *captureRenderer) {
	t.Helper()
	ctx := context.Background()
	backend := testsupport.MustOpenBackend(t)
	stock := inventory.NewStockUseCase(backend.Tx)

	adds := []inventory.AddStockInput{
		{Code: "b-200", Description: "Mutter", Shelf: "B", Section: "2", Quantity: decimal.NewFromInt(4)},
		{Code: "A-100", Description: "Schraube mit einer sehr langen Beschreibung für die Liste", Shelf: "B", Section: "1", Quantity: decimal.NewFromInt(10)},
		{Code: "A-100", Shelf: "A", Section: "3", Quantity: decimal.NewFromInt(2)},
		{Code: "C-300-EXTRA-LANGER-CODE-123", Shelf: "A", Section: "1", Quantity: decimal.NewFromInt(1)},
	}
	for _, in := range adds {
		_, err := stock.AddStock(ctx, in)
		require.NoError(t, err)
	}

	renderer := &captureRenderer{}
	return report.NewUseCase(backend.Locations, renderer), renderer
}

func TestExport_PorEstante(t *testing.T) {
	uc, renderer := seed(t)

	out, err := uc.Export(context.Background(), ports.ReportModeByShelf)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out.Content))
	assert.Regexp(t, `^teileliste_regal_\d{8}\.pdf$`, out.Filename)

	doc := renderer.doc
	assert.Equal(t, "Teileliste", doc.Title)
	require.Len(t, doc.Groups, 2)
	assert.Equal(t, "A", doc.Groups[0].Title)
	assert.Equal(t, "B", doc.Groups[1].Title)

	// Estante A: sección 1 antes que 3
	require.Len(t, doc.Groups[0].Rows, 2)
	assert.Equal(t, "C-300-EXTRA-LANGER-CODE-1", doc.Groups[0].Rows[0].Code, "código truncado a 25")
	assert.Equal(t, "-", doc.Groups[0].Rows[0].Description)
	assert.Equal(t, "A-100", doc.Groups[0].Rows[1].Code)

	require.Len(t, doc.Groups[1].Rows, 2)
	assert.Equal(t, "A-100", doc.Groups[1].Rows[0].Code)
	assert.Len(t, []rune(doc.Groups[1].Rows[0].Description), 40)
	assert.Equal(t, "b-200", doc.Groups[1].Rows[1].Code)
	assert.Equal(t, "4", doc.Groups[1].Rows[1].Quantity)
}

func TestExport_Completo(t *testing.T) {
	uc, renderer := seed(t)

	out, err := uc.Export(context.Background(), ports.ReportModeFull)
	require.NoError(t, err)
	assert.Regexp(t, `^inventar_\d{8}\.pdf$`, out.Filename)

	doc := renderer.doc
	assert.Equal(t, "Inventarliste", doc.Title)
	require.Len(t, doc.Groups, 1)
	rows := doc.Groups[0].Rows
	require.Len(t, rows, 4)

	// Orden alfabético sin distinguir mayúsculas, luego estante
	assert.Equal(t, "A-100", rows[0].Code)
	assert.Equal(t, "A", rows[0].Shelf)
	assert.False(t, rows[0].Shaded)
	assert.Equal(t, "A-100", rows[1].Code)
	assert.Equal(t, "B", rows[1].Shelf)
	assert.True(t, rows[1].Shaded, "segunda ubicación de la misma pieza")
	assert.Equal(t, "b-200", rows[2].Code)
	assert.False(t, rows[2].Shaded)
	assert.Equal(t, "C-300-EXTRA-LANGER-C", rows[3].Code, "código truncado a 20")
	assert.Len(t, []rune(rows[1].Description), 35)
}

func TestExport_ModoInvalido(t *testing.T) {
	uc, _ := seed(t)
	_, err := uc.Export(context.Background(), "weekly")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "teileliste_regal_20241201.pdf", report.Filename(ports.ReportModeByShelf, at))
	assert.Equal(t, "inventar_20241201.pdf", report.Filename(ports.ReportModeFull, at))
}
