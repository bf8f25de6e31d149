package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/parts-catalog/internal/application/dto"
	"github.com/jhoicas/parts-catalog/internal/application/inventory"
	"github.com/jhoicas/parts-catalog/internal/application/ports"
	"github.com/jhoicas/parts-catalog/internal/application/usecase"
	"github.com/jhoicas/parts-catalog/internal/domain"
	"github.com/jhoicas/parts-catalog/internal/infrastructure/ai"
	"github.com/jhoicas/parts-catalog/internal/infrastructure/storage"
	"github.com/jhoicas/parts-catalog/internal/testsupport"
)

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

// seed carga dos piezas: P-1 en A1/1 (5) y A2 (2), Q-2 en A1/2 (7).
func seed(t *testing.T) (*storage.Backend, map[string]string) {
	t.Helper()
	ctx := context.Background()
	backend := testsupport.MustOpenBackend(t)
	stock := inventory.NewStockUseCase(backend.Tx)
	ids := map[string]string{}
	for _, in := range []inventory.AddStockInput{
		{Code: "P-1", Description: "Hex bolt", Shelf: "A1", Section: "1", Quantity: qty("5")},
		{Code: "P-1", Shelf: "A2", Quantity: qty("2")},
		{Code: "Q-2", Description: "Washer 8mm", Shelf: "A1", Section: "2", Quantity: qty("7")},
	} {
		res, err := stock.AddStock(ctx, in)
		require.NoError(t, err)
		ids[res.Part.Code] = res.Part.ID
	}
	return backend, ids
}

func newPartUC(b *storage.Backend) *usecase.PartUseCase {
	return usecase.NewPartUseCase(b.Parts, b.Locations, b.History)
}

func TestPartUseCase_GetDetailSumaUbicaciones(t *testing.T) {
	backend, ids := seed(t)
	detail, err := newPartUC(backend).GetDetail(context.Background(), ids["P-1"])
	require.NoError(t, err)

	assert.Equal(t, "P-1", detail.Part.Code)
	assert.Len(t, detail.Locations, 2)
	assert.True(t, qty("7").Equal(detail.TotalQuantity))
}

func TestPartUseCase_GetDetailInexistente(t *testing.T) {
	backend, _ := seed(t)
	_, err := newPartUC(backend).GetDetail(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPartUseCase_CheckCode(t *testing.T) {
	backend, ids := seed(t)
	uc := newPartUC(backend)
	ctx := context.Background()

	res, err := uc.CheckCode(ctx, "  p-1 ")
	require.NoError(t, err)
	assert.True(t, res.Exists)
	require.NotNil(t, res.Part)
	assert.Equal(t, ids["P-1"], res.Part.ID)

	res, err = uc.CheckCode(ctx, "Z-9")
	require.NoError(t, err)
	assert.False(t, res.Exists)
	assert.Nil(t, res.Part)

	_, err = uc.CheckCode(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPartUseCase_Search(t *testing.T) {
	backend, _ := seed(t)
	uc := newPartUC(backend)
	ctx := context.Background()

	res, err := uc.Search(ctx, "washer", 0, 0)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Q-2", res.Items[0].Code)
	assert.Equal(t, 20, res.Page.Limit, "límite por defecto")

	res, err = uc.Search(ctx, "", 500, 0)
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 100, res.Page.Limit, "límite máximo")

	res, err = uc.Search(ctx, "100%", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, res.Items, "los comodines se buscan literalmente")
}

func TestPartUseCase_SearchConUmlauts(t *testing.T) {
	ctx := context.Background()
	backend := testsupport.MustOpenBackend(t)
	stock := inventory.NewStockUseCase(backend.Tx)
	for _, in := range []inventory.AddStockInput{
		{Code: "ÖL-FILTER-7", Description: "Ölfilter Größe M", Shelf: "C", Quantity: qty("3")},
		{Code: "öl-filter-7", Shelf: "C", Quantity: qty("1")},
		{Code: "LUFT-2", Description: "Luftfilter", Shelf: "C", Quantity: qty("1")},
	} {
		_, err := stock.AddStock(ctx, in)
		require.NoError(t, err)
	}
	uc := newPartUC(backend)

	for _, q := range []string{"ÖL", "öl", "ölfilter", "GRÖSSE", "größe", "öl-filter"} {
		res, err := uc.Search(ctx, q, 10, 0)
		require.NoError(t, err)
		require.Len(t, res.Items, 1, "búsqueda %q", q)
		assert.Equal(t, "ÖL-FILTER-7", res.Items[0].Code)
	}

	res, err := uc.Search(ctx, "FILTER", 10, 0)
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
}

func TestPartUseCase_UpdateCodigoDuplicado(t *testing.T) {
	backend, ids := seed(t)
	_, err := newPartUC(backend).Update(context.Background(), ids["Q-2"], dto.UpdatePartRequest{Code: strPtr("p-1")})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPartUseCase_UpdateCambiaDatos(t *testing.T) {
	backend, ids := seed(t)
	uc := newPartUC(backend)
	ctx := context.Background()

	res, err := uc.Update(ctx, ids["Q-2"], dto.UpdatePartRequest{Code: strPtr(" Q-2b "), Description: strPtr(" Scheibe ")})
	require.NoError(t, err)
	assert.Equal(t, "Q-2b", res.Code)
	assert.Equal(t, "Scheibe", res.Description)

	check, err := uc.CheckCode(ctx, "q-2b")
	require.NoError(t, err)
	assert.True(t, check.Exists)

	// Cambiar solo mayúsculas del propio código no es conflicto
	_, err = uc.Update(ctx, ids["Q-2"], dto.UpdatePartRequest{Code: strPtr("q-2B")})
	assert.NoError(t, err)

	_, err = uc.Update(ctx, ids["Q-2"], dto.UpdatePartRequest{Code: strPtr(" ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPartUseCase_History(t *testing.T) {
	backend, ids := seed(t)
	uc := newPartUC(backend)
	ctx := context.Background()

	res, err := uc.History(ctx, ids["P-1"], 0, 0)
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 50, res.Page.Limit)
	assert.Equal(t, "A2", res.Items[0].Shelf, "más reciente primero")
	assert.True(t, qty("2").Equal(res.Items[0].Change))

	_, err = uc.History(ctx, "no-existe", 10, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShelfUseCase_Summary(t *testing.T) {
	backend, _ := seed(t)
	list, err := usecase.NewShelfUseCase(backend.Locations).Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, dto.ShelfSummaryResponse{Shelf: "A1", PartCount: 2, LocationCount: 2}, list[0])
	assert.Equal(t, dto.ShelfSummaryResponse{Shelf: "A2", PartCount: 1, LocationCount: 1}, list[1])
}

func TestShelfUseCase_View(t *testing.T) {
	backend, _ := seed(t)
	uc := usecase.NewShelfUseCase(backend.Locations)
	ctx := context.Background()

	view, err := uc.View(ctx, " A1 ")
	require.NoError(t, err)
	assert.Equal(t, "A1", view.Shelf)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "P-1", view.Items[0].Code)
	assert.Equal(t, "1", view.Items[0].Section)
	assert.Equal(t, "Q-2", view.Items[1].Code)

	_, err = uc.View(ctx, "Z")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.View(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClassifyUseCase_FiltraYOrdena(t *testing.T) {
	uc := usecase.NewClassifyUseCase(ai.NewHeuristicClassifier(), 30)
	res, err := uc.Categorize(context.Background(), dto.ClassifyRequest{Fragments: []dto.OCRFragment{
		{Text: "Stainless steel bolt", Confidence: 70},
		{Text: "  P-1234 ", Confidence: 60},
		{Text: "Hex bolt for the frame", Confidence: 95},
		{Text: "4711", Confidence: 10},
		{Text: "   ", Confidence: 99},
		{Text: "M8", Confidence: 90},
	}})
	require.NoError(t, err)

	require.Len(t, res.Codes, 2)
	// Ambos saturan en 100: desempata la confianza OCR
	assert.Equal(t, "M8", res.Codes[0].Text)
	assert.Equal(t, "P-1234", res.Codes[1].Text)
	assert.Equal(t, 100.0, res.Codes[1].CodeScore)

	require.Len(t, res.Descriptions, 2)
	assert.Equal(t, "Hex bolt for the frame", res.Descriptions[0].Text, "mayor confianza primero")
	assert.Equal(t, "Stainless steel bolt", res.Descriptions[1].Text)
}

func TestClassifyUseCase_SinFragmentosValidos(t *testing.T) {
	uc := usecase.NewClassifyUseCase(errClassifier{}, 50)
	res, err := uc.Categorize(context.Background(), dto.ClassifyRequest{Fragments: []dto.OCRFragment{{Text: "P-1", Confidence: 10}}})
	require.NoError(t, err, "sin fragmentos no se llama al clasificador")
	assert.NotNil(t, res.Codes)
	assert.NotNil(t, res.Descriptions)
	assert.Empty(t, res.Codes)
}

func TestClassifyUseCase_ErrorDelClasificador(t *testing.T) {
	uc := usecase.NewClassifyUseCase(errClassifier{}, 0)
	_, err := uc.Categorize(context.Background(), dto.ClassifyRequest{Fragments: []dto.OCRFragment{{Text: "P-1", Confidence: 80}}})
	assert.Error(t, err)
}

type errClassifier struct{}

func (errClassifier) Classify(context.Context, []ports.TextFragment) ([]ports.ClassifiedFragment, error) {
	return nil, errors.New("falló")
}
