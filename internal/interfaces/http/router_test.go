package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/parts-catalog/internal/application/auth"
	"github.com/jhoicas/parts-catalog/internal/application/dto"
	"github.com/jhoicas/parts-catalog/internal/application/inventory"
	"github.com/jhoicas/parts-catalog/internal/application/report"
	"github.com/jhoicas/parts-catalog/internal/application/usecase"
	"github.com/jhoicas/parts-catalog/internal/domain/entity"
	"github.com/jhoicas/parts-catalog/internal/infrastructure/ai"
	"github.com/jhoicas/parts-catalog/internal/infrastructure/pdf"
	"github.com/jhoicas/parts-catalog/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/parts-catalog/internal/interfaces/http"
	"github.com/jhoicas/parts-catalog/internal/testsupport"
	"github.com/jhoicas/parts-catalog/pkg/logger"
)

type apiFixture struct {
	app     *fiber.App
	backend *storage.Backend
	authUC  *auth.AuthUseCase
}

// newAPI arma el router completo sobre un store SQLite temporal.
func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	backend := testsupport.MustOpenBackend(t)
	log := logger.Nop()
	authUC := auth.NewAuthUseCase(backend.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		PartUC:     usecase.NewPartUseCase(backend.Parts, backend.Locations, backend.History),
		StockUC:    inventory.NewStockUseCase(backend.Tx),
		ShelfUC:    usecase.NewShelfUseCase(backend.Locations),
		ReportUC:   report.NewUseCase(backend.Locations, pdf.NewMarotoReportRenderer()),
		ClassifyUC: usecase.NewClassifyUseCase(ai.NewHeuristicClassifier(), 30),
		JWTSecret:  testJWTSecret,
		Logger:     log,
	})
	return &apiFixture{app: app, backend: backend, authUC: authUC}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any, authHeader string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAPI_AltaYRetiroDeStock(t *testing.T) {
	f := newAPI(t)
	bodeguero := tokenForRole(t, entity.RoleBodeguero)

	resp := f.do(t, http.MethodPost, "/api/stock/add",
		map[string]any{"code": "P-1", "description": "Hex bolt", "shelf": "A1", "section": "1", "quantity": "5"}, bodeguero)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	added := decode[dto.StockResultResponse](t, resp)
	assert.True(t, added.PartCreated)
	assert.True(t, decimal.NewFromInt(5).Equal(added.Location.Quantity))
	assert.Equal(t, testUserID, added.History.CreatedBy)

	resp = f.do(t, http.MethodPost, "/api/stock/withdraw",
		map[string]any{"location_id": added.Location.ID, "quantity": 20}, bodeguero)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, resp).Code)

	resp = f.do(t, http.MethodPost, "/api/stock/withdraw",
		map[string]any{"location_id": added.Location.ID, "quantity": "5"}, bodeguero)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	withdrawn := decode[dto.StockResultResponse](t, resp)
	assert.True(t, withdrawn.Location.Quantity.IsZero())

	resp = f.do(t, http.MethodGet, "/api/parts/"+added.Part.ID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode[dto.PartDetailResponse](t, resp)
	assert.Len(t, detail.Locations, 1, "la ubicación en cero se conserva")

	resp = f.do(t, http.MethodGet, "/api/parts/"+added.Part.ID+"/history", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	history := decode[dto.HistoryListResponse](t, resp)
	require.Len(t, history.Items, 2)
	assert.Equal(t, entity.HistoryActionWithdraw, history.Items[0].Action)
}

func TestAPI_MutacionesRequierenRol(t *testing.T) {
	f := newAPI(t)
	body := map[string]any{"code": "P-1", "shelf": "A1", "quantity": 1}

	resp := f.do(t, http.MethodPost, "/api/stock/add", body, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/stock/add", body, tokenForRole(t, entity.RoleConsulta))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodPut, "/api/parts/x", map[string]any{"description": "y"}, tokenForRole(t, entity.RoleConsulta))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_Validaciones(t *testing.T) {
	f := newAPI(t)
	admin := tokenForRole(t, entity.RoleAdmin)

	resp := f.do(t, http.MethodPost, "/api/stock/add", map[string]any{"code": "P-1", "shelf": "A1", "quantity": 0}, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = f.do(t, http.MethodGet, "/api/parts/no-existe", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	resp = f.do(t, http.MethodGet, "/api/parts/check-code", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/shelves/Z9", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ConsultasPublicas(t *testing.T) {
	f := newAPI(t)
	ctx := context.Background()
	stock := inventory.NewStockUseCase(f.backend.Tx)
	_, err := stock.AddStock(ctx, inventory.AddStockInput{Code: "P-1", Description: "Hex bolt", Shelf: "A1", Quantity: decimal.NewFromInt(3)})
	require.NoError(t, err)
	_, err = stock.AddStock(ctx, inventory.AddStockInput{Code: "Q-2", Description: "Washer", Shelf: "B", Quantity: decimal.NewFromInt(1)})
	require.NoError(t, err)

	resp := f.do(t, http.MethodGet, "/api/parts/check-code?code=p-1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.CheckCodeResponse](t, resp).Exists)

	resp = f.do(t, http.MethodGet, "/api/parts?q=wash", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.PartListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Q-2", list.Items[0].Code)

	resp = f.do(t, http.MethodGet, "/api/shelves", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ShelfSummaryResponse](t, resp), 2)

	resp = f.do(t, http.MethodGet, "/api/shelves/A1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.ShelfViewResponse](t, resp).Items, 1)
}

func TestAPI_ReportePDF(t *testing.T) {
	f := newAPI(t)
	_, err := inventory.NewStockUseCase(f.backend.Tx).AddStock(context.Background(),
		inventory.AddStockInput{Code: "P-1", Shelf: "A1", Quantity: decimal.NewFromInt(2)})
	require.NoError(t, err)

	for path, prefix := range map[string]string{
		"/api/reports/full":     "inventar_",
		"/api/reports/by-shelf": "teileliste_regal_",
	} {
		resp := f.do(t, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), prefix)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(body, []byte("%PDF")), path)
	}
}

func TestAPI_ClasificarOCR(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/ocr/classify", map[string]any{
		"fragments": []map[string]any{
			{"text": "P-1234", "confidence": 90},
			{"text": "Stainless steel bolt", "confidence": 80},
			{"text": "ruido", "confidence": 5},
		},
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ClassifyResponse](t, resp)
	require.Len(t, out.Codes, 1)
	assert.Equal(t, "P-1234", out.Codes[0].Text)
	require.Len(t, out.Descriptions, 1)
}

func TestAPI_LoginYRegistroPorAdmin(t *testing.T) {
	f := newAPI(t)
	_, err := f.authUC.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "admin@taller.de", Password: "admin-clave", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	resp := f.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@taller.de", "password": "mala-clave"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@taller.de", "password": "admin-clave"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)

	resp = f.do(t, http.MethodGet, "/api/auth/me", nil, "Bearer "+login.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin@taller.de", decode[dto.UserResponse](t, resp).Email)

	newUser := map[string]string{"email": "lager@taller.de", "password": "lager-clave", "role": entity.RoleBodeguero}
	resp = f.do(t, http.MethodPost, "/api/auth/register", newUser, tokenForRole(t, entity.RoleBodeguero))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/auth/register", newUser, "Bearer "+login.Token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, entity.RoleBodeguero, decode[dto.UserResponse](t, resp).Role)

	resp = f.do(t, http.MethodPost, "/api/auth/register", newUser, "Bearer "+login.Token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
