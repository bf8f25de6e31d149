package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/parts-catalog/internal/domain/entity"
	apphttp "github.com/jhoicas/parts-catalog/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/parts-catalog/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "parts-catalog-test"
	testExpMin    = 60
)

// guardedApp reproduce las políticas de acceso del catálogo con handlers vacíos:
// lecturas públicas, altas/retiros para admin|bodeguero, registro solo admin, /me con cualquier token.
func guardedApp() *fiber.App {
	app := fiber.New()
	authRequired := apphttp.AuthMiddleware(testJWTSecret)
	writers := apphttp.RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
	}

	app.Get("/api/parts", ok)
	app.Post("/api/stock/add", authRequired, writers, ok)
	app.Post("/api/stock/withdraw", authRequired, writers, ok)
	app.Put("/api/parts/:id", authRequired, writers, ok)
	app.Post("/api/auth/register", authRequired, apphttp.RequireRole(entity.RoleAdmin), ok)
	app.Get("/api/auth/me", authRequired, ok)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func call(t *testing.T, app *fiber.App, method, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestPoliticasDeAcceso_PorRolYRuta(t *testing.T) {
	app := guardedApp()
	cases := []struct {
		name   string
		method string
		path   string
		role   string
		want   int
	}{
		{"consulta lee sin token", http.MethodGet, "/api/parts", "", http.StatusOK},
		{"consulta no puede dar de alta stock", http.MethodPost, "/api/stock/add", entity.RoleConsulta, http.StatusForbidden},
		{"consulta no puede retirar", http.MethodPost, "/api/stock/withdraw", entity.RoleConsulta, http.StatusForbidden},
		{"consulta no edita piezas", http.MethodPut, "/api/parts/p1", entity.RoleConsulta, http.StatusForbidden},
		{"bodeguero da de alta stock", http.MethodPost, "/api/stock/add", entity.RoleBodeguero, http.StatusOK},
		{"bodeguero retira", http.MethodPost, "/api/stock/withdraw", entity.RoleBodeguero, http.StatusOK},
		{"bodeguero no registra usuarios", http.MethodPost, "/api/auth/register", entity.RoleBodeguero, http.StatusForbidden},
		{"admin registra usuarios", http.MethodPost, "/api/auth/register", entity.RoleAdmin, http.StatusOK},
		{"admin edita piezas", http.MethodPut, "/api/parts/p1", entity.RoleAdmin, http.StatusOK},
		{"consulta consulta su perfil", http.MethodGet, "/api/auth/me", entity.RoleConsulta, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			header := ""
			if tc.role != "" {
				header = tokenForRole(t, tc.role)
			}
			resp := call(t, app, tc.method, tc.path, header)
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestRequireRole_RolDenegadoDevuelveFORBIDDEN(t *testing.T) {
	resp := call(t, guardedApp(), http.MethodPost, "/api/stock/add", tokenForRole(t, entity.RoleConsulta))
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRolDevuelve401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := call(t, guardedApp(), http.MethodPost, "/api/stock/add", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddleware_TokenAusenteOInvalido(t *testing.T) {
	app := guardedApp()
	for _, header := range []string{"", "Bearer token.invalido.aqui", "Basic abc"} {
		resp := call(t, app, http.MethodPost, "/api/stock/withdraw", header)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestAuthMiddleware_TokenDeOtroSecreto(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", testUserID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := call(t, guardedApp(), http.MethodPost, "/api/stock/add", "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_CargaUsuarioYRolEnLocals(t *testing.T) {
	resp := call(t, guardedApp(), http.MethodGet, "/api/auth/me", tokenForRole(t, entity.RoleBodeguero))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, entity.RoleBodeguero, body["role"])
}
