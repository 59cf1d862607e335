package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	apphttp "github.com/jhoicas/temucosoft-retail/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/temucosoft-retail/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "temucosoft-retail-test"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
)

// fakeResolver principales por user id; ausente devuelve ErrUnauthorized.
type fakeResolver map[string]access.Principal

func (f fakeResolver) Resolve(_ context.Context, userID string) (access.Principal, error) {
	p, ok := f[userID]
	if !ok {
		return access.Principal{}, domain.ErrUnauthorized
	}
	return p, nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - LoadPrincipal si resolver no es nil
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(resolver apphttp.PrincipalResolver, allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	handlers := []fiber.Handler{apphttp.AuthMiddleware(testJWTSecret, testIssuer)}
	if resolver != nil {
		handlers = append(handlers, apphttp.LoadPrincipal(resolver))
	}
	handlers = append(handlers,
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"role":    apphttp.GetRole(c),
				"company": apphttp.GetCompanyID(c),
			})
		},
	)
	app.Get("/protected", handlers...)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, _, err := pkgjwt.Generate(testJWTSecret, testIssuer, time.Hour, pkgjwt.Identity{
		UserID: testUserID, CompanyID: testCompanyID, Role: role,
	})
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil), "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_FirmaDeOtroSecreto_Retorna401(t *testing.T) {
	tok, _, err := pkgjwt.Generate("otro-secreto", testIssuer, time.Hour, pkgjwt.Identity{UserID: testUserID, Role: "admin_cliente"})
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(nil), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testJWTSecret, testIssuer, -time.Minute, pkgjwt.Identity{UserID: testUserID, Role: "admin_cliente"})
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(nil), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// El usuario tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil, "admin_cliente"), tokenForRole(t, "admin_cliente"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin_cliente", body["role"])
}

// Uno de varios roles permitidos → HTTP 200.
func TestRequireRole_GerenteAccedeRutaAdminOGerente(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil, "admin_cliente", "gerente"), tokenForRole(t, "gerente"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Rol distinto al requerido → HTTP 403 Forbidden.
func TestRequireRole_VendedorBloqueadoEnRutaAdmin(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil, "admin_cliente"), tokenForRole(t, "vendedor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

// Token sin claim de rol → HTTP 401 MISSING_ROLE.
func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil, "admin_cliente"), tokenForRole(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// LoadPrincipal
// ──────────────────────────────────────────────────────────────────────────────

// El rol vigente en el repositorio manda sobre el del token.
func TestLoadPrincipal_RolDelRepositorioPrevaleceSobreElToken(t *testing.T) {
	resolver := fakeResolver{testUserID: {UserID: testUserID, CompanyID: testCompanyID, Role: entity.RoleSeller, Active: true}}
	resp := doRequest(t, buildTestApp(resolver, "admin_cliente"), tokenForRole(t, "admin_cliente"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLoadPrincipal_UsuarioInactivo_Retorna403(t *testing.T) {
	resolver := fakeResolver{testUserID: {UserID: testUserID, CompanyID: testCompanyID, Role: entity.RoleAdminClient, Active: false}}
	resp := doRequest(t, buildTestApp(resolver), tokenForRole(t, "admin_cliente"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "USER_INACTIVE")
}

func TestLoadPrincipal_UsuarioEliminado_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(fakeResolver{}), tokenForRole(t, "admin_cliente"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "UNAUTHORIZED")
}

func TestLoadPrincipal_CargaEmpresaDelRepositorio(t *testing.T) {
	resolver := fakeResolver{testUserID: {UserID: testUserID, CompanyID: "empresa-real", Role: entity.RoleManager, Active: true}}
	resp := doRequest(t, buildTestApp(resolver, "gerente"), tokenForRole(t, "admin_cliente"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "empresa-real", body["company"])
	assert.Equal(t, "gerente", body["role"])
}
