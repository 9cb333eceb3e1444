package http_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikarpharma/suivi-stock/internal/application/dto"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	httpapi "github.com/bikarpharma/suivi-stock/internal/interfaces/http"
	"github.com/bikarpharma/suivi-stock/pkg/jwt"
)

const testSecret = "secret-de-test-suffisamment-long"

// buildTestApp monte une route de lecture (authentification seule) et
// une route de mutation réservée aux rôles ADMIN et OPERATEUR.
func buildTestApp() *fiber.App {
	app := fiber.New()
	authenticated := app.Group("", httpapi.AuthMiddleware(testSecret))
	authenticated.Get("/lecture", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": httpapi.GetUserID(c),
			"role":    httpapi.GetRole(c),
		})
	})
	authenticated.Post("/mutation",
		httpapi.RequireRole(entity.RoleAdmin, entity.RoleOperateur),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusNoContent)
		})
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "user-1", role, "suivi-stock", 30)
	require.NoError(t, err)
	return token
}

func errorCode(t *testing.T, body io.Reader) string {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Code
}

func TestAuthMiddleware_SansEnTete(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(fiber.MethodGet, "/lecture", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp.Body))
}

func TestAuthMiddleware_TokenInvalide(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(fiber.MethodGet, "/lecture", nil)
	req.Header.Set("Authorization", "Bearer pas.un.jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp.Body))
}

func TestAuthMiddleware_FormatSansBearer(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(fiber.MethodGet, "/lecture", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Le middleware pose UserID et Role dans le contexte.
func TestAuthMiddleware_ExtractionDesClaims(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(fiber.MethodGet, "/lecture", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, entity.RoleLecteur))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user-1", body["user_id"])
	assert.Equal(t, entity.RoleLecteur, body["role"])
}

func TestRequireRole_RolesAutorises(t *testing.T) {
	app := buildTestApp()

	for _, role := range []string{entity.RoleAdmin, entity.RoleOperateur} {
		req := httptest.NewRequest(fiber.MethodPost, "/mutation", nil)
		req.Header.Set("Authorization", "Bearer "+tokenForRole(t, role))
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode, "le rôle %s doit passer", role)
	}
}

// Un LECTEUR accède aux lectures mais pas aux mutations.
func TestRequireRole_LecteurBloque(t *testing.T) {
	app := buildTestApp()
	token := tokenForRole(t, entity.RoleLecteur)

	req := httptest.NewRequest(fiber.MethodGet, "/lecture", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodPost, "/mutation", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp.Body))
}

// Un token valide mais sans claim de rôle est refusé en 401, pas 403.
func TestRequireRole_TokenSansRole(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(fiber.MethodPost, "/mutation", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, ""))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", errorCode(t, resp.Body))
}

func TestAuthMiddleware_TokenExpire(t *testing.T) {
	app := buildTestApp()

	expired, err := jwt.Generate(testSecret, "user-1", entity.RoleAdmin, "suivi-stock", -5)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/lecture", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp.Body))
}
