package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kinitros/viralizei-plataforma/app/services"
)

func newGuardedApp(t *testing.T, password string, tokenService services.TokenService) *fiber.App {
	t.Helper()
	app := fiber.New()
	guard := NewAdminAuthMiddleware(password, tokenService)
	admin := app.Group("/admin", guard.Authenticate())
	admin.Get("/ping", func(c fiber.Ctx) error {
		return c.SendString("pong")
	})
	admin.Post("/ping", func(c fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestAdminAuthUnconfiguredSecret(t *testing.T) {
	app := newGuardedApp(t, "", nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestAdminAuthRejectsMissingSecret(t *testing.T) {
	app := newGuardedApp(t, "s3cret", nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuthHeaderSecret(t *testing.T) {
	app := newGuardedApp(t, "s3cret", nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("X-Admin-Password", "s3cret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("X-Admin-Password", "wrong")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuthQuerySecret(t *testing.T) {
	app := newGuardedApp(t, "s3cret", nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/ping?password=s3cret", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminAuthBodySecret(t *testing.T) {
	app := newGuardedApp(t, "s3cret", nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/ping", bytes.NewReader([]byte(`{"password":"s3cret"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminAuthBcryptSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	app := newGuardedApp(t, string(hash), nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("X-Admin-Password", "s3cret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("X-Admin-Password", "wrong")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuthBearerToken(t *testing.T) {
	tokenService, err := services.NewTokenService(time.Hour, "i", "a", "test-secret-key")
	require.NoError(t, err)
	app := newGuardedApp(t, "s3cret", tokenService)

	token, err := tokenService.GenerateAdminToken("admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
