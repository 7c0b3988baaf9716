// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/kinitros/viralizei-plataforma/app/dto"
	"github.com/kinitros/viralizei-plataforma/app/services"
)

// AdminAuthMiddleware guards admin endpoints with the shared admin secret or
// an admin session JWT.
type AdminAuthMiddleware struct {
	password     string
	tokenService services.TokenService
}

// NewAdminAuthMiddleware creates the middleware. tokenService may be nil when
// JWT login is not configured; the shared secret paths still work.
func NewAdminAuthMiddleware(password string, tokenService services.TokenService) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{password: password, tokenService: tokenService}
}

// Authenticate accepts, in order, a Bearer admin JWT, the X-Admin-Password
// header, a "password" field in a JSON body, or a "password" query parameter.
func (m *AdminAuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m.password == "" {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
				Success: false,
				Message: "Senha admin não configurada",
				Error:   dto.ErrorDetail{Code: "ADMIN_PASSWORD_NOT_CONFIGURED"},
			})
		}

		if m.bearerAuthorized(c.Get("Authorization")) {
			return c.Next()
		}
		if provided, ok := m.providedSecret(c); ok && m.secretMatches(provided) {
			return c.Next()
		}

		return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
			Success: false,
			Message: "Não autorizado",
			Error:   dto.ErrorDetail{Code: "UNAUTHORIZED"},
		})
	}
}

func (m *AdminAuthMiddleware) bearerAuthorized(authHeader string) bool {
	if m.tokenService == nil || !strings.HasPrefix(authHeader, "Bearer ") {
		return false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return false
	}
	_, err := m.tokenService.ValidateAdminToken(token)
	return err == nil
}

// providedSecret pulls the candidate secret from header, JSON body or query,
// in that order.
func (m *AdminAuthMiddleware) providedSecret(c fiber.Ctx) (string, bool) {
	if h := c.Get("X-Admin-Password"); h != "" {
		return h, true
	}
	if strings.Contains(c.Get("Content-Type"), "application/json") {
		var body struct {
			Password string `json:"password"`
		}
		if err := json.Unmarshal(c.Body(), &body); err == nil && body.Password != "" {
			return body.Password, true
		}
	}
	if q := c.Query("password"); q != "" {
		return q, true
	}
	return "", false
}

// secretMatches compares against the configured secret, bcrypt when the
// stored value is a bcrypt hash, constant-time equality otherwise.
func (m *AdminAuthMiddleware) secretMatches(provided string) bool {
	if strings.HasPrefix(m.password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(m.password), []byte(provided)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(m.password), []byte(provided)) == 1
}
