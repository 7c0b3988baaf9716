package handlers

import (
	"crypto/subtle"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/kinitros/viralizei-plataforma/app/dto"
	"github.com/kinitros/viralizei-plataforma/app/services"
)

// AuthAdminHandlerInterface defines the admin login endpoint
type AuthAdminHandlerInterface interface {
	Login(c fiber.Ctx) error
}

type AuthAdminHandler struct {
	password     string
	tokenService services.TokenService
	tokenTTL     time.Duration
	validator    *validator.Validate
}

func NewAuthAdminHandler(password string, tokenService services.TokenService, tokenTTL time.Duration) AuthAdminHandlerInterface {
	return &AuthAdminHandler{
		password:     password,
		tokenService: tokenService,
		tokenTTL:     tokenTTL,
		validator:    validator.New(),
	}
}

// Login exchanges the shared admin secret for a session JWT
// @Summary Admin Login
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AdminLoginResponse}
// @Failure 401 {object} dto.APIResponse
// @Router /api/auth/admin/login [post]
func (h *AuthAdminHandler) Login(c fiber.Ctx) error {
	if h.password == "" || h.tokenService == nil {
		return errorResponse(c, fiber.StatusInternalServerError, "Senha admin não configurada", "ADMIN_PASSWORD_NOT_CONFIGURED", nil)
	}

	var req dto.AdminLoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Corpo da requisição inválido", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validação falhou", "VALIDATION_ERROR", validationDetails(err))
	}

	if !h.passwordMatches(req.Password) {
		return errorResponse(c, fiber.StatusUnauthorized, "Não autorizado", "UNAUTHORIZED", nil)
	}

	token, err := h.tokenService.GenerateAdminToken("admin")
	if err != nil {
		log.Println("Admin token generation failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "TOKEN_GENERATION_FAILED", nil)
	}
	return c.JSON(dto.APIResponse{Success: true, Message: "Login realizado", Data: dto.AdminLoginResponse{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(h.tokenTTL).Format(time.RFC3339),
	}})
}

func (h *AuthAdminHandler) passwordMatches(provided string) bool {
	if strings.HasPrefix(h.password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(h.password), []byte(provided)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(h.password), []byte(provided)) == 1
}
