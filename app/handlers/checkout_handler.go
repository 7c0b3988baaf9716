package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/kinitros/viralizei-plataforma/app/dto"
	"github.com/kinitros/viralizei-plataforma/app/middleware"
	businessflow "github.com/kinitros/viralizei-plataforma/business_flow"
)

// CheckoutHandlerInterface defines the checkout link endpoints
type CheckoutHandlerInterface interface {
	GetLink(c fiber.Ctx) error
	Overrides(c fiber.Ctx) error
	SetOverride(c fiber.Ctx) error
	DeleteOverride(c fiber.Ctx) error
}

type CheckoutHandler struct {
	flow      businessflow.CheckoutLinkFlow
	validator *validator.Validate
}

func NewCheckoutHandler(flow businessflow.CheckoutLinkFlow) CheckoutHandlerInterface {
	return &CheckoutHandler{flow: flow, validator: validator.New()}
}

// GetLink resolves the externally hosted checkout URL for a service
// @Summary Get Checkout Link
// @Tags Checkout
// @Produce json
// @Param key query string true "Service key"
// @Param qty query int false "Quantity"
// @Success 200 {object} dto.CheckoutLinkResponse
// @Failure 404 {object} dto.CheckoutLinkResponse
// @Router /api/checkout/link [get]
func (h *CheckoutHandler) GetLink(c fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CheckoutLinkResponse{
			Success: false,
			Error:   `Parâmetro "key" é obrigatório`,
		})
	}
	var qty *int
	if raw := c.Query("qty"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.CheckoutLinkResponse{
				Success: false,
				Error:   `Parâmetro "qty" inválido`,
			})
		}
		qty = &parsed
	}

	url, source, err := h.flow.Resolve(createRequestContext(c, "/api/checkout/link"), key, qty)
	if err != nil {
		if errors.Is(err, businessflow.ErrCheckoutLinkNotConfigured) {
			middleware.ObserveCheckoutLookup("miss")
			return c.Status(fiber.StatusNotFound).JSON(dto.CheckoutLinkResponse{
				Success: false,
				Error:   "Link de checkout não configurado",
			})
		}
		log.Println("Resolve checkout link failed:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.CheckoutLinkResponse{
			Success: false,
			Error:   "Erro interno ao obter link de checkout",
		})
	}
	middleware.ObserveCheckoutLookup(source)
	return c.JSON(dto.CheckoutLinkResponse{Success: true, URL: url, Source: source})
}

// Overrides returns the stored override document
// @Summary Admin List Checkout Overrides
// @Tags Admin Checkout
// @Produce json
// @Success 200 {object} dto.CheckoutOverridesResponse
// @Router /api/admin/checkout [get]
func (h *CheckoutHandler) Overrides(c fiber.Ctx) error {
	links, err := h.flow.Overrides(createRequestContext(c, "/api/admin/checkout"))
	if err != nil {
		log.Println("List checkout overrides failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "CHECKOUT_LIST_FAILED", nil)
	}
	return c.JSON(dto.CheckoutOverridesResponse{Links: links})
}

// SetOverride stores or replaces a checkout override
// @Summary Admin Set Checkout Override
// @Tags Admin Checkout
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Router /api/admin/checkout/link [put]
func (h *CheckoutHandler) SetOverride(c fiber.Ctx) error {
	var req dto.SetCheckoutOverrideRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Corpo da requisição inválido", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validação falhou", "VALIDATION_ERROR", validationDetails(err))
	}

	links, err := h.flow.SetOverride(createRequestContext(c, "/api/admin/checkout/link"), req.Key, req.Qty, req.URL)
	if err != nil {
		if errors.Is(err, businessflow.ErrCheckoutOverrideIncomplete) {
			return errorResponse(c, fiber.StatusBadRequest, "serviceKey e url são obrigatórios", "VALIDATION_ERROR", nil)
		}
		log.Println("Set checkout override failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "CHECKOUT_SET_FAILED", nil)
	}
	return c.JSON(dto.APIResponse{Success: true, Message: "Link de checkout salvo", Data: dto.CheckoutOverridesResponse{Links: links}})
}

// DeleteOverride removes a checkout override
// @Summary Admin Delete Checkout Override
// @Tags Admin Checkout
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/admin/checkout/link [delete]
func (h *CheckoutHandler) DeleteOverride(c fiber.Ctx) error {
	var req dto.DeleteCheckoutOverrideRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Corpo da requisição inválido", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validação falhou", "VALIDATION_ERROR", validationDetails(err))
	}

	links, err := h.flow.DeleteOverride(createRequestContext(c, "/api/admin/checkout/link"), req.Key, req.Qty)
	if err != nil {
		if errors.Is(err, businessflow.ErrCheckoutOverrideNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Link de checkout não encontrado", "CHECKOUT_NOT_FOUND", nil)
		}
		log.Println("Delete checkout override failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "CHECKOUT_DELETE_FAILED", nil)
	}
	return c.JSON(dto.APIResponse{Success: true, Message: "Link de checkout removido", Data: dto.CheckoutOverridesResponse{Links: links}})
}
