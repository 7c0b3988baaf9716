package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/kinitros/viralizei-plataforma/app/dto"
	"github.com/kinitros/viralizei-plataforma/app/middleware"
	businessflow "github.com/kinitros/viralizei-plataforma/business_flow"
)

// PurchaseHandlerInterface defines the purchase resolution endpoint
type PurchaseHandlerInterface interface {
	Resolve(c fiber.Ctx) error
	Services(c fiber.Ctx) error
}

type PurchaseHandler struct {
	flow      businessflow.PurchaseFlow
	validator *validator.Validate
}

func NewPurchaseHandler(flow businessflow.PurchaseFlow) PurchaseHandlerInterface {
	return &PurchaseHandler{flow: flow, validator: validator.New()}
}

// Resolve turns a service selection into a checkout destination
// @Summary Resolve Purchase Destination
// @Tags Purchase
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ResolvePurchaseResponse}
// @Failure 422 {object} dto.APIResponse
// @Router /api/purchase/resolve [post]
func (h *PurchaseHandler) Resolve(c fiber.Ctx) error {
	var req dto.ResolvePurchaseRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Corpo da requisição inválido", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validação falhou", "VALIDATION_ERROR", validationDetails(err))
	}

	dest, err := h.flow.Resolve(createRequestContext(c, "/api/purchase/resolve"), businessflow.PurchaseRequest{
		Service: businessflow.ServiceDescriptor{
			Platform:    req.Platform,
			ServiceType: req.ServiceType,
			Region:      req.Region,
			CustomKey:   req.CustomKey,
		},
		Quantity:  req.Quantity,
		CustomURL: req.CustomURL,
	})
	if err != nil {
		if errors.Is(err, businessflow.ErrServiceNotMapped) {
			return errorResponse(c, fiber.StatusUnprocessableEntity, "Serviço não mapeado", "SERVICE_NOT_MAPPED", nil)
		}
		log.Println("Resolve purchase failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "PURCHASE_RESOLVE_FAILED", nil)
	}

	middleware.ObserveResolution(dest.Source)
	return c.JSON(dto.APIResponse{Success: true, Message: "Destino resolvido", Data: dto.ResolvePurchaseResponse{
		URL:        dest.URL,
		External:   dest.External,
		Price:      dest.Price,
		ServiceKey: dest.ServiceKey,
		Source:     dest.Source,
	}})
}

// Services lists every sellable service key
// @Summary List Available Services
// @Tags Purchase
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/purchase/services [get]
func (h *PurchaseHandler) Services(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{Success: true, Message: "Serviços disponíveis", Data: businessflow.AvailableServices()})
}
