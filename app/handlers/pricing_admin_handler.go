package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/kinitros/viralizei-plataforma/app/dto"
	businessflow "github.com/kinitros/viralizei-plataforma/business_flow"
)

// PricingAdminHandlerInterface defines admin pricing endpoints
type PricingAdminHandlerInterface interface {
	Sync(c fiber.Ctx) error
	UpdatePrice(c fiber.Ctx) error
}

type PricingAdminHandler struct {
	flow      businessflow.PricingFlow
	validator *validator.Validate
}

func NewPricingAdminHandler(flow businessflow.PricingFlow) PricingAdminHandlerInterface {
	return &PricingAdminHandler{flow: flow, validator: validator.New()}
}

// Sync upserts quantity/price tiers for one or more services
// @Summary Admin Sync Pricing
// @Tags Admin Pricing
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Router /api/admin/pricing/sync [post]
func (h *PricingAdminHandler) Sync(c fiber.Ctx) error {
	var reqs []dto.PricingSyncRequest
	if err := c.Bind().JSON(&reqs); err != nil {
		// Single-object bodies are accepted too
		var single dto.PricingSyncRequest
		if err2 := c.Bind().JSON(&single); err2 != nil {
			return errorResponse(c, fiber.StatusBadRequest, "Corpo da requisição inválido", "INVALID_REQUEST", err.Error())
		}
		reqs = []dto.PricingSyncRequest{single}
	}
	if len(reqs) == 0 {
		return errorResponse(c, fiber.StatusBadRequest, "Nenhum payload de sincronização", "VALIDATION_ERROR", nil)
	}
	for i := range reqs {
		if err := h.validator.Struct(&reqs[i]); err != nil {
			return errorResponse(c, fiber.StatusBadRequest, "Validação falhou", "VALIDATION_ERROR", validationDetails(err))
		}
	}

	payloads := make([]businessflow.PricingSyncPayload, 0, len(reqs))
	for _, r := range reqs {
		items := make([]businessflow.PricingSyncItem, 0, len(r.Items))
		for _, it := range r.Items {
			items = append(items, businessflow.PricingSyncItem{
				Quantity: it.Quantity,
				Price:    it.Price,
				IsActive: it.IsActive,
			})
		}
		payloads = append(payloads, businessflow.PricingSyncPayload{
			Network:     r.Network,
			ServiceType: r.ServiceType,
			Region:      r.Region,
			Items:       items,
		})
	}

	results, err := h.flow.Sync(createRequestContextWithTimeout(c, "/api/admin/pricing/sync", 30*time.Second), payloads)
	if err != nil {
		log.Println("Pricing sync failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "PRICING_SYNC_FAILED", nil)
	}
	return c.JSON(dto.APIResponse{Success: true, Message: "Sincronização concluída", Data: results})
}

// UpdatePrice changes one product's price
// @Summary Admin Update Price
// @Tags Admin Pricing
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/admin/pricing/update-price [post]
func (h *PricingAdminHandler) UpdatePrice(c fiber.Ctx) error {
	var req dto.UpdatePriceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Corpo da requisição inválido", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validação falhou", "VALIDATION_ERROR", validationDetails(err))
	}

	product, err := h.flow.UpdatePrice(createRequestContext(c, "/api/admin/pricing/update-price"), req.ID, req.Price)
	if err != nil {
		if errors.Is(err, businessflow.ErrProductNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Produto não encontrado", "PRODUCT_NOT_FOUND", nil)
		}
		log.Println("Update price failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "PRICE_UPDATE_FAILED", nil)
	}
	return c.JSON(dto.APIResponse{Success: true, Message: "Preço atualizado", Data: product})
}
