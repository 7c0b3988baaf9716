package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/kinitros/viralizei-plataforma/app/dto"
	businessflow "github.com/kinitros/viralizei-plataforma/business_flow"
	"github.com/kinitros/viralizei-plataforma/models"
)

// RedirectLinkHandlerInterface defines the redirect link endpoints
type RedirectLinkHandlerInterface interface {
	List(c fiber.Ctx) error
	Create(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
	Find(c fiber.Ctx) error
	Export(c fiber.Ctx) error
}

type RedirectLinkHandler struct {
	flow      businessflow.RedirectLinkFlow
	validator *validator.Validate
}

func NewRedirectLinkHandler(flow businessflow.RedirectLinkFlow) RedirectLinkHandlerInterface {
	return &RedirectLinkHandler{flow: flow, validator: validator.New()}
}

// List returns every configured redirect link
// @Summary List Redirect Links
// @Tags RedirectLinks
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/redirect-links [get]
func (h *RedirectLinkHandler) List(c fiber.Ctx) error {
	links, err := h.flow.List(createRequestContext(c, "/api/redirect-links"))
	if err != nil {
		log.Println("List redirect links failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "LINK_LIST_FAILED", nil)
	}
	return c.JSON(dto.APIResponse{Success: true, Message: "Links carregados", Data: links})
}

// Create stores a new redirect link
// @Summary Create Redirect Link
// @Tags RedirectLinks
// @Accept json
// @Produce json
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse
// @Router /api/redirect-links [post]
func (h *RedirectLinkHandler) Create(c fiber.Ctx) error {
	var req dto.CreateRedirectLinkRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Corpo da requisição inválido", "INVALID_REQUEST", err.Error())
	}
	if req.ServiceKey == "" || req.URL == "" {
		return errorResponse(c, fiber.StatusBadRequest, "serviceKey e url são obrigatórios", "VALIDATION_ERROR", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "URL inválida", "VALIDATION_ERROR", validationDetails(err))
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	link, err := h.flow.Create(createRequestContext(c, "/api/redirect-links"), models.RedirectLinkDraft{
		ServiceKey:  req.ServiceKey,
		Quantity:    req.Quantity,
		URL:         req.URL,
		Description: req.Description,
		Active:      active,
	})
	if err != nil {
		switch {
		case errors.Is(err, businessflow.ErrLinkFieldsRequired):
			return errorResponse(c, fiber.StatusBadRequest, "serviceKey e url são obrigatórios", "VALIDATION_ERROR", nil)
		case errors.Is(err, businessflow.ErrLinkURLInvalid):
			return errorResponse(c, fiber.StatusBadRequest, "URL inválida", "VALIDATION_ERROR", nil)
		case errors.Is(err, businessflow.ErrLinkConflict):
			return errorResponse(c, fiber.StatusConflict, "Já existe um link configurado para este serviço e quantidade", "LINK_CONFLICT", nil)
		}
		log.Println("Create redirect link failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "LINK_CREATE_FAILED", nil)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.APIResponse{Success: true, Message: "Link criado", Data: link})
}

// Update applies a partial patch to a redirect link
// @Summary Update Redirect Link
// @Tags RedirectLinks
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/redirect-links/{id} [put]
func (h *RedirectLinkHandler) Update(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return errorResponse(c, fiber.StatusBadRequest, "ID é obrigatório", "VALIDATION_ERROR", nil)
	}
	var req dto.UpdateRedirectLinkRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Corpo da requisição inválido", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "URL inválida", "VALIDATION_ERROR", validationDetails(err))
	}

	patch := models.RedirectLinkPatch{
		ServiceKey:  req.ServiceKey,
		Quantity:    req.Quantity,
		QuantitySet: req.QuantityPresent,
		URL:         req.URL,
		Description: req.Description,
		Active:      req.Active,
	}
	link, err := h.flow.Update(createRequestContext(c, "/api/redirect-links/:id"), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, businessflow.ErrLinkNotFound):
			return errorResponse(c, fiber.StatusNotFound, "Link não encontrado", "LINK_NOT_FOUND", nil)
		case errors.Is(err, businessflow.ErrLinkURLInvalid):
			return errorResponse(c, fiber.StatusBadRequest, "URL inválida", "VALIDATION_ERROR", nil)
		}
		log.Println("Update redirect link failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "LINK_UPDATE_FAILED", nil)
	}
	return c.JSON(dto.APIResponse{Success: true, Message: "Link atualizado", Data: link})
}

// Delete removes a redirect link
// @Summary Delete Redirect Link
// @Tags RedirectLinks
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/redirect-links/{id} [delete]
func (h *RedirectLinkHandler) Delete(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return errorResponse(c, fiber.StatusBadRequest, "ID é obrigatório", "VALIDATION_ERROR", nil)
	}
	link, err := h.flow.Delete(createRequestContext(c, "/api/redirect-links/:id"), id)
	if err != nil {
		if errors.Is(err, businessflow.ErrLinkNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Link não encontrado", "LINK_NOT_FOUND", nil)
		}
		log.Println("Delete redirect link failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "LINK_DELETE_FAILED", nil)
	}
	return c.JSON(dto.APIResponse{Success: true, Message: "Link removido", Data: link})
}

// Find resolves the active link for a service key and optional quantity
// @Summary Find Redirect Link
// @Tags RedirectLinks
// @Produce json
// @Param serviceKey query string true "Service key"
// @Param quantity query int false "Quantity"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/redirect-links/find [get]
func (h *RedirectLinkHandler) Find(c fiber.Ctx) error {
	serviceKey := c.Query("serviceKey")
	if serviceKey == "" {
		return errorResponse(c, fiber.StatusBadRequest, "serviceKey é obrigatório", "VALIDATION_ERROR", nil)
	}
	var quantity *int
	if raw := c.Query("quantity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return errorResponse(c, fiber.StatusBadRequest, "quantity inválida", "VALIDATION_ERROR", nil)
		}
		quantity = &parsed
	}

	link, err := h.flow.Find(createRequestContext(c, "/api/redirect-links/find"), serviceKey, quantity)
	if err != nil {
		log.Println("Find redirect link failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "LINK_FIND_FAILED", nil)
	}
	if link == nil {
		return errorResponse(c, fiber.StatusNotFound, "Link não encontrado", "LINK_NOT_FOUND", nil)
	}
	return c.JSON(dto.APIResponse{Success: true, Message: "Link encontrado", Data: link})
}

// Export downloads the full catalog as a spreadsheet
// @Summary Export Redirect Links
// @Tags RedirectLinks
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {string} string "XLSX file"
// @Router /api/redirect-links/export [get]
func (h *RedirectLinkHandler) Export(c fiber.Ctx) error {
	filename, data, err := h.flow.ExportXLSX(createRequestContext(c, "/api/redirect-links/export"))
	if err != nil {
		log.Println("Export redirect links failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "LINK_EXPORT_FAILED", nil)
	}
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}
