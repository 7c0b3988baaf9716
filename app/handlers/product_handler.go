package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/kinitros/viralizei-plataforma/app/dto"
	businessflow "github.com/kinitros/viralizei-plataforma/business_flow"
	"github.com/kinitros/viralizei-plataforma/models"
)

// ProductHandlerInterface defines the product catalog endpoints
type ProductHandlerInterface interface {
	List(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	Create(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

type ProductHandler struct {
	flow      businessflow.CatalogFlow
	validator *validator.Validate
}

func NewProductHandler(flow businessflow.CatalogFlow) ProductHandlerInterface {
	return &ProductHandler{flow: flow, validator: validator.New()}
}

// List returns catalog products, optionally filtered by query parameters
// @Summary List Products
// @Tags Products
// @Produce json
// @Param network query string false "Network"
// @Param service_type query string false "Service type"
// @Param region query string false "Region"
// @Param service_key query string false "Service key"
// @Param is_active query bool false "Active only"
// @Success 200 {object} dto.APIResponse
// @Router /api/products [get]
func (h *ProductHandler) List(c fiber.Ctx) error {
	var filter models.ProductFilter
	if v := c.Query("network"); v != "" {
		filter.Network = &v
	}
	if v := c.Query("service_type"); v != "" {
		filter.ServiceType = &v
	}
	if v := c.Query("region"); v != "" {
		filter.Region = &v
	}
	if v := c.Query("service_key"); v != "" {
		filter.ServiceKey = &v
	}
	if v := c.Query("is_active"); v != "" {
		active := v == "true" || v == "1"
		filter.IsActive = &active
	}

	products, err := h.flow.List(createRequestContext(c, "/api/products"), filter)
	if err != nil {
		log.Println("List products failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "PRODUCT_LIST_FAILED", nil)
	}
	return c.JSON(dto.APIResponse{Success: true, Message: "Produtos carregados", Data: products})
}

// Get returns one product by ID
// @Summary Get Product
// @Tags Products
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/products/{id} [get]
func (h *ProductHandler) Get(c fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.flow.Get(createRequestContext(c, "/api/products/:id"), id)
	if err != nil {
		if errors.Is(err, businessflow.ErrProductNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Produto não encontrado", "PRODUCT_NOT_FOUND", nil)
		}
		log.Println("Get product failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "PRODUCT_GET_FAILED", nil)
	}
	return c.JSON(dto.APIResponse{Success: true, Message: "Produto carregado", Data: product})
}

// Create stores a new product
// @Summary Create Product
// @Tags Products
// @Accept json
// @Produce json
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Router /api/products [post]
func (h *ProductHandler) Create(c fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Corpo da requisição inválido", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validação falhou", "VALIDATION_ERROR", validationDetails(err))
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	product, err := h.flow.Create(createRequestContext(c, "/api/products"), &models.Product{
		Name:               req.Name,
		ServiceKey:         req.ServiceKey,
		Network:            req.Network,
		ServiceType:        req.ServiceType,
		Region:             req.Region,
		Quantity:           req.Quantity,
		Price:              req.Price,
		OriginalPrice:      req.OriginalPrice,
		DiscountPercentage: req.DiscountPercentage,
		Description:        req.Description,
		IsActive:           isActive,
		Metadata:           req.Metadata,
	})
	if err != nil {
		if errors.Is(err, businessflow.ErrProductFieldsRequired) {
			return errorResponse(c, fiber.StatusBadRequest, "Campos obrigatórios ausentes", "VALIDATION_ERROR", nil)
		}
		log.Println("Create product failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "PRODUCT_CREATE_FAILED", nil)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.APIResponse{Success: true, Message: "Produto criado", Data: product})
}

// Update applies a partial patch to a product
// @Summary Update Product
// @Tags Products
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/products/{id} [put]
func (h *ProductHandler) Update(c fiber.Ctx) error {
	id := c.Params("id")
	var req dto.UpdateProductRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Corpo da requisição inválido", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validação falhou", "VALIDATION_ERROR", validationDetails(err))
	}

	product, err := h.flow.Update(createRequestContext(c, "/api/products/:id"), id, models.ProductPatch{
		Name:               req.Name,
		ServiceKey:         req.ServiceKey,
		Network:            req.Network,
		ServiceType:        req.ServiceType,
		Region:             req.Region,
		Quantity:           req.Quantity,
		Price:              req.Price,
		OriginalPrice:      req.OriginalPrice,
		DiscountPercentage: req.DiscountPercentage,
		Description:        req.Description,
		IsActive:           req.IsActive,
		Metadata:           req.Metadata,
	})
	if err != nil {
		if errors.Is(err, businessflow.ErrProductNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Produto não encontrado", "PRODUCT_NOT_FOUND", nil)
		}
		log.Println("Update product failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "PRODUCT_UPDATE_FAILED", nil)
	}
	return c.JSON(dto.APIResponse{Success: true, Message: "Produto atualizado", Data: product})
}

// Delete removes a product
// @Summary Delete Product
// @Tags Products
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/products/{id} [delete]
func (h *ProductHandler) Delete(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.flow.Delete(createRequestContext(c, "/api/products/:id"), id); err != nil {
		if errors.Is(err, businessflow.ErrProductNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Produto não encontrado", "PRODUCT_NOT_FOUND", nil)
		}
		log.Println("Delete product failed:", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Erro interno do servidor", "PRODUCT_DELETE_FAILED", nil)
	}
	return c.JSON(dto.APIResponse{Success: true, Message: "Produto removido"})
}
