package dto

import "encoding/json"

// CreateProductRequest creates a catalog product. ServiceKey and Name are
// derived from the other fields when absent.
type CreateProductRequest struct {
	Name               string          `json:"name" validate:"omitempty,max=256"`
	ServiceKey         string          `json:"service_key" validate:"omitempty,max=128"`
	Network            string          `json:"network" validate:"required,min=2,max=64"`
	ServiceType        string          `json:"service_type" validate:"required,min=2,max=64"`
	Region             string          `json:"region" validate:"omitempty,max=64"`
	Quantity           int             `json:"quantity" validate:"required,gt=0"`
	Price              float64         `json:"price" validate:"required,gt=0"`
	OriginalPrice      float64         `json:"original_price" validate:"omitempty,gte=0"`
	DiscountPercentage float64         `json:"discount_percentage" validate:"omitempty,gte=0,lte=100"`
	Description        *string         `json:"description"`
	IsActive           *bool           `json:"is_active"`
	Metadata           json.RawMessage `json:"metadata"`
}

// UpdateProductRequest patches a product. Only non-nil fields are applied.
type UpdateProductRequest struct {
	Name               *string         `json:"name" validate:"omitempty,max=256"`
	ServiceKey         *string         `json:"service_key" validate:"omitempty,max=128"`
	Network            *string         `json:"network" validate:"omitempty,min=2,max=64"`
	ServiceType        *string         `json:"service_type" validate:"omitempty,min=2,max=64"`
	Region             *string         `json:"region" validate:"omitempty,max=64"`
	Quantity           *int            `json:"quantity" validate:"omitempty,gt=0"`
	Price              *float64        `json:"price" validate:"omitempty,gt=0"`
	OriginalPrice      *float64        `json:"original_price" validate:"omitempty,gte=0"`
	DiscountPercentage *float64        `json:"discount_percentage" validate:"omitempty,gte=0,lte=100"`
	Description        *string         `json:"description"`
	IsActive           *bool           `json:"is_active"`
	Metadata           json.RawMessage `json:"metadata"`
}

// PricingSyncItemRequest is one quantity/price tier in a sync payload.
type PricingSyncItemRequest struct {
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	IsActive *bool   `json:"is_active"`
}

// PricingSyncRequest upserts pricing tiers for one service.
type PricingSyncRequest struct {
	Network     string                   `json:"network" validate:"required,min=2,max=64"`
	ServiceType string                   `json:"serviceType" validate:"required,min=2,max=64"`
	Region      string                   `json:"region" validate:"omitempty,max=64"`
	Items       []PricingSyncItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdatePriceRequest changes one product's price.
type UpdatePriceRequest struct {
	ID    string  `json:"id" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
}
