package models

import (
	"encoding/json"
	"time"
)

// Product is a catalog entry: what is sold, in which quantity, at which price.
// Price is already discount-adjusted; OriginalPrice and DiscountPercentage are
// presentational and must never be used to recompute a charge.
type Product struct {
	ID                 string          `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string          `gorm:"size:255;not null" json:"name"`
	ServiceKey         string          `gorm:"size:128;not null;index:idx_products_service_key" json:"service_key"`
	Network            string          `gorm:"size:32;not null;index:idx_products_network" json:"network"`
	ServiceType        string          `gorm:"size:32;not null;index:idx_products_service_type" json:"service_type"`
	Region             string          `gorm:"size:32;not null" json:"region"`
	Quantity           int             `gorm:"not null" json:"quantity"`
	Price              float64         `gorm:"not null" json:"price"`
	OriginalPrice      float64         `json:"original_price"`
	DiscountPercentage float64         `json:"discount_percentage"`
	Description        *string         `gorm:"type:text" json:"description,omitempty"`
	IsActive           bool            `gorm:"not null;default:true" json:"is_active"`
	Metadata           json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

// TableName returns the table name for Product
func (Product) TableName() string { return "products" }

// ProductFilter provides filter fields for catalog queries. Nil fields are
// not applied. Classification axes are matched lower-cased.
type ProductFilter struct {
	Network     *string
	ServiceType *string
	Region      *string
	ServiceKey  *string
	IsActive    *bool
}

// ProductPatch is a partial update for a catalog entry.
type ProductPatch struct {
	Name               *string
	ServiceKey         *string
	Network            *string
	ServiceType        *string
	Region             *string
	Quantity           *int
	Price              *float64
	OriginalPrice      *float64
	DiscountPercentage *float64
	Description        *string
	IsActive           *bool
	Metadata           json.RawMessage
}
