package models

import "time"

// RedirectLink is an administrator-configured destination override for a service.
// Quantity is nullable: a link without quantity is a catch-all for every quantity
// of the service that has no specific link of its own.
type RedirectLink struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	ServiceKey  string `gorm:"size:128;not null;index:idx_redirect_links_service_key" json:"serviceKey"`
	Quantity    *int   `gorm:"index:idx_redirect_links_quantity" json:"quantity,omitempty"`
	URL         string `gorm:"type:text;not null" json:"url"`
	Description string `gorm:"type:text" json:"description"`
	Active      bool   `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"createdAt"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updatedAt"`
}

// TableName returns the table name for RedirectLink
func (RedirectLink) TableName() string { return "redirect_links" }

// RedirectLinkDraft carries the caller-supplied fields of a new link.
// ID and timestamps are assigned by the storage layer, never by callers.
type RedirectLinkDraft struct {
	ServiceKey  string
	Quantity    *int
	URL         string
	Description string
	Active      bool
}

// RedirectLinkPatch is a partial update. Only fields explicitly present are
// applied; QuantitySet distinguishes "set quantity to nil" from "leave it".
type RedirectLinkPatch struct {
	ServiceKey  *string
	Quantity    *int
	QuantitySet bool
	URL         *string
	Description *string
	Active      *bool
}
