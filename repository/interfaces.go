// Package repository provides the storage contract for redirect links and the
// product catalog, together with its interchangeable backends.
package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/kinitros/viralizei-plataforma/models"
)

// LinkStore is the storage contract for the redirect-link catalog. All
// backends implement identical semantics; lookups that produce nothing return
// (nil, nil), never an error.
type LinkStore interface {
	// All returns every stored link, active or not.
	All(ctx context.Context) ([]*models.RedirectLink, error)

	// Create stores a new link with a server-assigned ID and timestamps.
	// It fails with ErrConflict when an active link already exists for the
	// same (serviceKey, quantity) pair, the nil-quantity case included.
	Create(ctx context.Context, draft models.RedirectLinkDraft) (*models.RedirectLink, error)

	// Update applies a partial patch and refreshes UpdatedAt.
	Update(ctx context.Context, id string, patch models.RedirectLinkPatch) (*models.RedirectLink, error)

	// Delete removes a link and returns it.
	Delete(ctx context.Context, id string) (*models.RedirectLink, error)

	// Find looks for an active link with an exact quantity match. When none
	// exists and a quantity was supplied, it falls back to an active link
	// with no quantity constraint. An inactive specific link never masks an
	// active general one.
	Find(ctx context.Context, serviceKey string, quantity *int) (*models.RedirectLink, error)
}

// ProductStore is the storage contract for the product catalog.
type ProductStore interface {
	// List returns products matching the filter, ordered by network,
	// service type, then quantity.
	List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)

	// ByID returns a product by its ID, or (nil, nil).
	ByID(ctx context.Context, id string) (*models.Product, error)

	// ByServiceKey returns the active product whose own service key equals
	// the given key (lower-cased), or (nil, nil).
	ByServiceKey(ctx context.Context, serviceKey string) (*models.Product, error)

	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// findInLinks implements the two-tier lookup shared by the in-process
// backends: exact active match first, then the active catch-all when a
// quantity was supplied.
func findInLinks(links []*models.RedirectLink, serviceKey string, quantity *int) *models.RedirectLink {
	for _, l := range links {
		if l.ServiceKey == serviceKey && l.Active && quantitiesEqual(l.Quantity, quantity) {
			return l
		}
	}
	if quantity == nil {
		return nil
	}
	for _, l := range links {
		if l.ServiceKey == serviceKey && l.Active && l.Quantity == nil {
			return l
		}
	}
	return nil
}

// hasActiveDuplicate reports whether an active link already occupies the
// exact (serviceKey, quantity) pair. Inactive entries do not block creation.
func hasActiveDuplicate(links []*models.RedirectLink, serviceKey string, quantity *int) bool {
	for _, l := range links {
		if l.ServiceKey == serviceKey && l.Active && quantitiesEqual(l.Quantity, quantity) {
			return true
		}
	}
	return false
}

func quantitiesEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// applyLinkPatch overwrites only the fields the patch carries.
func applyLinkPatch(link *models.RedirectLink, patch models.RedirectLinkPatch) {
	if patch.ServiceKey != nil {
		link.ServiceKey = *patch.ServiceKey
	}
	if patch.QuantitySet {
		link.Quantity = patch.Quantity
	}
	if patch.URL != nil {
		link.URL = *patch.URL
	}
	if patch.Description != nil {
		link.Description = *patch.Description
	}
	if patch.Active != nil {
		link.Active = *patch.Active
	}
}

// applyProductPatch overwrites only the fields the patch carries.
func applyProductPatch(p *models.Product, patch models.ProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.ServiceKey != nil {
		p.ServiceKey = strings.ToLower(*patch.ServiceKey)
	}
	if patch.Network != nil {
		p.Network = strings.ToLower(*patch.Network)
	}
	if patch.ServiceType != nil {
		p.ServiceType = strings.ToLower(*patch.ServiceType)
	}
	if patch.Region != nil {
		p.Region = strings.ToLower(*patch.Region)
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.OriginalPrice != nil {
		p.OriginalPrice = *patch.OriginalPrice
	}
	if patch.DiscountPercentage != nil {
		p.DiscountPercentage = *patch.DiscountPercentage
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	if patch.Metadata != nil {
		p.Metadata = patch.Metadata
	}
}

// matchesProduct reports whether p satisfies every set filter field.
func matchesProduct(p *models.Product, f models.ProductFilter) bool {
	if f.Network != nil && p.Network != strings.ToLower(*f.Network) {
		return false
	}
	if f.ServiceType != nil && p.ServiceType != strings.ToLower(*f.ServiceType) {
		return false
	}
	if f.Region != nil && p.Region != strings.ToLower(*f.Region) {
		return false
	}
	if f.ServiceKey != nil && p.ServiceKey != strings.ToLower(*f.ServiceKey) {
		return false
	}
	if f.IsActive != nil && p.IsActive != *f.IsActive {
		return false
	}
	return true
}

// sortProducts orders the catalog the way listings are served: network,
// service type, quantity.
func sortProducts(products []*models.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Network != products[j].Network {
			return products[i].Network < products[j].Network
		}
		if products[i].ServiceType != products[j].ServiceType {
			return products[i].ServiceType < products[j].ServiceType
		}
		return products[i].Quantity < products[j].Quantity
	})
}
