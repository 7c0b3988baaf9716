package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/kinitros/viralizei-plataforma/models"
	"github.com/kinitros/viralizei-plataforma/repository"
	"github.com/kinitros/viralizei-plataforma/utils"
)

// PricingFlow resolves checkout prices and lets admins sync pricing tiers
// into the product catalog in bulk.
type PricingFlow interface {
	// ResolvePrice walks the pricing cascade for a service key and quantity.
	// When no tier covers the pair, fallback comes back with a nil error.
	ResolvePrice(ctx context.Context, serviceKey string, qty int, fallback float64) (float64, error)

	// Sync upserts quantity/price tiers per service. Existing products are
	// updated in place, missing ones created. Item failures are reported in
	// the results, not as an error.
	Sync(ctx context.Context, payloads []PricingSyncPayload) ([]PricingSyncResult, error)

	// UpdatePrice changes a single product's price.
	UpdatePrice(ctx context.Context, id string, price float64) (*models.Product, error)
}

// PricingSyncItem is one quantity/price tier.
type PricingSyncItem struct {
	Quantity int
	Price    float64
	IsActive *bool
}

// PricingSyncPayload groups tiers for one service. Region defaults to
// "worldwide".
type PricingSyncPayload struct {
	Network     string
	ServiceType string
	Region      string
	Items       []PricingSyncItem
}

// PricingSyncResult records what happened to one tier.
type PricingSyncResult struct {
	Action   string  `json:"action"`
	ID       string  `json:"id,omitempty"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Error    string  `json:"error,omitempty"`
}

type PricingFlowImpl struct {
	products repository.ProductStore
}

func NewPricingFlow(products repository.ProductStore) PricingFlow {
	return &PricingFlowImpl{products: products}
}

func (f *PricingFlowImpl) ResolvePrice(ctx context.Context, serviceKey string, qty int, fallback float64) (float64, error) {
	network, serviceType, region := ParseServiceKey(serviceKey)
	active := utils.ToPtr(true)

	if region != "" {
		scoped, err := f.products.List(ctx, models.ProductFilter{
			Network:     &network,
			ServiceType: &serviceType,
			Region:      &region,
			IsActive:    active,
		})
		if err != nil {
			return 0, NewBusinessError("PRICE_LOOKUP_FAILED", "Failed to query the product catalog", err)
		}
		if p := pickByQuantity(scoped, qty, ""); p != nil {
			return p.Price, nil
		}
	}

	broad, err := f.products.List(ctx, models.ProductFilter{
		Network:     &network,
		ServiceType: &serviceType,
		IsActive:    active,
	})
	if err != nil {
		return 0, NewBusinessError("PRICE_LOOKUP_FAILED", "Failed to query the product catalog", err)
	}
	if p := pickByQuantity(broad, qty, "worldwide"); p != nil {
		return p.Price, nil
	}
	if p := pickByQuantity(broad, qty, ""); p != nil {
		return p.Price, nil
	}

	byKey, err := f.products.ByServiceKey(ctx, serviceKey)
	if err != nil {
		return 0, NewBusinessError("PRICE_LOOKUP_FAILED", "Failed to query the product catalog", err)
	}
	if byKey != nil && byKey.IsActive && byKey.Quantity == qty {
		return byKey.Price, nil
	}

	if price, ok := StaticPrice(normalizeCatalogKey(serviceKey), qty); ok {
		return price, nil
	}

	return fallback, nil
}

// pickByQuantity returns the first active product with the wanted quantity,
// optionally restricted to one region.
func pickByQuantity(products []*models.Product, qty int, region string) *models.Product {
	for _, p := range products {
		if p.Quantity != qty || !p.IsActive {
			continue
		}
		if region != "" && !strings.EqualFold(p.Region, region) {
			continue
		}
		return p
	}
	return nil
}

func (f *PricingFlowImpl) Sync(ctx context.Context, payloads []PricingSyncPayload) ([]PricingSyncResult, error) {
	results := make([]PricingSyncResult, 0)

	for _, payload := range payloads {
		region := payload.Region
		if region == "" {
			region = "worldwide"
		}
		network := strings.ToLower(payload.Network)
		serviceType := strings.ToLower(payload.ServiceType)
		region = strings.ToLower(region)

		existing, err := f.products.List(ctx, models.ProductFilter{
			Network:     &network,
			ServiceType: &serviceType,
			Region:      &region,
		})
		if err != nil {
			return nil, NewBusinessError("PRICING_SYNC_FAILED", "Failed to list existing products", err)
		}

		for _, item := range payload.Items {
			active := true
			if item.IsActive != nil {
				active = *item.IsActive
			}
			match := pickAnyByQuantity(existing, item.Quantity)
			if match != nil {
				_, err := f.products.Update(ctx, match.ID, models.ProductPatch{
					Price:    utils.ToPtr(item.Price),
					IsActive: utils.ToPtr(active),
				})
				if err != nil {
					results = append(results, PricingSyncResult{Action: "error", Quantity: item.Quantity, Price: item.Price, Error: err.Error()})
					continue
				}
				results = append(results, PricingSyncResult{Action: "updated", ID: match.ID, Quantity: item.Quantity, Price: item.Price})
				continue
			}

			created, err := f.products.Create(ctx, &models.Product{
				Name:        fmt.Sprintf("%s %s %s - %d", payload.Network, payload.ServiceType, region, item.Quantity),
				ServiceKey:  syncServiceKey(network, serviceType, region, item.Quantity),
				Network:     network,
				ServiceType: serviceType,
				Region:      region,
				Quantity:    item.Quantity,
				Price:       item.Price,
				IsActive:    active,
			})
			if err != nil {
				results = append(results, PricingSyncResult{Action: "error", Quantity: item.Quantity, Price: item.Price, Error: err.Error()})
				continue
			}
			results = append(results, PricingSyncResult{Action: "created", ID: created.ID, Quantity: item.Quantity, Price: item.Price})
		}
	}

	return results, nil
}

func pickAnyByQuantity(products []*models.Product, qty int) *models.Product {
	for _, p := range products {
		if p.Quantity == qty {
			return p
		}
	}
	return nil
}

// syncServiceKey builds the dashed catalog key for synced products,
// abbreviating the worldwide region to "ww".
func syncServiceKey(network, serviceType, region string, quantity int) string {
	r := region
	if r == "worldwide" {
		r = "ww"
	}
	return fmt.Sprintf("%s-%s-%s-%d", network, serviceType, r, quantity)
}

func (f *PricingFlowImpl) UpdatePrice(ctx context.Context, id string, price float64) (*models.Product, error) {
	updated, err := f.products.Update(ctx, id, models.ProductPatch{Price: utils.ToPtr(price)})
	if err != nil {
		return nil, NewBusinessError("PRICE_UPDATE_FAILED", "Failed to update product price", err)
	}
	if updated == nil {
		return nil, ErrProductNotFound
	}
	return updated, nil
}
