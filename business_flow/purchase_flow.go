package businessflow

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/kinitros/viralizei-plataforma/models"
	"github.com/kinitros/viralizei-plataforma/repository"
	"github.com/kinitros/viralizei-plataforma/utils"
)

// Destination sources, in resolution order.
const (
	SourceCustom   = "custom"
	SourceOverride = "override"
	SourceProduct  = "product"
	SourceMapped   = "mapped"
)

// PurchaseRequest asks where a buyer should land for a service and quantity.
// CustomURL, when set by the caller, short-circuits resolution if it points
// at an internal checkout page.
type PurchaseRequest struct {
	Service   ServiceDescriptor
	Quantity  int
	CustomURL string
}

// Destination is the resolved landing spot. External destinations leave the
// storefront; internal ones carry the checkout path and, when known, the
// resolved price.
type Destination struct {
	URL        string
	External   bool
	Price      *float64
	ServiceKey string
	Source     string
}

// PurchaseFlow turns a service selection into a checkout destination.
type PurchaseFlow interface {
	Resolve(ctx context.Context, req PurchaseRequest) (*Destination, error)
}

type PurchaseFlowImpl struct {
	links    repository.LinkStore
	products repository.ProductStore
	checkout *repository.CheckoutStore
}

func NewPurchaseFlow(links repository.LinkStore, products repository.ProductStore, checkout *repository.CheckoutStore) PurchaseFlow {
	return &PurchaseFlowImpl{links: links, products: products, checkout: checkout}
}

// isInternal reports whether a URL lands on one of our own checkout pages.
func isInternal(rawURL string) bool {
	return strings.Contains(rawURL, "/checkout/")
}

func (f *PurchaseFlowImpl) Resolve(ctx context.Context, req PurchaseRequest) (*Destination, error) {
	serviceKey := req.Service.Key()

	if req.CustomURL != "" && isInternal(req.CustomURL) {
		return &Destination{URL: req.CustomURL, ServiceKey: serviceKey, Source: SourceCustom}, nil
	}

	override, err := f.overrideURL(ctx, serviceKey, req.Quantity)
	if err != nil {
		return nil, err
	}
	if override != "" && isInternal(override) {
		return &Destination{URL: override, ServiceKey: serviceKey, Source: SourceOverride}, nil
	}

	product, err := f.matchProduct(ctx, serviceKey, req.Quantity)
	if err != nil {
		return nil, err
	}
	if product != nil {
		return &Destination{
			URL:        internalCheckoutURL(serviceKey, req.Quantity, formatPrice(product.Price)),
			Price:      utils.ToPtr(product.Price),
			ServiceKey: serviceKey,
			Source:     SourceProduct,
		}, nil
	}

	if override != "" {
		return &Destination{URL: override, External: true, ServiceKey: serviceKey, Source: SourceOverride}, nil
	}

	if !IsServiceMapped(serviceKey) {
		return nil, ErrServiceNotMapped
	}

	return &Destination{
		URL:        internalCheckoutURL(serviceKey, req.Quantity, ""),
		ServiceKey: serviceKey,
		Source:     SourceMapped,
	}, nil
}

// overrideURL consults stored links first, then the compile-time table, then
// the admin checkout store, exact quantity key before the default key.
func (f *PurchaseFlowImpl) overrideURL(ctx context.Context, serviceKey string, quantity int) (string, error) {
	link, err := f.links.Find(ctx, serviceKey, &quantity)
	if err != nil {
		return "", NewBusinessError("OVERRIDE_LOOKUP_FAILED", "Failed to look up redirect overrides", err)
	}
	if link != nil {
		return link.URL, nil
	}
	if u := staticRedirectURL(serviceKey, quantity); u != "" {
		return u, nil
	}
	if f.checkout != nil {
		if u := f.checkout.Get(composeCheckoutKey(serviceKey, &quantity)); u != "" {
			return u, nil
		}
		if u := f.checkout.Get(composeCheckoutKey(serviceKey, nil)); u != "" {
			return u, nil
		}
	}
	return "", nil
}

// matchProduct finds the active catalog product for the key's network, type
// and region with the exact quantity.
func (f *PurchaseFlowImpl) matchProduct(ctx context.Context, serviceKey string, quantity int) (*models.Product, error) {
	network, serviceType, region := ParseServiceKey(serviceKey)
	filter := models.ProductFilter{
		Network:     &network,
		ServiceType: &serviceType,
		IsActive:    utils.ToPtr(true),
	}
	if region != "" {
		filter.Region = &region
	}
	products, err := f.products.List(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("PRODUCT_LOOKUP_FAILED", "Failed to query the product catalog", err)
	}
	return pickByQuantity(products, quantity, ""), nil
}

// internalCheckoutURL builds the internal landing URL. Instagram keeps plain
// query parameters for its dedicated page; every other platform gets the
// packed data payload.
func internalCheckoutURL(serviceKey string, quantity int, price string) string {
	if strings.HasPrefix(serviceKey, "instagram.") {
		q := url.Values{}
		q.Set("key", serviceKey)
		q.Set("qty", strconv.Itoa(quantity))
		if price != "" {
			q.Set("price", price)
		}
		return "/checkout/instagram?" + q.Encode()
	}
	data := PackCheckoutData(CheckoutData{Key: serviceKey, Qty: strconv.Itoa(quantity), Price: price})
	return "/checkout/" + Platform(serviceKey) + "?data=" + url.QueryEscape(data)
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
