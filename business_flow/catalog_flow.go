package businessflow

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/kinitros/viralizei-plataforma/models"
	"github.com/kinitros/viralizei-plataforma/repository"
)

// CatalogFlow manages the product catalog.
type CatalogFlow interface {
	List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	ByServiceKey(ctx context.Context, serviceKey string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type CatalogFlowImpl struct {
	products repository.ProductStore
}

func NewCatalogFlow(products repository.ProductStore) CatalogFlow {
	return &CatalogFlowImpl{products: products}
}

func (f *CatalogFlowImpl) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	products, err := f.products.List(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("PRODUCT_LIST_FAILED", "Failed to list products", err)
	}
	return products, nil
}

func (f *CatalogFlowImpl) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := f.products.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("PRODUCT_GET_FAILED", "Failed to load product", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (f *CatalogFlowImpl) ByServiceKey(ctx context.Context, serviceKey string) (*models.Product, error) {
	product, err := f.products.ByServiceKey(ctx, serviceKey)
	if err != nil {
		return nil, NewBusinessError("PRODUCT_GET_FAILED", "Failed to load product", err)
	}
	return product, nil
}

var productKeyChars = regexp.MustCompile(`[^a-z0-9-]`)

// deriveProductKey builds "network-type-quantity-region" for products created
// without an explicit key, lower-cased and stripped to slug characters.
func deriveProductKey(p *models.Product) string {
	raw := strings.ToLower(strings.Join([]string{
		p.Network, p.ServiceType, strconv.Itoa(p.Quantity), p.Region,
	}, "-"))
	return productKeyChars.ReplaceAllString(raw, "")
}

func (f *CatalogFlowImpl) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.Network == "" || product.ServiceType == "" || product.Quantity <= 0 || product.Price <= 0 {
		return nil, ErrProductFieldsRequired
	}
	cp := *product
	cp.Network = strings.ToLower(cp.Network)
	cp.ServiceType = strings.ToLower(cp.ServiceType)
	if cp.Region == "" {
		cp.Region = "worldwide"
	}
	cp.Region = strings.ToLower(cp.Region)
	if cp.ServiceKey == "" {
		cp.ServiceKey = deriveProductKey(&cp)
	} else {
		cp.ServiceKey = strings.ToLower(cp.ServiceKey)
	}
	if cp.Name == "" {
		cp.Name = strings.Join([]string{product.Network, product.ServiceType, cp.Region}, " ") + " - " + strconv.Itoa(cp.Quantity)
	}
	created, err := f.products.Create(ctx, &cp)
	if err != nil {
		return nil, NewBusinessError("PRODUCT_CREATE_FAILED", "Failed to create product", err)
	}
	return created, nil
}

func (f *CatalogFlowImpl) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	updated, err := f.products.Update(ctx, id, patch)
	if err != nil {
		return nil, NewBusinessError("PRODUCT_UPDATE_FAILED", "Failed to update product", err)
	}
	if updated == nil {
		return nil, ErrProductNotFound
	}
	return updated, nil
}

func (f *CatalogFlowImpl) Delete(ctx context.Context, id string) error {
	existing, err := f.products.ByID(ctx, id)
	if err != nil {
		return NewBusinessError("PRODUCT_DELETE_FAILED", "Failed to load product", err)
	}
	if existing == nil {
		return ErrProductNotFound
	}
	if err := f.products.Delete(ctx, id); err != nil {
		return NewBusinessError("PRODUCT_DELETE_FAILED", "Failed to delete product", err)
	}
	return nil
}
