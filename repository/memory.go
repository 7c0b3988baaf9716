package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kinitros/viralizei-plataforma/models"
	"github.com/kinitros/viralizei-plataforma/utils"
)

// MemoryLinkStore keeps links in process memory. Contents vanish on restart,
// which is exactly what tests and credential-less deployments need.
type MemoryLinkStore struct {
	mu    sync.RWMutex
	links []*models.RedirectLink
}

func NewMemoryLinkStore() *MemoryLinkStore {
	return &MemoryLinkStore{}
}

func (s *MemoryLinkStore) All(ctx context.Context) ([]*models.RedirectLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyLinks(s.links), nil
}

func (s *MemoryLinkStore) Create(ctx context.Context, draft models.RedirectLinkDraft) (*models.RedirectLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if draft.Active && hasActiveDuplicate(s.links, draft.ServiceKey, draft.Quantity) {
		return nil, ErrConflict
	}
	now := utils.UTCNow()
	link := &models.RedirectLink{
		ID:          uuid.New().String(),
		ServiceKey:  draft.ServiceKey,
		Quantity:    draft.Quantity,
		URL:         draft.URL,
		Description: draft.Description,
		Active:      draft.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.links = append(s.links, link)
	cp := *link
	return &cp, nil
}

func (s *MemoryLinkStore) Update(ctx context.Context, id string, patch models.RedirectLinkPatch) (*models.RedirectLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.links {
		if l.ID == id {
			applyLinkPatch(l, patch)
			l.UpdatedAt = utils.UTCNow()
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryLinkStore) Delete(ctx context.Context, id string) (*models.RedirectLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.links {
		if l.ID == id {
			s.links = append(s.links[:i], s.links[i+1:]...)
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryLinkStore) Find(ctx context.Context, serviceKey string, quantity *int) (*models.RedirectLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l := findInLinks(s.links, serviceKey, quantity); l != nil {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

// MemoryProductStore keeps the product catalog in process memory.
type MemoryProductStore struct {
	mu       sync.RWMutex
	products []*models.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{}
}

func (s *MemoryProductStore) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Product, 0, len(s.products))
	for _, p := range s.products {
		if matchesProduct(p, filter) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sortProducts(out)
	return out, nil
}

func (s *MemoryProductStore) ByID(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryProductStore) ByServiceKey(ctx context.Context, serviceKey string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := strings.ToLower(serviceKey)
	for _, p := range s.products {
		if p.IsActive && p.ServiceKey == key {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryProductStore) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := utils.UTCNow()
	cp := *product
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.products = append(s.products, &cp)
	out := cp
	return &out, nil
}

func (s *MemoryProductStore) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			applyProductPatch(p, patch)
			p.UpdatedAt = utils.UTCNow()
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryProductStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return nil
}

func copyLinks(in []*models.RedirectLink) []*models.RedirectLink {
	out := make([]*models.RedirectLink, len(in))
	for i, l := range in {
		cp := *l
		out[i] = &cp
	}
	return out
}
