package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kinitros/viralizei-plataforma/models"
	"github.com/kinitros/viralizei-plataforma/utils"
)

// GormLinkStore backs the link catalog with a relational database through
// GORM. Unlike the remote backend it owns the schema, so AutoMigrate runs at
// construction time.
type GormLinkStore struct {
	db *gorm.DB
}

func NewGormLinkStore(db *gorm.DB) (*GormLinkStore, error) {
	if err := db.AutoMigrate(&models.RedirectLink{}); err != nil {
		return nil, err
	}
	return &GormLinkStore{db: db}, nil
}

func (s *GormLinkStore) All(ctx context.Context) ([]*models.RedirectLink, error) {
	var links []*models.RedirectLink
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (s *GormLinkStore) activeByServiceKey(ctx context.Context, serviceKey string) ([]*models.RedirectLink, error) {
	var links []*models.RedirectLink
	err := s.db.WithContext(ctx).
		Where("service_key = ? AND active = ?", serviceKey, true).
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (s *GormLinkStore) Create(ctx context.Context, draft models.RedirectLinkDraft) (*models.RedirectLink, error) {
	if draft.Active {
		existing, err := s.activeByServiceKey(ctx, draft.ServiceKey)
		if err != nil {
			return nil, err
		}
		if hasActiveDuplicate(existing, draft.ServiceKey, draft.Quantity) {
			return nil, ErrConflict
		}
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
	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

func (s *GormLinkStore) Update(ctx context.Context, id string, patch models.RedirectLinkPatch) (*models.RedirectLink, error) {
	var link models.RedirectLink
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	applyLinkPatch(&link, patch)
	link.UpdatedAt = utils.UTCNow()
	if err := s.db.WithContext(ctx).Save(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *GormLinkStore) Delete(ctx context.Context, id string) (*models.RedirectLink, error) {
	var link models.RedirectLink
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.RedirectLink{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *GormLinkStore) Find(ctx context.Context, serviceKey string, quantity *int) (*models.RedirectLink, error) {
	links, err := s.activeByServiceKey(ctx, serviceKey)
	if err != nil {
		return nil, err
	}
	if l := findInLinks(links, serviceKey, quantity); l != nil {
		return l, nil
	}
	return nil, nil
}

// GormProductStore backs the product catalog with a relational database.
type GormProductStore struct {
	db *gorm.DB
}

func NewGormProductStore(db *gorm.DB) (*GormProductStore, error) {
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return nil, err
	}
	return &GormProductStore{db: db}, nil
}

func (s *GormProductStore) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	q := s.db.WithContext(ctx).Model(&models.Product{})
	if filter.Network != nil {
		q = q.Where("network = ?", strings.ToLower(*filter.Network))
	}
	if filter.ServiceType != nil {
		q = q.Where("service_type = ?", strings.ToLower(*filter.ServiceType))
	}
	if filter.Region != nil {
		q = q.Where("region = ?", strings.ToLower(*filter.Region))
	}
	if filter.ServiceKey != nil {
		q = q.Where("service_key = ?", strings.ToLower(*filter.ServiceKey))
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	var products []*models.Product
	if err := q.Order("network ASC, service_type ASC, quantity ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *GormProductStore) ByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormProductStore) ByServiceKey(ctx context.Context, serviceKey string) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Where("service_key = ? AND is_active = ?", strings.ToLower(serviceKey), true).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormProductStore) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	cp := *product
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	now := utils.UTCNow()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(&cp).Error; err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *GormProductStore) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	applyProductPatch(&product, patch)
	product.UpdatedAt = utils.UTCNow()
	if err := s.db.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormProductStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}
