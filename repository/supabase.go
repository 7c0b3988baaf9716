package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kinitros/viralizei-plataforma/models"
	"github.com/kinitros/viralizei-plataforma/utils"
)

// SupabaseClient speaks PostgREST to a hosted Supabase project. Every request
// carries the service key as both apikey and bearer token.
type SupabaseClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewSupabaseClient(baseURL, apiKey string) *SupabaseClient {
	return &SupabaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// do issues one REST call against /rest/v1/<path> and decodes the JSON
// response into out when out is non-nil.
func (c *SupabaseClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/rest/v1/"+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if method == http.MethodPost || method == http.MethodPatch || method == http.MethodDelete {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("supabase returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// supabaseLinkRow mirrors the redirect_links table columns.
type supabaseLinkRow struct {
	ID          string    `json:"id,omitempty"`
	ServiceKey  string    `json:"service_key"`
	Quantity    *int      `json:"quantity"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

func (r supabaseLinkRow) toModel() *models.RedirectLink {
	return &models.RedirectLink{
		ID:          r.ID,
		ServiceKey:  r.ServiceKey,
		Quantity:    r.Quantity,
		URL:         r.URL,
		Description: r.Description,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// SupabaseLinkStore stores redirect links in the remote redirect_links table.
type SupabaseLinkStore struct {
	client *SupabaseClient
}

func NewSupabaseLinkStore(client *SupabaseClient) *SupabaseLinkStore {
	return &SupabaseLinkStore{client: client}
}

func (s *SupabaseLinkStore) All(ctx context.Context) ([]*models.RedirectLink, error) {
	var rows []supabaseLinkRow
	if err := s.client.do(ctx, http.MethodGet, "redirect_links?select=*&order=created_at.desc", nil, &rows); err != nil {
		return nil, err
	}
	out := make([]*models.RedirectLink, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

func (s *SupabaseLinkStore) activeByServiceKey(ctx context.Context, serviceKey string) ([]*models.RedirectLink, error) {
	path := fmt.Sprintf("redirect_links?select=*&service_key=eq.%s&active=is.true", url.QueryEscape(serviceKey))
	var rows []supabaseLinkRow
	if err := s.client.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]*models.RedirectLink, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

func (s *SupabaseLinkStore) Create(ctx context.Context, draft models.RedirectLinkDraft) (*models.RedirectLink, error) {
	if draft.Active {
		existing, err := s.activeByServiceKey(ctx, draft.ServiceKey)
		if err != nil {
			return nil, err
		}
		if hasActiveDuplicate(existing, draft.ServiceKey, draft.Quantity) {
			return nil, ErrConflict
		}
	}
	row := supabaseLinkRow{
		ServiceKey:  draft.ServiceKey,
		Quantity:    draft.Quantity,
		URL:         draft.URL,
		Description: draft.Description,
		Active:      draft.Active,
		CreatedAt:   utils.UTCNow(),
		UpdatedAt:   utils.UTCNow(),
	}
	var created []supabaseLinkRow
	if err := s.client.do(ctx, http.MethodPost, "redirect_links", row, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("supabase returned no row for created link")
	}
	return created[0].toModel(), nil
}

func (s *SupabaseLinkStore) Update(ctx context.Context, id string, patch models.RedirectLinkPatch) (*models.RedirectLink, error) {
	changes := map[string]any{"updated_at": utils.UTCNow()}
	if patch.ServiceKey != nil {
		changes["service_key"] = *patch.ServiceKey
	}
	if patch.QuantitySet {
		changes["quantity"] = patch.Quantity
	}
	if patch.URL != nil {
		changes["url"] = *patch.URL
	}
	if patch.Description != nil {
		changes["description"] = *patch.Description
	}
	if patch.Active != nil {
		changes["active"] = *patch.Active
	}
	var updated []supabaseLinkRow
	path := "redirect_links?id=eq." + url.QueryEscape(id)
	if err := s.client.do(ctx, http.MethodPatch, path, changes, &updated); err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, nil
	}
	return updated[0].toModel(), nil
}

func (s *SupabaseLinkStore) Delete(ctx context.Context, id string) (*models.RedirectLink, error) {
	var deleted []supabaseLinkRow
	path := "redirect_links?id=eq." + url.QueryEscape(id)
	if err := s.client.do(ctx, http.MethodDelete, path, nil, &deleted); err != nil {
		return nil, err
	}
	if len(deleted) == 0 {
		return nil, nil
	}
	return deleted[0].toModel(), nil
}

func (s *SupabaseLinkStore) Find(ctx context.Context, serviceKey string, quantity *int) (*models.RedirectLink, error) {
	links, err := s.activeByServiceKey(ctx, serviceKey)
	if err != nil {
		return nil, err
	}
	if l := findInLinks(links, serviceKey, quantity); l != nil {
		return l, nil
	}
	return nil, nil
}

// supabaseProductRow mirrors the products table columns.
type supabaseProductRow struct {
	ID                 string          `json:"id,omitempty"`
	Name               string          `json:"name"`
	ServiceKey         string          `json:"service_key"`
	Network            string          `json:"network"`
	ServiceType        string          `json:"service_type"`
	Region             string          `json:"region"`
	Quantity           int             `json:"quantity"`
	Price              float64         `json:"price"`
	OriginalPrice      float64         `json:"original_price"`
	DiscountPercentage float64         `json:"discount_percentage"`
	Description        *string         `json:"description"`
	IsActive           bool            `json:"is_active"`
	Metadata           json.RawMessage `json:"metadata,omitempty"`
	CreatedAt          time.Time       `json:"created_at,omitempty"`
	UpdatedAt          time.Time       `json:"updated_at,omitempty"`
}

func (r supabaseProductRow) toModel() *models.Product {
	return &models.Product{
		ID:                 r.ID,
		Name:               r.Name,
		ServiceKey:         r.ServiceKey,
		Network:            r.Network,
		ServiceType:        r.ServiceType,
		Region:             r.Region,
		Quantity:           r.Quantity,
		Price:              r.Price,
		OriginalPrice:      r.OriginalPrice,
		DiscountPercentage: r.DiscountPercentage,
		Description:        r.Description,
		IsActive:           r.IsActive,
		Metadata:           r.Metadata,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func productToRow(p *models.Product) supabaseProductRow {
	return supabaseProductRow{
		ID:                 p.ID,
		Name:               p.Name,
		ServiceKey:         p.ServiceKey,
		Network:            p.Network,
		ServiceType:        p.ServiceType,
		Region:             p.Region,
		Quantity:           p.Quantity,
		Price:              p.Price,
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountPercentage,
		Description:        p.Description,
		IsActive:           p.IsActive,
		Metadata:           p.Metadata,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// SupabaseProductStore stores the product catalog in the remote products table.
type SupabaseProductStore struct {
	client *SupabaseClient
}

func NewSupabaseProductStore(client *SupabaseClient) *SupabaseProductStore {
	return &SupabaseProductStore{client: client}
}

func (s *SupabaseProductStore) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	var sb strings.Builder
	sb.WriteString("products?select=*&order=network.asc,service_type.asc,quantity.asc")
	if filter.Network != nil {
		sb.WriteString("&network=eq." + url.QueryEscape(strings.ToLower(*filter.Network)))
	}
	if filter.ServiceType != nil {
		sb.WriteString("&service_type=eq." + url.QueryEscape(strings.ToLower(*filter.ServiceType)))
	}
	if filter.Region != nil {
		sb.WriteString("&region=eq." + url.QueryEscape(strings.ToLower(*filter.Region)))
	}
	if filter.ServiceKey != nil {
		sb.WriteString("&service_key=eq." + url.QueryEscape(strings.ToLower(*filter.ServiceKey)))
	}
	if filter.IsActive != nil {
		if *filter.IsActive {
			sb.WriteString("&is_active=is.true")
		} else {
			sb.WriteString("&is_active=is.false")
		}
	}
	var rows []supabaseProductRow
	if err := s.client.do(ctx, http.MethodGet, sb.String(), nil, &rows); err != nil {
		return nil, err
	}
	out := make([]*models.Product, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

func (s *SupabaseProductStore) ByID(ctx context.Context, id string) (*models.Product, error) {
	var rows []supabaseProductRow
	path := "products?select=*&id=eq." + url.QueryEscape(id)
	if err := s.client.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toModel(), nil
}

func (s *SupabaseProductStore) ByServiceKey(ctx context.Context, serviceKey string) (*models.Product, error) {
	path := "products?select=*&service_key=eq." + url.QueryEscape(strings.ToLower(serviceKey)) + "&is_active=is.true&limit=1"
	var rows []supabaseProductRow
	if err := s.client.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toModel(), nil
}

func (s *SupabaseProductStore) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	row := productToRow(product)
	row.CreatedAt = utils.UTCNow()
	row.UpdatedAt = row.CreatedAt
	var created []supabaseProductRow
	if err := s.client.do(ctx, http.MethodPost, "products", row, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("supabase returned no row for created product")
	}
	return created[0].toModel(), nil
}

func (s *SupabaseProductStore) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	changes := map[string]any{"updated_at": utils.UTCNow()}
	if patch.Name != nil {
		changes["name"] = *patch.Name
	}
	if patch.ServiceKey != nil {
		changes["service_key"] = strings.ToLower(*patch.ServiceKey)
	}
	if patch.Network != nil {
		changes["network"] = strings.ToLower(*patch.Network)
	}
	if patch.ServiceType != nil {
		changes["service_type"] = strings.ToLower(*patch.ServiceType)
	}
	if patch.Region != nil {
		changes["region"] = strings.ToLower(*patch.Region)
	}
	if patch.Quantity != nil {
		changes["quantity"] = *patch.Quantity
	}
	if patch.Price != nil {
		changes["price"] = *patch.Price
	}
	if patch.OriginalPrice != nil {
		changes["original_price"] = *patch.OriginalPrice
	}
	if patch.DiscountPercentage != nil {
		changes["discount_percentage"] = *patch.DiscountPercentage
	}
	if patch.Description != nil {
		changes["description"] = *patch.Description
	}
	if patch.IsActive != nil {
		changes["is_active"] = *patch.IsActive
	}
	if patch.Metadata != nil {
		changes["metadata"] = patch.Metadata
	}
	var updated []supabaseProductRow
	path := "products?id=eq." + url.QueryEscape(id)
	if err := s.client.do(ctx, http.MethodPatch, path, changes, &updated); err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, nil
	}
	return updated[0].toModel(), nil
}

func (s *SupabaseProductStore) Delete(ctx context.Context, id string) error {
	path := "products?id=eq." + url.QueryEscape(id)
	return s.client.do(ctx, http.MethodDelete, path, nil, nil)
}
