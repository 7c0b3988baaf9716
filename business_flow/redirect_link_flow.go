package businessflow

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kinitros/viralizei-plataforma/models"
	"github.com/kinitros/viralizei-plataforma/repository"
)

// RedirectLinkFlow manages the custom redirect link catalog and serves the
// public find lookup.
type RedirectLinkFlow interface {
	List(ctx context.Context) ([]*models.RedirectLink, error)
	Create(ctx context.Context, draft models.RedirectLinkDraft) (*models.RedirectLink, error)
	Update(ctx context.Context, id string, patch models.RedirectLinkPatch) (*models.RedirectLink, error)
	Delete(ctx context.Context, id string) (*models.RedirectLink, error)

	// Find resolves the active link for a service key, preferring an exact
	// quantity match over the catch-all entry. Returns (nil, nil) when no
	// link applies.
	Find(ctx context.Context, serviceKey string, quantity *int) (*models.RedirectLink, error)

	// ExportXLSX renders the full catalog as a spreadsheet download.
	ExportXLSX(ctx context.Context) (filename string, data []byte, err error)
}

type RedirectLinkFlowImpl struct {
	links repository.LinkStore
}

func NewRedirectLinkFlow(links repository.LinkStore) RedirectLinkFlow {
	return &RedirectLinkFlowImpl{links: links}
}

func (f *RedirectLinkFlowImpl) List(ctx context.Context) ([]*models.RedirectLink, error) {
	links, err := f.links.All(ctx)
	if err != nil {
		return nil, NewBusinessError("LINK_LIST_FAILED", "Failed to list redirect links", err)
	}
	return links, nil
}

func (f *RedirectLinkFlowImpl) Create(ctx context.Context, draft models.RedirectLinkDraft) (*models.RedirectLink, error) {
	if draft.ServiceKey == "" || draft.URL == "" {
		return nil, ErrLinkFieldsRequired
	}
	if !validLinkURL(draft.URL) {
		return nil, ErrLinkURLInvalid
	}
	created, err := f.links.Create(ctx, draft)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrLinkConflict
		}
		return nil, NewBusinessError("LINK_CREATE_FAILED", "Failed to create redirect link", err)
	}
	return created, nil
}

func (f *RedirectLinkFlowImpl) Update(ctx context.Context, id string, patch models.RedirectLinkPatch) (*models.RedirectLink, error) {
	if patch.URL != nil && !validLinkURL(*patch.URL) {
		return nil, ErrLinkURLInvalid
	}
	updated, err := f.links.Update(ctx, id, patch)
	if err != nil {
		return nil, NewBusinessError("LINK_UPDATE_FAILED", "Failed to update redirect link", err)
	}
	if updated == nil {
		return nil, ErrLinkNotFound
	}
	return updated, nil
}

func (f *RedirectLinkFlowImpl) Delete(ctx context.Context, id string) (*models.RedirectLink, error) {
	deleted, err := f.links.Delete(ctx, id)
	if err != nil {
		return nil, NewBusinessError("LINK_DELETE_FAILED", "Failed to delete redirect link", err)
	}
	if deleted == nil {
		return nil, ErrLinkNotFound
	}
	return deleted, nil
}

func (f *RedirectLinkFlowImpl) Find(ctx context.Context, serviceKey string, quantity *int) (*models.RedirectLink, error) {
	link, err := f.links.Find(ctx, serviceKey, quantity)
	if err != nil {
		return nil, NewBusinessError("LINK_FIND_FAILED", "Failed to find redirect link", err)
	}
	return link, nil
}

func (f *RedirectLinkFlowImpl) ExportXLSX(ctx context.Context) (string, []byte, error) {
	links, err := f.links.All(ctx)
	if err != nil {
		return "", nil, NewBusinessError("LINK_EXPORT_FAILED", "Failed to list redirect links", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := xl.GetSheetName(0)
	header := []string{"id", "service_key", "quantity", "url", "description", "active", "created_at", "updated_at"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for i, l := range links {
		quantity := ""
		if l.Quantity != nil {
			quantity = strconv.Itoa(*l.Quantity)
		}
		record := []string{
			l.ID,
			l.ServiceKey,
			quantity,
			l.URL,
			l.Description,
			strconv.FormatBool(l.Active),
			l.CreatedAt.UTC().Format(time.RFC3339),
			l.UpdatedAt.UTC().Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("LINK_EXPORT_FAILED", "Failed to write spreadsheet", err)
	}
	return "redirect_links.xlsx", buf.Bytes(), nil
}

// validLinkURL accepts absolute http(s) URLs only.
func validLinkURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
