package businessflow

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kinitros/viralizei-plataforma/models"
	"github.com/kinitros/viralizei-plataforma/repository"
	"github.com/kinitros/viralizei-plataforma/utils"
)

func newLinkFlow() (RedirectLinkFlow, repository.LinkStore) {
	store := repository.NewMemoryLinkStore()
	return NewRedirectLinkFlow(store), store
}

func TestRedirectLinkCreate(t *testing.T) {
	ctx := context.Background()
	flow, _ := newLinkFlow()

	created, err := flow.Create(ctx, models.RedirectLinkDraft{
		ServiceKey: "instagram.followers.br",
		Quantity:   utils.ToPtr(500),
		URL:        "https://pay.example.com/ig-500",
		Active:     true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	t.Run("MissingFields", func(t *testing.T) {
		_, err := flow.Create(ctx, models.RedirectLinkDraft{URL: "https://pay.example.com"})
		assert.ErrorIs(t, err, ErrLinkFieldsRequired)

		_, err = flow.Create(ctx, models.RedirectLinkDraft{ServiceKey: "x.y"})
		assert.ErrorIs(t, err, ErrLinkFieldsRequired)
	})

	t.Run("InvalidURL", func(t *testing.T) {
		for _, bad := range []string{"not a url", "ftp://files.example.com", "/relative/path", "https://"} {
			_, err := flow.Create(ctx, models.RedirectLinkDraft{ServiceKey: "x.y", URL: bad})
			assert.ErrorIs(t, err, ErrLinkURLInvalid, "url %q", bad)
		}
	})

	t.Run("Conflict", func(t *testing.T) {
		_, err := flow.Create(ctx, models.RedirectLinkDraft{
			ServiceKey: "instagram.followers.br",
			Quantity:   utils.ToPtr(500),
			URL:        "https://pay.example.com/other",
			Active:     true,
		})
		assert.ErrorIs(t, err, ErrLinkConflict)
	})
}

func TestRedirectLinkUpdateDelete(t *testing.T) {
	ctx := context.Background()
	flow, _ := newLinkFlow()

	created, err := flow.Create(ctx, models.RedirectLinkDraft{
		ServiceKey: "youtube.views",
		URL:        "https://pay.example.com/yt",
		Active:     true,
	})
	require.NoError(t, err)

	_, err = flow.Update(ctx, created.ID, models.RedirectLinkPatch{URL: utils.ToPtr("nope")})
	assert.ErrorIs(t, err, ErrLinkURLInvalid)

	updated, err := flow.Update(ctx, created.ID, models.RedirectLinkPatch{Description: utils.ToPtr("views")})
	require.NoError(t, err)
	assert.Equal(t, "views", updated.Description)

	_, err = flow.Update(ctx, "no-such-id", models.RedirectLinkPatch{})
	assert.ErrorIs(t, err, ErrLinkNotFound)

	_, err = flow.Delete(ctx, created.ID)
	require.NoError(t, err)

	_, err = flow.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestRedirectLinkFind(t *testing.T) {
	ctx := context.Background()
	flow, store := newLinkFlow()

	_, err := store.Create(ctx, models.RedirectLinkDraft{
		ServiceKey: "tiktok.views",
		URL:        "https://pay.example.com/tt-any",
		Active:     true,
	})
	require.NoError(t, err)

	found, err := flow.Find(ctx, "tiktok.views", utils.ToPtr(999))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "https://pay.example.com/tt-any", found.URL)

	missing, err := flow.Find(ctx, "nobody.home", nil)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRedirectLinkExportXLSX(t *testing.T) {
	ctx := context.Background()
	flow, store := newLinkFlow()

	_, err := store.Create(ctx, models.RedirectLinkDraft{
		ServiceKey:  "instagram.likes.br",
		Quantity:    utils.ToPtr(500),
		URL:         "https://pay.example.com/likes",
		Description: "500 curtidas",
		Active:      true,
	})
	require.NoError(t, err)

	filename, data, err := flow.ExportXLSX(ctx)
	require.NoError(t, err)
	assert.Equal(t, "redirect_links.xlsx", filename)
	require.NotEmpty(t, data)

	xl, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = xl.Close() }()

	rows, err := xl.GetRows(xl.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "service_key", rows[0][1])
	assert.Equal(t, "instagram.likes.br", rows[1][1])
	assert.Equal(t, "500", rows[1][2])
}
