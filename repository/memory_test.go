package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinitros/viralizei-plataforma/models"
	"github.com/kinitros/viralizei-plataforma/utils"
)

func TestMemoryLinkStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryLinkStore()

	created, err := store.Create(ctx, models.RedirectLinkDraft{
		ServiceKey:  "instagram.followers.br",
		Quantity:    utils.ToPtr(500),
		URL:         "https://pay.example.com/ig-500",
		Description: "500 seguidores",
		Active:      true,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	newURL := "https://pay.example.com/ig-500-v2"
	updated, err := store.Update(ctx, created.ID, models.RedirectLinkPatch{URL: &newURL})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, newURL, updated.URL)
	assert.Equal(t, "instagram.followers.br", updated.ServiceKey)

	deleted, err := store.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, created.ID, deleted.ID)

	all, err = store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryLinkStoreMissingIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryLinkStore()

	updated, err := store.Update(ctx, "no-such-id", models.RedirectLinkPatch{})
	require.NoError(t, err)
	assert.Nil(t, updated)

	deleted, err := store.Delete(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, deleted)

	found, err := store.Find(ctx, "instagram.likes.br", utils.ToPtr(100))
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryLinkStoreFind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryLinkStore()

	general, err := store.Create(ctx, models.RedirectLinkDraft{
		ServiceKey: "tiktok.views",
		URL:        "https://pay.example.com/tiktok-any",
		Active:     true,
	})
	require.NoError(t, err)

	specific, err := store.Create(ctx, models.RedirectLinkDraft{
		ServiceKey: "tiktok.views",
		Quantity:   utils.ToPtr(10000),
		URL:        "https://pay.example.com/tiktok-10k",
		Active:     true,
	})
	require.NoError(t, err)

	t.Run("SpecificBeatsGeneral", func(t *testing.T) {
		found, err := store.Find(ctx, "tiktok.views", utils.ToPtr(10000))
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, specific.ID, found.ID)
	})

	t.Run("GeneralFallback", func(t *testing.T) {
		found, err := store.Find(ctx, "tiktok.views", utils.ToPtr(777))
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, general.ID, found.ID)
	})

	t.Run("NilQuantityMatchesOnlyGeneral", func(t *testing.T) {
		found, err := store.Find(ctx, "tiktok.views", nil)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, general.ID, found.ID)
	})

	t.Run("InactiveSpecificDoesNotMaskGeneral", func(t *testing.T) {
		_, err := store.Update(ctx, specific.ID, models.RedirectLinkPatch{Active: utils.ToPtr(false)})
		require.NoError(t, err)

		found, err := store.Find(ctx, "tiktok.views", utils.ToPtr(10000))
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, general.ID, found.ID)
	})
}

func TestMemoryLinkStoreConflicts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryLinkStore()

	draft := models.RedirectLinkDraft{
		ServiceKey: "instagram.likes.br",
		Quantity:   utils.ToPtr(500),
		URL:        "https://pay.example.com/likes-500",
		Active:     true,
	}
	_, err := store.Create(ctx, draft)
	require.NoError(t, err)

	t.Run("ActiveDuplicateRejected", func(t *testing.T) {
		_, err := store.Create(ctx, draft)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("DifferentQuantityAllowed", func(t *testing.T) {
		other := draft
		other.Quantity = utils.ToPtr(1000)
		_, err := store.Create(ctx, other)
		assert.NoError(t, err)
	})

	t.Run("NilQuantityIsItsOwnSlot", func(t *testing.T) {
		general := draft
		general.Quantity = nil
		_, err := store.Create(ctx, general)
		require.NoError(t, err)

		_, err = store.Create(ctx, general)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("InactiveDuplicateAllowed", func(t *testing.T) {
		inactive := draft
		inactive.Active = false
		_, err := store.Create(ctx, inactive)
		assert.NoError(t, err)
	})
}

func TestMemoryLinkStoreQuantityPatch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryLinkStore()

	created, err := store.Create(ctx, models.RedirectLinkDraft{
		ServiceKey: "youtube.views",
		Quantity:   utils.ToPtr(5000),
		URL:        "https://pay.example.com/yt",
		Active:     true,
	})
	require.NoError(t, err)

	// Patch without QuantitySet leaves the quantity alone.
	updated, err := store.Update(ctx, created.ID, models.RedirectLinkPatch{Description: utils.ToPtr("views")})
	require.NoError(t, err)
	require.NotNil(t, updated.Quantity)
	assert.Equal(t, 5000, *updated.Quantity)

	// QuantitySet with a nil quantity clears it.
	updated, err = store.Update(ctx, created.ID, models.RedirectLinkPatch{QuantitySet: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Quantity)
}

func TestMemoryProductStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryProductStore()

	seed := []*models.Product{
		{Name: "IG BR 500", ServiceKey: "instagram-followers-500-brazil", Network: "instagram", ServiceType: "followers", Region: "brazil", Quantity: 500, Price: 59.90, IsActive: true},
		{Name: "IG WW 500", ServiceKey: "instagram-followers-500-worldwide", Network: "instagram", ServiceType: "followers", Region: "worldwide", Quantity: 500, Price: 29.90, IsActive: true},
		{Name: "IG BR 100", ServiceKey: "instagram-followers-100-brazil", Network: "instagram", ServiceType: "followers", Region: "brazil", Quantity: 100, Price: 19.90, IsActive: true},
		{Name: "TT 1000", ServiceKey: "tiktok-likes-1000-brazil", Network: "tiktok", ServiceType: "likes", Region: "brazil", Quantity: 1000, Price: 34.90, IsActive: false},
	}
	for _, p := range seed {
		_, err := store.Create(ctx, p)
		require.NoError(t, err)
	}

	t.Run("ListOrdersByNetworkTypeQuantity", func(t *testing.T) {
		all, err := store.List(ctx, models.ProductFilter{})
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, "IG BR 100", all[0].Name)
		assert.Equal(t, 500, all[1].Quantity)
		assert.Equal(t, "tiktok", all[3].Network)
	})

	t.Run("FilterIsCaseInsensitive", func(t *testing.T) {
		network := "Instagram"
		region := "BRAZIL"
		got, err := store.List(ctx, models.ProductFilter{Network: &network, Region: &region})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("FilterByActive", func(t *testing.T) {
		got, err := store.List(ctx, models.ProductFilter{IsActive: utils.ToPtr(false)})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "TT 1000", got[0].Name)
	})

	t.Run("ByServiceKeySkipsInactive", func(t *testing.T) {
		got, err := store.ByServiceKey(ctx, "TIKTOK-LIKES-1000-BRAZIL")
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = store.ByServiceKey(ctx, "instagram-followers-500-brazil")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 59.90, got.Price)
	})

	t.Run("UpdateAndDelete", func(t *testing.T) {
		target, err := store.ByServiceKey(ctx, "instagram-followers-100-brazil")
		require.NoError(t, err)
		require.NotNil(t, target)

		updated, err := store.Update(ctx, target.ID, models.ProductPatch{Price: utils.ToPtr(24.90)})
		require.NoError(t, err)
		assert.Equal(t, 24.90, updated.Price)

		require.NoError(t, store.Delete(ctx, target.ID))
		gone, err := store.ByID(ctx, target.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("DeleteMissingIsNoop", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "no-such-id"))
	})

	t.Run("ReturnsCopies", func(t *testing.T) {
		got, err := store.List(ctx, models.ProductFilter{})
		require.NoError(t, err)
		require.NotEmpty(t, got)
		got[0].Price = -1

		again, err := store.List(ctx, models.ProductFilter{})
		require.NoError(t, err)
		assert.NotEqual(t, -1.0, again[0].Price)
	})
}
