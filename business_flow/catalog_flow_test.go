package businessflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinitros/viralizei-plataforma/models"
	"github.com/kinitros/viralizei-plataforma/repository"
	"github.com/kinitros/viralizei-plataforma/utils"
)

func TestCatalogCreate(t *testing.T) {
	ctx := context.Background()
	flow := NewCatalogFlow(repository.NewMemoryProductStore())

	t.Run("DerivesKeyNameAndRegion", func(t *testing.T) {
		created, err := flow.Create(ctx, &models.Product{
			Network:     "Instagram",
			ServiceType: "Followers",
			Quantity:    500,
			Price:       59.90,
			IsActive:    true,
		})
		require.NoError(t, err)
		assert.Equal(t, "instagram", created.Network)
		assert.Equal(t, "worldwide", created.Region)
		assert.Equal(t, "instagram-followers-500-worldwide", created.ServiceKey)
		assert.Equal(t, "Instagram Followers worldwide - 500", created.Name)
	})

	t.Run("KeySlugStripsOddCharacters", func(t *testing.T) {
		created, err := flow.Create(ctx, &models.Product{
			Network:     "Tik Tok",
			ServiceType: "views!",
			Region:      "Brazil",
			Quantity:    1000,
			Price:       9.90,
		})
		require.NoError(t, err)
		assert.Equal(t, "tiktok-views-1000-brazil", created.ServiceKey)
	})

	t.Run("ExplicitKeyKeptLowercased", func(t *testing.T) {
		created, err := flow.Create(ctx, &models.Product{
			Name:        "Custom",
			ServiceKey:  "Legacy.Bundle",
			Network:     "bundle",
			ServiceType: "mixed",
			Quantity:    10,
			Price:       1,
		})
		require.NoError(t, err)
		assert.Equal(t, "legacy.bundle", created.ServiceKey)
	})

	t.Run("RequiredFields", func(t *testing.T) {
		for _, p := range []*models.Product{
			{ServiceType: "views", Quantity: 10, Price: 1},
			{Network: "tiktok", Quantity: 10, Price: 1},
			{Network: "tiktok", ServiceType: "views", Price: 1},
			{Network: "tiktok", ServiceType: "views", Quantity: 10},
		} {
			_, err := flow.Create(ctx, p)
			assert.ErrorIs(t, err, ErrProductFieldsRequired)
		}
	})
}

func TestCatalogGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryProductStore()
	flow := NewCatalogFlow(store)

	created, err := flow.Create(ctx, &models.Product{
		Network:     "youtube",
		ServiceType: "views",
		Quantity:    5000,
		Price:       49.90,
		IsActive:    true,
	})
	require.NoError(t, err)

	got, err := flow.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = flow.Get(ctx, "no-such-id")
	assert.ErrorIs(t, err, ErrProductNotFound)

	updated, err := flow.Update(ctx, created.ID, models.ProductPatch{Price: utils.ToPtr(44.90)})
	require.NoError(t, err)
	assert.Equal(t, 44.90, updated.Price)

	_, err = flow.Update(ctx, "no-such-id", models.ProductPatch{})
	assert.ErrorIs(t, err, ErrProductNotFound)

	require.NoError(t, flow.Delete(ctx, created.ID))
	assert.ErrorIs(t, flow.Delete(ctx, created.ID), ErrProductNotFound)
}

func TestCatalogByServiceKey(t *testing.T) {
	ctx := context.Background()
	flow := NewCatalogFlow(repository.NewMemoryProductStore())

	created, err := flow.Create(ctx, &models.Product{
		Network:     "twitter",
		ServiceType: "likes",
		Quantity:    500,
		Price:       24.90,
		IsActive:    true,
	})
	require.NoError(t, err)

	got, err := flow.ByServiceKey(ctx, "twitter-likes-500-worldwide")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	missing, err := flow.ByServiceKey(ctx, "nobody-home")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
