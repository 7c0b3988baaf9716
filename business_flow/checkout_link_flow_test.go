package businessflow

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinitros/viralizei-plataforma/repository"
	"github.com/kinitros/viralizei-plataforma/utils"
)

func newCheckoutFixture(t *testing.T, env map[string]string) (CheckoutLinkFlow, *repository.CheckoutStore) {
	t.Helper()
	store := repository.NewCheckoutStore(filepath.Join(t.TempDir(), "checkout.json"))
	return NewCheckoutLinkFlow(store, env), store
}

func TestCheckoutResolveStoreWinsOverEnv(t *testing.T) {
	flow, store := newCheckoutFixture(t, map[string]string{
		"CHECKOUT_INSTAGRAM_FOLLOWERS_BR_500": "https://env.example.com/ig-500",
	})
	store.Set("instagram.followers.br.500", "https://admin.example.com/ig-500")

	url, source, err := flow.Resolve(context.Background(), "instagram.followers.br", utils.ToPtr(500))
	require.NoError(t, err)
	assert.Equal(t, "https://admin.example.com/ig-500", url)
	assert.Equal(t, CheckoutSourceAdmin, source)
}

func TestCheckoutResolveStoreDefaultFallback(t *testing.T) {
	flow, store := newCheckoutFixture(t, map[string]string{
		"CHECKOUT_INSTAGRAM_FOLLOWERS_BR_DEFAULT": "https://env.example.com/ig-any",
	})
	store.Set("instagram.followers.br.default", "https://admin.example.com/ig-any")

	url, source, err := flow.Resolve(context.Background(), "instagram.followers.br", utils.ToPtr(501))
	require.NoError(t, err)
	assert.Equal(t, "https://admin.example.com/ig-any", url)
	assert.Equal(t, CheckoutSourceAdmin, source)
}

func TestCheckoutResolveEnvFallbacks(t *testing.T) {
	flow, _ := newCheckoutFixture(t, map[string]string{
		"CHECKOUT_TIKTOK_VIEWS_10000":  "https://env.example.com/tt-10k",
		"CHECKOUT_TIKTOK_VIEWS_DEFAULT": "https://env.example.com/tt-any",
	})

	t.Run("SpecificQuantity", func(t *testing.T) {
		url, source, err := flow.Resolve(context.Background(), "tiktok.views", utils.ToPtr(10000))
		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com/tt-10k", url)
		assert.Equal(t, CheckoutSourceEnv, source)
	})

	t.Run("DefaultWhenQuantityUnknown", func(t *testing.T) {
		url, _, err := flow.Resolve(context.Background(), "tiktok.views", utils.ToPtr(777))
		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com/tt-any", url)
	})

	t.Run("DefaultWhenNoQuantity", func(t *testing.T) {
		url, _, err := flow.Resolve(context.Background(), "tiktok.views", nil)
		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com/tt-any", url)
	})
}

func TestCheckoutResolveErrors(t *testing.T) {
	flow, _ := newCheckoutFixture(t, nil)

	_, _, err := flow.Resolve(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrCheckoutKeyRequired)

	_, _, err = flow.Resolve(context.Background(), "x.y", utils.ToPtr(10))
	assert.ErrorIs(t, err, ErrCheckoutLinkNotConfigured)
}

func TestCheckoutOverrideLifecycle(t *testing.T) {
	ctx := context.Background()
	flow, _ := newCheckoutFixture(t, nil)

	links, err := flow.SetOverride(ctx, "instagram.likes.br", utils.ToPtr(500), "https://admin.example.com/likes-500")
	require.NoError(t, err)
	assert.Equal(t, "https://admin.example.com/likes-500", links["instagram.likes.br.500"])

	links, err = flow.SetOverride(ctx, "instagram.likes.br", nil, "https://admin.example.com/likes-any")
	require.NoError(t, err)
	assert.Equal(t, "https://admin.example.com/likes-any", links["instagram.likes.br.default"])

	all, err := flow.Overrides(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	links, err = flow.DeleteOverride(ctx, "instagram.likes.br", utils.ToPtr(500))
	require.NoError(t, err)
	assert.NotContains(t, links, "instagram.likes.br.500")

	_, err = flow.DeleteOverride(ctx, "instagram.likes.br", utils.ToPtr(500))
	assert.ErrorIs(t, err, ErrCheckoutOverrideNotFound)
}

func TestCheckoutOverrideValidation(t *testing.T) {
	ctx := context.Background()
	flow, _ := newCheckoutFixture(t, nil)

	_, err := flow.SetOverride(ctx, "", nil, "https://example.com")
	assert.ErrorIs(t, err, ErrCheckoutOverrideIncomplete)

	_, err = flow.SetOverride(ctx, "x.y", nil, "")
	assert.ErrorIs(t, err, ErrCheckoutOverrideIncomplete)

	_, err = flow.DeleteOverride(ctx, "", nil)
	assert.ErrorIs(t, err, ErrCheckoutKeyRequired)
}
