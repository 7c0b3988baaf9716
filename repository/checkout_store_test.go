package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkout.json")
	store := NewCheckoutStore(path)

	assert.Empty(t, store.Get("instagram.followers.br.500"))

	store.Set("instagram.followers.br.500", "https://pay.example.com/ig-500")
	store.Set("instagram.followers.br.default", "https://pay.example.com/ig-any")

	assert.Equal(t, "https://pay.example.com/ig-500", store.Get("instagram.followers.br.500"))

	all := store.All()
	assert.Len(t, all, 2)

	// All returns a copy, not the live map.
	all["instagram.followers.br.500"] = "tampered"
	assert.Equal(t, "https://pay.example.com/ig-500", store.Get("instagram.followers.br.500"))

	assert.True(t, store.Delete("instagram.followers.br.500"))
	assert.False(t, store.Delete("instagram.followers.br.500"))
	assert.Empty(t, store.Get("instagram.followers.br.500"))
}

func TestCheckoutStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkout.json")

	NewCheckoutStore(path).Set("tiktok.views.10000", "https://pay.example.com/tt-10k")

	reopened := NewCheckoutStore(path)
	assert.Equal(t, "https://pay.example.com/tt-10k", reopened.Get("tiktok.views.10000"))
}

func TestCheckoutStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkout.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewCheckoutStore(path)
	assert.Empty(t, store.Get("anything"))
	assert.Empty(t, store.All())
}
