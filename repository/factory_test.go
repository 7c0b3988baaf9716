package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryBackendSelection(t *testing.T) {
	t.Run("Memory", func(t *testing.T) {
		f := NewFactory(FactoryConfig{Backend: "memory"})
		assert.Equal(t, "memory", f.Backend())
		assert.IsType(t, &MemoryLinkStore{}, f.Links())
		assert.IsType(t, &MemoryProductStore{}, f.Products())
	})

	t.Run("File", func(t *testing.T) {
		f := NewFactory(FactoryConfig{
			Backend:      "file",
			LinkFilePath: filepath.Join(t.TempDir(), "links.json"),
		})
		assert.Equal(t, "file", f.Backend())
		assert.IsType(t, &FileLinkStore{}, f.Links())
		assert.IsType(t, &MemoryProductStore{}, f.Products())
	})

	t.Run("Supabase", func(t *testing.T) {
		f := NewFactory(FactoryConfig{
			Backend:     "supabase",
			SupabaseURL: "https://project.supabase.co",
			SupabaseKey: "service-role-key",
		})
		assert.Equal(t, "supabase", f.Backend())
		assert.IsType(t, &SupabaseLinkStore{}, f.Links())
		assert.IsType(t, &SupabaseProductStore{}, f.Products())
	})

	t.Run("SupabaseWithoutCredsDowngrades", func(t *testing.T) {
		f := NewFactory(FactoryConfig{
			Backend:      "supabase",
			LinkFilePath: filepath.Join(t.TempDir(), "links.json"),
		})
		assert.Equal(t, "file", f.Backend())
	})

	t.Run("PostgresWithoutConnectionDowngrades", func(t *testing.T) {
		f := NewFactory(FactoryConfig{
			Backend:      "postgres",
			LinkFilePath: filepath.Join(t.TempDir(), "links.json"),
		})
		assert.Equal(t, "file", f.Backend())
	})

	t.Run("AutoDetectPrefersSupabase", func(t *testing.T) {
		f := NewFactory(FactoryConfig{
			SupabaseURL: "https://project.supabase.co",
			SupabaseKey: "service-role-key",
		})
		assert.Equal(t, "supabase", f.Backend())
	})

	t.Run("AutoDetectFallsBackToFile", func(t *testing.T) {
		f := NewFactory(FactoryConfig{
			LinkFilePath: filepath.Join(t.TempDir(), "links.json"),
		})
		assert.Equal(t, "file", f.Backend())
	})
}

func TestFactoryMemoization(t *testing.T) {
	f := NewFactory(FactoryConfig{Backend: "memory"})

	first := f.Links()
	second := f.Links()
	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Same(t, f.Products(), f.Products())
}

func TestFactoryReset(t *testing.T) {
	f := NewFactory(FactoryConfig{Backend: "memory"})
	before := f.Links()
	require.Equal(t, "memory", f.Backend())

	f.Reset(FactoryConfig{
		Backend:      "file",
		LinkFilePath: filepath.Join(t.TempDir(), "links.json"),
	})

	assert.Equal(t, "file", f.Backend())
	assert.NotSame(t, before, f.Links())
}
