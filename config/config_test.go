package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data/redirect-links.json", cfg.Storage.LinkFilePath)
	assert.Equal(t, "data/checkout.json", cfg.Storage.CheckoutFilePath)
	assert.Equal(t, 12*time.Hour, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.NotNil(t, cfg.Checkout.EnvLinks)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Security.AllowedOrigins)
}

func TestCheckoutEnvSnapshot(t *testing.T) {
	t.Setenv("CHECKOUT_INSTAGRAM_FOLLOWERS_BR_500", "https://env.example.com/ig-500")
	t.Setenv("CHECKOUT_EMPTY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/ig-500", cfg.Checkout.EnvLinks["CHECKOUT_INSTAGRAM_FOLLOWERS_BR_500"])
	assert.NotContains(t, cfg.Checkout.EnvLinks, "CHECKOUT_EMPTY")
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	t.Run("BadPort", func(t *testing.T) {
		bad := *cfg
		bad.Server.Port = 0
		assert.Error(t, Validate(&bad))
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		bad := *cfg
		bad.Storage.Backend = "cassandra"
		assert.Error(t, Validate(&bad))
	})

	t.Run("FileLoggingNeedsPath", func(t *testing.T) {
		bad := *cfg
		bad.Logging.Output = "file"
		bad.Logging.FilePath = ""
		assert.Error(t, Validate(&bad))
	})
}

func TestDatabaseDSN(t *testing.T) {
	dsn := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres", Password: "pw",
		Name: "viralizei", SSLMode: "disable",
	}.DSN()
	assert.Equal(t, "host=localhost port=5432 user=postgres password=pw dbname=viralizei sslmode=disable", dsn)
}
