package businessflow

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceDescriptorKey(t *testing.T) {
	assert.Equal(t, "instagram.followers.br", ServiceDescriptor{Platform: "instagram", ServiceType: "followers", Region: "br"}.Key())
	assert.Equal(t, "youtube.views", ServiceDescriptor{Platform: "youtube", ServiceType: "views"}.Key())
	assert.Equal(t, "legacy.key", ServiceDescriptor{Platform: "instagram", ServiceType: "followers", CustomKey: "legacy.key"}.Key())
}

func TestParseServiceKey(t *testing.T) {
	network, serviceType, region := ParseServiceKey("instagram.followers.br")
	assert.Equal(t, "instagram", network)
	assert.Equal(t, "followers", serviceType)
	assert.Equal(t, "brazil", region)

	network, serviceType, region = ParseServiceKey("tiktok.followers.world")
	assert.Equal(t, "tiktok", network)
	assert.Equal(t, "followers", serviceType)
	assert.Equal(t, "worldwide", region)

	network, serviceType, region = ParseServiceKey("youtube.views")
	assert.Equal(t, "youtube", network)
	assert.Equal(t, "views", serviceType)
	assert.Empty(t, region)

	// Region tokens outside the alias table pass through unchanged.
	_, _, region = ParseServiceKey("instagram.views.reels")
	assert.Equal(t, "reels", region)
}

func TestNormalizeCatalogKey(t *testing.T) {
	assert.Equal(t, "instagram.followers.brazil", normalizeCatalogKey("instagram.followers.br"))
	assert.Equal(t, "tiktok.likes.worldwide", normalizeCatalogKey("tiktok.likes.world"))
	assert.Equal(t, "youtube.views", normalizeCatalogKey("youtube.views"))

	// Region tokens are rewritten only in the region segment.
	assert.Equal(t, "instagram.branded", normalizeCatalogKey("instagram.branded"))
	assert.Equal(t, "instagram.views.stories", normalizeCatalogKey("instagram.views.stories"))
}

func TestPlatform(t *testing.T) {
	assert.Equal(t, "instagram", Platform("instagram.followers.br"))
	assert.Equal(t, "kwai", Platform("kwai"))
}

func TestServiceMap(t *testing.T) {
	assert.True(t, IsServiceMapped("instagram.followers.br"))
	assert.True(t, IsServiceMapped("youtube.subscribers"))
	assert.False(t, IsServiceMapped("instagram.followers"))
	assert.False(t, IsServiceMapped("myspace.friends"))

	services := AvailableServices()
	require.NotEmpty(t, services)
	assert.True(t, sort.StringsAreSorted(services))
	assert.Contains(t, services, "tiktok.views")
}
