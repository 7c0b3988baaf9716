package businessflow

import (
	"sort"
	"strings"
)

// ServiceDescriptor identifies a sellable service. CustomKey bypasses
// composition entirely for keys that do not follow the dotted pattern.
type ServiceDescriptor struct {
	Platform    string
	ServiceType string
	Region      string
	CustomKey   string
}

// Key composes the dotted service key, "platform.type" or
// "platform.type.region".
func (d ServiceDescriptor) Key() string {
	if d.CustomKey != "" {
		return d.CustomKey
	}
	parts := []string{d.Platform, d.ServiceType}
	if d.Region != "" {
		parts = append(parts, d.Region)
	}
	return strings.Join(parts, ".")
}

// serviceKeyMap holds every key the storefront sells. Keys absent from this
// map cannot be resolved to a checkout destination.
var serviceKeyMap = map[string]string{
	"instagram.followers.br":    "instagram.followers.br",
	"instagram.followers.world": "instagram.followers.world",
	"instagram.likes.br":        "instagram.likes.br",
	"instagram.likes.world":     "instagram.likes.world",
	"instagram.views.reels":     "instagram.views.reels",
	"instagram.views.stories":   "instagram.views.stories",

	"tiktok.followers.br":    "tiktok.followers.br",
	"tiktok.followers.world": "tiktok.followers.world",
	"tiktok.likes.br":        "tiktok.likes.br",
	"tiktok.likes.world":     "tiktok.likes.world",
	"tiktok.views":           "tiktok.views",

	"youtube.subscribers": "youtube.subscribers",
	"youtube.likes":       "youtube.likes",
	"youtube.views":       "youtube.views",

	"facebook.followers.world": "facebook.followers.world",
	"facebook.likes.world":     "facebook.likes.world",
	"facebook.views":           "facebook.views",

	"twitter.followers": "twitter.followers",
	"twitter.likes":     "twitter.likes",
	"twitter.views":     "twitter.views",

	"kwai.followers.br": "kwai.followers.br",
	"kwai.likes.br":     "kwai.likes.br",
	"kwai.views":        "kwai.views",
}

// IsServiceMapped reports whether the storefront sells the given key.
func IsServiceMapped(serviceKey string) bool {
	_, ok := serviceKeyMap[serviceKey]
	return ok
}

// AvailableServices lists every sellable service key, sorted.
func AvailableServices() []string {
	keys := make([]string, 0, len(serviceKeyMap))
	for k := range serviceKeyMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// mapRegion translates the region token of a service key into the region
// column of the product catalog.
func mapRegion(region string) string {
	switch region {
	case "world":
		return "worldwide"
	case "br":
		return "brazil"
	default:
		return region
	}
}

// ParseServiceKey splits a dotted service key into the catalog filter fields.
// The region segment is optional and comes back empty when absent.
func ParseServiceKey(serviceKey string) (network, serviceType, region string) {
	parts := strings.Split(serviceKey, ".")
	if len(parts) > 0 {
		network = parts[0]
	}
	if len(parts) > 1 {
		serviceType = parts[1]
	}
	if len(parts) > 2 {
		region = mapRegion(parts[2])
	}
	return network, serviceType, region
}

// normalizeCatalogKey rewrites the region segment of a service key into
// catalog form for the static price table. Only the third segment is a
// region; the other segments pass through untouched.
func normalizeCatalogKey(serviceKey string) string {
	parts := strings.Split(serviceKey, ".")
	if len(parts) > 2 {
		parts[2] = mapRegion(parts[2])
	}
	return strings.Join(parts, ".")
}

// Platform returns the first segment of a service key.
func Platform(serviceKey string) string {
	if i := strings.Index(serviceKey, "."); i >= 0 {
		return serviceKey[:i]
	}
	return serviceKey
}
