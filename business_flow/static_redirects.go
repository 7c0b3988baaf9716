package businessflow

// StaticRedirect is a compile-time redirect entry. Quantity nil applies the
// entry to every quantity without a more specific match.
type StaticRedirect struct {
	ServiceKey  string
	Quantity    *int
	URL         string
	Description string
}

func qty(n int) *int { return &n }

// staticRedirects seeds the override lookup for deployments that never
// configure a storage backend. Stored links always win over these.
var staticRedirects = []StaticRedirect{
	{ServiceKey: "instagram.followers.br", Quantity: qty(500), URL: "https://seulink.com/instagram-500-seguidores-br", Description: "500 Seguidores Brasileiros Instagram"},
	{ServiceKey: "instagram.followers.br", Quantity: qty(1000), URL: "https://seulink.com/instagram-1000-seguidores-br", Description: "1000 Seguidores Brasileiros Instagram"},
	{ServiceKey: "instagram.followers.br", Quantity: qty(2000), URL: "https://seulink.com/instagram-2000-seguidores-br", Description: "2000 Seguidores Brasileiros Instagram"},

	{ServiceKey: "instagram.followers.world", Quantity: qty(1000), URL: "https://seulink.com/instagram-1000-seguidores-world", Description: "1000 Seguidores Mundiais Instagram"},
	{ServiceKey: "instagram.followers.world", Quantity: qty(2000), URL: "https://seulink.com/instagram-2000-seguidores-world", Description: "2000 Seguidores Mundiais Instagram"},

	{ServiceKey: "instagram.likes.br", Quantity: qty(500), URL: "https://seulink.com/instagram-500-curtidas-br", Description: "500 Curtidas Brasileiras Instagram"},
	{ServiceKey: "instagram.likes.br", Quantity: qty(1000), URL: "https://seulink.com/instagram-1000-curtidas-br", Description: "1000 Curtidas Brasileiras Instagram"},

	{ServiceKey: "tiktok.followers.br", Quantity: qty(1000), URL: "https://seulink.com/tiktok-1000-seguidores-br", Description: "1000 Seguidores TikTok Brasil"},
	{ServiceKey: "tiktok.views", Quantity: qty(10000), URL: "https://seulink.com/tiktok-10k-views", Description: "10.000 Views TikTok"},

	{ServiceKey: "youtube.subscribers", Quantity: qty(1000), URL: "https://seulink.com/youtube-1000-inscritos", Description: "1000 Inscritos YouTube"},
	{ServiceKey: "youtube.views", Quantity: qty(50000), URL: "https://seulink.com/youtube-50k-views", Description: "50.000 Views YouTube"},
}

// staticRedirectURL looks up the compile-time table, specific quantity first,
// then the catch-all entry.
func staticRedirectURL(serviceKey string, quantity int) string {
	for _, r := range staticRedirects {
		if r.ServiceKey == serviceKey && r.Quantity != nil && *r.Quantity == quantity {
			return r.URL
		}
	}
	for _, r := range staticRedirects {
		if r.ServiceKey == serviceKey && r.Quantity == nil {
			return r.URL
		}
	}
	return ""
}
