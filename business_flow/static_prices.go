package businessflow

// staticPrices is the last pricing tier before the caller's fallback. Keys
// use catalog region tokens ("brazil", "worldwide"), prices are BRL.
var staticPrices = map[string]map[int]float64{
	"instagram.followers.brazil": {
		100: 19.90, 250: 34.90, 500: 59.90, 1000: 99.90, 2000: 179.90, 5000: 399.90,
	},
	"instagram.followers.worldwide": {
		500: 29.90, 1000: 49.90, 2000: 89.90, 5000: 189.90, 10000: 349.90,
	},
	"instagram.likes.brazil": {
		100: 9.90, 250: 19.90, 500: 29.90, 1000: 49.90,
	},
	"instagram.likes.worldwide": {
		500: 14.90, 1000: 24.90, 5000: 89.90,
	},
	"instagram.views.reels": {
		1000: 9.90, 5000: 29.90, 10000: 49.90, 50000: 149.90,
	},
	"instagram.views.stories": {
		500: 12.90, 1000: 19.90, 5000: 59.90,
	},
	"tiktok.followers.brazil": {
		500: 49.90, 1000: 79.90, 2000: 139.90, 5000: 299.90,
	},
	"tiktok.followers.worldwide": {
		1000: 39.90, 5000: 149.90, 10000: 269.90,
	},
	"tiktok.likes.brazil": {
		500: 19.90, 1000: 34.90, 5000: 119.90,
	},
	"tiktok.likes.worldwide": {
		1000: 19.90, 5000: 69.90,
	},
	"tiktok.views": {
		5000: 9.90, 10000: 16.90, 50000: 59.90, 100000: 99.90,
	},
	"youtube.subscribers": {
		500: 89.90, 1000: 159.90, 2000: 289.90, 5000: 649.90,
	},
	"youtube.likes": {
		500: 29.90, 1000: 49.90, 5000: 189.90,
	},
	"youtube.views": {
		5000: 49.90, 10000: 89.90, 50000: 349.90, 100000: 599.90,
	},
	"facebook.followers.worldwide": {
		1000: 39.90, 5000: 149.90,
	},
	"facebook.likes.worldwide": {
		500: 14.90, 1000: 24.90, 5000: 89.90,
	},
	"facebook.views": {
		10000: 29.90, 50000: 119.90,
	},
	"twitter.followers": {
		500: 49.90, 1000: 84.90, 5000: 349.90,
	},
	"twitter.likes": {
		500: 24.90, 1000: 39.90,
	},
	"twitter.views": {
		10000: 19.90, 50000: 79.90,
	},
	"kwai.followers.brazil": {
		1000: 59.90, 5000: 239.90,
	},
	"kwai.likes.brazil": {
		1000: 29.90, 5000: 109.90,
	},
	"kwai.views": {
		10000: 19.90, 50000: 79.90,
	},
}

// StaticPrice returns the table price for a catalog-form key and quantity.
// The second return is false when the table has no entry.
func StaticPrice(catalogKey string, quantity int) (float64, bool) {
	tiers, ok := staticPrices[catalogKey]
	if !ok {
		return 0, false
	}
	price, ok := tiers[quantity]
	return price, ok
}
