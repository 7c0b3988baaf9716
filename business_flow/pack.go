package businessflow

import (
	"encoding/base64"
	"strings"
)

// CheckoutData is the payload carried in generic checkout URLs. Price is ""
// when the destination page should resolve it on its own.
type CheckoutData struct {
	Key   string
	Qty   string
	Price string
}

// PackCheckoutData encodes the payload as base64("key|qty|price"). This is
// obfuscation for URL hygiene, not security; pipes in the key are replaced so
// the format stays parseable.
func PackCheckoutData(data CheckoutData) string {
	key := strings.ReplaceAll(data.Key, "|", "-")
	q := data.Qty
	if q == "" {
		q = "0"
	}
	raw := key + "|" + q + "|" + data.Price
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// UnpackCheckoutData decodes a packed payload. It returns false for anything
// that does not decode to at least three pipe-separated fields.
func UnpackCheckoutData(packed string) (CheckoutData, bool) {
	raw, err := base64.StdEncoding.DecodeString(packed)
	if err != nil {
		return CheckoutData{}, false
	}
	parts := strings.Split(string(raw), "|")
	if len(parts) < 3 {
		return CheckoutData{}, false
	}
	return CheckoutData{Key: parts[0], Qty: parts[1], Price: parts[2]}, true
}
