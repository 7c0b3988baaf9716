package businessflow

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackCheckoutData(t *testing.T) {
	packed := PackCheckoutData(CheckoutData{Key: "tiktok.views", Qty: "10000", Price: "16.9"})

	raw, err := base64.StdEncoding.DecodeString(packed)
	require.NoError(t, err)
	assert.Equal(t, "tiktok.views|10000|16.9", string(raw))
}

func TestPackCheckoutDataDefaults(t *testing.T) {
	packed := PackCheckoutData(CheckoutData{Key: "weird|key", Price: ""})

	data, ok := UnpackCheckoutData(packed)
	require.True(t, ok)
	assert.Equal(t, "weird-key", data.Key)
	assert.Equal(t, "0", data.Qty)
	assert.Empty(t, data.Price)
}

func TestUnpackCheckoutDataRoundTrip(t *testing.T) {
	original := CheckoutData{Key: "youtube.views", Qty: "5000", Price: "49.9"}

	data, ok := UnpackCheckoutData(PackCheckoutData(original))
	require.True(t, ok)
	assert.Equal(t, original, data)
}

func TestUnpackCheckoutDataRejectsGarbage(t *testing.T) {
	_, ok := UnpackCheckoutData("not base64 at all!!!")
	assert.False(t, ok)

	_, ok = UnpackCheckoutData(base64.StdEncoding.EncodeToString([]byte("missing|fields")))
	assert.False(t, ok)
}
