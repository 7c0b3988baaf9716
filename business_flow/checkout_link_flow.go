package businessflow

import (
	"context"
	"strconv"
	"strings"

	"github.com/kinitros/viralizei-plataforma/repository"
)

// CheckoutLinkSource tells a caller where a resolved URL came from.
const (
	CheckoutSourceAdmin = "admin"
	CheckoutSourceEnv   = "env"
)

// CheckoutLinkFlow resolves externally hosted checkout URLs and manages the
// admin override store behind them.
type CheckoutLinkFlow interface {
	// Resolve returns the checkout URL for a service key and optional
	// quantity. The admin store wins over environment configuration.
	// ErrCheckoutLinkNotConfigured when neither has an entry.
	Resolve(ctx context.Context, key string, qty *int) (url string, source string, err error)

	// Overrides returns the full admin store contents.
	Overrides(ctx context.Context) (map[string]string, error)

	// SetOverride stores a URL under "<key>.<qty>" or "<key>.default".
	SetOverride(ctx context.Context, key string, qty *int, url string) (map[string]string, error)

	// DeleteOverride removes an entry. ErrCheckoutOverrideNotFound when no
	// entry exists for the composed key.
	DeleteOverride(ctx context.Context, key string, qty *int) (map[string]string, error)
}

type CheckoutLinkFlowImpl struct {
	store *repository.CheckoutStore
	env   map[string]string
}

// NewCheckoutLinkFlow wires the override store and a snapshot of CHECKOUT_*
// environment entries, full variable name to URL.
func NewCheckoutLinkFlow(store *repository.CheckoutStore, env map[string]string) CheckoutLinkFlow {
	return &CheckoutLinkFlowImpl{store: store, env: env}
}

// composeCheckoutKey appends the quantity segment, "default" when absent.
func composeCheckoutKey(key string, qty *int) string {
	if qty != nil {
		return key + "." + strconv.Itoa(*qty)
	}
	return key + ".default"
}

// envCheckoutName maps a service key to its environment variable name,
// CHECKOUT_<KEY>_<QTY> with dots turned into underscores.
func envCheckoutName(key string, qty *int) string {
	base := "CHECKOUT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if qty != nil {
		return base + "_" + strconv.Itoa(*qty)
	}
	return base + "_DEFAULT"
}

func (f *CheckoutLinkFlowImpl) Resolve(ctx context.Context, key string, qty *int) (string, string, error) {
	if key == "" {
		return "", "", ErrCheckoutKeyRequired
	}

	if url := f.store.Get(composeCheckoutKey(key, qty)); url != "" {
		return url, CheckoutSourceAdmin, nil
	}
	if qty != nil {
		if url := f.store.Get(composeCheckoutKey(key, nil)); url != "" {
			return url, CheckoutSourceAdmin, nil
		}
	}

	if qty != nil {
		if url := f.env[envCheckoutName(key, qty)]; url != "" {
			return url, CheckoutSourceEnv, nil
		}
	}
	if url := f.env[envCheckoutName(key, nil)]; url != "" {
		return url, CheckoutSourceEnv, nil
	}

	return "", "", ErrCheckoutLinkNotConfigured
}

func (f *CheckoutLinkFlowImpl) Overrides(ctx context.Context) (map[string]string, error) {
	return f.store.All(), nil
}

func (f *CheckoutLinkFlowImpl) SetOverride(ctx context.Context, key string, qty *int, url string) (map[string]string, error) {
	if key == "" || url == "" {
		return nil, ErrCheckoutOverrideIncomplete
	}
	f.store.Set(composeCheckoutKey(key, qty), url)
	return f.store.All(), nil
}

func (f *CheckoutLinkFlowImpl) DeleteOverride(ctx context.Context, key string, qty *int) (map[string]string, error) {
	if key == "" {
		return nil, ErrCheckoutKeyRequired
	}
	if !f.store.Delete(composeCheckoutKey(key, qty)) {
		return nil, ErrCheckoutOverrideNotFound
	}
	return f.store.All(), nil
}
