package dto

// CheckoutLinkResponse is the public link resolution payload.
type CheckoutLinkResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Source  string `json:"source,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SetCheckoutOverrideRequest stores an admin checkout override.
type SetCheckoutOverrideRequest struct {
	Key string `json:"key" validate:"required,min=3,max=128"`
	Qty *int   `json:"qty" validate:"omitempty,gt=0"`
	URL string `json:"url" validate:"required,url"`
}

// DeleteCheckoutOverrideRequest removes an admin checkout override.
type DeleteCheckoutOverrideRequest struct {
	Key string `json:"key" validate:"required,min=3,max=128"`
	Qty *int   `json:"qty" validate:"omitempty,gt=0"`
}

// CheckoutOverridesResponse mirrors the stored override document.
type CheckoutOverridesResponse struct {
	Links map[string]string `json:"links"`
}

// AdminLoginRequest exchanges the shared admin secret for a session token.
type AdminLoginRequest struct {
	Password string `json:"password" validate:"required,min=1"`
}

// AdminLoginResponse carries the issued admin JWT.
type AdminLoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// ResolvePurchaseRequest asks for the checkout destination of a service.
type ResolvePurchaseRequest struct {
	Platform    string `json:"platform" validate:"required_without=CustomKey,omitempty,min=2,max=64"`
	ServiceType string `json:"serviceType" validate:"required_without=CustomKey,omitempty,min=2,max=64"`
	Region      string `json:"region" validate:"omitempty,max=64"`
	CustomKey   string `json:"customKey" validate:"omitempty,max=128"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	CustomURL   string `json:"customUrl" validate:"omitempty,max=2048"`
}

// ResolvePurchaseResponse is the resolved checkout destination.
type ResolvePurchaseResponse struct {
	URL        string   `json:"url"`
	External   bool     `json:"external"`
	Price      *float64 `json:"price,omitempty"`
	ServiceKey string   `json:"serviceKey"`
	Source     string   `json:"source"`
}
