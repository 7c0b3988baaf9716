package dto

import "encoding/json"

// CreateRedirectLinkRequest creates a custom redirect link. Quantity nil
// makes the link apply to every quantity.
type CreateRedirectLinkRequest struct {
	ServiceKey  string `json:"serviceKey" validate:"required,min=3,max=128"`
	Quantity    *int   `json:"quantity" validate:"omitempty,gt=0"`
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description" validate:"omitempty,max=256"`
	Active      *bool  `json:"active"`
}

// UpdateRedirectLinkRequest patches a redirect link. Only fields present in
// the request body are applied; QuantityPresent distinguishes "quantity":null
// from an absent quantity field.
type UpdateRedirectLinkRequest struct {
	ServiceKey      *string `json:"serviceKey" validate:"omitempty,min=3,max=128"`
	Quantity        *int    `json:"quantity" validate:"omitempty,gt=0"`
	QuantityPresent bool    `json:"-"`
	URL             *string `json:"url" validate:"omitempty,url"`
	Description     *string `json:"description" validate:"omitempty,max=256"`
	Active          *bool   `json:"active"`
}

// UnmarshalJSON records whether the quantity key appeared in the payload so
// a null can clear the quantity on an existing link.
func (r *UpdateRedirectLinkRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateRedirectLinkRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	*r = UpdateRedirectLinkRequest(a)
	_, r.QuantityPresent = probe["quantity"]
	return nil
}
