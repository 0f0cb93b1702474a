package integration

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ---------------------------------------------------------------------------
// SourceProduct
// ---------------------------------------------------------------------------

// SourceProduct is a product record as listed by the store platform.
// Optional fields are pointers or variant types so that "absent" can be told
// apart from zero values.
type SourceProduct struct {
	// ID is the platform identifier (numeric on Tiendanube)
	ID ProductID `json:"id"`
	// Name is the product name, plain or per language
	Name LocalizedText `json:"name"`
	// Description is the product description, plain or per language
	Description LocalizedText `json:"description"`
	// Images are the product images in display order
	Images []ProductImage `json:"images,omitempty"`
	// Price is the decimal price as text
	Price PriceText `json:"price"`
	// Stock is the available quantity
	Stock *int64 `json:"stock,omitempty"`
	// Published marks the product as visible in the storefront
	Published Flag `json:"published"`
	// FreeShipping marks the product as eligible for free shipping
	FreeShipping Flag `json:"free_shipping"`
	// SKU is the merchant stock keeping unit
	SKU *string `json:"sku,omitempty"`
	// Brand is the product brand
	Brand *string `json:"brand,omitempty"`
}

// ProductImage is one image of a source product
type ProductImage struct {
	Src string `json:"src"`
}

// IsVisible reports whether the product belongs to the sync set: published
// and free shipping must both be the boolean true.
func (p SourceProduct) IsVisible() bool {
	return p.Published.IsTrue() && p.FreeShipping.IsTrue()
}

// FilterVisible returns the visible products, keeping their relative order.
func FilterVisible(products []SourceProduct) []SourceProduct {
	visible := make([]SourceProduct, 0, len(products))
	for _, p := range products {
		if p.IsVisible() {
			visible = append(visible, p)
		}
	}
	return visible
}

// ---------------------------------------------------------------------------
// Field types
// ---------------------------------------------------------------------------

// ProductID is a product identifier. It decodes from a JSON number or string.
type ProductID string

// UnmarshalJSON implements json.Unmarshaler
func (id *ProductID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*id = ProductID(n.String())
	return nil
}

// MarshalJSON writes integer identifiers as numbers and everything else as strings
func (id ProductID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String returns the identifier text
func (id ProductID) String() string {
	return string(id)
}

// Flag holds a raw JSON value that is only considered set when it is the
// literal true. Strings, numbers, null and missing values are all not true.
type Flag struct {
	raw json.RawMessage
}

// BoolFlag returns a Flag holding a JSON boolean
func BoolFlag(b bool) Flag {
	return Flag{raw: json.RawMessage(strconv.FormatBool(b))}
}

// IsTrue returns true only for the JSON literal true
func (f Flag) IsTrue() bool {
	return bytes.Equal(f.raw, []byte("true"))
}

// UnmarshalJSON implements json.Unmarshaler
func (f *Flag) UnmarshalJSON(data []byte) error {
	f.raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return nil
}

// MarshalJSON implements json.Marshaler
func (f Flag) MarshalJSON() ([]byte, error) {
	if len(f.raw) == 0 {
		return []byte("null"), nil
	}
	return f.raw, nil
}

// PriceText is an optional decimal price kept as text. It decodes from a JSON
// string or number; null or missing leaves it unset.
type PriceText struct {
	text string
	set  bool
}

// PriceOf returns a set PriceText
func PriceOf(text string) PriceText {
	return PriceText{text: text, set: true}
}

// Value returns the price text and whether it was present
func (p PriceText) Value() (string, bool) {
	return p.text, p.set
}

// UnmarshalJSON implements json.Unmarshaler
func (p *PriceText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		*p = PriceText{}
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*p = PriceOf(s)
	default:
		*p = PriceOf(string(trimmed))
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (p PriceText) MarshalJSON() ([]byte, error) {
	if !p.set {
		return []byte("null"), nil
	}
	return json.Marshal(p.text)
}
