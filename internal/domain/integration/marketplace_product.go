package integration

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// NoNameSentinel is published when a product has no usable name
	NoNameSentinel = "Produto sem nome"
	// NoDescriptionSentinel is published when a product has no usable description
	NoDescriptionSentinel = "Sem descrição"
)

// MarketplaceProduct is the flat listing accepted by the marketplace
// product creation endpoint.
type MarketplaceProduct struct {
	// Title is never empty unless the store sent an empty plain name
	Title string `json:"title"`
	// Description of the listing
	Description string `json:"description"`
	// Images are image URLs in display order
	Images []string `json:"images"`
	// Price is the selling price
	Price float64 `json:"price"`
	// Inventory is the available quantity
	Inventory int64 `json:"inventory"`
	// CategoryID is the marketplace category; the transform leaves it unset
	CategoryID *string `json:"category_id,omitempty"`
	// SKU is copied from the store when present
	SKU *string `json:"sku,omitempty"`
	// Brand is copied from the store when present
	Brand *string `json:"brand,omitempty"`

	// PriceKnown is false when the store price was missing or unparseable
	// and Price holds the 0.0 fallback. It is not sent to the marketplace.
	PriceKnown bool `json:"-"`
}

// TransformProduct maps a store product to the marketplace schema. It is pure
// and never fails: missing or malformed fields turn into documented fallbacks.
func TransformProduct(p SourceProduct) MarketplaceProduct {
	price, known := parsePrice(p.Price)

	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.Src)
	}

	var inventory int64
	if p.Stock != nil {
		inventory = *p.Stock
	}

	return MarketplaceProduct{
		Title:       p.Name.Resolve(NoNameSentinel),
		Description: p.Description.Resolve(NoDescriptionSentinel),
		Images:      images,
		Price:       price,
		Inventory:   inventory,
		SKU:         copyString(p.SKU),
		Brand:       copyString(p.Brand),
		PriceKnown:  known,
	}
}

// parsePrice reads a base-10 decimal price. Missing or unparseable input
// yields 0.0 and false, as does a value outside the float64 range.
func parsePrice(p PriceText) (float64, bool) {
	text, ok := p.Value()
	if !ok {
		return 0, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
