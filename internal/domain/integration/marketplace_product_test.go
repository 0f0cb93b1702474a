package integration

import (
	"encoding/json"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestTransformProduct_Title(t *testing.T) {
	tests := []struct {
		name     string
		product  SourceProduct
		expected string
	}{
		{"plain name", SourceProduct{Name: PlainText("Caneca")}, "Caneca"},
		{"empty plain name kept", SourceProduct{Name: PlainText("")}, ""},
		{"english wins over spanish", SourceProduct{Name: Localized(map[LanguageCode]string{"en": "E", "es": "S"})}, "E"},
		{"portuguese wins", SourceProduct{Name: Localized(map[LanguageCode]string{"pt": "P", "en": "E"})}, "P"},
		{"empty mapping", SourceProduct{Name: Localized(map[LanguageCode]string{})}, NoNameSentinel},
		{"absent name", SourceProduct{}, NoNameSentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TransformProduct(tt.product).Title)
		})
	}
}

func TestTransformProduct_Description(t *testing.T) {
	tests := []struct {
		name     string
		product  SourceProduct
		expected string
	}{
		{"absent description", SourceProduct{}, NoDescriptionSentinel},
		{"plain description", SourceProduct{Description: PlainText("<p>Algodão</p>")}, "<p>Algodão</p>"},
		{"spanish only", SourceProduct{Description: Localized(map[LanguageCode]string{"es": "Algodón"})}, "Algodón"},
		{"no known language", SourceProduct{Description: Localized(map[LanguageCode]string{"de": "x"})}, NoDescriptionSentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TransformProduct(tt.product).Description)
		})
	}
}

func TestTransformProduct_Price(t *testing.T) {
	tests := []struct {
		name      string
		price     PriceText
		expected  float64
		wantKnown bool
	}{
		{"decimal string", PriceOf("19.99"), 19.99, true},
		{"integer string", PriceOf("100"), 100, true},
		{"surrounding spaces", PriceOf(" 5.50 "), 5.5, true},
		{"zero is a known price", PriceOf("0"), 0, true},
		{"absent", PriceText{}, 0, false},
		{"unparseable", PriceOf("abc"), 0, false},
		{"empty string", PriceOf(""), 0, false},
		{"overflows float64", PriceOf("1e400"), 0, false},
		{"overflows float64 negative", PriceOf("-1e400"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := TransformProduct(SourceProduct{Price: tt.price})
			assert.Equal(t, tt.expected, out.Price)
			assert.Equal(t, tt.wantKnown, out.PriceKnown)
		})
	}
}

func TestTransformProduct_ImagesInventoryAndPassthrough(t *testing.T) {
	p := SourceProduct{
		Images: []ProductImage{{Src: "https://cdn/a.jpg"}, {Src: "https://cdn/b.jpg"}},
		Stock:  ptr(int64(7)),
		SKU:    ptr("SKU-1"),
		Brand:  ptr("Brand"),
	}

	out := TransformProduct(p)

	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}, out.Images)
	assert.Equal(t, int64(7), out.Inventory)
	require.NotNil(t, out.SKU)
	assert.Equal(t, "SKU-1", *out.SKU)
	require.NotNil(t, out.Brand)
	assert.Equal(t, "Brand", *out.Brand)
	assert.Nil(t, out.CategoryID)

	*p.SKU = "mutated"
	assert.Equal(t, "SKU-1", *out.SKU, "sku is copied, not aliased")
}

func TestTransformProduct_MissingOptionalFields(t *testing.T) {
	out := TransformProduct(SourceProduct{})

	assert.NotNil(t, out.Images)
	assert.Empty(t, out.Images)
	assert.Equal(t, int64(0), out.Inventory)
	assert.Nil(t, out.SKU)
	assert.Nil(t, out.Brand)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Produto sem nome",
		"description": "Sem descrição",
		"images": [],
		"price": 0,
		"inventory": 0
	}`, string(data))
}

func TestTransformProduct_Serialization(t *testing.T) {
	out := TransformProduct(SourceProduct{
		Name:  PlainText("Mug"),
		Price: PriceOf("12.50"),
		SKU:   ptr("M-1"),
	})

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Mug",
		"description": "Sem descrição",
		"images": [],
		"price": 12.5,
		"inventory": 0,
		"sku": "M-1"
	}`, string(data))
}

func TestTransformProduct_IsDeterministic(t *testing.T) {
	faker := gofakeit.New(7)

	for i := 0; i < 100; i++ {
		p := SourceProduct{
			ID:          ProductID(faker.UUID()),
			Name:        Localized(map[LanguageCode]string{"en": faker.ProductName(), "es": faker.ProductName()}),
			Description: PlainText(faker.ProductDescription()),
			Images:      []ProductImage{{Src: faker.URL()}},
			Price:       PriceOf(faker.DigitN(3) + ".99"),
			Stock:       ptr(int64(faker.IntRange(0, 500))),
		}

		first := TransformProduct(p)
		second := TransformProduct(p)
		assert.Equal(t, first, second)
	}
}
