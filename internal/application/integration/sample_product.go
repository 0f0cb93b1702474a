package integration

import (
	"github.com/catalogsync/backend/internal/domain/integration"
)

// SampleProduct returns the fixed listing used to check marketplace
// connectivity. It is built fresh on every call.
func SampleProduct() integration.MarketplaceProduct {
	sku := "TEST-001"
	brand := "Teste Brand"
	return integration.MarketplaceProduct{
		Title:       "Produto Teste - Nuvem Shop para TikTok",
		Description: "Este é um produto de teste da integração Nuvem Shop -> TikTok",
		Images:      []string{"https://via.placeholder.com/300x300?text=Produto+Teste"},
		Price:       99.99,
		Inventory:   10,
		SKU:         &sku,
		Brand:       &brand,
		PriceKnown:  true,
	}
}
