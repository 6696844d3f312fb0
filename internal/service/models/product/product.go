package product

import (
	"github.com/ngocdai99/furniture-backend/internal/service/models/category"
	"github.com/ngocdai99/furniture-backend/internal/service/models/currency"
)

// Product represents a catalog product.
type Product struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	PriceCents    int64             `json:"priceCents"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
	Images        []string          `json:"images"`
	Rating        float64           `json:"rating"`
	Voting        int               `json:"voting"`
	Quantity      int               `json:"quantity"`
	CategoryID    int64             `json:"categoryId"`

	// Category is populated on enriched reads only.
	Category *category.Category `json:"category,omitempty"`
}
