package option

import (
	"github.com/ngocdai99/furniture-backend/internal/service/models/currency"
)

// Option represents a purchasable variant of a product (color, finish) with
// its own price.
type Option struct {
	ID            int64             `json:"id"`
	ProductID     int64             `json:"productId"`
	ColorID       int64             `json:"colorId"`
	OptionName    string            `json:"optionName"`
	PriceCents    int64             `json:"priceCents"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
}
