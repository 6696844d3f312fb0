package orderitem

import (
	"time"

	"github.com/ngocdai99/furniture-backend/internal/service/models/currency"
)

// OrderItem represents one line within an order. The unit price is captured
// at order time and never re-read from the product afterwards.
type OrderItem struct {
	ID            int64             `json:"id"`
	OrderID       int64             `json:"orderId"`
	ProductID     int64             `json:"productId"`
	OptionID      *int64            `json:"optionId,omitempty"`
	Quantity      int               `json:"quantity"`
	PriceCents    int64             `json:"priceCents"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
