package order

import (
	"time"

	"github.com/ngocdai99/furniture-backend/internal/service/models/currency"
	"github.com/ngocdai99/furniture-backend/internal/service/models/orderitem"
)

// Order represents an order header in the system.
type Order struct {
	ID                 int64                 `json:"id"`
	UserID             int64                 `json:"userId"`
	TotalPriceCents    int64                 `json:"totalPriceCents"`
	TotalPriceCurrency currency.Currency     `json:"totalPriceCurrency"`
	Status             Status                `json:"status"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
	OrderItems         []orderitem.OrderItem `json:"orderItems"`
}
