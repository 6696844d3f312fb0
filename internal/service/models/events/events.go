package events

import "time"

// Event types published through the outbox.
const (
	TypeOrderCreated = "order.created"
)

// Queue names.
const (
	QueueOrderCreated = "furniture.order.created"
)

// OrderCreated is the payload published when an order and its line items have
// been committed.
type OrderCreated struct {
	Type            string    `json:"type"`
	OrderID         int64     `json:"orderId"`
	UserID          int64     `json:"userId"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	Currency        string    `json:"currency"`
	ItemCount       int       `json:"itemCount"`
	CreatedAt       time.Time `json:"createdAt"`
}
