package order

import (
	"time"

	"github.com/ngocdai99/furniture-backend/internal/service/models/currency"
	"github.com/ngocdai99/furniture-backend/internal/service/models/option"
	"github.com/ngocdai99/furniture-backend/internal/service/models/user"
)

// GeneralInformation is the denormalized order header for read responses:
// the raw user reference is replaced with the user record itself.
type GeneralInformation struct {
	ID                 int64             `json:"id"`
	User               *user.User        `json:"user"`
	TotalPriceCents    int64             `json:"totalPriceCents"`
	TotalPriceCurrency currency.Currency `json:"totalPriceCurrency"`
	Status             Status            `json:"status"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// LineItemView is a denormalized order line: the product reference is
// resolved to the product name and the option reference to the full option.
type LineItemView struct {
	ID            int64             `json:"id"`
	ProductID     int64             `json:"productId"`
	ProductName   string            `json:"productName"`
	Option        *option.Option    `json:"option,omitempty"`
	Quantity      int               `json:"quantity"`
	PriceCents    int64             `json:"priceCents"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
}

// View combines an enriched order header with its enriched line items.
type View struct {
	GeneralInformation GeneralInformation `json:"generalInformation"`
	Details            []LineItemView     `json:"details"`
}
