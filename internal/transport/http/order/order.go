package order

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/ngocdai99/furniture-backend/internal/service/models/currency"
	ordermodel "github.com/ngocdai99/furniture-backend/internal/service/models/order"
	"github.com/ngocdai99/furniture-backend/internal/service/models/orderitem"
	"github.com/ngocdai99/furniture-backend/internal/transport/http/respond"
	"github.com/ngocdai99/furniture-backend/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, userID int64, items []orderitem.OrderItem) (*ordermodel.Order, error)
	GetOrderDetails(ctx context.Context, orderID int64) (*ordermodel.View, error)
	ListOrders(ctx context.Context, userID int64, status *ordermodel.Status) ([]ordermodel.View, error)
}

// itemInCreateOrderRequest represents one line in a create order request.
type itemInCreateOrderRequest struct {
	ProductID     int64  `json:"productId"     validate:"gt=0"`
	OptionID      *int64 `json:"optionId"`
	Quantity      int    `json:"quantity"      validate:"gt=0"`
	PriceCents    int64  `json:"priceCents"    validate:"gte=0"`
	PriceCurrency string `json:"priceCurrency" validate:"required"`
}

// toModel converts itemInCreateOrderRequest to orderitem.OrderItem.
func (r *itemInCreateOrderRequest) toModel() (*orderitem.OrderItem, error) {
	cur, err := currency.ParseCurrency(r.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &orderitem.OrderItem{
		ProductID:     r.ProductID,
		OptionID:      r.OptionID,
		Quantity:      r.Quantity,
		PriceCents:    r.PriceCents,
		PriceCurrency: cur,
	}, nil
}

// createOrderRequest represents a create order request. The total is never
// accepted from the client; the service computes it from the items.
type createOrderRequest struct {
	UserID int64                      `json:"userId" validate:"gt=0"`
	Items  []itemInCreateOrderRequest `json:"items"  validate:"required,min=1,dive"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// CreateOrder handles the place-order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderReq := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&orderReq); err != nil {
		respond.Validation(w, r, "invalid request body")

		return
	}

	if err := orderReq.Validate(); err != nil {
		respond.Validation(w, r, err.Error())

		return
	}

	items := make([]orderitem.OrderItem, len(orderReq.Items))
	for i, req := range orderReq.Items {
		model, err := req.toModel()
		if err != nil {
			respond.Validation(w, r, err.Error())

			return
		}
		items[i] = *model
	}

	created, err := service.CreateOrder(r.Context(), orderReq.UserID, items)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message": "Order placed successfully",
		"orderId": created.ID,
		"order":   created,
	})
}

type orderDetailsRequest struct {
	OrderID int64 `schema:"orderId"`
}

// OrderDetails handles the single-order detail request.
func OrderDetails(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &orderDetailsRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		respond.Validation(w, r, "invalid query parameters")

		return
	}

	view, err := service.GetOrderDetails(r.Context(), query.OrderID)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"generalInformation": view.GeneralInformation,
		"details":            view.Details,
	})
}

type listOrdersRequest struct {
	UserID int64  `schema:"userId"`
	Status string `schema:"status"`
}

// ListOrders handles the per-user order listing request. When userId is
// omitted the authenticated user's orders are listed.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &listOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		respond.Validation(w, r, "invalid query parameters")

		return
	}

	if query.UserID == 0 {
		if claims, ok := auth.FromContext(r.Context()); ok {
			query.UserID = claims.UserID
		}
	}

	var status *ordermodel.Status
	if query.Status != "" {
		parsed, err := ordermodel.ParseStatus(query.Status)
		if err != nil {
			respond.Validation(w, r, err.Error())

			return
		}
		status = &parsed
	}

	views, err := service.ListOrders(r.Context(), query.UserID, status)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{"orders": views})
}
