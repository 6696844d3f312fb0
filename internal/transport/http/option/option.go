package option

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/ngocdai99/furniture-backend/internal/service/models/currency"
	optionmodel "github.com/ngocdai99/furniture-backend/internal/service/models/option"
	"github.com/ngocdai99/furniture-backend/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	AddOption(ctx context.Context, o optionmodel.Option) (*optionmodel.Option, error)
	UpdateOption(ctx context.Context, o optionmodel.Option) (*optionmodel.Option, error)
	ListOptionsByProduct(ctx context.Context, productID int64) ([]optionmodel.Option, error)
}

type optionRequest struct {
	ID            int64  `json:"id"`
	ProductID     int64  `json:"productId"     validate:"gt=0"`
	ColorID       int64  `json:"colorId"       validate:"gt=0"`
	OptionName    string `json:"optionName"    validate:"required"`
	PriceCents    int64  `json:"priceCents"    validate:"gte=0"`
	PriceCurrency string `json:"priceCurrency" validate:"required"`
}

func (r *optionRequest) toModel() (*optionmodel.Option, error) {
	cur, err := currency.ParseCurrency(r.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &optionmodel.Option{
		ID:            r.ID,
		ProductID:     r.ProductID,
		ColorID:       r.ColorID,
		OptionName:    r.OptionName,
		PriceCents:    r.PriceCents,
		PriceCurrency: cur,
	}, nil
}

// Add creates an option for an existing product.
func Add(w http.ResponseWriter, r *http.Request, service service) {
	req := optionRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Validation(w, r, "invalid request body")

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Validation(w, r, err.Error())

		return
	}

	model, err := req.toModel()
	if err != nil {
		respond.Validation(w, r, err.Error())

		return
	}

	created, err := service.AddOption(r.Context(), *model)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message": "Option added successfully",
		"option":  created,
	})
}

// Update overwrites an option.
func Update(w http.ResponseWriter, r *http.Request, service service) {
	req := optionRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Validation(w, r, "invalid request body")

		return
	}

	if req.ID <= 0 {
		respond.Validation(w, r, "id must be a positive identifier")

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Validation(w, r, err.Error())

		return
	}

	model, err := req.toModel()
	if err != nil {
		respond.Validation(w, r, err.Error())

		return
	}

	updated, err := service.UpdateOption(r.Context(), *model)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message": "Option updated successfully",
		"option":  updated,
	})
}

// ListByProduct returns all options of one product.
func ListByProduct(w http.ResponseWriter, r *http.Request, service service) {
	productID, err := strconv.ParseInt(r.URL.Query().Get("productId"), 10, 64)
	if err != nil || productID <= 0 {
		respond.Validation(w, r, "productId must be a positive identifier")

		return
	}

	options, err := service.ListOptionsByProduct(r.Context(), productID)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{"options": options})
}
