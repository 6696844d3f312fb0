package product

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/ngocdai99/furniture-backend/internal/service/models/currency"
	productmodel "github.com/ngocdai99/furniture-backend/internal/service/models/product"
	"github.com/ngocdai99/furniture-backend/internal/service/services/catalogsvc"
	"github.com/ngocdai99/furniture-backend/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	ListProducts(ctx context.Context, filter *productmodel.QueryProductsModel) ([]productmodel.Product, error)
	GetProductDetail(ctx context.Context, id int64) (*catalogsvc.ProductDetail, error)
	AddProduct(ctx context.Context, p productmodel.Product) (*productmodel.Product, error)
	UpdateProduct(ctx context.Context, p productmodel.Product) (*productmodel.Product, error)
}

type listProductsRequest struct {
	CategoryID    int64  `schema:"categoryId"`
	Name          string `schema:"name"`
	MinPriceCents *int64 `schema:"minPriceCents"`
	MaxPriceCents *int64 `schema:"maxPriceCents"`
	MaxQuantity   *int   `schema:"maxQuantity"`
	Sort          string `schema:"sort"`
	Limit         int    `schema:"limit"`
	Offset        int    `schema:"offset"`
}

func (q *listProductsRequest) toModel() *productmodel.QueryProductsModel {
	model := &productmodel.QueryProductsModel{
		Name:          q.Name,
		MinPriceCents: q.MinPriceCents,
		MaxPriceCents: q.MaxPriceCents,
		MaxQuantity:   q.MaxQuantity,
		Sort:          q.Sort,
		Limit:         q.Limit,
		Offset:        q.Offset,
	}
	if q.CategoryID > 0 {
		model.CategoryIds = []int64{q.CategoryID}
	}

	return model
}

// List returns products matching the query filters, each with its category
// resolved.
func List(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &listProductsRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		respond.Validation(w, r, "invalid query parameters")

		return
	}

	if query.Sort != "" && query.Sort != productmodel.SortPriceAsc && query.Sort != productmodel.SortPriceDesc {
		respond.Validation(w, r, "sort must be price_asc or price_desc")

		return
	}

	products, err := service.ListProducts(r.Context(), query.toModel())
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{"products": products})
}

// Detail returns one product with its options.
func Detail(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Validation(w, r, "id must be a positive identifier")

		return
	}

	detail, err := service.GetProductDetail(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"product": detail.Product,
		"options": detail.Options,
	})
}

type productRequest struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"          validate:"required"`
	Description   string   `json:"description"`
	PriceCents    int64    `json:"priceCents"    validate:"gte=0"`
	PriceCurrency string   `json:"priceCurrency" validate:"required"`
	Images        []string `json:"images"`
	Quantity      int      `json:"quantity"      validate:"gte=0"`
	CategoryID    int64    `json:"categoryId"    validate:"gt=0"`
}

func (r *productRequest) toModel() (*productmodel.Product, error) {
	cur, err := currency.ParseCurrency(r.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &productmodel.Product{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		PriceCents:    r.PriceCents,
		PriceCurrency: cur,
		Images:        r.Images,
		Quantity:      r.Quantity,
		CategoryID:    r.CategoryID,
	}, nil
}

// Add creates a product in an existing category.
func Add(w http.ResponseWriter, r *http.Request, service service) {
	req := productRequest{}
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

	created, err := service.AddProduct(r.Context(), *model)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message": "Product added successfully",
		"product": created,
	})
}

// Update overwrites a product.
func Update(w http.ResponseWriter, r *http.Request, service service) {
	req := productRequest{}
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

	updated, err := service.UpdateProduct(r.Context(), *model)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message": "Product updated successfully",
		"product": updated,
	})
}
