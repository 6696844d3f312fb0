package category

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	categorymodel "github.com/ngocdai99/furniture-backend/internal/service/models/category"
	"github.com/ngocdai99/furniture-backend/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	ListCategories(ctx context.Context) ([]categorymodel.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*categorymodel.Category, error)
	AddCategory(ctx context.Context, c categorymodel.Category) (*categorymodel.Category, error)
	UpdateCategory(ctx context.Context, c categorymodel.Category) (*categorymodel.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// List returns all categories.
func List(w http.ResponseWriter, r *http.Request, service service) {
	categories, err := service.ListCategories(r.Context())
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{"categories": categories})
}

// Detail returns one category looked up by its exact name.
func Detail(w http.ResponseWriter, r *http.Request, service service) {
	name := r.URL.Query().Get("name")
	if name == "" {
		respond.Validation(w, r, "name is required")

		return
	}

	c, err := service.GetCategoryByName(r.Context(), name)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{"category": c})
}

type addCategoryRequest struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image"`
}

// Add creates a category. Names are unique.
func Add(w http.ResponseWriter, r *http.Request, service service) {
	req := addCategoryRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Validation(w, r, "invalid request body")

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Validation(w, r, err.Error())

		return
	}

	created, err := service.AddCategory(r.Context(), categorymodel.Category{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message":  "Category added successfully",
		"category": created,
	})
}

type updateCategoryRequest struct {
	ID    int64  `json:"id"   validate:"gt=0"`
	Name  string `json:"name" validate:"required"`
	Image string `json:"image"`
}

// Update replaces a category's name and image.
func Update(w http.ResponseWriter, r *http.Request, service service) {
	req := updateCategoryRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Validation(w, r, "invalid request body")

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Validation(w, r, err.Error())

		return
	}

	updated, err := service.UpdateCategory(r.Context(), categorymodel.Category{
		ID:    req.ID,
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message":  "Category updated successfully",
		"category": updated,
	})
}

// Delete removes a category that no product references.
func Delete(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Validation(w, r, "id must be a positive identifier")

		return
	}

	if err := service.DeleteCategory(r.Context(), id); err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{"message": "Category deleted successfully"})
}
