package color

import (
	"context"
	"encoding/json"
	"net/http"

	colormodel "github.com/ngocdai99/furniture-backend/internal/service/models/color"
	"github.com/ngocdai99/furniture-backend/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	AddColor(ctx context.Context, c colormodel.Color) (*colormodel.Color, error)
	ListColors(ctx context.Context) ([]colormodel.Color, error)
	UpdateColor(ctx context.Context, c colormodel.Color) (*colormodel.Color, error)
}

type colorRequest struct {
	ID        int64  `json:"id"`
	ColorName string `json:"colorName"`
}

// Add creates a color. Names are unique.
func Add(w http.ResponseWriter, r *http.Request, service service) {
	req := colorRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Validation(w, r, "invalid request body")

		return
	}
	if req.ColorName == "" {
		respond.Validation(w, r, "colorName is required")

		return
	}

	created, err := service.AddColor(r.Context(), colormodel.Color{ColorName: req.ColorName})
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message": "Color added successfully",
		"color":   created,
	})
}

// List returns all colors.
func List(w http.ResponseWriter, r *http.Request, service service) {
	colors, err := service.ListColors(r.Context())
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{"colors": colors})
}

// Update renames a color.
func Update(w http.ResponseWriter, r *http.Request, service service) {
	req := colorRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Validation(w, r, "invalid request body")

		return
	}
	if req.ID <= 0 || req.ColorName == "" {
		respond.Validation(w, r, "id and colorName are required")

		return
	}

	updated, err := service.UpdateColor(r.Context(), colormodel.Color{ID: req.ID, ColorName: req.ColorName})
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message": "Color updated successfully",
		"color":   updated,
	})
}
