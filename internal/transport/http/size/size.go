package size

import (
	"context"
	"encoding/json"
	"net/http"

	sizemodel "github.com/ngocdai99/furniture-backend/internal/service/models/size"
	"github.com/ngocdai99/furniture-backend/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	AddSize(ctx context.Context, sz sizemodel.Size) (*sizemodel.Size, error)
	ListSizes(ctx context.Context) ([]sizemodel.Size, error)
	UpdateSize(ctx context.Context, sz sizemodel.Size) (*sizemodel.Size, error)
}

type sizeRequest struct {
	ID       int64  `json:"id"`
	SizeName string `json:"sizeName"`
}

// Add creates a size.
func Add(w http.ResponseWriter, r *http.Request, service service) {
	req := sizeRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Validation(w, r, "invalid request body")

		return
	}
	if req.SizeName == "" {
		respond.Validation(w, r, "sizeName is required")

		return
	}

	created, err := service.AddSize(r.Context(), sizemodel.Size{SizeName: req.SizeName})
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message": "Size added successfully",
		"size":    created,
	})
}

// List returns all sizes.
func List(w http.ResponseWriter, r *http.Request, service service) {
	sizes, err := service.ListSizes(r.Context())
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{"sizes": sizes})
}

// Update renames a size.
func Update(w http.ResponseWriter, r *http.Request, service service) {
	req := sizeRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Validation(w, r, "invalid request body")

		return
	}
	if req.ID <= 0 || req.SizeName == "" {
		respond.Validation(w, r, "id and sizeName are required")

		return
	}

	updated, err := service.UpdateSize(r.Context(), sizemodel.Size{ID: req.ID, SizeName: req.SizeName})
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message": "Size updated successfully",
		"size":    updated,
	})
}
