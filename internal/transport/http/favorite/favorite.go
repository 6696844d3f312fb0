package favorite

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	favoritemodel "github.com/ngocdai99/furniture-backend/internal/service/models/favorite"
	"github.com/ngocdai99/furniture-backend/internal/transport/http/respond"
	"github.com/ngocdai99/furniture-backend/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	AddFavorite(ctx context.Context, userID, productID int64) (*favoritemodel.Favorite, error)
	ListFavoritesByUser(ctx context.Context, userID int64) ([]favoritemodel.Favorite, error)
}

type addFavoriteRequest struct {
	ProductID int64 `json:"productId"`
}

// Add marks a product as a favorite of the authenticated user.
func Add(w http.ResponseWriter, r *http.Request, service service) {
	req := addFavoriteRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Validation(w, r, "invalid request body")

		return
	}
	if req.ProductID <= 0 {
		respond.Validation(w, r, "productId must be a positive identifier")

		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respond.Validation(w, r, "authorization required")

		return
	}

	created, err := service.AddFavorite(r.Context(), claims.UserID, req.ProductID)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message":  "Favorite added successfully",
		"favorite": created,
	})
}

// ListByUser returns a user's favorites. Without an explicit userId the
// authenticated user is assumed.
func ListByUser(w http.ResponseWriter, r *http.Request, service service) {
	userID, _ := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if userID <= 0 {
		claims, ok := auth.FromContext(r.Context())
		if !ok {
			respond.Validation(w, r, "userId must be a positive identifier")

			return
		}
		userID = claims.UserID
	}

	favorites, err := service.ListFavoritesByUser(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{"favorites": favorites})
}
