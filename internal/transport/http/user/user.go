package user

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ngocdai99/furniture-backend/internal/service/models/apperror"
	usermodel "github.com/ngocdai99/furniture-backend/internal/service/models/user"
	"github.com/ngocdai99/furniture-backend/internal/service/services/usersvc"
	"github.com/ngocdai99/furniture-backend/internal/transport/http/respond"
	"github.com/ngocdai99/furniture-backend/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	Register(ctx context.Context, name, email, password string) (*usermodel.User, error)
	Login(ctx context.Context, email, password string) (*usermodel.User, *usersvc.TokenPair, error)
	GetUser(ctx context.Context, id int64) (*usermodel.User, error)
	UpdateProfile(ctx context.Context, id int64, params usersvc.UpdateProfileParams) (*usermodel.User, error)
	SendMail(ctx context.Context, to, subject, body string) error
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register handles account creation.
func Register(w http.ResponseWriter, r *http.Request, service service) {
	req := registerRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Validation(w, r, "invalid request body")

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Validation(w, r, err.Error())

		return
	}

	created, err := service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message": "Registered successfully",
		"user":    created,
	})
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and issues a token pair.
func Login(w http.ResponseWriter, r *http.Request, service service) {
	req := loginRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Validation(w, r, "invalid request body")

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Validation(w, r, err.Error())

		return
	}

	usr, tokens, err := service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message":      "Logged in successfully",
		"user":         usr,
		"token":        tokens.Token,
		"refreshToken": tokens.RefreshToken,
	})
}

// Detail returns one user by path id.
func Detail(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Validation(w, r, "id must be a positive identifier")

		return
	}

	usr, err := service.GetUser(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{"user": usr})
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Image    *string `json:"image"`
	Password *string `json:"password"`
	Age      *int    `json:"age"`
	Address  *string `json:"address"`
}

// UpdateProfile patches the authenticated user's profile. Only the fields
// present in the body change.
func UpdateProfile(w http.ResponseWriter, r *http.Request, service service) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respond.Error(w, r, apperror.AuthMissing("authorization required"))

		return
	}

	req := updateProfileRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Validation(w, r, "invalid request body")

		return
	}

	usr, err := service.UpdateProfile(r.Context(), claims.UserID, usersvc.UpdateProfileParams{
		Name:     req.Name,
		Image:    req.Image,
		Password: req.Password,
		Age:      req.Age,
		Address:  req.Address,
	})
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{
		"message": "Profile updated successfully",
		"user":    usr,
	})
}

type sendMailRequest struct {
	To      string `json:"to"      validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body"    validate:"required"`
}

// SendMail sends one email synchronously over SMTP.
func SendMail(w http.ResponseWriter, r *http.Request, service service) {
	req := sendMailRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Validation(w, r, "invalid request body")

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Validation(w, r, err.Error())

		return
	}

	if err := service.SendMail(r.Context(), req.To, req.Subject, req.Body); err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, map[string]any{"message": "Mail sent successfully"})
}
