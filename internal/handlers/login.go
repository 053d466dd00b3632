package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/expense-tracker/internal/logger"
	"github.com/sbilibin2017/expense-tracker/internal/services"
	"github.com/sbilibin2017/expense-tracker/internal/validation"
)

// LoginProvider defines the interface that the service must implement.
type LoginProvider interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// LoginRequest represents the JSON body for logging in.
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// required: true
	Username string `json:"username" validate:"required"`

	// Password
	// required: true
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login.
// swagger:model LoginResponse
type LoginResponse struct {
	// Bearer token for subsequent requests
	Token string `json:"token"`
}

// NewLoginHandler returns an HTTP handler for authenticating a user.
// @Summary Login
// @Description Authenticates a user and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.LoginRequest true "Login Request"
// @Success 200 {object} handlers.LoginResponse
// @Failure 400 {object} handlers.ValidationErrorResponse "Validation failure"
// @Failure 401 {object} handlers.ErrorResponse "Invalid username or password"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /login [post]
func NewLoginHandler(svc LoginProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Warnw("failed to decode login request", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid request body"})
			return
		}

		if details := validation.Validate(req); details != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ValidationErrorResponse{Message: "Invalid request data", Details: details})
			return
		}

		token, err := svc.Login(ctx, req.Username, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid username or password"})
				return
			}

			logger.Log.Errorw("failed to login user", "username", req.Username, "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(LoginResponse{Token: token})
	}
}
