package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/expense-tracker/internal/logger"
	"github.com/sbilibin2017/expense-tracker/internal/services"
	"github.com/sbilibin2017/expense-tracker/internal/validation"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password string) (uuid.UUID, error)
}

// RegisterRequest represents the JSON body for registering a user.
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Unique username
	// required: true
	Username string `json:"username" validate:"required,min=3,max=50"`

	// Password
	// required: true
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterResponse represents a successful registration.
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Assigned user id
	ID uuid.UUID `json:"id"`

	// Success message
	Message string `json:"message"`
}

// NewRegisterHandler returns an HTTP handler for registering a new user.
// @Summary Register user
// @Description Creates a new user account.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.RegisterRequest true "Registration Request"
// @Success 201 {object} handlers.RegisterResponse "User registered successfully"
// @Failure 400 {object} handlers.ValidationErrorResponse "Validation failure"
// @Failure 409 {object} handlers.ErrorResponse "Username already exists"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Warnw("failed to decode register request", "error", err)
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

		userID, err := svc.Register(ctx, req.Username, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrUserAlreadyExists) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Username already exists"})
				return
			}

			logger.Log.Errorw("failed to register user", "username", req.Username, "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(RegisterResponse{ID: userID, Message: "User registered successfully"})
	}
}
