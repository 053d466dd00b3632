package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/expense-tracker/internal/logger"
	"github.com/sbilibin2017/expense-tracker/internal/models"
	"github.com/sbilibin2017/expense-tracker/internal/validation"
)

// ExpenseCreator defines the interface that the service must implement.
type ExpenseCreator interface {
	Create(
		ctx context.Context,
		userID uuid.UUID,
		amount decimal.Decimal,
		currency, category string,
		date time.Time,
		description *string,
	) (*models.ExpenseDB, error)
}

// CreateExpenseRequest represents the JSON body for creating an expense.
// swagger:model CreateExpenseRequest
type CreateExpenseRequest struct {
	// Amount spent, must be positive
	// required: true
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`

	// 3-letter currency code, defaults to CAD
	Currency string `json:"currency" validate:"required,len=3"`

	// Expense category
	// required: true
	Category string `json:"category" validate:"required,max=50"`

	// When the expense happened; not in the future, within the last 5 years
	// required: true
	Date time.Time `json:"date" validate:"required,notfuture,within5y"`

	// Optional free-form note
	Description *string `json:"description" validate:"omitempty,max=250"`
}

// NewCreateExpenseHandler returns an HTTP handler that creates an expense for
// the route user.
// @Summary Create expense
// @Description Creates a new expense owned by the route user. Validates all fields and reports every violated rule at once.
// @Tags expenses
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body handlers.CreateExpenseRequest true "Expense to create"
// @Success 201 {object} handlers.ExpenseResponse "Created expense, Location header points at it"
// @Failure 400 {object} handlers.ValidationErrorResponse "Validation failure"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{userId}/expenses [post]
// @Security BearerAuth
func NewCreateExpenseHandler(svc ExpenseCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := parseUUIDParam(r, "userId")
		if err != nil {
			logger.Log.Warnw("invalid user id in route", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid user id"})
			return
		}

		var req CreateExpenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Warnw("failed to decode create expense request", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid request body"})
			return
		}

		if req.Currency == "" {
			req.Currency = models.DefaultCurrency
		}

		if details := validation.Validate(req); details != nil {
			logger.Log.Warnw("create expense request failed validation", "user_id", userID, "violations", len(details))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ValidationErrorResponse{Message: "Invalid request data", Details: details})
			return
		}

		expense, err := svc.Create(ctx, userID, req.Amount, req.Currency, req.Category, req.Date, req.Description)
		if err != nil {
			logger.Log.Errorw("failed to create expense", "user_id", userID, "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Location", fmt.Sprintf("/api/v1/users/%s/expenses/%s", userID, expense.ExpenseID))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(newExpenseResponse(expense))
	}
}
