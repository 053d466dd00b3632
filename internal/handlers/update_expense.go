package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/expense-tracker/internal/logger"
	"github.com/sbilibin2017/expense-tracker/internal/models"
	"github.com/sbilibin2017/expense-tracker/internal/services"
	"github.com/sbilibin2017/expense-tracker/internal/validation"
)

// ExpenseUpdater defines the interface that the service must implement.
type ExpenseUpdater interface {
	Update(
		ctx context.Context,
		userID, expenseID uuid.UUID,
		amount decimal.Decimal,
		currency, category string,
		date time.Time,
		description *string,
	) error
}

// UpdateExpenseRequest represents the JSON body for updating an expense.
// The embedded id is optional; when present it must match the route.
// swagger:model UpdateExpenseRequest
type UpdateExpenseRequest struct {
	// Optional expense id, must equal the route expenseId when set
	ID uuid.UUID `json:"id"`

	// Amount spent, must be positive
	// required: true
	Amount decimal.Decimal `json:"amount"`

	// 3-letter currency code, defaults to CAD
	Currency string `json:"currency"`

	// Expense category
	// required: true
	Category string `json:"category"`

	// When the expense happened
	// required: true
	Date time.Time `json:"date"`

	// Optional free-form note
	Description *string `json:"description"`
}

// updateExpenseCommand is the validated unit the handler dispatches. The id
// fields are route-bound and can never really be empty, the rules stay as
// defensive duplication.
type updateExpenseCommand struct {
	UserID      uuid.UUID       `validate:"required"`
	ExpenseID   uuid.UUID       `validate:"required"`
	Amount      decimal.Decimal `validate:"required,gt=0"`
	Currency    string          `validate:"required,len=3"`
	Category    string          `validate:"required,max=50"`
	Date        time.Time       `validate:"required,notfuture,within5y"`
	Description *string         `validate:"omitempty,max=250"`
}

// NewUpdateExpenseHandler returns an HTTP handler that overwrites the mutable
// fields of an expense. Owner and id never change; last write wins.
// @Summary Update expense
// @Description Replaces amount, currency, category, date and description of an existing expense.
// @Tags expenses
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param expenseId path string true "Expense ID"
// @Param request body handlers.UpdateExpenseRequest true "New field values"
// @Success 204 "Updated"
// @Failure 400 {object} handlers.ValidationErrorResponse "Validation failure or id mismatch"
// @Failure 404 {object} handlers.ErrorResponse "Expense not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{userId}/expenses/{expenseId} [put]
// @Security BearerAuth
func NewUpdateExpenseHandler(svc ExpenseUpdater) http.HandlerFunc {
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

		expenseID, err := parseUUIDParam(r, "expenseId")
		if err != nil {
			logger.Log.Warnw("invalid expense id in route", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid expense id"})
			return
		}

		var req UpdateExpenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Warnw("failed to decode update expense request", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid request body"})
			return
		}

		if req.ID != uuid.Nil && req.ID != expenseID {
			logger.Log.Warnw("body id does not match route id", "route_id", expenseID, "body_id", req.ID)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Route expenseId does not match body id"})
			return
		}

		if req.Currency == "" {
			req.Currency = models.DefaultCurrency
		}

		cmd := updateExpenseCommand{
			UserID:      userID,
			ExpenseID:   expenseID,
			Amount:      req.Amount,
			Currency:    req.Currency,
			Category:    req.Category,
			Date:        req.Date,
			Description: req.Description,
		}

		if details := validation.Validate(cmd); details != nil {
			logger.Log.Warnw("update expense request failed validation", "expense_id", expenseID, "violations", len(details))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ValidationErrorResponse{Message: "Invalid request data", Details: details})
			return
		}

		err = svc.Update(ctx, userID, expenseID, cmd.Amount, cmd.Currency, cmd.Category, cmd.Date, cmd.Description)
		if err != nil {
			if errors.Is(err, services.ErrExpenseNotFound) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Expense not found"})
				return
			}

			logger.Log.Errorw("failed to update expense", "user_id", userID, "expense_id", expenseID, "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
