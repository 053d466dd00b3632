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

// ExpenseDeleter defines the interface that the service must implement.
type ExpenseDeleter interface {
	Delete(ctx context.Context, userID, expenseID uuid.UUID) error
}

// deleteExpenseCommand exists for the defensive id rules only.
type deleteExpenseCommand struct {
	UserID    uuid.UUID `validate:"required"`
	ExpenseID uuid.UUID `validate:"required"`
}

// NewDeleteExpenseHandler returns an HTTP handler that physically removes an
// expense owned by the route user.
// @Summary Delete expense
// @Description Removes an expense. There is no soft delete.
// @Tags expenses
// @Produce json
// @Param userId path string true "User ID"
// @Param expenseId path string true "Expense ID"
// @Success 204 "Deleted"
// @Failure 404 {object} handlers.ErrorResponse "Expense not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{userId}/expenses/{expenseId} [delete]
// @Security BearerAuth
func NewDeleteExpenseHandler(svc ExpenseDeleter) http.HandlerFunc {
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

		cmd := deleteExpenseCommand{UserID: userID, ExpenseID: expenseID}
		if details := validation.Validate(cmd); details != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ValidationErrorResponse{Message: "Invalid request data", Details: details})
			return
		}

		err = svc.Delete(ctx, userID, expenseID)
		if err != nil {
			if errors.Is(err, services.ErrExpenseNotFound) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Expense not found"})
				return
			}

			logger.Log.Errorw("failed to delete expense", "user_id", userID, "expense_id", expenseID, "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
