package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/expense-tracker/internal/logger"
	"github.com/sbilibin2017/expense-tracker/internal/models"
	"github.com/sbilibin2017/expense-tracker/internal/services"
)

// ExpenseGetter defines the interface that the service must implement.
type ExpenseGetter interface {
	GetByID(ctx context.Context, userID, expenseID uuid.UUID) (*models.ExpenseDB, error)
}

// NewGetExpenseHandler returns an HTTP handler that loads one expense scoped
// to the route user. A foreign-owned expense is reported as not found.
// @Summary Get expense
// @Description Returns a single expense if it exists and belongs to the route user.
// @Tags expenses
// @Produce json
// @Param userId path string true "User ID"
// @Param expenseId path string true "Expense ID"
// @Success 200 {object} handlers.ExpenseResponse
// @Failure 404 {object} handlers.ErrorResponse "Expense not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{userId}/expenses/{expenseId} [get]
// @Security BearerAuth
func NewGetExpenseHandler(svc ExpenseGetter) http.HandlerFunc {
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

		expense, err := svc.GetByID(ctx, userID, expenseID)
		if err != nil {
			if errors.Is(err, services.ErrExpenseNotFound) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Expense not found"})
				return
			}

			logger.Log.Errorw("failed to get expense", "user_id", userID, "expense_id", expenseID, "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(newExpenseResponse(expense))
	}
}
