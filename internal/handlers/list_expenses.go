package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/expense-tracker/internal/logger"
	"github.com/sbilibin2017/expense-tracker/internal/models"
)

// ExpenseLister defines the interface that the service must implement.
type ExpenseLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ExpenseDB, error)
}

// NewListExpensesHandler returns an HTTP handler that lists all expenses of
// the route user. A user with no expenses gets an empty list, never an error.
// @Summary List expenses
// @Description Returns every expense owned by the route user, newest first.
// @Tags expenses
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} handlers.ExpenseResponse
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{userId}/expenses [get]
// @Security BearerAuth
func NewListExpensesHandler(svc ExpenseLister) http.HandlerFunc {
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

		expenses, err := svc.ListByUser(ctx, userID)
		if err != nil {
			logger.Log.Errorw("failed to list expenses", "user_id", userID, "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		resp := make([]ExpenseResponse, 0, len(expenses))
		for i := range expenses {
			resp = append(resp, newExpenseResponse(&expenses[i]))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
