package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/expense-tracker/internal/models"
	"github.com/sbilibin2017/expense-tracker/internal/validation"
)

// ErrorResponse is the body of a plain error reply.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	Error string `json:"error"`
}

// ValidationErrorResponse carries every violated field rule at once.
// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	// Summary message
	Message string `json:"message"`

	// One entry per violated rule
	Details []validation.FieldError `json:"details"`
}

// ExpenseResponse is the wire representation of an expense.
// swagger:model ExpenseResponse
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func newExpenseResponse(e *models.ExpenseDB) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ExpenseID,
		UserID:      e.UserID,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Category:    e.Category,
		Date:        e.Date,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// parseUUIDParam reads a chi route parameter as a UUID.
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
