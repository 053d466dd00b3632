package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is applied when a request does not carry a currency code.
const DefaultCurrency = "CAD"

// ExpenseDB represents an expense record in the database.
type ExpenseDB struct {
	ExpenseID   uuid.UUID       `json:"id" db:"expense_id"`                 // Primary key
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`              // Owning user, immutable
	Amount      decimal.Decimal `json:"amount" db:"amount"`                // Positive, 2 fractional digits at storage
	Currency    string          `json:"currency" db:"currency"`            // 3-letter code
	Category    string          `json:"category" db:"category"`            // Non-empty, max 50 chars
	Date        time.Time       `json:"date" db:"expense_date"`            // When the expense happened
	Description *string         `json:"description" db:"description"`      // Optional, max 250 chars
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`        // Set once at insert, UTC
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`        // Refreshed on every write, UTC
}

// SetCreated stamps both audit timestamps at insert time.
func (e *ExpenseDB) SetCreated(now time.Time) {
	e.CreatedAt = now
	e.UpdatedAt = now
}

// SetUpdated refreshes the modification timestamp.
func (e *ExpenseDB) SetUpdated(now time.Time) {
	e.UpdatedAt = now
}
