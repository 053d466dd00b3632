package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense event types published to Kafka after a successful commit.
const (
	EventExpenseCreated = "expense.created"
	EventExpenseUpdated = "expense.updated"
	EventExpenseDeleted = "expense.deleted"
)

// ExpenseEvent is the message body published for every committed expense change.
type ExpenseEvent struct {
	EventID    string          `json:"event_id"`
	Type       string          `json:"type"`
	ExpenseID  uuid.UUID       `json:"expense_id"`
	UserID     uuid.UUID       `json:"user_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Category   string          `json:"category"`
	OccurredAt time.Time       `json:"occurred_at"`
}
