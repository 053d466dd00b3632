package uow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/expense-tracker/internal/logger"
	"github.com/sbilibin2017/expense-tracker/internal/models"
)

// ErrNotInContext is returned when a staged write is attempted outside a
// request that carries a unit of work.
var ErrNotInContext = errors.New("no unit of work in request context")

type changeKind int

const (
	changeInsert changeKind = iota
	changeUpdate
	changeDelete
)

type stagedChange struct {
	kind    changeKind
	expense *models.ExpenseDB
}

// UnitOfWork collects staged expense mutations for a single request and
// commits them as one atomic transaction. Staged entities are stamped with
// audit timestamps at commit time: inserts get created_at = updated_at = now,
// updates get a fresh updated_at.
type UnitOfWork struct {
	db     *sqlx.DB
	now    func() time.Time
	staged []stagedChange
}

// New creates a unit of work bound to db. The clock defaults to UTC now.
func New(db *sqlx.DB) *UnitOfWork {
	return &UnitOfWork{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// StageInsert records a new expense to be inserted on the next SaveChanges.
func (u *UnitOfWork) StageInsert(e *models.ExpenseDB) {
	u.staged = append(u.staged, stagedChange{kind: changeInsert, expense: e})
}

// StageUpdate records an in-place modification of an existing expense.
func (u *UnitOfWork) StageUpdate(e *models.ExpenseDB) {
	u.staged = append(u.staged, stagedChange{kind: changeUpdate, expense: e})
}

// StageDelete records a physical removal of an existing expense.
func (u *UnitOfWork) StageDelete(e *models.ExpenseDB) {
	u.staged = append(u.staged, stagedChange{kind: changeDelete, expense: e})
}

// Pending returns the number of staged, uncommitted changes.
func (u *UnitOfWork) Pending() int {
	return len(u.staged)
}

const (
	insertExpenseQuery = `
		INSERT INTO expenses (expense_id, user_id, amount, currency, category, expense_date, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	updateExpenseQuery = `
		UPDATE expenses
		SET amount = $1, currency = $2, category = $3, expense_date = $4, description = $5, updated_at = $6
		WHERE expense_id = $7 AND user_id = $8
	`

	deleteExpenseQuery = `
		DELETE FROM expenses
		WHERE expense_id = $1 AND user_id = $2
	`
)

// SaveChanges commits every staged change in one transaction. A no-op when
// nothing is staged. On any failure the transaction is rolled back, the error
// is returned wrapped, and the staged list is left intact.
func (u *UnitOfWork) SaveChanges(ctx context.Context) error {
	if len(u.staged) == 0 {
		return nil
	}

	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return fmt.Errorf("begin transaction: %w", err)
	}

	now := u.now()

	for _, c := range u.staged {
		var (
			query   string
			args    []any
			execErr error
		)

		switch c.kind {
		case changeInsert:
			c.expense.SetCreated(now)
			query = insertExpenseQuery
			args = []any{
				c.expense.ExpenseID, c.expense.UserID, c.expense.Amount,
				c.expense.Currency, c.expense.Category, c.expense.Date,
				c.expense.Description, c.expense.CreatedAt, c.expense.UpdatedAt,
			}
		case changeUpdate:
			c.expense.SetUpdated(now)
			query = updateExpenseQuery
			args = []any{
				c.expense.Amount, c.expense.Currency, c.expense.Category,
				c.expense.Date, c.expense.Description, c.expense.UpdatedAt,
				c.expense.ExpenseID, c.expense.UserID,
			}
		case changeDelete:
			query = deleteExpenseQuery
			args = []any{c.expense.ExpenseID, c.expense.UserID}
		}

		_, execErr = tx.ExecContext(ctx, query, args...)

		logger.Log.Infow("staged change",
			"query", strings.Join(strings.Fields(query), " "),
			"expense_id", c.expense.ExpenseID,
			"error", execErr,
		)

		if execErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Log.Errorw("failed to rollback transaction", "error", rbErr)
			}
			return fmt.Errorf("apply staged change: %w", execErr)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit transaction", "error", err)
		return fmt.Errorf("commit transaction: %w", err)
	}

	u.staged = nil
	return nil
}

// contextKey is an unexported type for keys in context.
type contextKey struct{}

var uowKey = contextKey{}

// WithContext stores a unit of work in the context.
func WithContext(ctx context.Context, u *UnitOfWork) context.Context {
	return context.WithValue(ctx, uowKey, u)
}

// FromContext retrieves the unit of work from the context. Returns nil if not present.
func FromContext(ctx context.Context) *UnitOfWork {
	u, _ := ctx.Value(uowKey).(*UnitOfWork)
	return u
}
