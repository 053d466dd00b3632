package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/expense-tracker/internal/logger"
	"github.com/sbilibin2017/expense-tracker/internal/models"
	"github.com/sbilibin2017/expense-tracker/internal/uow"
)

// ErrNilExpense is returned when a write operation receives a nil entity.
var ErrNilExpense = errors.New("expense must not be nil")

// ExpenseReadRepository handles expense read operations. Every query is
// scoped to the owning user: an expense belonging to someone else is
// indistinguishable from one that does not exist.
type ExpenseReadRepository struct {
	db *sqlx.DB
}

func NewExpenseReadRepository(db *sqlx.DB) *ExpenseReadRepository {
	return &ExpenseReadRepository{db: db}
}

// GetByUser returns all expenses owned by userID, newest first.
func (r *ExpenseReadRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.ExpenseDB, error) {
	const query = `
		SELECT expense_id, user_id, amount, currency, category, expense_date, description, created_at, updated_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY expense_date DESC, created_at DESC
	`

	var expenses []models.ExpenseDB
	err := r.db.SelectContext(ctx, &expenses, query, userID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"rows", len(expenses),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return expenses, nil
}

// GetByID returns the expense only if both owner and id match, nil otherwise.
func (r *ExpenseReadRepository) GetByID(ctx context.Context, userID, expenseID uuid.UUID) (*models.ExpenseDB, error) {
	const query = `
		SELECT expense_id, user_id, amount, currency, category, expense_date, description, created_at, updated_at
		FROM expenses
		WHERE expense_id = $1 AND user_id = $2
	`

	var expense models.ExpenseDB
	err := r.db.GetContext(ctx, &expense, query, expenseID, userID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{expenseID, userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &expense, nil
}

// ExpenseWriteRepository stages expense mutations in the request's unit of
// work. Nothing touches the database until SaveChanges commits.
type ExpenseWriteRepository struct{}

func NewExpenseWriteRepository() *ExpenseWriteRepository {
	return &ExpenseWriteRepository{}
}

// Add stages an insert and returns the id assigned to the expense. A new id
// is generated when the entity arrives without one.
func (r *ExpenseWriteRepository) Add(ctx context.Context, expense *models.ExpenseDB) (uuid.UUID, error) {
	if expense == nil {
		return uuid.Nil, ErrNilExpense
	}

	u := uow.FromContext(ctx)
	if u == nil {
		return uuid.Nil, uow.ErrNotInContext
	}

	if expense.ExpenseID == uuid.Nil {
		expense.ExpenseID = uuid.New()
	}

	u.StageInsert(expense)
	return expense.ExpenseID, nil
}

// Update stages an in-place modification of the expense.
func (r *ExpenseWriteRepository) Update(ctx context.Context, expense *models.ExpenseDB) error {
	if expense == nil {
		return ErrNilExpense
	}

	u := uow.FromContext(ctx)
	if u == nil {
		return uow.ErrNotInContext
	}

	u.StageUpdate(expense)
	return nil
}

// Delete stages a physical removal of the expense.
func (r *ExpenseWriteRepository) Delete(ctx context.Context, expense *models.ExpenseDB) error {
	if expense == nil {
		return ErrNilExpense
	}

	u := uow.FromContext(ctx)
	if u == nil {
		return uow.ErrNotInContext
	}

	u.StageDelete(expense)
	return nil
}
