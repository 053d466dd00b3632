package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/expense-tracker/internal/logger"
	"github.com/sbilibin2017/expense-tracker/internal/models"
)

var (
	// ErrExpenseNotFound is returned when the expense does not exist or is
	// owned by a different user. The two cases are deliberately reported the
	// same way.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrNoUnitOfWork is returned when a mutating operation runs outside a
	// request that carries a unit of work.
	ErrNoUnitOfWork = errors.New("no unit of work for request")
)

// ExpenseReader defines owner-scoped read operations for expenses.
type ExpenseReader interface {
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.ExpenseDB, error)
	GetByID(ctx context.Context, userID, expenseID uuid.UUID) (*models.ExpenseDB, error)
}

// ExpenseWriter defines staged write operations for expenses.
type ExpenseWriter interface {
	Add(ctx context.Context, expense *models.ExpenseDB) (uuid.UUID, error)
	Update(ctx context.Context, expense *models.ExpenseDB) error
	Delete(ctx context.Context, expense *models.ExpenseDB) error
}

// ChangeCommitter flushes all pending mutations of the current request as one
// atomic transaction.
type ChangeCommitter interface {
	SaveChanges(ctx context.Context) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ExpenseService orchestrates expense use cases: load, mutate, commit,
// publish a change event.
type ExpenseService struct {
	reader      ExpenseReader
	writer      ExpenseWriter
	committer   func(ctx context.Context) ChangeCommitter
	kafkaWriter KafkaWriter
}

// NewExpenseService creates a new ExpenseService. committer resolves the
// request-scoped unit of work; kafkaWriter may be nil to disable events.
func NewExpenseService(
	reader ExpenseReader,
	writer ExpenseWriter,
	committer func(ctx context.Context) ChangeCommitter,
	kafkaWriter KafkaWriter,
) *ExpenseService {
	return &ExpenseService{
		reader:      reader,
		writer:      writer,
		committer:   committer,
		kafkaWriter: kafkaWriter,
	}
}

// Create builds a new expense owned by userID, stages the insert and commits.
// The returned entity carries the assigned id and audit timestamps.
func (s *ExpenseService) Create(
	ctx context.Context,
	userID uuid.UUID,
	amount decimal.Decimal,
	currency, category string,
	date time.Time,
	description *string,
) (*models.ExpenseDB, error) {
	expense := &models.ExpenseDB{
		UserID:      userID,
		Amount:      amount,
		Currency:    currency,
		Category:    category,
		Date:        date,
		Description: description,
	}

	expenseID, err := s.writer.Add(ctx, expense)
	if err != nil {
		logger.Log.Errorw("failed to stage expense insert", "user_id", userID, "error", err)
		return nil, err
	}

	if err := s.commit(ctx); err != nil {
		return nil, err
	}

	logger.Log.Infow("expense created", "expense_id", expenseID, "user_id", userID)
	s.publishEvent(ctx, models.EventExpenseCreated, expense)

	return expense, nil
}

// GetByID loads one expense scoped to its owner.
func (s *ExpenseService) GetByID(ctx context.Context, userID, expenseID uuid.UUID) (*models.ExpenseDB, error) {
	expense, err := s.reader.GetByID(ctx, userID, expenseID)
	if err != nil {
		logger.Log.Errorw("failed to load expense", "user_id", userID, "expense_id", expenseID, "error", err)
		return nil, err
	}
	if expense == nil {
		logger.Log.Warnw("expense not found or not accessible", "user_id", userID, "expense_id", expenseID)
		return nil, ErrExpenseNotFound
	}

	return expense, nil
}

// ListByUser returns all expenses of the user, possibly an empty slice.
func (s *ExpenseService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ExpenseDB, error) {
	expenses, err := s.reader.GetByUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list expenses", "user_id", userID, "error", err)
		return nil, err
	}

	return expenses, nil
}

// Update overwrites the mutable fields of an existing expense and commits.
// Owner and id never change. Concurrent updates are last-write-wins.
func (s *ExpenseService) Update(
	ctx context.Context,
	userID, expenseID uuid.UUID,
	amount decimal.Decimal,
	currency, category string,
	date time.Time,
	description *string,
) error {
	expense, err := s.reader.GetByID(ctx, userID, expenseID)
	if err != nil {
		logger.Log.Errorw("failed to load expense", "user_id", userID, "expense_id", expenseID, "error", err)
		return err
	}
	if expense == nil {
		logger.Log.Warnw("expense not found or not accessible", "user_id", userID, "expense_id", expenseID)
		return ErrExpenseNotFound
	}

	expense.Amount = amount
	expense.Currency = currency
	expense.Category = category
	expense.Date = date
	expense.Description = description

	if err := s.writer.Update(ctx, expense); err != nil {
		logger.Log.Errorw("failed to stage expense update", "expense_id", expenseID, "error", err)
		return err
	}

	if err := s.commit(ctx); err != nil {
		return err
	}

	logger.Log.Infow("expense updated", "expense_id", expenseID, "user_id", userID)
	s.publishEvent(ctx, models.EventExpenseUpdated, expense)

	return nil
}

// Delete removes an existing expense and commits.
func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	expense, err := s.reader.GetByID(ctx, userID, expenseID)
	if err != nil {
		logger.Log.Errorw("failed to load expense", "user_id", userID, "expense_id", expenseID, "error", err)
		return err
	}
	if expense == nil {
		logger.Log.Warnw("expense not found or not accessible", "user_id", userID, "expense_id", expenseID)
		return ErrExpenseNotFound
	}

	if err := s.writer.Delete(ctx, expense); err != nil {
		logger.Log.Errorw("failed to stage expense delete", "expense_id", expenseID, "error", err)
		return err
	}

	if err := s.commit(ctx); err != nil {
		return err
	}

	logger.Log.Infow("expense deleted", "expense_id", expenseID, "user_id", userID)
	s.publishEvent(ctx, models.EventExpenseDeleted, expense)

	return nil
}

func (s *ExpenseService) commit(ctx context.Context) error {
	committer := s.committer(ctx)
	if committer == nil {
		logger.Log.Errorw("no unit of work for request")
		return ErrNoUnitOfWork
	}

	if err := committer.SaveChanges(ctx); err != nil {
		logger.Log.Errorw("failed to commit staged changes", "error", err)
		return err
	}

	return nil
}

// publishEvent publishes an expense change event to Kafka. Publishing is
// fire-and-forget: a failure is logged and never fails the request.
func (s *ExpenseService) publishEvent(ctx context.Context, eventType string, expense *models.ExpenseDB) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "expense_id", expense.ExpenseID)
		return
	}

	event := models.ExpenseEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		ExpenseID:  expense.ExpenseID,
		UserID:     expense.UserID,
		Amount:     expense.Amount,
		Currency:   expense.Currency,
		Category:   expense.Category,
		OccurredAt: expense.UpdatedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal expense event", "expense_id", expense.ExpenseID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(expense.ExpenseID.String()),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish expense event", "expense_id", expense.ExpenseID, "type", eventType, "error", err)
		return
	}

	logger.Log.Infow("expense event published", "expense_id", expense.ExpenseID, "type", eventType)
}
