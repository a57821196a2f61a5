package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pennywise/pennywise-api/internal/core"
	"github.com/pennywise/pennywise-api/internal/domain/model"
	apperrors "github.com/pennywise/pennywise-api/internal/errors"
)

// TransactionServiceOptions groups dependencies for TransactionService.
type TransactionServiceOptions struct {
	Transactions core.TransactionRepository
	Logger       *slog.Logger
}

// TransactionService handles transaction CRUD and statistics for the acting
// user. Every operation is scoped to the owner: a transaction belonging to
// another user is indistinguishable from one that does not exist.
type TransactionService struct {
	transactions core.TransactionRepository
	logger       *slog.Logger
}

// NewTransactionService constructs a new TransactionService.
func NewTransactionService(opts TransactionServiceOptions) *TransactionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionService{
		transactions: opts.Transactions,
		logger:       logger,
	}
}

// CreateTransactionInput groups parameters for recording a transaction.
type CreateTransactionInput struct {
	Description string
	PaymentType model.PaymentType
	Category    model.Category
	Amount      float64
	Location    *string
	OccurredAt  time.Time
}

// Create records a transaction for the acting user.
func (s *TransactionService) Create(
	ctx context.Context,
	userID string,
	input CreateTransactionInput,
) (*model.Transaction, error) {
	req := &model.CreateTransactionRequest{
		UserID:      userID,
		Description: input.Description,
		PaymentType: input.PaymentType,
		Category:    input.Category,
		Amount:      input.Amount,
		Location:    input.Location,
		OccurredAt:  input.OccurredAt,
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	txn, err := s.transactions.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return txn, nil
}

// Get retrieves one of the acting user's transactions.
func (s *TransactionService) Get(ctx context.Context, userID, id string) (*model.Transaction, error) {
	return s.getOwned(ctx, userID, id)
}

// List retrieves the acting user's transactions with pagination, newest first.
func (s *TransactionService) List(
	ctx context.Context,
	userID string,
	limit, offset int,
) ([]*model.Transaction, error) {
	txns, err := s.transactions.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

// Update modifies one of the acting user's transactions.
func (s *TransactionService) Update(
	ctx context.Context,
	userID, id string,
	req model.UpdateTransactionRequest,
) (*model.Transaction, error) {
	if !req.HasUpdates() {
		return nil, apperrors.Validation("no fields to update")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return nil, err
	}

	txn, err := s.transactions.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return txn, nil
}

// Delete removes one of the acting user's transactions.
func (s *TransactionService) Delete(ctx context.Context, userID, id string) (*model.Transaction, error) {
	txn, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.transactions.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete transaction: %w", err)
	}
	if !deleted {
		return nil, apperrors.NotFoundf("transaction %q not found", id)
	}
	return txn, nil
}

// CategoryStatistics aggregates the acting user's amounts per category.
func (s *TransactionService) CategoryStatistics(
	ctx context.Context,
	userID string,
) ([]*model.CategoryTotal, error) {
	totals, err := s.transactions.CategoryTotals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("category statistics: %w", err)
	}
	return totals, nil
}

// getOwned fetches a transaction and verifies ownership. Rows owned by other
// users surface as not found.
func (s *TransactionService) getOwned(ctx context.Context, userID, id string) (*model.Transaction, error) {
	txn, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundf("transaction %q not found", id)
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if txn.UserID != userID {
		return nil, apperrors.NotFoundf("transaction %q not found", id)
	}
	return txn, nil
}
