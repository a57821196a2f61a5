package core

import (
	"context"
	"time"

	"github.com/pennywise/pennywise-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, req *model.CreateUserRequest, passwordHash, profilePicture string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// TransactionRepository defines the interface for transaction data operations.
type TransactionRepository interface {
	Create(ctx context.Context, req *model.CreateTransactionRequest) (*model.Transaction, error)
	GetByID(ctx context.Context, id string) (*model.Transaction, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Transaction, error)
	Update(ctx context.Context, id string, req model.UpdateTransactionRequest) (*model.Transaction, error)
	Delete(ctx context.Context, id string) (bool, error)
	// CategoryTotals aggregates amounts per category for one user.
	CategoryTotals(ctx context.Context, userID string) ([]*model.CategoryTotal, error)
}

// RecurringRuleRepository defines the interface for recurring rule data operations.
type RecurringRuleRepository interface {
	Create(ctx context.Context, req *model.CreateRecurringRuleRequest) (*model.RecurringRule, error)
	GetByID(ctx context.Context, id string) (*model.RecurringRule, error)
	ListByUser(ctx context.Context, userID string) ([]*model.RecurringRule, error)
	// ClaimDue atomically selects enabled rules whose next_run_at is at or
	// before now and advances their next_run_at past now. The returned
	// rules carry their pre-claim next_run_at so callers can date the
	// materialized transactions. Concurrent claimers never receive the
	// same rule.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*model.RecurringRule, error)
	SetEnabled(ctx context.Context, id string, enabled bool) (*model.RecurringRule, error)
	Delete(ctx context.Context, id string) (bool, error)
}
