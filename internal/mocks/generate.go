// Package mocks provides mock implementations for testing the pennywise services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().GetByUsername(gomock.Any(), "jdoe").Return(user, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
// This creates MockUserRepository with methods for all UserRepository interface methods:
// Create, GetByID, GetByUsername
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/pennywise/pennywise-api/internal/core UserRepository

// Generate mock for TransactionRepository interface from internal/core package.
// This creates MockTransactionRepository with methods for all TransactionRepository interface methods:
// Create, GetByID, ListByUser, Update, Delete, CategoryTotals
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=transaction_repository_mock.go github.com/pennywise/pennywise-api/internal/core TransactionRepository

// Generate mock for RecurringRuleRepository interface from internal/core package.
// This creates MockRecurringRuleRepository with methods for all RecurringRuleRepository interface methods:
// Create, GetByID, ListByUser, ClaimDue, SetEnabled, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=recurring_rule_repository_mock.go github.com/pennywise/pennywise-api/internal/core RecurringRuleRepository
