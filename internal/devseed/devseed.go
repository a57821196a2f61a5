// Package devseed populates a development database with a demo account and
// sample finance data so the frontend has something to render after a fresh
// migration. Seeding is idempotent: existing records are left alone.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pennywise/pennywise-api/internal/data"
	"github.com/pennywise/pennywise-api/internal/domain/model"
	"github.com/pennywise/pennywise-api/internal/service"
)

const (
	demoUsername = "demo"
	demoPassword = "demopass"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	Transactions *service.TransactionService
	Recurring    *service.RecurringService
	UserRepo     *data.UserRepo
}

// NewServices constructs the services required for seeding from a DB handle.
// The demo user is created through the repository so seeding never touches
// the session store.
func NewServices(db *sql.DB) Services {
	txnRepo := data.NewTransactionRepo(db)

	return Services{
		Transactions: service.NewTransactionService(service.TransactionServiceOptions{
			Transactions: txnRepo,
		}),
		Recurring: service.NewRecurringService(service.RecurringServiceOptions{
			Rules:        data.NewRecurringRuleRepo(db),
			Transactions: txnRepo,
		}),
		UserRepo: data.NewUserRepo(db),
	}
}

// Run seeds the demo account with sample transactions and a recurring rule.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	user, created, err := ensureDemoUser(ctx, svcs)
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	if !created {
		logger.InfoContext(ctx, "demo user already present, skipping seed", "username", demoUsername)
		return nil
	}

	seeded := seedTransactions(ctx, svcs.Transactions, user.ID, logger)
	if ruleErr := seedRecurringRule(ctx, svcs.Recurring, user.ID); ruleErr != nil {
		logger.WarnContext(ctx, "seed recurring rule failed", "error", ruleErr)
	}

	logger.InfoContext(ctx, "development seed complete",
		"username", demoUsername,
		"transactions", seeded)
	return nil
}

func ensureDemoUser(ctx context.Context, svcs Services) (*model.User, bool, error) {
	existing, err := svcs.UserRepo.GetByUsername(ctx, demoUsername)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, data.ErrUserNotFound) {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("hash demo password: %w", err)
	}

	user, err := svcs.UserRepo.Create(ctx, &model.CreateUserRequest{
		Username: demoUsername,
		Name:     "Demo User",
		Password: demoPassword,
		Gender:   model.GenderMale,
	}, string(hash), "https://avatar.iran.liara.run/public/boy?username="+demoUsername)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func seedTransactions(
	ctx context.Context,
	svc *service.TransactionService,
	userID string,
	logger *slog.Logger,
) int {
	now := time.Now()
	groceries := "Corner Market"
	cinema := "Downtown Cinema"

	inputs := []service.CreateTransactionInput{
		{
			Description: "Monthly salary savings",
			PaymentType: model.PaymentTypeCard,
			Category:    model.CategorySaving,
			Amount:      500,
			OccurredAt:  now.AddDate(0, 0, -20),
		},
		{
			Description: "Groceries",
			PaymentType: model.PaymentTypeCash,
			Category:    model.CategoryExpense,
			Amount:      82.40,
			Location:    &groceries,
			OccurredAt:  now.AddDate(0, 0, -12),
		},
		{
			Description: "Index fund purchase",
			PaymentType: model.PaymentTypeCard,
			Category:    model.CategoryInvestment,
			Amount:      250,
			OccurredAt:  now.AddDate(0, 0, -7),
		},
		{
			Description: "Movie night",
			PaymentType: model.PaymentTypeCard,
			Category:    model.CategoryExpense,
			Amount:      28,
			Location:    &cinema,
			OccurredAt:  now.AddDate(0, 0, -2),
		},
	}

	seeded := 0
	for _, input := range inputs {
		if _, err := svc.Create(ctx, userID, input); err != nil {
			logger.WarnContext(ctx, "seed transaction failed",
				"description", input.Description, "error", err)
			continue
		}
		seeded++
	}
	return seeded
}

func seedRecurringRule(ctx context.Context, svc *service.RecurringService, userID string) error {
	_, err := svc.Create(ctx, userID, service.CreateRecurringRuleInput{
		Description:  "Streaming subscription",
		PaymentType:  model.PaymentTypeCard,
		Category:     model.CategoryExpense,
		Amount:       12.99,
		IntervalDays: 30,
	})
	return err
}
