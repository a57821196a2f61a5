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

// defaultTickBatch caps how many due rules one tick materializes.
const defaultTickBatch = 100

// RecurringServiceOptions groups dependencies for RecurringService.
type RecurringServiceOptions struct {
	Rules        core.RecurringRuleRepository
	Transactions core.TransactionRepository
	TickBatch    int
	Logger       *slog.Logger
}

// RecurringService manages recurring transaction rules and materializes due
// occurrences into real transactions. Rule CRUD is owner-scoped like
// transactions; Tick runs unscoped on behalf of the scheduler.
type RecurringService struct {
	rules        core.RecurringRuleRepository
	transactions core.TransactionRepository
	tickBatch    int
	logger       *slog.Logger
}

// NewRecurringService constructs a new RecurringService.
func NewRecurringService(opts RecurringServiceOptions) *RecurringService {
	batch := opts.TickBatch
	if batch <= 0 {
		batch = defaultTickBatch
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RecurringService{
		rules:        opts.Rules,
		transactions: opts.Transactions,
		tickBatch:    batch,
		logger:       logger,
	}
}

// CreateRecurringRuleInput groups parameters for creating a recurring rule.
type CreateRecurringRuleInput struct {
	Description  string
	PaymentType  model.PaymentType
	Category     model.Category
	Amount       float64
	Location     *string
	IntervalDays int
	StartAt      time.Time
}

// Create registers a recurring rule for the acting user.
func (s *RecurringService) Create(
	ctx context.Context,
	userID string,
	input CreateRecurringRuleInput,
) (*model.RecurringRule, error) {
	req := &model.CreateRecurringRuleRequest{
		UserID:       userID,
		Description:  input.Description,
		PaymentType:  input.PaymentType,
		Category:     input.Category,
		Amount:       input.Amount,
		Location:     input.Location,
		IntervalDays: input.IntervalDays,
		StartAt:      input.StartAt,
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	rule, err := s.rules.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create recurring rule: %w", err)
	}
	return rule, nil
}

// List retrieves the acting user's recurring rules.
func (s *RecurringService) List(ctx context.Context, userID string) ([]*model.RecurringRule, error) {
	rules, err := s.rules.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list recurring rules: %w", err)
	}
	return rules, nil
}

// SetEnabled toggles one of the acting user's rules on or off.
func (s *RecurringService) SetEnabled(
	ctx context.Context,
	userID, id string,
	enabled bool,
) (*model.RecurringRule, error) {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return nil, err
	}

	rule, err := s.rules.SetEnabled(ctx, id, enabled)
	if err != nil {
		return nil, fmt.Errorf("set recurring rule enabled: %w", err)
	}
	return rule, nil
}

// Delete removes one of the acting user's rules.
func (s *RecurringService) Delete(ctx context.Context, userID, id string) (*model.RecurringRule, error) {
	rule, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.rules.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete recurring rule: %w", err)
	}
	if !deleted {
		return nil, apperrors.NotFoundf("recurring rule %q not found", id)
	}
	return rule, nil
}

// Tick claims rules due at the given time and records one transaction per
// claimed rule, dated at the rule's scheduled time. A failure on one rule is
// logged and does not block the rest; the occurrence is skipped rather than
// retried, since the claim already advanced the schedule. Returns the number
// of transactions created.
func (s *RecurringService) Tick(ctx context.Context, now time.Time) (int, error) {
	due, err := s.rules.ClaimDue(ctx, now, s.tickBatch)
	if err != nil {
		return 0, fmt.Errorf("claim due rules: %w", err)
	}

	created := 0
	for _, rule := range due {
		_, err := s.transactions.Create(ctx, &model.CreateTransactionRequest{
			UserID:      rule.UserID,
			Description: rule.Description,
			PaymentType: rule.PaymentType,
			Category:    rule.Category,
			Amount:      rule.Amount,
			Location:    rule.Location,
			OccurredAt:  rule.NextRunAt,
		})
		if err != nil {
			s.logger.Error("failed to materialize recurring transaction",
				"rule_id", rule.ID, "user_id", rule.UserID, "error", err)
			continue
		}
		created++
	}
	return created, nil
}

// getOwned fetches a rule and verifies ownership. Rows owned by other users
// surface as not found.
func (s *RecurringService) getOwned(ctx context.Context, userID, id string) (*model.RecurringRule, error) {
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundf("recurring rule %q not found", id)
		}
		return nil, fmt.Errorf("get recurring rule: %w", err)
	}
	if rule.UserID != userID {
		return nil, apperrors.NotFoundf("recurring rule %q not found", id)
	}
	return rule, nil
}
