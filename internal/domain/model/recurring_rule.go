package model

import (
	"errors"
	"strings"
	"time"
)

// RecurringRule describes a transaction that repeats on a fixed cadence.
// The scheduler materializes a Transaction each time next_run_at falls due
// and advances next_run_at by the interval.
type RecurringRule struct {
	ID           string      `json:"id"            db:"id"`
	UserID       string      `json:"user_id"       db:"user_id"`
	Description  string      `json:"description"   db:"description"`
	PaymentType  PaymentType `json:"payment_type"  db:"payment_type"`
	Category     Category    `json:"category"      db:"category"`
	Amount       float64     `json:"amount"        db:"amount"`
	Location     *string     `json:"location,omitempty" db:"location"`
	IntervalDays int         `json:"interval_days" db:"interval_days"`
	NextRunAt    time.Time   `json:"next_run_at"   db:"next_run_at"`
	Enabled      bool        `json:"enabled"       db:"enabled"`
	CreatedAt    time.Time   `json:"created_at"    db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"    db:"updated_at"`
}

// Interval returns the rule cadence as a duration.
func (r RecurringRule) Interval() time.Duration {
	return time.Duration(r.IntervalDays) * 24 * time.Hour
}

// NextAfter returns the first scheduled time strictly after the given
// instant, stepping by whole intervals so a long outage does not produce a
// burst of backfilled runs.
func (r RecurringRule) NextAfter(now time.Time) time.Time {
	next := r.NextRunAt
	step := r.Interval()
	if step <= 0 {
		return next
	}
	for !next.After(now) {
		next = next.Add(step)
	}
	return next
}

// CreateRecurringRuleRequest carries inputs for registering a recurring rule.
type CreateRecurringRuleRequest struct {
	UserID       string
	Description  string
	PaymentType  PaymentType
	Category     Category
	Amount       float64
	Location     *string
	IntervalDays int
	StartAt      time.Time
}

// Validate checks the create request fields.
func (r *CreateRecurringRuleRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user ID is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("description is required")
	}
	if !r.PaymentType.Valid() {
		return errors.New("payment type must be cash or card")
	}
	if !r.Category.Valid() {
		return errors.New("category must be saving, expense, or investment")
	}
	if r.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if r.IntervalDays < 1 {
		return errors.New("interval must be at least one day")
	}
	return nil
}
