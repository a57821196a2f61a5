package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurringRule_NextAfter(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	rule := RecurringRule{IntervalDays: 7, NextRunAt: base}

	// Already in the future: unchanged.
	next := rule.NextAfter(base.Add(-time.Hour))
	assert.Equal(t, base, next)

	// One interval behind: single step.
	next = rule.NextAfter(base.Add(time.Hour))
	assert.Equal(t, base.AddDate(0, 0, 7), next)

	// Long outage: skips missed runs instead of backfilling.
	next = rule.NextAfter(base.AddDate(0, 0, 30))
	assert.Equal(t, base.AddDate(0, 0, 35), next)
}

func TestCreateRecurringRuleRequest_Validate(t *testing.T) {
	valid := CreateRecurringRuleRequest{
		UserID:       "u-1",
		Description:  "rent",
		PaymentType:  PaymentTypeCard,
		Category:     CategoryExpense,
		Amount:       1200,
		IntervalDays: 30,
	}

	tests := []struct {
		name    string
		mutate  func(r *CreateRecurringRuleRequest)
		wantErr string
	}{
		{
			name:    "valid request",
			mutate:  func(*CreateRecurringRuleRequest) {},
			wantErr: "",
		},
		{
			name:    "missing user ID",
			mutate:  func(r *CreateRecurringRuleRequest) { r.UserID = "" },
			wantErr: "user ID is required",
		},
		{
			name:    "missing description",
			mutate:  func(r *CreateRecurringRuleRequest) { r.Description = "  " },
			wantErr: "description is required",
		},
		{
			name:    "invalid payment type",
			mutate:  func(r *CreateRecurringRuleRequest) { r.PaymentType = "wire" },
			wantErr: "payment type must be cash or card",
		},
		{
			name:    "invalid category",
			mutate:  func(r *CreateRecurringRuleRequest) { r.Category = "misc" },
			wantErr: "category must be saving, expense, or investment",
		},
		{
			name:    "non-positive amount",
			mutate:  func(r *CreateRecurringRuleRequest) { r.Amount = 0 },
			wantErr: "amount must be positive",
		},
		{
			name:    "zero interval",
			mutate:  func(r *CreateRecurringRuleRequest) { r.IntervalDays = 0 },
			wantErr: "interval must be at least one day",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
