package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	cat, ok := ParseCategory("Saving")
	assert.True(t, ok)
	assert.Equal(t, CategorySaving, cat)

	cat, ok = ParseCategory(" expense ")
	assert.True(t, ok)
	assert.Equal(t, CategoryExpense, cat)

	_, ok = ParseCategory("groceries")
	assert.False(t, ok)
}

func TestCreateTransactionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateTransactionRequest
		wantErr string
	}{
		{
			name: "valid request",
			req: CreateTransactionRequest{
				UserID:      "u-1",
				Description: "coffee",
				PaymentType: PaymentTypeCard,
				Category:    CategoryExpense,
				Amount:      4.50,
			},
			wantErr: "",
		},
		{
			name: "missing user ID",
			req: CreateTransactionRequest{
				Description: "coffee",
				PaymentType: PaymentTypeCard,
				Category:    CategoryExpense,
				Amount:      4.50,
			},
			wantErr: "user ID is required",
		},
		{
			name: "empty description",
			req: CreateTransactionRequest{
				UserID:      "u-1",
				Description: "   ",
				PaymentType: PaymentTypeCard,
				Category:    CategoryExpense,
				Amount:      4.50,
			},
			wantErr: "description is required",
		},
		{
			name: "description too long",
			req: CreateTransactionRequest{
				UserID:      "u-1",
				Description: strings.Repeat("a", 256),
				PaymentType: PaymentTypeCard,
				Category:    CategoryExpense,
				Amount:      4.50,
			},
			wantErr: "description exceeds maximum length",
		},
		{
			name: "invalid payment type",
			req: CreateTransactionRequest{
				UserID:      "u-1",
				Description: "coffee",
				PaymentType: PaymentType("check"),
				Category:    CategoryExpense,
				Amount:      4.50,
			},
			wantErr: "payment type must be cash or card",
		},
		{
			name: "invalid category",
			req: CreateTransactionRequest{
				UserID:      "u-1",
				Description: "coffee",
				PaymentType: PaymentTypeCash,
				Category:    Category("fun"),
				Amount:      4.50,
			},
			wantErr: "category must be saving, expense, or investment",
		},
		{
			name: "zero amount",
			req: CreateTransactionRequest{
				UserID:      "u-1",
				Description: "coffee",
				PaymentType: PaymentTypeCash,
				Category:    CategoryExpense,
				Amount:      0,
			},
			wantErr: "amount must be positive",
		},
		{
			name: "negative amount",
			req: CreateTransactionRequest{
				UserID:      "u-1",
				Description: "coffee",
				PaymentType: PaymentTypeCash,
				Category:    CategoryExpense,
				Amount:      -3,
			},
			wantErr: "amount must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestUpdateTransactionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateTransactionRequest
		wantErr string
	}{
		{
			name:    "empty request is valid",
			req:     UpdateTransactionRequest{},
			wantErr: "",
		},
		{
			name: "valid description update",
			req: UpdateTransactionRequest{
				Description: stringPtr("rent"),
			},
			wantErr: "",
		},
		{
			name: "empty description",
			req: UpdateTransactionRequest{
				Description: stringPtr("  "),
			},
			wantErr: "description cannot be empty",
		},
		{
			name: "invalid payment type",
			req: UpdateTransactionRequest{
				PaymentType: paymentTypePtr(PaymentType("wire")),
			},
			wantErr: "payment type must be cash or card",
		},
		{
			name: "invalid category",
			req: UpdateTransactionRequest{
				Category: categoryPtr(Category("misc")),
			},
			wantErr: "category must be saving, expense, or investment",
		},
		{
			name: "non-positive amount",
			req: UpdateTransactionRequest{
				Amount: float64Ptr(0),
			},
			wantErr: "amount must be positive",
		},
		{
			name: "valid multi-field update",
			req: UpdateTransactionRequest{
				Description: stringPtr("rent"),
				PaymentType: paymentTypePtr(PaymentTypeCard),
				Category:    categoryPtr(CategoryExpense),
				Amount:      float64Ptr(1200),
			},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestUpdateTransactionRequest_HasUpdates(t *testing.T) {
	assert.False(t, (&UpdateTransactionRequest{}).HasUpdates())
	assert.True(t, (&UpdateTransactionRequest{Description: stringPtr("x")}).HasUpdates())
	assert.True(t, (&UpdateTransactionRequest{Amount: float64Ptr(1)}).HasUpdates())
	now := time.Now()
	assert.True(t, (&UpdateTransactionRequest{OccurredAt: &now}).HasUpdates())
}

// Helper functions for creating pointers.
func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func paymentTypePtr(p PaymentType) *PaymentType {
	return &p
}

func categoryPtr(c Category) *Category {
	return &c
}
