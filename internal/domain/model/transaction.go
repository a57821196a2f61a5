package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxDescriptionLen = 255

// PaymentType is how a transaction was paid.
type PaymentType string

const (
	PaymentTypeCash PaymentType = "cash"
	PaymentTypeCard PaymentType = "card"
)

// Valid reports whether the payment type is supported.
func (p PaymentType) Valid() bool {
	switch p {
	case PaymentTypeCash, PaymentTypeCard:
		return true
	default:
		return false
	}
}

// Category buckets a transaction for statistics.
type Category string

const (
	CategorySaving     Category = "saving"
	CategoryExpense    Category = "expense"
	CategoryInvestment Category = "investment"
)

// Valid reports whether the category is supported.
func (c Category) Valid() bool {
	switch c {
	case CategorySaving, CategoryExpense, CategoryInvestment:
		return true
	default:
		return false
	}
}

// ParseCategory normalizes a category string and reports whether it is supported.
func ParseCategory(value string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(value)))
	if c.Valid() {
		return c, true
	}
	return "", false
}

// Transaction is a single financial entry owned by one user.
type Transaction struct {
	ID          string      `json:"id"           db:"id"`
	UserID      string      `json:"user_id"      db:"user_id"`
	Description string      `json:"description"  db:"description"`
	PaymentType PaymentType `json:"payment_type" db:"payment_type"`
	Category    Category    `json:"category"     db:"category"`
	Amount      float64     `json:"amount"       db:"amount"`
	Location    *string     `json:"location,omitempty" db:"location"`
	OccurredAt  time.Time   `json:"occurred_at"  db:"occurred_at"`
	CreatedAt   time.Time   `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"   db:"updated_at"`
}

// CreateTransactionRequest carries inputs for recording a transaction.
type CreateTransactionRequest struct {
	UserID      string
	Description string
	PaymentType PaymentType
	Category    Category
	Amount      float64
	Location    *string
	OccurredAt  time.Time
}

// Validate checks the create request fields.
func (r *CreateTransactionRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user ID is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("description is required")
	}
	if utf8.RuneCountInString(r.Description) > maxDescriptionLen {
		return errors.New("description exceeds maximum length")
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
	return nil
}

// UpdateTransactionRequest carries optional field updates; nil means unchanged.
type UpdateTransactionRequest struct {
	Description *string
	PaymentType *PaymentType
	Category    *Category
	Amount      *float64
	Location    *string
	OccurredAt  *time.Time
}

// Validate checks whichever fields are present.
func (r *UpdateTransactionRequest) Validate() error {
	if r.Description != nil {
		if strings.TrimSpace(*r.Description) == "" {
			return errors.New("description cannot be empty")
		}
		if utf8.RuneCountInString(*r.Description) > maxDescriptionLen {
			return errors.New("description exceeds maximum length")
		}
	}
	if r.PaymentType != nil && !r.PaymentType.Valid() {
		return errors.New("payment type must be cash or card")
	}
	if r.Category != nil && !r.Category.Valid() {
		return errors.New("category must be saving, expense, or investment")
	}
	if r.Amount != nil && *r.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	return nil
}

// HasUpdates reports whether any field is present.
func (r *UpdateTransactionRequest) HasUpdates() bool {
	return r.Description != nil || r.PaymentType != nil || r.Category != nil ||
		r.Amount != nil || r.Location != nil || r.OccurredAt != nil
}

// CategoryTotal is one row of the per-category statistics aggregate.
type CategoryTotal struct {
	Category    Category `json:"category"     db:"category"`
	TotalAmount float64  `json:"total_amount" db:"total_amount"`
}
