package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise/pennywise-api/internal/domain/model"
	apperrors "github.com/pennywise/pennywise-api/internal/errors"
	"github.com/pennywise/pennywise-api/internal/testutil"
)

func TestRecurringRuleRepo_Create(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewRecurringRuleRepo(db)
	user := createTestUser(t, db, "rule-create")

	t.Run("successful creation with explicit start", func(t *testing.T) {
		startAt := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
		req := &model.CreateRecurringRuleRequest{
			UserID:       user.ID,
			Description:  "Monthly rent",
			PaymentType:  model.PaymentTypeCard,
			Category:     model.CategoryExpense,
			Amount:       1200,
			Location:     testutil.StringPtr("Landlord"),
			IntervalDays: 30,
			StartAt:      startAt,
		}

		rule, err := repo.Create(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, rule)

		assert.NotEmpty(t, rule.ID)
		assert.Equal(t, user.ID, rule.UserID)
		assert.Equal(t, "Monthly rent", rule.Description)
		assert.Equal(t, 30, rule.IntervalDays)
		assert.True(t, startAt.Equal(rule.NextRunAt.UTC()))
		assert.True(t, rule.Enabled)
	})

	t.Run("zero start defaults to one interval out", func(t *testing.T) {
		req := &model.CreateRecurringRuleRequest{
			UserID:       user.ID,
			Description:  "Weekly savings",
			PaymentType:  model.PaymentTypeCash,
			Category:     model.CategorySaving,
			Amount:       50,
			IntervalDays: 7,
		}

		rule, err := repo.Create(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, rule)

		assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), rule.NextRunAt, 5*time.Second)
	})

	t.Run("validation error", func(t *testing.T) {
		req := &model.CreateRecurringRuleRequest{
			UserID:       user.ID,
			Description:  "Bad interval",
			PaymentType:  model.PaymentTypeCash,
			Category:     model.CategorySaving,
			Amount:       50,
			IntervalDays: 0,
		}

		rule, err := repo.Create(context.Background(), req)
		require.Error(t, err)
		assert.Nil(t, rule)
		assert.Contains(t, err.Error(), "interval")
	})

	t.Run("unknown owner", func(t *testing.T) {
		req := &model.CreateRecurringRuleRequest{
			UserID:       "550e8400-e29b-41d4-a716-446655440000",
			Description:  "Orphan rule",
			PaymentType:  model.PaymentTypeCash,
			Category:     model.CategorySaving,
			Amount:       50,
			IntervalDays: 7,
		}

		rule, err := repo.Create(context.Background(), req)
		require.Error(t, err)
		assert.Nil(t, rule)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestRecurringRuleRepo_GetByID(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewRecurringRuleRepo(db)
	user := createTestUser(t, db, "rule-get")

	created := createTestRule(t, repo, user.ID, "Gym membership", time.Now().AddDate(0, 0, 1))

	t.Run("successful retrieval", func(t *testing.T) {
		rule, err := repo.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		require.NotNil(t, rule)
		assert.Equal(t, created.ID, rule.ID)
		assert.Equal(t, "Gym membership", rule.Description)
	})

	t.Run("rule not found", func(t *testing.T) {
		rule, err := repo.GetByID(context.Background(), "550e8400-e29b-41d4-a716-446655440000")
		require.Error(t, err)
		assert.Nil(t, rule)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestRecurringRuleRepo_ListByUser(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewRecurringRuleRepo(db)
	user := createTestUser(t, db, "rule-list")
	other := createTestUser(t, db, "rule-list-other")

	createTestRule(t, repo, user.ID, "First", time.Now().AddDate(0, 0, 1))
	createTestRule(t, repo, user.ID, "Second", time.Now().AddDate(0, 0, 2))
	createTestRule(t, repo, other.ID, "Not mine", time.Now().AddDate(0, 0, 1))

	rules, err := repo.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "First", rules[0].Description)
	assert.Equal(t, "Second", rules[1].Description)
	for _, rule := range rules {
		assert.Equal(t, user.ID, rule.UserID)
	}
}

func TestRecurringRuleRepo_ClaimDue(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewRecurringRuleRepo(db)
	user := createTestUser(t, db, "rule-claim")

	now := time.Now().UTC()
	due := createTestRule(t, repo, user.ID, "Due rule", now.Add(-time.Hour))
	future := createTestRule(t, repo, user.ID, "Future rule", now.Add(24*time.Hour))
	disabled := createTestRule(t, repo, user.ID, "Disabled rule", now.Add(-time.Hour))
	_, err := repo.SetEnabled(context.Background(), disabled.ID, false)
	require.NoError(t, err)

	t.Run("claims only due enabled rules", func(t *testing.T) {
		claimed, err := repo.ClaimDue(context.Background(), now, 10)
		require.NoError(t, err)
		require.Len(t, claimed, 1)

		assert.Equal(t, due.ID, claimed[0].ID)
		// Returned rule carries the pre-claim schedule time.
		assert.True(t, claimed[0].NextRunAt.Before(now))
	})

	t.Run("claimed rule is advanced past now", func(t *testing.T) {
		rule, err := repo.GetByID(context.Background(), due.ID)
		require.NoError(t, err)
		assert.True(t, rule.NextRunAt.After(now))

		claimed, err := repo.ClaimDue(context.Background(), now, 10)
		require.NoError(t, err)
		assert.Empty(t, claimed)
	})

	t.Run("untouched rules keep their schedule", func(t *testing.T) {
		rule, err := repo.GetByID(context.Background(), future.ID)
		require.NoError(t, err)
		assert.WithinDuration(t, future.NextRunAt, rule.NextRunAt, time.Second)

		rule, err = repo.GetByID(context.Background(), disabled.ID)
		require.NoError(t, err)
		assert.False(t, rule.Enabled)
	})
}

func TestRecurringRuleRepo_ClaimDue_SkipsMissedOccurrences(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewRecurringRuleRepo(db)
	user := createTestUser(t, db, "rule-claim-missed")

	// Rule that was due three intervals ago, as after a scheduler outage.
	now := time.Now().UTC()
	stale := createTestRule(t, repo, user.ID, "Stale rule", now.AddDate(0, 0, -21))

	claimed, err := repo.ClaimDue(context.Background(), now, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, stale.ID, claimed[0].ID)

	// A single claim catches the schedule up; missed occurrences are not
	// replayed one by one.
	rule, err := repo.GetByID(context.Background(), stale.ID)
	require.NoError(t, err)
	assert.True(t, rule.NextRunAt.After(now))
	assert.True(t, rule.NextRunAt.Before(now.AddDate(0, 0, 8)))
}

func TestRecurringRuleRepo_ClaimDue_Limit(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewRecurringRuleRepo(db)
	user := createTestUser(t, db, "rule-claim-limit")

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		createTestRule(t, repo, user.ID, "Batch rule", now.Add(-time.Duration(i+1)*time.Hour))
	}

	claimed, err := repo.ClaimDue(context.Background(), now, 2)
	require.NoError(t, err)
	assert.Len(t, claimed, 2)

	remaining, err := repo.ClaimDue(context.Background(), now, 10)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestRecurringRuleRepo_SetEnabled(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewRecurringRuleRepo(db)
	user := createTestUser(t, db, "rule-toggle")

	created := createTestRule(t, repo, user.ID, "Toggle me", time.Now().AddDate(0, 0, 1))
	require.True(t, created.Enabled)

	rule, err := repo.SetEnabled(context.Background(), created.ID, false)
	require.NoError(t, err)
	assert.False(t, rule.Enabled)

	rule, err = repo.SetEnabled(context.Background(), created.ID, true)
	require.NoError(t, err)
	assert.True(t, rule.Enabled)

	rule, err = repo.SetEnabled(context.Background(), "550e8400-e29b-41d4-a716-446655440000", true)
	require.Error(t, err)
	assert.Nil(t, rule)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRecurringRuleRepo_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewRecurringRuleRepo(db)
	user := createTestUser(t, db, "rule-delete")

	created := createTestRule(t, repo, user.ID, "Remove me", time.Now().AddDate(0, 0, 1))

	deleted, err := repo.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

// createTestRule inserts a weekly rule fixture due at the given time.
func createTestRule(
	t *testing.T,
	repo *RecurringRuleRepo,
	userID, description string,
	startAt time.Time,
) *model.RecurringRule {
	t.Helper()

	rule, err := repo.Create(context.Background(), &model.CreateRecurringRuleRequest{
		UserID:       userID,
		Description:  description,
		PaymentType:  model.PaymentTypeCash,
		Category:     model.CategoryExpense,
		Amount:       25,
		IntervalDays: 7,
		StartAt:      startAt,
	})
	require.NoError(t, err)

	return rule
}
