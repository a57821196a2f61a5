package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pennywise/pennywise-api/internal/data/pgxutil"
	"github.com/pennywise/pennywise-api/internal/domain/model"
	apperrors "github.com/pennywise/pennywise-api/internal/errors"
)

// RecurringRuleRepo provides database operations for recurring rules.
type RecurringRuleRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewRecurringRuleRepo creates a new RecurringRuleRepo with real time provider.
func NewRecurringRuleRepo(db *sql.DB) *RecurringRuleRepo {
	return &RecurringRuleRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewRecurringRuleRepoWithTimeProvider creates a RecurringRuleRepo with a custom time provider.
func NewRecurringRuleRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *RecurringRuleRepo {
	return &RecurringRuleRepo{DB: db, timeProvider: tp}
}

// Create inserts a new recurring rule. Rules start enabled with next_run_at
// set to StartAt, or one interval from now when StartAt is zero.
func (r *RecurringRuleRepo) Create(
	ctx context.Context,
	req *model.CreateRecurringRuleRequest,
) (*model.RecurringRule, error) {
	if req == nil {
		return nil, errors.New("create recurring rule request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	nextRunAt := req.StartAt
	if nextRunAt.IsZero() {
		nextRunAt = now.AddDate(0, 0, req.IntervalDays)
	}

	var out model.RecurringRule
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO recurring_rules (
				user_id, description, payment_type, category, amount, location, interval_days, next_run_at, enabled, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, TRUE, $9
			) RETURNING `+recurringRuleColumns,
			req.UserID,
			strings.TrimSpace(req.Description),
			req.PaymentType,
			req.Category,
			req.Amount,
			req.Location,
			req.IntervalDays,
			nextRunAt.UTC(),
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.RecurringRule])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a recurring rule by ID.
func (r *RecurringRuleRepo) GetByID(ctx context.Context, id string) (*model.RecurringRule, error) {
	var out model.RecurringRule
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+recurringRuleColumns+` FROM recurring_rules WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.RecurringRule])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByUser retrieves all of a user's recurring rules, oldest first.
func (r *RecurringRuleRepo) ListByUser(
	ctx context.Context,
	userID string,
) ([]*model.RecurringRule, error) {
	var rowsOut []model.RecurringRule
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+recurringRuleColumns+` FROM recurring_rules WHERE user_id = $1 ORDER BY created_at`,
			userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.RecurringRule])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list recurring rules: %w", err)
	}

	res := make([]*model.RecurringRule, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ClaimDue selects enabled rules due at or before now and advances their
// next_run_at in the same transaction. FOR UPDATE SKIP LOCKED keeps
// concurrent claimers from receiving the same rule; a rule whose claim
// commits is never handed out again for the same occurrence. The returned
// rules carry their pre-claim next_run_at.
func (r *RecurringRuleRepo) ClaimDue(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*model.RecurringRule, error) {
	if limit <= 0 {
		limit = 100
	}

	var claimed []model.RecurringRule
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT `+recurringRuleColumns+`
			FROM recurring_rules
			WHERE enabled AND next_run_at <= $1
			ORDER BY next_run_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED`,
			now.UTC(), limit)
		if err != nil {
			return err
		}
		claimed, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.RecurringRule])
		if err != nil {
			return err
		}

		updatedAt := r.timeProvider.Now().UTC()
		for i := range claimed {
			next := claimed[i].NextAfter(now)
			if _, execErr := tx.Exec(ctx, `
				UPDATE recurring_rules SET next_run_at = $1, updated_at = $2 WHERE id = $3`,
				next.UTC(), updatedAt, claimed[i].ID); execErr != nil {
				return execErr
			}
		}
		return nil
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to claim due recurring rules: %w", err)
	}

	res := make([]*model.RecurringRule, len(claimed))
	for i := range claimed {
		res[i] = &claimed[i]
	}
	return res, nil
}

// SetEnabled toggles a rule on or off.
func (r *RecurringRuleRepo) SetEnabled(
	ctx context.Context,
	id string,
	enabled bool,
) (*model.RecurringRule, error) {
	var out model.RecurringRule
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE recurring_rules SET enabled = $1, updated_at = $2 WHERE id = $3
			RETURNING `+recurringRuleColumns,
			enabled, r.timeProvider.Now().UTC(), id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.RecurringRule])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete deletes a recurring rule by ID.
func (r *RecurringRuleRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM recurring_rules WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete recurring rule: %w", err)
	}
	return rows > 0, nil
}

const recurringRuleColumns = `id, user_id, description, payment_type, category, amount, location, interval_days, next_run_at, enabled, created_at, updated_at`
