package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pennywise/pennywise-api/internal/data/pgxutil"
	"github.com/pennywise/pennywise-api/internal/domain/model"
	apperrors "github.com/pennywise/pennywise-api/internal/errors"
)

// TransactionRepo provides database operations for transactions.
type TransactionRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTransactionRepo creates a new TransactionRepo with real time provider.
func NewTransactionRepo(db *sql.DB) *TransactionRepo {
	return &TransactionRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewTransactionRepoWithTimeProvider creates a new TransactionRepo with a custom time provider.
func NewTransactionRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *TransactionRepo {
	return &TransactionRepo{DB: db, timeProvider: tp}
}

// Create inserts a new transaction.
func (r *TransactionRepo) Create(
	ctx context.Context,
	req *model.CreateTransactionRequest,
) (*model.Transaction, error) {
	if req == nil {
		return nil, errors.New("create transaction request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	occurredAt := req.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = r.timeProvider.Now()
	}

	var out model.Transaction
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO transactions (
				user_id, description, payment_type, category, amount, location, occurred_at, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8
			) RETURNING id, user_id, description, payment_type, category, amount, location, occurred_at, created_at, updated_at
		`,
			req.UserID,
			strings.TrimSpace(req.Description),
			req.PaymentType,
			req.Category,
			req.Amount,
			req.Location,
			occurredAt.UTC(),
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Transaction])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*model.Transaction, error) {
	var out model.Transaction
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, transactionGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Transaction])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByUser retrieves a user's transactions with pagination, newest first.
func (r *TransactionRepo) ListByUser(
	ctx context.Context,
	userID string,
	limit, offset int,
) ([]*model.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.Transaction
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, transactionListByUserQuery, userID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Transaction])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	res := make([]*model.Transaction, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a transaction.
func (r *TransactionRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateTransactionRequest,
) (*model.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Transaction
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		setClause, args := r.buildUpdateClause(req)
		if setClause == "" {
			rows, err := conn.Query(ctx, transactionGetByIDQuery, id)
			if err != nil {
				return err
			}
			defer rows.Close()
			var e error
			out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Transaction])
			return e
		}
		args = append(args, id)
		query := "UPDATE transactions SET " + setClause +
			" WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING id, user_id, description, payment_type, category, amount, location, occurred_at, created_at, updated_at"
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Transaction])
		return e
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a transaction.
func (r *TransactionRepo) buildUpdateClause(req model.UpdateTransactionRequest) (string, []any) {
	setParts := make([]string, 0, 7)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Description))
	}
	if req.PaymentType != nil {
		setParts = append(setParts, fmt.Sprintf("payment_type = $%d", nextIdx()))
		args = append(args, *req.PaymentType)
	}
	if req.Category != nil {
		setParts = append(setParts, fmt.Sprintf("category = $%d", nextIdx()))
		args = append(args, *req.Category)
	}
	if req.Amount != nil {
		setParts = append(setParts, fmt.Sprintf("amount = $%d", nextIdx()))
		args = append(args, *req.Amount)
	}
	if req.Location != nil {
		if strings.TrimSpace(*req.Location) == "" {
			setParts = append(setParts, "location = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("location = $%d", nextIdx()))
			args = append(args, *req.Location)
		}
	}
	if req.OccurredAt != nil {
		setParts = append(setParts, fmt.Sprintf("occurred_at = $%d", nextIdx()))
		args = append(args, req.OccurredAt.UTC())
	}

	if len(setParts) == 0 {
		return "", nil
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}

// Delete deletes a transaction by ID.
func (r *TransactionRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete transaction: %w", err)
	}
	return rows > 0, nil
}

// CategoryTotals aggregates amounts per category for one user.
func (r *TransactionRepo) CategoryTotals(
	ctx context.Context,
	userID string,
) ([]*model.CategoryTotal, error) {
	var rowsOut []model.CategoryTotal
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, transactionCategoryTotalsQuery, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CategoryTotal])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to aggregate category totals: %w", err)
	}

	res := make([]*model.CategoryTotal, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// SQL query constants for static queries.
const (
	transactionGetByIDQuery = `
		SELECT id, user_id, description, payment_type, category, amount, location, occurred_at, created_at, updated_at
		FROM transactions
		WHERE id = $1`

	transactionListByUserQuery = `
		SELECT id, user_id, description, payment_type, category, amount, location, occurred_at, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY occurred_at DESC, created_at DESC
		LIMIT $2 OFFSET $3`

	transactionCategoryTotalsQuery = `
		SELECT category, SUM(amount) AS total_amount
		FROM transactions
		WHERE user_id = $1
		GROUP BY category
		ORDER BY category`
)
