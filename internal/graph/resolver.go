package graph

// Package graph exposes the GraphQL API. Every resolver runs behind the
// session middleware, so the request context always carries a resolved auth
// state: a principal or anonymous.

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainauth "github.com/pennywise/pennywise-api/internal/domain/auth"
	"github.com/pennywise/pennywise-api/internal/domain/model"
	apperrors "github.com/pennywise/pennywise-api/internal/errors"
	httpx "github.com/pennywise/pennywise-api/internal/http"
	"github.com/pennywise/pennywise-api/internal/service"
)

// errUnauthenticated is the uniform error for operations that require a
// signed-in user.
var errUnauthenticated = errors.New("not authenticated")

// ResolverOptions groups dependencies for Resolver.
type ResolverOptions struct {
	Auth         *service.AuthService
	Users        *service.UserService
	Transactions *service.TransactionService
	Recurring    *service.RecurringService
	Logger       *slog.Logger
}

// Resolver holds the services behind the GraphQL schema.
type Resolver struct {
	auth         *service.AuthService
	users        *service.UserService
	transactions *service.TransactionService
	recurring    *service.RecurringService
	logger       *slog.Logger
}

// NewResolver constructs a new Resolver.
func NewResolver(opts ResolverOptions) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		auth:         opts.Auth,
		users:        opts.Users,
		transactions: opts.Transactions,
		recurring:    opts.Recurring,
		logger:       logger,
	}
}

// requireUser returns the request's principal or the uniform
// unauthenticated error.
func (r *Resolver) requireUser(ctx context.Context) (*domainauth.Principal, error) {
	principal, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated
	}
	return principal, nil
}

// fail shapes a service error for the API response. Client-addressable
// errors (validation, conflict, not found, unauthorized) pass through;
// everything else is logged and replaced with a generic message so internal
// details never reach the client.
func (r *Resolver) fail(ctx context.Context, err error) error {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation,
		apperrors.ErrCodeConflict,
		apperrors.ErrCodeNotFound,
		apperrors.ErrCodeUnauthorized:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return errors.New(appErr.Message)
		}
		return err
	default:
		r.logger.ErrorContext(ctx, "resolver error", slog.Any("error", err))
		return errors.New("internal server error")
	}
}

// resolveSignUp registers a new account and signs it in.
func (r *Resolver) resolveSignUp(ctx context.Context, input map[string]any) (*model.User, error) {
	auth := httpx.GetRequestAuth(ctx)

	result, err := r.users.SignUp(ctx, service.SignUpInput{
		Username:       stringArg(input, "username"),
		Name:           stringArg(input, "name"),
		Password:       stringArg(input, "password"),
		Gender:         model.Gender(stringArg(input, "gender")),
		PriorSessionID: auth.SessionID(),
	})
	if err != nil {
		return nil, r.fail(ctx, err)
	}

	auth.IssueSession(result.Session)
	return result.User, nil
}

// resolveLogin verifies credentials and rotates the session cookie.
func (r *Resolver) resolveLogin(ctx context.Context, input map[string]any) (*model.User, error) {
	auth := httpx.GetRequestAuth(ctx)

	result, err := r.auth.Login(ctx, service.LoginInput{
		Handle:         stringArg(input, "username"),
		Secret:         stringArg(input, "password"),
		PriorSessionID: auth.SessionID(),
	})
	if err != nil {
		return nil, r.fail(ctx, err)
	}

	user, err := r.users.Get(ctx, result.Principal.ID)
	if err != nil {
		return nil, r.fail(ctx, err)
	}

	auth.IssueSession(result.Session)
	return user, nil
}

// resolveLogout destroys the session and expires the cookie.
func (r *Resolver) resolveLogout(ctx context.Context) (map[string]any, error) {
	auth := httpx.GetRequestAuth(ctx)

	if err := r.auth.Logout(ctx, auth.SessionID()); err != nil {
		return nil, r.fail(ctx, err)
	}

	auth.ClearSession()
	return map[string]any{"message": "Logged out successfully"}, nil
}

// resolveAuthUser returns the signed-in user, or nil for anonymous requests.
func (r *Resolver) resolveAuthUser(ctx context.Context) (*model.User, error) {
	principal, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		return nil, nil
	}

	user, err := r.users.Get(ctx, principal.ID)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return user, nil
}

func (r *Resolver) resolveUser(ctx context.Context, id string) (*model.User, error) {
	if _, err := r.requireUser(ctx); err != nil {
		return nil, err
	}

	user, err := r.users.Get(ctx, id)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return user, nil
}

func (r *Resolver) resolveTransactions(ctx context.Context, limit, offset int) ([]*model.Transaction, error) {
	principal, err := r.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	txns, err := r.transactions.List(ctx, principal.ID, limit, offset)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return txns, nil
}

func (r *Resolver) resolveTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	principal, err := r.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	txn, err := r.transactions.Get(ctx, principal.ID, id)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return txn, nil
}

func (r *Resolver) resolveCategoryStatistics(ctx context.Context) ([]*model.CategoryTotal, error) {
	principal, err := r.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := r.transactions.CategoryStatistics(ctx, principal.ID)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return totals, nil
}

func (r *Resolver) resolveCreateTransaction(ctx context.Context, input map[string]any) (*model.Transaction, error) {
	principal, err := r.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	txn, err := r.transactions.Create(ctx, principal.ID, service.CreateTransactionInput{
		Description: stringArg(input, "description"),
		PaymentType: model.PaymentType(stringArg(input, "paymentType")),
		Category:    model.Category(stringArg(input, "category")),
		Amount:      floatArg(input, "amount"),
		Location:    optionalStringArg(input, "location"),
		OccurredAt:  timeArg(input, "date"),
	})
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return txn, nil
}

func (r *Resolver) resolveUpdateTransaction(ctx context.Context, input map[string]any) (*model.Transaction, error) {
	principal, err := r.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	req := model.UpdateTransactionRequest{
		Description: optionalStringArg(input, "description"),
		Amount:      optionalFloatArg(input, "amount"),
		Location:    optionalStringArg(input, "location"),
		OccurredAt:  optionalTimeArg(input, "date"),
	}
	if v := optionalStringArg(input, "paymentType"); v != nil {
		pt := model.PaymentType(*v)
		req.PaymentType = &pt
	}
	if v := optionalStringArg(input, "category"); v != nil {
		c := model.Category(*v)
		req.Category = &c
	}

	txn, err := r.transactions.Update(ctx, principal.ID, stringArg(input, "transactionId"), req)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return txn, nil
}

func (r *Resolver) resolveDeleteTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	principal, err := r.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	txn, err := r.transactions.Delete(ctx, principal.ID, id)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return txn, nil
}

func (r *Resolver) resolveRecurringRules(ctx context.Context) ([]*model.RecurringRule, error) {
	principal, err := r.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	rules, err := r.recurring.List(ctx, principal.ID)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return rules, nil
}

func (r *Resolver) resolveCreateRecurringRule(ctx context.Context, input map[string]any) (*model.RecurringRule, error) {
	principal, err := r.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	rule, err := r.recurring.Create(ctx, principal.ID, service.CreateRecurringRuleInput{
		Description:  stringArg(input, "description"),
		PaymentType:  model.PaymentType(stringArg(input, "paymentType")),
		Category:     model.Category(stringArg(input, "category")),
		Amount:       floatArg(input, "amount"),
		Location:     optionalStringArg(input, "location"),
		IntervalDays: intArg(input, "intervalDays"),
		StartAt:      timeArg(input, "startAt"),
	})
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return rule, nil
}

func (r *Resolver) resolveSetRecurringRuleEnabled(ctx context.Context, id string, enabled bool) (*model.RecurringRule, error) {
	principal, err := r.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	rule, err := r.recurring.SetEnabled(ctx, principal.ID, id, enabled)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return rule, nil
}

func (r *Resolver) resolveDeleteRecurringRule(ctx context.Context, id string) (*model.RecurringRule, error) {
	principal, err := r.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	rule, err := r.recurring.Delete(ctx, principal.ID, id)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return rule, nil
}

// Argument coercion helpers. graphql-go validates types before resolvers
// run, so these only normalize presence and Go dynamic types.

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func optionalStringArg(args map[string]any, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func floatArg(args map[string]any, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func optionalFloatArg(args map[string]any, key string) *float64 {
	switch v := args[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	default:
		return nil
	}
}

func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func timeArg(args map[string]any, key string) time.Time {
	if v, ok := args[key].(time.Time); ok {
		return v
	}
	return time.Time{}
}

func optionalTimeArg(args map[string]any, key string) *time.Time {
	if v, ok := args[key].(time.Time); ok {
		return &v
	}
	return nil
}
