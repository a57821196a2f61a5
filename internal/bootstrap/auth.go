package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/pennywise/pennywise-api/config"
	"github.com/pennywise/pennywise-api/internal/adapters/devauth"
	"github.com/pennywise/pennywise-api/internal/adapters/oidc"
	"github.com/pennywise/pennywise-api/internal/adapters/password"
	redisadapter "github.com/pennywise/pennywise-api/internal/adapters/redis"
	"github.com/pennywise/pennywise-api/internal/core"
	"github.com/pennywise/pennywise-api/internal/data"
	"github.com/pennywise/pennywise-api/internal/domain/model"
	apperrors "github.com/pennywise/pennywise-api/internal/errors"
	"github.com/pennywise/pennywise-api/internal/ports"
	"github.com/pennywise/pennywise-api/internal/service"
)

// AuthConfig contains configuration for building the auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	Users       core.UserRepository
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService wires the credential verifier selected by AUTH_MODE, the
// Redis session store, and the user directory into an auth service.
func BuildAuthService(ctx context.Context, cfg AuthConfig) (*service.AuthService, error) {
	if cfg.RedisClient == nil {
		return nil, errors.New("auth requires a redis client for the session store")
	}
	if cfg.Users == nil {
		return nil, errors.New("auth requires a user repository")
	}

	sessionStore := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "session:")
	directory := userDirectory{users: cfg.Users}

	verifier, err := buildVerifier(ctx, cfg, directory)
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Verifier:   verifier,
		Sessions:   sessionStore,
		Users:      directory,
		SessionTTL: cfg.Auth.SessionTTL,
		Logger:     cfg.Logger,
	}), nil
}

//nolint:ireturn // the active verifier implementation is selected at runtime.
func buildVerifier(ctx context.Context, cfg AuthConfig, directory ports.UserDirectory) (ports.Verifier, error) {
	switch cfg.Auth.Mode {
	case config.AuthModePassword:
		verifier, err := password.NewVerifier(directory)
		if err != nil {
			return nil, fmt.Errorf("build password verifier: %w", err)
		}
		return verifier, nil

	case config.AuthModeOIDC:
		if cfg.Auth.OIDC.IssuerURL == "" {
			return nil, errors.New("AUTH_MODE=oidc requires OIDC_ISSUER_URL")
		}
		verifier, err := oidc.NewVerifier(ctx, directory, oidc.VerifierConfig{
			IssuerURL:     cfg.Auth.OIDC.IssuerURL,
			ClientID:      cfg.Auth.OIDC.ClientID,
			UsernameClaim: cfg.Auth.OIDC.UsernameClaim,
		})
		if err != nil {
			return nil, fmt.Errorf("build oidc verifier: %w", err)
		}
		return verifier, nil

	case config.AuthModeMock:
		if cfg.Logger != nil {
			cfg.Logger.Warn("using mock auth; do not run this mode in production",
				"username", cfg.Auth.DevAuth.Username)
		}
		if err := ensureDevAccount(ctx, cfg.Users, cfg.Auth.DevAuth); err != nil {
			return nil, fmt.Errorf("provision dev account: %w", err)
		}
		verifier, err := devauth.NewVerifier(directory, devauth.Config{
			Username: cfg.Auth.DevAuth.Username,
			Password: cfg.Auth.DevAuth.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("build dev verifier: %w", err)
		}
		return verifier, nil

	default:
		return nil, fmt.Errorf("unknown auth mode: %q", cfg.Auth.Mode)
	}
}

// ensureDevAccount creates the configured dev account when it is missing, so
// mock-mode sessions resolve to a real user record on every request. Existing
// accounts are left untouched.
func ensureDevAccount(ctx context.Context, users core.UserRepository, cfg config.DevAuthConfig) error {
	_, err := users.GetByUsername(ctx, cfg.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, data.ErrUserNotFound) {
		return fmt.Errorf("look up dev account: %w", err)
	}

	hash, err := password.HashSecret(cfg.Password)
	if err != nil {
		return fmt.Errorf("hash dev password: %w", err)
	}

	name := cfg.Name
	if name == "" {
		name = cfg.Username
	}
	avatar := "https://avatar.iran.liara.run/public/boy?username=" + cfg.Username
	_, err = users.Create(ctx, &model.CreateUserRequest{
		Username: cfg.Username,
		Name:     name,
		Password: cfg.Password,
		Gender:   model.GenderMale,
	}, hash, avatar)
	if err != nil {
		return fmt.Errorf("create dev account: %w", err)
	}
	return nil
}

// userDirectory adapts the user repository to the auth port, translating the
// repository sentinel into the shared not-found error the auth flow keys on.
type userDirectory struct {
	users core.UserRepository
}

func (d userDirectory) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := d.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.NotFoundf("user %q not found", id)
		}
		return nil, err
	}
	return user, nil
}

func (d userDirectory) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := d.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.NotFoundf("user %q not found", username)
		}
		return nil, err
	}
	return user, nil
}
