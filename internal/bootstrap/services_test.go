package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pennywise/pennywise-api/config"
	"github.com/pennywise/pennywise-api/internal/data"
	"github.com/pennywise/pennywise-api/internal/domain/model"
	"github.com/pennywise/pennywise-api/internal/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestValidateServiceConfig(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		assert.Error(t, ValidateServiceConfig(nil))
	})

	t.Run("invalid service name", func(t *testing.T) {
		cfg := &config.AppConfig{Services: "http,bogus"}
		assert.Error(t, ValidateServiceConfig(cfg))
	})

	t.Run("valid services", func(t *testing.T) {
		cfg := &config.AppConfig{Services: "http,scheduler"}
		assert.NoError(t, ValidateServiceConfig(cfg))
	})
}

func TestNewServices_RequiresInfrastructure(t *testing.T) {
	ctx := context.Background()

	t.Run("config required", func(t *testing.T) {
		_, err := NewServices(ctx, ServiceDeps{})
		assert.ErrorContains(t, err, "config is required")
	})

	t.Run("database required", func(t *testing.T) {
		_, err := NewServices(ctx, ServiceDeps{Config: &config.AppConfig{}})
		assert.ErrorContains(t, err, "database handle is required")
	})
}

func TestBuildAuthService(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	users := mocks.NewMockUserRepository(gomock.NewController(t))

	baseAuth := config.AuthConfig{
		SessionTTL: time.Hour,
		CookieName: "session_id",
		DevAuth: config.DevAuthConfig{
			Username: "devuser",
			Password: "devpass",
			Name:     "Dev User",
		},
	}

	t.Run("redis client required", func(t *testing.T) {
		cfg := baseAuth
		cfg.Mode = config.AuthModePassword
		_, err := BuildAuthService(ctx, AuthConfig{Auth: cfg, Users: users, Logger: testLogger()})
		assert.ErrorContains(t, err, "redis client")
	})

	t.Run("password mode builds", func(t *testing.T) {
		cfg := baseAuth
		cfg.Mode = config.AuthModePassword
		svc, err := BuildAuthService(ctx, AuthConfig{
			Auth:        cfg,
			Users:       users,
			RedisClient: client,
			Logger:      testLogger(),
		})
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("mock mode builds with an existing dev account", func(t *testing.T) {
		cfg := baseAuth
		cfg.Mode = config.AuthModeMock

		repo := mocks.NewMockUserRepository(gomock.NewController(t))
		repo.EXPECT().GetByUsername(gomock.Any(), "devuser").
			Return(&model.User{ID: "user-dev-1", Username: "devuser", Name: "Dev User"}, nil)

		svc, err := BuildAuthService(ctx, AuthConfig{
			Auth:        cfg,
			Users:       repo,
			RedisClient: client,
			Logger:      testLogger(),
		})
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("mock mode provisions a missing dev account", func(t *testing.T) {
		cfg := baseAuth
		cfg.Mode = config.AuthModeMock

		repo := mocks.NewMockUserRepository(gomock.NewController(t))
		repo.EXPECT().GetByUsername(gomock.Any(), "devuser").
			Return(nil, data.ErrUserNotFound)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *model.CreateUserRequest, hash, _ string) (*model.User, error) {
				assert.Equal(t, "devuser", req.Username)
				assert.Equal(t, "Dev User", req.Name)
				assert.NotEqual(t, "devpass", hash)
				return &model.User{ID: "user-dev-1", Username: req.Username, Name: req.Name}, nil
			})

		svc, err := BuildAuthService(ctx, AuthConfig{
			Auth:        cfg,
			Users:       repo,
			RedisClient: client,
			Logger:      testLogger(),
		})
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("oidc mode requires an issuer", func(t *testing.T) {
		cfg := baseAuth
		cfg.Mode = config.AuthModeOIDC
		_, err := BuildAuthService(ctx, AuthConfig{
			Auth:        cfg,
			Users:       users,
			RedisClient: client,
			Logger:      testLogger(),
		})
		assert.ErrorContains(t, err, "OIDC_ISSUER_URL")
	})

	t.Run("unknown mode fails", func(t *testing.T) {
		cfg := baseAuth
		cfg.Mode = config.AuthMode("ldap")
		_, err := BuildAuthService(ctx, AuthConfig{
			Auth:        cfg,
			Users:       users,
			RedisClient: client,
			Logger:      testLogger(),
		})
		assert.ErrorContains(t, err, "unknown auth mode")
	})
}
