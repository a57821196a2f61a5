package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[ServiceMode]bool
		wantErr bool
	}{
		{
			name:  "single service",
			input: "http",
			want:  map[ServiceMode]bool{ServiceModeHTTP: true},
		},
		{
			name:  "multiple services",
			input: "http,scheduler",
			want:  map[ServiceMode]bool{ServiceModeHTTP: true, ServiceModeScheduler: true},
		},
		{
			name:  "whitespace is tolerated",
			input: " http , scheduler ",
			want:  map[ServiceMode]bool{ServiceModeHTTP: true, ServiceModeScheduler: true},
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "unknown service",
			input:   "http,worker",
			wantErr: true,
		},
		{
			name:    "only separators",
			input:   ",,",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseServices(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthModeUnmarshalText(t *testing.T) {
	var mode AuthMode

	require.NoError(t, mode.UnmarshalText([]byte("password")))
	assert.Equal(t, AuthModePassword, mode)

	require.NoError(t, mode.UnmarshalText([]byte("OIDC")))
	assert.Equal(t, AuthModeOIDC, mode)

	require.NoError(t, mode.UnmarshalText([]byte("mock")))
	assert.Equal(t, AuthModeMock, mode)

	assert.Error(t, mode.UnmarshalText([]byte("ldap")))
}

func TestAuthConfigSanitize(t *testing.T) {
	t.Run("session TTL floor", func(t *testing.T) {
		cfg := AuthConfig{SessionTTL: time.Second, CookieName: "session_id"}
		cfg.Sanitize()
		assert.Equal(t, time.Minute, cfg.SessionTTL)
	})

	t.Run("blank cookie name falls back to default", func(t *testing.T) {
		cfg := AuthConfig{SessionTTL: time.Hour, CookieName: "  "}
		cfg.Sanitize()
		assert.Equal(t, "session_id", cfg.CookieName)
	})

	t.Run("valid values pass through", func(t *testing.T) {
		cfg := AuthConfig{SessionTTL: 168 * time.Hour, CookieName: "pw_session"}
		cfg.Sanitize()
		assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
		assert.Equal(t, "pw_session", cfg.CookieName)
	})
}

func TestHTTPConfigSanitize(t *testing.T) {
	cfg := HTTPConfig{CORSAllowedOrigin: " http://localhost:3000/ "}
	cfg.Sanitize()
	assert.Equal(t, "http://localhost:3000", cfg.CORSAllowedOrigin)
}

func TestSchedulerConfigSanitize(t *testing.T) {
	cfg := SchedulerConfig{Interval: time.Millisecond, BatchSize: 0}
	cfg.Sanitize()
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, 1, cfg.BatchSize)
}

func TestAppConfigDevModeDetection(t *testing.T) {
	t.Run("NODE_ENV development enables dev mode", func(t *testing.T) {
		t.Setenv("NODE_ENV", "development")
		cfg := AppConfig{Services: "http"}
		cfg.Sanitize()
		assert.True(t, cfg.IsDev)
	})

	t.Run("explicit DEV flag wins", func(t *testing.T) {
		t.Setenv("NODE_ENV", "production")
		cfg := AppConfig{IsDev: true, Services: "http"}
		cfg.Sanitize()
		assert.True(t, cfg.IsDev)
	})

	t.Run("production stays off", func(t *testing.T) {
		t.Setenv("NODE_ENV", "production")
		cfg := AppConfig{Services: "http"}
		cfg.Sanitize()
		assert.False(t, cfg.IsDev)
	})
}

func TestAppConfigEnabledServices(t *testing.T) {
	cfg := AppConfig{Services: "http,scheduler"}
	assert.True(t, cfg.IsHTTPServerEnabled())
	assert.True(t, cfg.IsSchedulerEnabled())

	cfg.Services = "scheduler"
	assert.False(t, cfg.IsHTTPServerEnabled())
	assert.True(t, cfg.IsSchedulerEnabled())

	cfg.Services = "bogus"
	assert.False(t, cfg.IsHTTPServerEnabled())
	assert.False(t, cfg.IsSchedulerEnabled())
}
