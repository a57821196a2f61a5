package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/pennywise/pennywise-api/internal/domain/auth"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CORS returns a middleware that allows the configured frontend origin with
// credentials, so the session cookie travels on cross-origin GraphQL calls.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && origin == allowedOrigin {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SessionAuthenticator resolves a session key to a principal. A nil principal
// with a nil error means the request is anonymous; a non-nil error means the
// resolution itself failed and the request must be rejected.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, sessionID string) (*domainauth.Principal, error)
}

// SessionConfig holds configuration for the Session middleware. Cookie
// lifetime is not configured here: issued cookies expire exactly when the
// session record does.
type SessionConfig struct {
	Auth       SessionAuthenticator
	CookieName string // defaults to "session_id"
	Logger     *slog.Logger
}

// Session returns the middleware that turns the session cookie into the
// request's auth state. Absent, unknown, or expired cookies produce an
// anonymous request; only a session store fault produces an error response,
// before any handler runs. The installed carrier also lets login and logout
// set or clear the cookie.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = SessionCookieName
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if cookie, err := r.Cookie(cookieName); err == nil {
				sessionID = cookie.Value
			}

			principal, err := cfg.Auth.Authenticate(r.Context(), sessionID)
			if err != nil {
				logger.Error("session resolution failed", slog.Any("error", err))
				WriteError(w, ErrorParams{
					Code:    http.StatusInternalServerError,
					ErrCode: "server_error",
					Err:     errors.New("internal server error"),
				})
				return
			}

			secure := isSecureRequest(r)
			auth := &RequestAuth{
				principal: principal,
				sessionID: sessionID,
				issue: func(sess domainauth.Session) {
					http.SetCookie(w, &http.Cookie{
						Name:     cookieName,
						Value:    sess.ID,
						Path:     "/",
						Expires:  sess.ExpiresAt,
						MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
						HttpOnly: true,
						Secure:   secure,
						SameSite: http.SameSiteLaxMode,
					})
				},
				clear: func() {
					http.SetCookie(w, &http.Cookie{
						Name:     cookieName,
						Value:    "",
						Path:     "/",
						MaxAge:   -1,
						HttpOnly: true,
						Secure:   secure,
						SameSite: http.SameSiteLaxMode,
					})
				},
			}

			next.ServeHTTP(w, r.WithContext(WithRequestAuth(r.Context(), auth)))
		})
	}
}

// isSecureRequest reports whether the request arrived over TLS, directly or
// via a terminating proxy.
func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
