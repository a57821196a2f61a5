package httpx

import (
	"context"

	domainauth "github.com/pennywise/pennywise-api/internal/domain/auth"
)

// authKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers and resolvers use the same key.
type authKey struct{}

// RequestAuth is the per-request authentication carrier. The session
// middleware builds exactly one per request; the principal it holds never
// changes for the request's lifetime. Login and logout resolvers use the
// issue/clear hooks to adjust the cookie on the response.
type RequestAuth struct {
	principal *domainauth.Principal
	sessionID string

	issue func(sess domainauth.Session)
	clear func()
}

// Principal returns the authenticated principal, or nil for an anonymous request.
func (a *RequestAuth) Principal() *domainauth.Principal {
	if a == nil {
		return nil
	}
	return a.principal
}

// SessionID returns the session key the request arrived with, or "".
func (a *RequestAuth) SessionID() string {
	if a == nil {
		return ""
	}
	return a.sessionID
}

// IssueSession sets the session cookie on the response for a newly minted
// session. No-op when the carrier was built without a response writer.
func (a *RequestAuth) IssueSession(sess domainauth.Session) {
	if a != nil && a.issue != nil {
		a.issue(sess)
	}
}

// ClearSession expires the session cookie on the response.
func (a *RequestAuth) ClearSession() {
	if a != nil && a.clear != nil {
		a.clear()
	}
}

// WithRequestAuth returns a child context carrying the given auth state.
func WithRequestAuth(ctx context.Context, auth *RequestAuth) context.Context {
	if auth == nil {
		return ctx
	}
	return context.WithValue(ctx, authKey{}, auth)
}

// GetRequestAuth returns the request's auth carrier, or nil when the session
// middleware did not run. All accessors tolerate a nil carrier, so callers
// may use the result directly.
func GetRequestAuth(ctx context.Context) *RequestAuth {
	auth, _ := ctx.Value(authKey{}).(*RequestAuth)
	return auth
}

// PrincipalFromContext returns the authenticated principal from context and a
// boolean indicating presence. Anonymous requests return (nil, false).
func PrincipalFromContext(ctx context.Context) (*domainauth.Principal, bool) {
	p := GetRequestAuth(ctx).Principal()
	return p, p != nil
}
