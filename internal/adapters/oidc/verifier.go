package oidc

// Package oidc verifies federated logins. The client obtains an ID token
// from the identity provider and submits it as the login secret; this
// adapter validates the token signature and maps its claims onto a local
// user account.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	jmespath "github.com/jmespath-community/go-jmespath"

	domainauth "github.com/pennywise/pennywise-api/internal/domain/auth"
	apperrors "github.com/pennywise/pennywise-api/internal/errors"
	"github.com/pennywise/pennywise-api/internal/ports"
)

// claimsVerifier validates a raw ID token and returns its claims.
type claimsVerifier interface {
	VerifyClaims(ctx context.Context, rawIDToken string) (map[string]any, error)
}

// gooidcClaimsVerifier adapts *gooidc.IDTokenVerifier to claimsVerifier.
type gooidcClaimsVerifier struct {
	verifier *gooidc.IDTokenVerifier
}

func (g gooidcClaimsVerifier) VerifyClaims(ctx context.Context, rawIDToken string) (map[string]any, error) {
	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("verify id_token: %w", err)
	}
	var claims map[string]any
	if claimsErr := idToken.Claims(&claims); claimsErr != nil {
		return nil, fmt.Errorf("parse id_token claims: %w", claimsErr)
	}
	return claims, nil
}

// VerifierConfig holds configuration for the federated verifier.
type VerifierConfig struct {
	// IssuerURL is the identity provider base URL; discovery runs against
	// IssuerURL + "/.well-known/openid-configuration".
	IssuerURL string
	ClientID  string

	// UsernameClaim is a JMESPath expression evaluated against the token
	// claims to produce the local username. Defaults to "preferred_username".
	UsernameClaim string

	HTTPClient *http.Client // Optional, defaults to a 30s-timeout client
}

// Verifier implements the Verifier port against an OIDC identity provider.
type Verifier struct {
	users        ports.UserDirectory
	tokens       claimsVerifier
	usernameExpr string
}

// NewVerifier creates a federated verifier. It fetches the provider's
// discovery document once at construction.
func NewVerifier(ctx context.Context, users ports.UserDirectory, config VerifierConfig) (*Verifier, error) {
	if config.IssuerURL == "" {
		return nil, errors.New("issuer URL is required")
	}
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ctx = gooidc.ClientContext(ctx, httpClient)
	issuer := strings.TrimSuffix(config.IssuerURL, "/")
	provider, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	tokens := gooidcClaimsVerifier{verifier: provider.Verifier(&gooidc.Config{ClientID: config.ClientID})}
	return newVerifier(users, tokens, config.UsernameClaim)
}

func newVerifier(users ports.UserDirectory, tokens claimsVerifier, usernameClaim string) (*Verifier, error) {
	if usernameClaim == "" {
		usernameClaim = "preferred_username"
	}
	if _, err := jmespath.Compile(usernameClaim); err != nil {
		return nil, fmt.Errorf("compile username claim expression: %w", err)
	}
	return &Verifier{users: users, tokens: tokens, usernameExpr: usernameClaim}, nil
}

// Verify validates the raw ID token passed as the secret and resolves the
// mapped username against the local user directory. The handle, when
// non-empty, must match the token's mapped username.
func (v *Verifier) Verify(ctx context.Context, handle, secret string) (*domainauth.Principal, error) {
	claims, err := v.tokens.VerifyClaims(ctx, secret)
	if err != nil {
		return nil, ports.ErrInvalidCredentials
	}

	username, err := v.mapUsername(claims)
	if err != nil || username == "" {
		return nil, ports.ErrInvalidCredentials
	}
	if handle != "" && handle != username {
		return nil, ports.ErrInvalidCredentials
	}

	user, err := v.users.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			// Token is valid but no local account exists for the identity.
			return nil, ports.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	return &domainauth.Principal{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

func (v *Verifier) mapUsername(claims map[string]any) (string, error) {
	result, err := jmespath.Search(v.usernameExpr, claims)
	if err != nil {
		return "", fmt.Errorf("evaluate username claim: %w", err)
	}
	s, ok := result.(string)
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(s), nil
}
