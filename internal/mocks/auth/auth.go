package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"

	domainauth "github.com/pennywise/pennywise-api/internal/domain/auth"
	"github.com/pennywise/pennywise-api/internal/domain/model"
	apperrors "github.com/pennywise/pennywise-api/internal/errors"
	"github.com/pennywise/pennywise-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.Verifier      = (*MockVerifier)(nil)
	_ ports.SessionStore  = (*MemorySessionStore)(nil)
	_ ports.UserDirectory = (*MemoryUserDirectory)(nil)
)

// MockVerifier simulates credential verification for tests.
type MockVerifier struct {
	VerifyFunc func(ctx context.Context, handle, secret string) (*domainauth.Principal, error)

	// Accounts maps handle → secret for the default behavior.
	Accounts map[string]string
	// Principals maps handle → principal returned on success.
	Principals map[string]domainauth.Principal
}

// NewMockVerifier creates a MockVerifier with a single known account.
func NewMockVerifier() *MockVerifier {
	return &MockVerifier{
		Accounts: map[string]string{"mockuser": "mockpass"},
		Principals: map[string]domainauth.Principal{
			"mockuser": {ID: "mock-user-1", Username: "mockuser", Name: "Mock User"},
		},
	}
}

func (m *MockVerifier) Verify(ctx context.Context, handle, secret string) (*domainauth.Principal, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, handle, secret)
	}

	want, ok := m.Accounts[handle]
	if !ok || want != secret {
		return nil, ports.ErrInvalidCredentials
	}
	p, ok := m.Principals[handle]
	if !ok {
		p = domainauth.Principal{ID: "mock-" + handle, Username: handle}
	}
	return &p, nil
}

// MemorySessionStore is an in-memory session store for unit tests. It is
// safe for concurrent use, matching the real store's guarantees.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	// FailWith, when set, makes every call return this error to simulate
	// an unreachable store.
	FailWith error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return domainauth.Session{}, m.FailWith
	}
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if id == "" {
		return nil
	}
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Has reports whether a session with the given ID exists.
func (m *MemorySessionStore) Has(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[id]
	return ok
}

// MemoryUserDirectory is an in-memory user directory keyed by ID and username.
type MemoryUserDirectory struct {
	byID       map[string]*model.User
	byUsername map[string]*model.User
}

// NewMemoryUserDirectory creates a directory pre-populated with the given users.
func NewMemoryUserDirectory(users ...*model.User) *MemoryUserDirectory {
	d := &MemoryUserDirectory{
		byID:       make(map[string]*model.User),
		byUsername: make(map[string]*model.User),
	}
	for _, u := range users {
		d.Add(u)
	}
	return d
}

// Add registers a user in the directory.
func (d *MemoryUserDirectory) Add(u *model.User) {
	d.byID[u.ID] = u
	d.byUsername[u.Username] = u
}

// Remove deletes a user from the directory.
func (d *MemoryUserDirectory) Remove(id string) {
	if u, ok := d.byID[id]; ok {
		delete(d.byUsername, u.Username)
		delete(d.byID, id)
	}
}

func (d *MemoryUserDirectory) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := d.byID[id]
	if !ok {
		return nil, apperrors.NotFoundf("user %q not found", id)
	}
	return u, nil
}

func (d *MemoryUserDirectory) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := d.byUsername[username]
	if !ok {
		return nil, apperrors.NotFoundf("user %q not found", username)
	}
	return u, nil
}
