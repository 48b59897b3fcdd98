package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bikerent/internal/domain"
	"bikerent/internal/state"
)

// TokenKey is the storage key holding the auth token.
const TokenKey = "authToken"

// ErrEmptyToken is returned by Authenticate for an empty token.
var ErrEmptyToken = errors.New("empty token")

// Manager implements domain.SessionService.
//
// It keeps three things in step:
//   - the token in the shared state (what IsAuthenticated checks),
//   - the persisted token (what a restart restores),
//   - the profile loaded for the current token.
type Manager struct {
	state   *state.State
	store   domain.KVStore
	clients domain.ClientFactory
	log     *slog.Logger
}

// New constructs a Manager. A nil log discards output.
func New(
	st *state.State,
	store domain.KVStore,
	clients domain.ClientFactory,
	log *slog.Logger,
) *Manager {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Manager{state: st, store: store, clients: clients, log: log}
}

// Authenticate stores token, persists it, clears the previous profile and
// loads the profile for it.
// The result is the profile load's result.
func (m *Manager) Authenticate(ctx context.Context, token domain.Token) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := m.setToken(ctx, token); err != nil {
		return err
	}
	m.log.Debug("session token set; loading profile")
	return m.FetchProfile(ctx)
}

// IsAuthenticated reports whether a token is held in memory. It never
// contacts the service.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.state.Token()
	return ok
}

// EnsureAuthenticated succeeds at once for an authenticated session.
// Otherwise it restores the token from storage and loads the profile.
func (m *Manager) EnsureAuthenticated(ctx context.Context) error {
	if m.IsAuthenticated() {
		return nil
	}
	if err := m.RestoreFromStorage(ctx); err != nil {
		return err
	}
	return m.FetchProfile(ctx)
}

// RestoreFromStorage loads the persisted token into memory.
func (m *Manager) RestoreFromStorage(ctx context.Context) error {
	v, ok, err := m.store.Get(ctx, TokenKey)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !ok || v == "" {
		return domain.ErrNoStoredToken
	}
	m.state.SetToken(domain.Token(v))
	m.log.Debug("session token restored from storage")
	return nil
}

// Logout clears token, profile and rentals, and removes the persisted token.
func (m *Manager) Logout(ctx context.Context) error {
	m.state.Clear()
	if err := m.store.Delete(ctx, TokenKey); err != nil {
		return fmt.Errorf("logout: remove stored token: %w", err)
	}
	return nil
}

// Session returns a snapshot of the current session.
func (m *Manager) Session() domain.Session { return m.state.Session() }

// setToken persists token before exposing it, so memory never holds a token
// that a restart would not restore. Any profile loaded before is dropped,
// even for the same token.
func (m *Manager) setToken(ctx context.Context, token domain.Token) error {
	if err := m.store.Set(ctx, TokenKey, token.String()); err != nil {
		return fmt.Errorf("persist session token: %w", err)
	}
	m.state.SetToken(token)
	m.state.SetProfileFor(token, nil)
	return nil
}

// clearFor drops the session for token if it is still current.
func (m *Manager) clearFor(ctx context.Context, token domain.Token) {
	if !m.state.ClearFor(token) {
		return
	}
	if err := m.store.Delete(context.WithoutCancel(ctx), TokenKey); err != nil {
		m.log.Warn("remove stored token", "err", err)
	}
}

var _ domain.SessionService = (*Manager)(nil)
