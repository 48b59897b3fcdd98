package session

import (
	"context"
	"fmt"

	"bikerent/internal/apierr"
	"bikerent/internal/domain"
)

// FetchProfile loads the profile for the current token.
//
//   - No token: ErrUnauthenticated, without a network call.
//   - Success: the profile is replaced.
//   - 401: the session is cleared and ErrAuthRejected returned.
//   - Any other failure: the profile is left as is and nil is returned.
//
// Callers cannot observe non-authorization failures; a stale or missing
// profile is the only trace.
func (m *Manager) FetchProfile(ctx context.Context) error {
	token, ok := m.state.Token()
	if !ok {
		return domain.ErrUnauthenticated
	}

	p, err := m.clients.For(token).User(ctx)
	if err == nil {
		m.state.SetProfileFor(token, p)
		return nil
	}
	if apierr.IsUnauthorized(err) {
		m.log.Info("service rejected session token; clearing session")
		m.clearFor(ctx, token)
		return fmt.Errorf("fetch profile: %w", domain.ErrAuthRejected)
	}

	m.log.Debug("profile fetch failed; keeping previous profile", "err", err)
	return nil
}
