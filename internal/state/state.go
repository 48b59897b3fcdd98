// Package state holds the shared session and rental state that the services
// read and mutate. It replaces a process-wide store: one *State is built by
// internal/app and handed to each service.
//
// Each field has one owning writer (session token and profile: the session
// manager; rentals: the rental synchronizer; last error: the rental
// orchestrator). Writes that depend on a response carry the token the request
// was made with and are dropped if the session changed in the meantime.
package state

import (
	"slices"
	"sync"

	"bikerent/internal/domain"
)

// State is safe for concurrent use.
type State struct {
	mu       sync.RWMutex
	token    domain.Token
	profile  domain.Profile
	rentals  domain.RentalList
	appError string
}

// New returns an unauthenticated State.
func New() *State { return &State{} }

// Token returns the current token and whether one is held.
func (s *State) Token() (domain.Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken replaces the token. A different token drops the profile and
// rentals loaded for the previous one.
func (s *State) SetToken(t domain.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.token {
		s.profile = nil
		s.rentals = nil
	}
	s.token = t
}

// Session returns a snapshot of token and profile.
func (s *State) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Session{Token: s.token, Profile: slices.Clone(s.profile)}
}

// Profile returns a copy of the loaded profile, or nil.
func (s *State) Profile() domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.profile)
}

// SetProfileFor stores p if token is still the current token.
func (s *State) SetProfileFor(token domain.Token, p domain.Profile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" || token != s.token {
		return false
	}
	s.profile = slices.Clone(p)
	return true
}

// Rentals returns a copy of the cached rental list.
func (s *State) Rentals() domain.RentalList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rentals)
}

// SetRentalsFor replaces the rental list if token is still current.
func (s *State) SetRentalsFor(token domain.Token, list domain.RentalList) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" || token != s.token {
		return false
	}
	s.rentals = slices.Clone(list)
	return true
}

// AppError returns the last recorded user-facing error message.
func (s *State) AppError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appError
}

// SetAppError records msg; the latest call wins.
func (s *State) SetAppError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appError = msg
}

// Clear drops token, profile and rentals.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.profile, s.rentals = "", nil, nil
}

// ClearFor clears the session only if token is still current. It reports
// whether anything was cleared.
func (s *State) ClearFor(token domain.Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" || token != s.token {
		return false
	}
	s.token, s.profile, s.rentals = "", nil, nil
	return true
}
