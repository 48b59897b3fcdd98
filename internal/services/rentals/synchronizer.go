package rentals

import (
	"context"
	"log/slog"

	"bikerent/internal/domain"
	"bikerent/internal/state"
)

// Synchronizer implements domain.RentalSynchronizer.
type Synchronizer struct {
	state   *state.State
	clients domain.ClientFactory
	log     *slog.Logger
}

// New constructs a Synchronizer. A nil log discards output.
func New(st *state.State, clients domain.ClientFactory, log *slog.Logger) *Synchronizer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Synchronizer{state: st, clients: clients, log: log}
}

// Refresh fetches the rental list and replaces the cached one. It does
// nothing without a session.
func (s *Synchronizer) Refresh(ctx context.Context) {
	token, ok := s.state.Token()
	if !ok {
		return
	}
	list, err := s.clients.For(token).Rentals(ctx)
	if err != nil {
		s.log.Debug("rental refresh failed; keeping previous list", "err", err)
		return
	}
	if !s.state.SetRentalsFor(token, list) {
		s.log.Debug("session changed during rental refresh; result dropped")
		return
	}
	s.log.Debug("rentals refreshed", "count", len(list))
}

// List returns the cached rental list.
func (s *Synchronizer) List() domain.RentalList { return s.state.Rentals() }

var _ domain.RentalSynchronizer = (*Synchronizer)(nil)
