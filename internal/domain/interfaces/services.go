package interfaces

import (
	"context"

	domaintypes "bikerent/internal/domain/types"
)

// SessionService owns the token and the loaded profile.
type SessionService interface {
	Authenticate(ctx context.Context, token domaintypes.Token) error
	IsAuthenticated() bool
	EnsureAuthenticated(ctx context.Context) error
	RestoreFromStorage(ctx context.Context) error
	FetchProfile(ctx context.Context) error
	Logout(ctx context.Context) error
	Session() domaintypes.Session
}

// RentalService runs the start and end rental transactions.
type RentalService interface {
	StartRental(ctx context.Context, bike domaintypes.BikeID) (domaintypes.Rental, error)
	EndRental(ctx context.Context, id domaintypes.RentalID) (domaintypes.Rental, error)
}

// RentalSynchronizer keeps the cached rental list in step with the service.
type RentalSynchronizer interface {
	Refresh(ctx context.Context)
	List() domaintypes.RentalList
}
