package interfaces

import (
	"context"

	domaintypes "bikerent/internal/domain/types"
)

// RentalAPI is an authenticated view of the remote rental service.
type RentalAPI interface {
	User(ctx context.Context) (domaintypes.Profile, error)
	StartRental(ctx context.Context, req domaintypes.StartRentalRequest) (domaintypes.Rental, error)
	FinishRental(
		ctx context.Context,
		id domaintypes.RentalID,
		req domaintypes.FinishRentalRequest,
	) (domaintypes.Rental, error)
	Rentals(ctx context.Context) (domaintypes.RentalList, error)
}

// ClientFactory builds a RentalAPI bound to one token. Implementations must
// not cache clients across tokens.
type ClientFactory interface {
	For(token domaintypes.Token) RentalAPI
}
