package interfaces

import (
	"context"

	domaintypes "bikerent/internal/domain/types"
)

// LocationProvider acquires a single device fix.
type LocationProvider interface {
	GetCurrentPosition(
		ctx context.Context,
		opts domaintypes.LocationOptions,
	) (domaintypes.Coordinates, error)
}
