package domain

import (
	interfaces "bikerent/internal/domain/interfaces"
	types "bikerent/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Token               = types.Token
	BikeID              = types.BikeID
	RentalID            = types.RentalID
	Profile             = types.Profile
	Session             = types.Session
	Coordinates         = types.Coordinates
	LocationOptions     = types.LocationOptions
	Rental              = types.Rental
	RentalList          = types.RentalList
	Position            = types.Position
	StartRentalRequest  = types.StartRentalRequest
	FinishRentalRequest = types.FinishRentalRequest
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KVStore            = interfaces.KVStore
	RentalAPI          = interfaces.RentalAPI
	ClientFactory      = interfaces.ClientFactory
	LocationProvider   = interfaces.LocationProvider
	SessionService     = interfaces.SessionService
	RentalService      = interfaces.RentalService
	RentalSynchronizer = interfaces.RentalSynchronizer
)
