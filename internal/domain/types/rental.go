package types

import "encoding/json"

// Rental is one rental record exactly as the service returned it.
type Rental = json.RawMessage

// RentalList is the authenticated user's rentals in service order.
type RentalList []Rental

// Position is the optional location attached to a rental mutation.
// Both fields are set together or not at all.
type Position struct {
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
}

// Located reports whether coordinates are attached.
func (p Position) Located() bool { return p.Lat != nil && p.Lng != nil }

// StartRentalRequest is the body of POST /rent.
type StartRentalRequest struct {
	Bike BikeID `json:"bike"`
	Position
}

// FinishRentalRequest is the body of POST /rent/{id}/finish.
type FinishRentalRequest struct {
	Position
}
