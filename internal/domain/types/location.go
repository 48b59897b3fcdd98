package types

import "time"

// Coordinates is a single device fix. Accuracy is the radius in meters.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// LocationOptions tunes a single fix request.
type LocationOptions struct {
	Timeout      time.Duration // upper bound on the whole request
	HighAccuracy bool          // ask the platform for its most precise source
	MaxCachedAge time.Duration // a cached fix younger than this is acceptable
}
