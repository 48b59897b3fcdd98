package types

import "encoding/json"

// Token is the opaque credential issued by the rental service.
type Token string

// String returns the string form of the token.
func (t Token) String() string { return string(t) }

// BikeID identifies a bike as printed on its frame or QR code.
type BikeID string

// String returns the string form of the bike identifier.
func (id BikeID) String() string { return string(id) }

// MarshalJSON encodes a canonical decimal id ("42") as a JSON number and
// anything else ("042", "B-7") as a string.
func (id BikeID) MarshalJSON() ([]byte, error) {
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id BikeID) numeric() bool {
	if id == "" || len(id) > 15 || (id[0] == '0' && len(id) > 1) {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// RentalID identifies one rental on the service.
type RentalID string

// String returns the string form of the rental identifier.
func (id RentalID) String() string { return string(id) }
