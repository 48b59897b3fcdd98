package types

import "encoding/json"

// Profile is the user record returned by GET /user. Its shape belongs to the
// service; bikerent stores and replaces it wholesale.
type Profile = json.RawMessage

// Session is a point-in-time view of the authentication state.
//
// Profile is only ever set while Token is non-empty.
type Session struct {
	Token   Token   `json:"-"`
	Profile Profile `json:"profile,omitempty"`
}

// Authenticated reports whether the session holds a token.
func (s Session) Authenticated() bool { return s.Token != "" }
