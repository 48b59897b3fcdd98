// Package session owns the authentication session.
//
// The Manager holds the token, mirrors every token change to persistent
// storage under TokenKey, restores it on startup, and loads the user profile
// through an authenticated client. An authorization-denied profile response
// clears the whole session.
package session
