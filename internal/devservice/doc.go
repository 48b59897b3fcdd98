// Package devservice is an in-memory stand-in for the bike-rental service.
//
// HTTP API
//
//	GET  /user              profile of the token's owner
//	POST /rent              start a rental {bike, lat?, lng?}
//	POST /rent/{id}/finish  finish a rental {lat?, lng?}
//	GET  /rent              the caller's rentals, oldest first
//
// Every route requires "Authorization: Token <token>" for a token added with
// AddUser. Failures use the body shapes of the real service: {"detail": ...}
// for authentication and lookups, {"error": ...} for rental rules, per-field
// lists for validation, and {"message": ...} for unknown routes.
//
// All state is held in memory and lost when the process exits. It backs
// cmd/rentald and the package tests across the repository.
package devservice
