// Package main runs the in-memory rental service used by bikerent during
// development and tests.
//
// HTTP API
//
//	GET /user
//	    Return the profile bound to the request's token.
//
//	GET /rent
//	    Return the caller's rentals, oldest first.
//
//	POST /rent { "bike": "42", "lat": 52.2, "lng": 21.0 }
//	    Start a rental. lat and lng are optional.
//
//	POST /rent/{id}/finish { "lat": 52.2, "lng": 21.0 }
//	    Finish a rental. The body is optional.
//
// Behaviour
//
//   - Every route requires "Authorization: Token <token>"; unknown tokens get
//     401 {"detail": "Invalid token."}.
//   - Business failures are 400 {"error": "..."}, validation failures carry
//     per-field lists, unknown rentals are 404 {"detail": "Not found."}.
//   - All state is held in memory and lost on process exit.
//   - The default listen address is :8000.
package main
