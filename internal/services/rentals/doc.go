// Package rentals keeps the cached rental list of the authenticated user.
//
// Refresh replaces the list wholesale from GET /rent. It is best effort:
// failures are logged and the previous list stays in place.
package rentals
