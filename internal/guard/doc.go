// Package guard decides whether a navigation target may be entered.
//
// Routes flagged RequiresAuth are only entered once the session can be
// established, either because a token is already held or because one can
// be restored from storage and its profile fetched. Anything else is sent
// to the login path.
package guard
