package guard

import (
	"context"
	"log/slog"
)

// DefaultLoginPath is where unauthenticated navigation is redirected.
const DefaultLoginPath = "/login"

// Authenticator is the session check the guard relies on.
type Authenticator interface {
	EnsureAuthenticated(ctx context.Context) error
}

// Route is a navigation target.
type Route struct {
	Path         string
	RequiresAuth bool
}

// Decision is the outcome of Check. When Allow is false, Redirect names the
// path to go to instead and Err carries the failed session check.
type Decision struct {
	Allow    bool
	Redirect string
	Err      error
}

// Guard gates protected routes.
type Guard struct {
	auth      Authenticator
	loginPath string
	log       *slog.Logger
}

// New returns a Guard. An empty loginPath means DefaultLoginPath.
func New(auth Authenticator, loginPath string, log *slog.Logger) *Guard {
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Guard{auth: auth, loginPath: loginPath, log: log}
}

// LoginPath returns the redirect target.
func (g *Guard) LoginPath() string { return g.loginPath }

// Check decides whether r may be entered.
func (g *Guard) Check(ctx context.Context, r Route) Decision {
	if !r.RequiresAuth {
		return Decision{Allow: true}
	}
	if err := g.auth.EnsureAuthenticated(ctx); err != nil {
		g.log.Debug("route requires a session", "path", r.Path, "err", err)
		return Decision{Redirect: g.loginPath, Err: err}
	}
	return Decision{Allow: true}
}
