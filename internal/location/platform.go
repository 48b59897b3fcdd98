package location

import (
	"context"
	"sync"
	"time"

	"bikerent/internal/domain"
)

// Fixed always reports the same coordinates.
type Fixed struct {
	Coordinates domain.Coordinates
}

func (f Fixed) RequestFix(ctx context.Context, _ domain.LocationOptions) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}
	return f.Coordinates, nil
}

// Denied is a capability the user has refused.
type Denied struct{}

func (Denied) RequestFix(context.Context, domain.LocationOptions) (domain.Coordinates, error) {
	return domain.Coordinates{}, ErrDenied
}

// Cached reuses the last fix from Platform while it is younger than the
// request's MaxCachedAge. The fix is held in memory only.
type Cached struct {
	Platform Platform
	Now      func() time.Time

	mu   sync.Mutex
	last domain.Coordinates
	at   time.Time
	ok   bool
}

// NewCached wraps p.
func NewCached(p Platform) *Cached { return &Cached{Platform: p} }

func (c *Cached) RequestFix(ctx context.Context, opts domain.LocationOptions) (domain.Coordinates, error) {
	now := c.now()
	c.mu.Lock()
	if c.ok && opts.MaxCachedAge > 0 && now.Sub(c.at) <= opts.MaxCachedAge {
		fix := c.last
		c.mu.Unlock()
		return fix, nil
	}
	c.mu.Unlock()

	fix, err := c.Platform.RequestFix(ctx, opts)
	if err != nil {
		return domain.Coordinates{}, err
	}
	c.mu.Lock()
	c.last, c.at, c.ok = fix, c.now(), true
	c.mu.Unlock()
	return fix, nil
}

func (c *Cached) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
