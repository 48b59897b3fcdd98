package location

import (
	"context"
	"errors"
	"fmt"

	"bikerent/internal/domain"
)

var (
	// ErrUnavailable means the device has no location capability.
	ErrUnavailable = domain.ErrLocationUnavailable
	// ErrTimeout means no fix arrived within LocationOptions.Timeout.
	ErrTimeout = fmt.Errorf("%w: timed out", domain.ErrLocationUnavailable)
	// ErrDenied means the user refused location access.
	ErrDenied = fmt.Errorf("%w: permission denied", domain.ErrLocationUnavailable)
)

// Platform is the device capability that produces a single fix.
type Platform interface {
	RequestFix(ctx context.Context, opts domain.LocationOptions) (domain.Coordinates, error)
}

// Provider is the domain.LocationProvider used by the rental orchestrator.
type Provider struct {
	platform Platform
}

// New returns a Provider over p. A nil p yields a Provider that always
// reports ErrUnavailable.
func New(p Platform) *Provider { return &Provider{platform: p} }

// GetCurrentPosition requests one fix. It blocks for at most opts.Timeout
// (when set) and never panics.
func (p *Provider) GetCurrentPosition(
	ctx context.Context,
	opts domain.LocationOptions,
) (domain.Coordinates, error) {
	if p == nil || p.platform == nil {
		return domain.Coordinates{}, ErrUnavailable
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	type result struct {
		c   domain.Coordinates
		err error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: platform panic: %v", ErrUnavailable, r)}
			}
		}()
		c, err := p.platform.RequestFix(ctx, opts)
		done <- result{c: c, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return domain.Coordinates{}, classify(r.err)
		}
		return r.c, nil
	case <-ctx.Done():
		return domain.Coordinates{}, classify(ctx.Err())
	}
}

func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrLocationUnavailable):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

var _ domain.LocationProvider = (*Provider)(nil)
