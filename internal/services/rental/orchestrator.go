package rental

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"bikerent/internal/apierr"
	"bikerent/internal/domain"
	"bikerent/internal/state"
)

const (
	// StartAccuracy is the largest fix radius, exclusive, attached to a start.
	StartAccuracy = 20.0
	// FinishAccuracy is the largest fix radius, exclusive, attached to a finish.
	FinishAccuracy = 50.0
)

// FlightTimeout bounds one shared rental request, location step included.
var FlightTimeout = LocateOptions.Timeout + 30*time.Second

// LocateOptions is the fix request used by both transactions.
var LocateOptions = domain.LocationOptions{
	Timeout:      3 * time.Second,
	HighAccuracy: true,
	MaxCachedAge: 20 * time.Second,
}

// Refresher is the part of the rental synchronizer the orchestrator needs.
type Refresher interface {
	Refresh(ctx context.Context)
}

// Orchestrator implements domain.RentalService.
type Orchestrator struct {
	state     *state.State
	clients   domain.ClientFactory
	locator   domain.LocationProvider
	refresher Refresher
	log       *slog.Logger

	flight singleflight.Group
	bg     sync.WaitGroup
}

// New constructs an Orchestrator. A nil log discards output.
func New(
	st *state.State,
	clients domain.ClientFactory,
	locator domain.LocationProvider,
	refresher Refresher,
	log *slog.Logger,
) *Orchestrator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{
		state:     st,
		clients:   clients,
		locator:   locator,
		refresher: refresher,
		log:       log,
	}
}

// StartRental rents bike and returns the service's rental record.
func (o *Orchestrator) StartRental(ctx context.Context, bike domain.BikeID) (domain.Rental, error) {
	token, ok := o.state.Token()
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return o.once(ctx, token, "start:"+bike.String(), func(ctx context.Context) (domain.Rental, error) {
		req := domain.StartRentalRequest{
			Bike:     bike,
			Position: o.locate(ctx, StartAccuracy),
		}
		rent, err := o.clients.For(token).StartRental(ctx, req)
		if err != nil {
			return nil, o.fail("start rental", err)
		}
		o.log.Info("rental started", "bike", bike, "located", req.Located())
		o.refreshLater(ctx)
		return rent, nil
	})
}

// EndRental finishes rental id and returns the service's rental record.
func (o *Orchestrator) EndRental(ctx context.Context, id domain.RentalID) (domain.Rental, error) {
	token, ok := o.state.Token()
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return o.once(ctx, token, "finish:"+id.String(), func(ctx context.Context) (domain.Rental, error) {
		req := domain.FinishRentalRequest{Position: o.locate(ctx, FinishAccuracy)}
		rent, err := o.clients.For(token).FinishRental(ctx, id, req)
		if err != nil {
			return nil, o.fail("finish rental", err)
		}
		o.log.Info("rental finished", "rental", id, "located", req.Located())
		o.refreshLater(ctx)
		return rent, nil
	})
}

// Wait blocks until every scheduled list refresh, and every request whose
// callers all gave up, has returned.
func (o *Orchestrator) Wait() { o.bg.Wait() }

// once runs fn for key unless a call for the same token and key is already
// in flight, in which case the caller shares its result. fn runs detached
// from every caller's cancellation, bounded by FlightTimeout; each caller
// stops waiting when its own ctx is done.
func (o *Orchestrator) once(
	ctx context.Context,
	token domain.Token,
	key string,
	fn func(context.Context) (domain.Rental, error),
) (domain.Rental, error) {
	key = token.String() + "\x00" + key
	work := context.WithoutCancel(ctx)
	ch := o.flight.DoChan(key, func() (any, error) {
		ctx, cancel := context.WithTimeout(work, FlightTimeout)
		defer cancel()
		return fn(ctx)
	})

	select {
	case r := <-ch:
		if r.Shared {
			o.log.Debug("shared in-flight rental request", "op", key[len(token)+1:])
		}
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(domain.Rental), nil
	case <-ctx.Done():
		o.bg.Add(1)
		go func() {
			defer o.bg.Done()
			<-ch
		}()
		return nil, ctx.Err()
	}
}

// locate returns the fix as a Position, or an empty Position when no fix
// arrived or its radius is not strictly below maxAccuracy.
func (o *Orchestrator) locate(ctx context.Context, maxAccuracy float64) domain.Position {
	if err := ctx.Err(); err != nil {
		return domain.Position{}
	}
	c, err := o.locator.GetCurrentPosition(ctx, LocateOptions)
	if err != nil {
		o.log.Debug("no location fix", "err", err)
		return domain.Position{}
	}
	if !(c.Accuracy < maxAccuracy) {
		o.log.Debug("location fix too coarse; omitted", "accuracy", c.Accuracy, "limit", maxAccuracy)
		return domain.Position{}
	}
	lat, lng := c.Latitude, c.Longitude
	return domain.Position{Lat: &lat, Lng: &lng}
}

func (o *Orchestrator) fail(op string, err error) error {
	norm := apierr.Normalize(err)
	msg := apierr.Message(norm)
	o.state.SetAppError(msg)
	o.log.Debug(op+" failed", "err", err, "message", msg)
	return norm
}

func (o *Orchestrator) refreshLater(ctx context.Context) {
	if o.refresher == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	o.bg.Add(1)
	go func() {
		defer o.bg.Done()
		o.refresher.Refresh(ctx)
	}()
}

var _ domain.RentalService = (*Orchestrator)(nil)
