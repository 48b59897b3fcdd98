package rental_test

import (
	"context"
	"encoding/json"
	"sync"

	"bikerent/internal/domain"
)

// recorder collects the order of events across fakes.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fakeLocator struct {
	rec  *recorder
	fix  domain.Coordinates
	err  error
	opts []domain.LocationOptions
}

func (l *fakeLocator) GetCurrentPosition(
	_ context.Context,
	opts domain.LocationOptions,
) (domain.Coordinates, error) {
	l.opts = append(l.opts, opts)
	l.rec.add("locate")
	return l.fix, l.err
}

type fakeAPI struct {
	rec *recorder

	mu       sync.Mutex
	tokens   []domain.Token
	starts   []domain.StartRentalRequest
	finishes map[domain.RentalID]domain.FinishRentalRequest
	listed   int

	finishCount int

	gate     chan struct{} // when set, mutations block until closed or ctx is done
	entered  chan struct{} // receives one value per mutation that reached the gate
	response domain.Rental
	err      error
	rentals  domain.RentalList
	listErr  error
}

func newFakeAPI(rec *recorder) *fakeAPI {
	return &fakeAPI{
		rec:      rec,
		finishes: make(map[domain.RentalID]domain.FinishRentalRequest),
		response: json.RawMessage(`{"id":"r-1","bike":"42"}`),
		rentals:  domain.RentalList{json.RawMessage(`{"id":"r-1","bike":"42"}`)},
	}
}

func (a *fakeAPI) For(token domain.Token) domain.RentalAPI {
	a.mu.Lock()
	a.tokens = append(a.tokens, token)
	a.mu.Unlock()
	return a
}

func (a *fakeAPI) User(context.Context) (domain.Profile, error) {
	return json.RawMessage(`{}`), nil
}

func (a *fakeAPI) StartRental(ctx context.Context, req domain.StartRentalRequest) (domain.Rental, error) {
	a.rec.add("start")
	a.mu.Lock()
	a.starts = append(a.starts, req)
	a.mu.Unlock()
	return a.block(ctx)
}

// block waits on the gate like a slow service honouring ctx.
func (a *fakeAPI) block(ctx context.Context) (domain.Rental, error) {
	a.mu.Lock()
	gate, entered := a.gate, a.entered
	a.mu.Unlock()
	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return a.response, a.err
}

func (a *fakeAPI) FinishRental(
	ctx context.Context,
	id domain.RentalID,
	req domain.FinishRentalRequest,
) (domain.Rental, error) {
	a.rec.add("finish")
	a.mu.Lock()
	a.finishes[id] = req
	a.finishCount++
	a.mu.Unlock()
	return a.block(ctx)
}

func (a *fakeAPI) Rentals(context.Context) (domain.RentalList, error) {
	a.rec.add("list")
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listed++
	return a.rentals, a.listErr
}

func (a *fakeAPI) startRequests() []domain.StartRentalRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.StartRentalRequest(nil), a.starts...)
}

func (a *fakeAPI) finishCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.finishCount
}

func (a *fakeAPI) clientTokens() []domain.Token {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.Token(nil), a.tokens...)
}

// gated makes mutations block until release is called.
func (a *fakeAPI) gated() (release func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gate = make(chan struct{})
	a.entered = make(chan struct{}, 8)
	gate := a.gate
	return func() { close(gate) }
}
