package rentals_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"bikerent/internal/client"
	"bikerent/internal/devservice"
	"bikerent/internal/domain"
	"bikerent/internal/services/rentals"
	"bikerent/internal/state"
)

func TestRefresh_Unauthenticated_NoOp(t *testing.T) {
	svc := devservice.New(nil)
	srv := httptest.NewServer(svc.Router())
	defer srv.Close()

	syncer := rentals.New(state.New(), client.NewFactory(srv.URL, srv.Client()), nil)
	syncer.Refresh(context.Background())
	if svc.TotalCalls() != 0 {
		t.Fatal("refresh without a session reached the service")
	}
}

func TestRefresh_ReplacesWholesale(t *testing.T) {
	svc := devservice.New(nil)
	svc.AddUser("tok", "ann")
	srv := httptest.NewServer(svc.Router())
	defer srv.Close()
	ctx := context.Background()
	clients := client.NewFactory(srv.URL, srv.Client())

	st := state.New()
	st.SetToken("tok")
	st.SetRentalsFor("tok", domain.RentalList{[]byte(`{"id":"stale"}`)})

	for _, bike := range []domain.BikeID{"1", "2"} {
		if _, err := clients.For("tok").StartRental(ctx, domain.StartRentalRequest{Bike: bike}); err != nil {
			t.Fatalf("StartRental %s: %v", bike, err)
		}
	}

	syncer := rentals.New(st, clients, nil)
	syncer.Refresh(ctx)
	got := syncer.List()
	if len(got) != 2 {
		t.Fatalf("want 2 rentals, got %d", len(got))
	}
	for _, r := range got {
		if string(r) == `{"id":"stale"}` {
			t.Fatal("stale entry merged into refreshed list")
		}
	}
}

func TestRefresh_FailureKeepsPreviousList(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"detail":"down"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	st := state.New()
	st.SetToken("tok")
	prev := domain.RentalList{[]byte(`{"id":"r1"}`)}
	st.SetRentalsFor("tok", prev)

	rentals.New(st, client.NewFactory(srv.URL, srv.Client()), nil).Refresh(context.Background())
	if calls.Load() != 1 {
		t.Fatalf("service calls = %d, want 1", calls.Load())
	}
	if got := st.Rentals(); len(got) != 1 || string(got[0]) != `{"id":"r1"}` {
		t.Fatalf("list changed on failure: %s", got)
	}
}
