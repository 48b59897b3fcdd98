package state_test

import (
	"encoding/json"
	"testing"

	"bikerent/internal/domain"
	"bikerent/internal/state"
)

func TestState_ProfileRequiresCurrentToken(t *testing.T) {
	s := state.New()
	if s.SetProfileFor("", json.RawMessage(`{}`)) {
		t.Fatal("profile accepted without a token")
	}

	s.SetToken("a")
	if s.SetProfileFor("b", json.RawMessage(`{"u":"b"}`)) {
		t.Fatal("profile accepted for a stale token")
	}
	if !s.SetProfileFor("a", json.RawMessage(`{"u":"a"}`)) {
		t.Fatal("profile rejected for current token")
	}
	if got := string(s.Profile()); got != `{"u":"a"}` {
		t.Fatalf("profile = %s", got)
	}
}

func TestState_TokenChangeDropsDerivedState(t *testing.T) {
	s := state.New()
	s.SetToken("a")
	s.SetProfileFor("a", json.RawMessage(`{}`))
	s.SetRentalsFor("a", domain.RentalList{json.RawMessage(`{"id":"1"}`)})

	s.SetToken("a")
	if s.Profile() == nil || len(s.Rentals()) != 1 {
		t.Fatal("same token must keep profile and rentals")
	}

	s.SetToken("b")
	if s.Profile() != nil || len(s.Rentals()) != 0 {
		t.Fatal("new token must drop profile and rentals")
	}
}

func TestState_ClearFor(t *testing.T) {
	s := state.New()
	s.SetToken("a")
	if s.ClearFor("old") {
		t.Fatal("cleared for a token that is not current")
	}
	if !s.ClearFor("a") {
		t.Fatal("ClearFor current token reported nothing cleared")
	}
	if _, ok := s.Token(); ok {
		t.Fatal("token survived ClearFor")
	}
	if s.Session().Authenticated() {
		t.Fatal("session still authenticated")
	}
}

func TestState_RentalsAreCopied(t *testing.T) {
	s := state.New()
	s.SetToken("a")
	list := domain.RentalList{json.RawMessage(`{"id":"1"}`)}
	s.SetRentalsFor("a", list)
	list[0] = json.RawMessage(`{"id":"mutated"}`)
	if got := string(s.Rentals()[0]); got != `{"id":"1"}` {
		t.Fatalf("stored list aliased caller slice: %s", got)
	}
}
