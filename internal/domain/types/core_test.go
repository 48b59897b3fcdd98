package types

import (
	"encoding/json"
	"testing"
)

func TestBikeID_MarshalJSON(t *testing.T) {
	cases := []struct {
		id   BikeID
		want string
	}{
		{"42", `42`},
		{"0", `0`},
		{"042", `"042"`},
		{"B-7", `"B-7"`},
		{"", `""`},
		{"1234567890123456", `"1234567890123456"`},
	}
	for _, tc := range cases {
		b, err := json.Marshal(tc.id)
		if err != nil {
			t.Fatalf("%q: %v", tc.id, err)
		}
		if string(b) != tc.want {
			t.Fatalf("%q encoded as %s, want %s", tc.id, b, tc.want)
		}
	}
}

func TestStartRentalRequest_Body(t *testing.T) {
	lat, lng := 52.2297, 21.0122
	b, err := json.Marshal(StartRentalRequest{Bike: "42", Position: Position{Lat: &lat, Lng: &lng}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `{"bike":42,"lat":52.2297,"lng":21.0122}`; got != want {
		t.Fatalf("body = %s, want %s", got, want)
	}

	b, err = json.Marshal(StartRentalRequest{Bike: "42"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `{"bike":42}`; got != want {
		t.Fatalf("body = %s, want %s", got, want)
	}
}
