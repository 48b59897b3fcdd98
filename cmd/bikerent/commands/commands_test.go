package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"bikerent/internal/devservice"
)

type cli struct {
	t    *testing.T
	home string
	api  string
}

func newCLI(t *testing.T) (*cli, *devservice.Service) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BIKERENT_CONFIG", "")
	svc := devservice.New(nil)
	svc.AddUser("tok-ada", "ada")
	srv := httptest.NewServer(svc.Router())
	t.Cleanup(srv.Close)
	return &cli{t: t, home: t.TempDir(), api: srv.URL}, svc
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	wire = nil
	root := newRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--home", c.home, "--api-root", c.api}, args...))
	err := root.ExecuteContext(context.Background())
	if wire != nil {
		_ = wire.Close()
	}
	return out.String(), err
}

func TestCLI_SessionAndRentalFlow(t *testing.T) {
	c, svc := newCLI(t)

	if _, err := c.run("whoami"); err == nil || !strings.Contains(err.Error(), "not logged in (/login)") {
		t.Fatalf("whoami before login: %v", err)
	}

	out, err := c.run("login", "tok-ada")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, `"username": "ada"`) {
		t.Fatalf("login output %q", out)
	}

	out, err = c.run("whoami")
	if err != nil || !strings.Contains(out, `"ada"`) {
		t.Fatalf("whoami: %q, %v", out, err)
	}

	out, err = c.run("start", "42", "--lat", "52.2297", "--lng", "21.0122", "--accuracy", "5")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !strings.Contains(out, `"start_lat": 52.2297`) {
		t.Fatalf("start output missing position: %q", out)
	}

	_, err = c.run("start", "42")
	if err == nil || err.Error() != "Bike is already rented." {
		t.Fatalf("second start: %v", err)
	}

	out, err = c.run("rentals")
	if err != nil || !strings.Contains(out, `"bike": "42"`) {
		t.Fatalf("rentals: %q, %v", out, err)
	}
	if n := svc.Calls("GET /rent"); n < 2 {
		t.Fatalf("GET /rent calls = %d, want refresh after start plus list", n)
	}

	if _, err := c.run("logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := c.run("rentals"); err == nil {
		t.Fatal("rentals allowed after logout")
	}
}

func TestCLI_RejectedToken(t *testing.T) {
	c, _ := newCLI(t)

	_, err := c.run("login", "bogus")
	if err == nil || !strings.Contains(err.Error(), "rejected") {
		t.Fatalf("login with bogus token: %v", err)
	}
	if _, err := c.run("whoami"); err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("rejected token was kept: %v", err)
	}
}
