package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"bikerent/internal/apierr"
	"bikerent/internal/domain"
)

// maxBody caps how much of a response body is read.
const maxBody = 1 << 20

// Factory builds authenticated clients for one service base URL.
type Factory struct {
	Base string
	HTTP *http.Client
}

// NewFactory returns a Factory for base. A nil httpClient means http.DefaultClient.
func NewFactory(base string, httpClient *http.Client) *Factory {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Factory{Base: strings.TrimRight(base, "/"), HTTP: httpClient}
}

// For returns a client that authenticates every call with token.
func (f *Factory) For(token domain.Token) domain.RentalAPI {
	return &Client{base: f.Base, http: f.HTTP, token: token}
}

// Client talks to the rental service on behalf of one token.
type Client struct {
	base  string
	http  *http.Client
	token domain.Token
}

// User fetches the authenticated user's profile.
func (c *Client) User(ctx context.Context) (domain.Profile, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/user", nil, &out); err != nil {
		return nil, err
	}
	return domain.Profile(out), nil
}

// StartRental issues POST /rent.
func (c *Client) StartRental(ctx context.Context, req domain.StartRentalRequest) (domain.Rental, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/rent", req, &out); err != nil {
		return nil, err
	}
	return domain.Rental(out), nil
}

// FinishRental issues POST /rent/{id}/finish.
func (c *Client) FinishRental(
	ctx context.Context,
	id domain.RentalID,
	req domain.FinishRentalRequest,
) (domain.Rental, error) {
	var out json.RawMessage
	path := "/rent/" + url.PathEscape(id.String()) + "/finish"
	if err := c.do(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return domain.Rental(out), nil
}

// Rentals lists the authenticated user's rentals.
func (c *Client) Rentals(ctx context.Context) (domain.RentalList, error) {
	var out domain.RentalList
	if err := c.do(ctx, http.MethodGet, "/rent", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = domain.RentalList{}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return &apierr.TransportError{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Authorization", "Token "+c.token.String())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &apierr.TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return &apierr.TransportError{Method: method, Path: path, Err: err}
	}
	if resp.StatusCode/100 != 2 {
		return &apierr.StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: b}
	}
	if out == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Compile-time assertions.
var (
	_ domain.RentalAPI     = (*Client)(nil)
	_ domain.ClientFactory = (*Factory)(nil)
)
