// Package client provides the HTTP implementation of domain.RentalAPI.
//
// A Factory holds the service base URL (API_ROOT) and the shared
// *http.Client. Each call to Factory.For returns a new Client bound to one
// token, so a token rotation is picked up by the next call site without any
// invalidation step.
//
// Every request carries:
//   - Authorization: Token <token>
//   - Accept: application/json
//   - X-Request-ID: a fresh UUID, echoed in service logs
//
// Non-2xx responses are returned as *apierr.StatusError with the raw body so
// callers can normalize it; failures before a response exists are returned as
// *apierr.TransportError.
package client
