// Package location provides best-effort, time-bounded device fixes.
//
// A Provider wraps a Platform, the device capability that actually produces
// coordinates. With no Platform configured every request fails with
// ErrUnavailable. The Provider enforces LocationOptions.Timeout itself, so a
// Platform that ignores its context still cannot hold a caller longer than the
// timeout.
//
// Platforms shipped here:
//   - Fixed: coordinates supplied by configuration or CLI flags.
//   - Denied: a capability whose permission was refused.
//   - Cached: a decorator honouring LocationOptions.MaxCachedAge with an
//     in-memory last fix.
package location
