// Package rental runs the two rental transactions: starting a rental on a
// bike and finishing a rental.
//
// Each transaction is three steps in order:
//  1. Ask for a device fix, bounded by a 3s timeout. Any failure is ignored.
//  2. Send the mutation, attaching lat/lng only when the fix is accurate
//     enough (under 20 m to start, under 50 m to finish).
//  3. On success, schedule a background refresh of the rental list and
//     return the service's response body.
//
// Failures from the service are normalized to a single message (see
// internal/apierr). Overlapping calls for the same bike or rental within one
// session share one request, which runs to completion even if the caller
// that started it gives up.
package rental
