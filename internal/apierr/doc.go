// Package apierr classifies failures returned by the rental service and
// reduces them to a single human-readable message.
//
// Service error bodies come in a few known shapes. Classify maps a body to one
// of them in fixed priority order:
//
//	{"error": "..."}    ErrorPayload
//	{"detail": "..."}   DetailPayload
//	{"message": "..."}  MessagePayload
//	anything else       RawPayload
//
// Normalize turns a *StatusError with a known shape into an *AppError and
// passes every other error through unchanged.
package apierr
