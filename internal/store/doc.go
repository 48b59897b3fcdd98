// Package store provides the persistent key-value storage bikerent keeps its
// session token in.
//
// It contains concrete implementations of domain.KVStore:
//   - FileStore: a JSON file under the configured home directory, written
//     atomically. NewSealedFileStore encrypts each value with a key derived
//     from a passphrase (scrypt + ChaCha20-Poly1305).
//   - RedisStore: one Redis string per key under a configurable prefix.
//   - MemoryStore: process-local, for tests and throwaway sessions.
//
// All methods are safe for concurrent use.
package store
