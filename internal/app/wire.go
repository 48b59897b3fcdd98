package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"bikerent/internal/client"
	"bikerent/internal/domain"
	"bikerent/internal/guard"
	"bikerent/internal/location"
	rentalsvc "bikerent/internal/services/rental"
	rentalssvc "bikerent/internal/services/rentals"
	sessionsvc "bikerent/internal/services/session"
	"bikerent/internal/state"
	"bikerent/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	State    *state.State
	Store    domain.KVStore
	Clients  *client.Factory
	Location *location.Provider
	Sessions *sessionsvc.Manager
	Rentals  *rentalssvc.Synchronizer
	Rental   *rentalsvc.Orchestrator
	Guard    *guard.Guard
	HTTP     *http.Client
	Log      *slog.Logger

	redis *redis.Client
}

// NewWire constructs the dependency graph from cfg. A nil log discards output.
func NewWire(cfg Config, log *slog.Logger) (*Wire, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	w := &Wire{Log: log}

	kv, err := w.openStore(cfg.Storage, cfg.Home)
	if err != nil {
		return nil, err
	}
	w.Store = kv

	w.HTTP = &http.Client{Timeout: cfg.HTTPTimeout}
	w.Clients = client.NewFactory(cfg.APIRoot, w.HTTP)
	w.Location = location.New(platformFor(cfg.Location))

	w.State = state.New()
	w.Sessions = sessionsvc.New(w.State, w.Store, w.Clients, log.With("component", "session"))
	w.Rentals = rentalssvc.New(w.State, w.Clients, log.With("component", "rentals"))
	w.Rental = rentalsvc.New(w.State, w.Clients, w.Location, w.Rentals, log.With("component", "rental"))
	w.Guard = guard.New(w.Sessions, guard.DefaultLoginPath, log.With("component", "guard"))
	return w, nil
}

// Close waits for background refreshes and releases connections.
func (w *Wire) Close() error {
	w.Rental.Wait()
	if w.redis != nil {
		return w.redis.Close()
	}
	return nil
}

func (w *Wire) openStore(cfg StorageConfig, home string) (domain.KVStore, error) {
	switch cfg.Backend {
	case BackendMemory:
		return store.NewMemoryStore(), nil
	case BackendRedis:
		w.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := w.redis.Ping(context.Background()).Err(); err != nil {
			_ = w.redis.Close()
			return nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		return store.NewRedisStore(w.redis, cfg.RedisPrefix), nil
	case BackendFile, "":
		if cfg.Passphrase != "" {
			return store.NewSealedFileStore(home, cfg.Passphrase), nil
		}
		return store.NewFileStore(home), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func platformFor(cfg LocationConfig) location.Platform {
	switch cfg.Source {
	case "fixed":
		return location.NewCached(location.Fixed{Coordinates: domain.Coordinates{
			Latitude:  cfg.Latitude,
			Longitude: cfg.Longitude,
			Accuracy:  cfg.Accuracy,
		}})
	case "denied":
		return location.Denied{}
	default:
		return nil
	}
}
