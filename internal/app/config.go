package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	APIRoot     string         `mapstructure:"api_root"`     // rental service base URL
	Home        string         `mapstructure:"home"`         // state directory, e.g. $HOME/.bikerent
	HTTPTimeout time.Duration  `mapstructure:"http_timeout"` // per-request timeout
	Storage     StorageConfig  `mapstructure:"storage"`
	Location    LocationConfig `mapstructure:"location"`
	Log         LogConfig      `mapstructure:"log"`
}

// StorageConfig selects where the auth token is persisted.
type StorageConfig struct {
	Backend     string `mapstructure:"backend"`
	Passphrase  string `mapstructure:"passphrase"` // seals the file store when set
	RedisAddr   string `mapstructure:"redis_addr"`
	RedisPrefix string `mapstructure:"redis_prefix"`
}

// LocationConfig describes the device position. Without Source "fixed" the
// device is treated as having no location capability.
type LocationConfig struct {
	Source    string  `mapstructure:"source"` // "", "none", "fixed" or "denied"
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	Accuracy  float64 `mapstructure:"accuracy"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"api-root":   "api_root",
	"home":       "home",
	"passphrase": "storage.passphrase",
	"storage":    "storage.backend",
	"redis-addr": "storage.redis_addr",
	"lat":        "location.latitude",
	"lng":        "location.longitude",
	"accuracy":   "location.accuracy",
}

// LoadConfig reads configuration from defaults, file, env and flags, in
// increasing precedence. Env var overrides use prefix BIKERENT_. flags may
// be nil.
func LoadConfig(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	defaultHome := ".bikerent"
	if dir, err := os.UserHomeDir(); err == nil {
		defaultHome = filepath.Join(dir, ".bikerent")
	}

	v.SetDefault("api_root", "http://127.0.0.1:8000")
	v.SetDefault("home", defaultHome)
	v.SetDefault("http_timeout", 10*time.Second)
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.passphrase", "")
	v.SetDefault("storage.redis_addr", "127.0.0.1:6379")
	v.SetDefault("storage.redis_prefix", "bikerent:")
	v.SetDefault("location.source", "")
	v.SetDefault("location.latitude", 0.0)
	v.SetDefault("location.longitude", 0.0)
	v.SetDefault("location.accuracy", 0.0)
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("BIKERENT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(defaultHome)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BIKERENT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if f := flags.Lookup("debug"); f != nil && f.Changed {
			v.Set("log.level", "debug")
		}
		for _, name := range []string{"lat", "lng", "accuracy"} {
			if f := flags.Lookup(name); f != nil && f.Changed {
				v.Set("location.source", "fixed")
				break
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.APIRoot = strings.TrimRight(c.APIRoot, "/")
	if c.APIRoot == "" {
		return Config{}, fmt.Errorf("api_root is empty")
	}
	switch c.Storage.Backend {
	case BackendFile, BackendRedis, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return c, nil
}
