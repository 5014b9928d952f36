package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/sherif414/floattree/pkg/store"
	"github.com/sherif414/floattree/pkg/tree"
)

// Store backend names accepted in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
)

// Config is the CLI configuration, loaded from ~/.config/floattree/config.toml.
type Config struct {
	// Strategy is the default deletion strategy: "recursive" or "orphan".
	Strategy string `toml:"strategy"`

	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// StoreConfig selects and configures the snapshot backend.
type StoreConfig struct {
	// Backend is one of "file", "redis", or "mongo".
	Backend string `toml:"backend"`

	// Dir is the snapshot directory for the file backend.
	// Defaults to ~/.config/floattree/snapshots/.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	// TTLHours expires snapshots after the given number of hours.
	// Zero means snapshots never expire.
	TTLHours int `toml:"ttl_hours"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	// Addr is the HTTP listen address.
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Strategy: tree.StrategyRecursive.String(),
		Store:    StoreConfig{Backend: backendFile},
		Server:   ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig reads a TOML config file, applying defaults for unset fields.
// A missing file is not an error and yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse TOML: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case backendFile, backendRedis, backendMongo:
	default:
		return fmt.Errorf("unknown store backend %q (expected file, redis, or mongo)", c.Store.Backend)
	}
	if _, ok := tree.ParseStrategy(c.Strategy); !ok {
		return fmt.Errorf("unknown strategy %q (expected recursive or orphan)", c.Strategy)
	}
	return nil
}

// DeleteStrategy returns the configured deletion strategy.
func (c Config) DeleteStrategy() tree.DeleteStrategy {
	s, _ := tree.ParseStrategy(c.Strategy)
	return s
}

// openStore opens the backend selected by cfg.
func openStore(ctx context.Context, cfg Config, logger *log.Logger) (store.Store, error) {
	switch cfg.Store.Backend {
	case backendRedis:
		logger.Debug("Opening redis store", "addr", cfg.Store.Redis.Addr)
		return store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
			TTL:      time.Duration(cfg.Store.Redis.TTLHours) * time.Hour,
		})
	case backendMongo:
		logger.Debug("Opening mongo store", "uri", cfg.Store.Mongo.URI)
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Store.Mongo.URI,
			Database:   cfg.Store.Mongo.Database,
			Collection: cfg.Store.Mongo.Collection,
		})
	default:
		dir := cfg.Store.Dir
		if dir == "" {
			configHome, err := configDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(configHome, "snapshots")
		}
		logger.Debug("Opening file store", "dir", dir)
		return store.NewFileStore(dir)
	}
}
