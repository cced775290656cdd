// Package factory wires the application's services and their dependencies.
// The server binary and the end-to-end tests both build the app through here
// so they always agree on the wiring.
package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/castello/castello-go/internal/dependencies/clock"
	"github.com/castello/castello-go/internal/dependencies/ids"
	"github.com/castello/castello-go/internal/dependencies/random"
	"github.com/castello/castello-go/internal/services/auth"
	"github.com/castello/castello-go/internal/services/game"
	"github.com/castello/castello-go/internal/storage"
	"github.com/castello/castello-go/internal/storage/memory"
	redisstorage "github.com/castello/castello-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	IDs    ids.Generator

	// Services
	GameController *game.Controller
	AuthService    *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), ids.New(), authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, gen ids.Generator, authCfg auth.Config, logger *slog.Logger) *App {
	gameController := game.NewController(store, clk, rnd, gen, logger)
	authService := auth.New(store, clk, authCfg)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		IDs:            gen,
		GameController: gameController,
		AuthService:    authService,
	}
}
