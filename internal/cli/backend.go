package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/dfsm/pkg/adapters/file"
	"github.com/aretw0/dfsm/pkg/adapters/loam"
	"github.com/aretw0/dfsm/pkg/adapters/memory"
	"github.com/aretw0/dfsm/pkg/adapters/redis"
	"github.com/aretw0/dfsm/pkg/catalog"
	"github.com/aretw0/dfsm/pkg/ports"
)

// StoreConfig selects and configures the machine catalog backend.
type StoreConfig struct {
	Kind string // memory, file, redis or loam
	Dir  string // file store directory or loam repository

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	RedisTTL      time.Duration
}

// Backend is an opened catalog plus what the transports may need from its store.
type Backend struct {
	Catalog *catalog.Catalog
	// Watcher is set for backends that can report source changes (loam).
	Watcher interface {
		Watch(ctx context.Context) (<-chan string, error)
	}
	Close func() error
}

// OpenBackend opens the catalog described by cfg.
func OpenBackend(cfg StoreConfig, logger *slog.Logger) (*Backend, error) {
	var (
		loader ports.MachineLoader
		opts   = []catalog.Option{catalog.WithLogger(logger)}
		closer = func() error { return nil }
	)
	backend := &Backend{}

	switch cfg.Kind {
	case "", "memory":
		loader = memory.NewStore()
	case "file":
		loader = file.New(cfg.Dir)
	case "redis":
		var redisOpts []redis.Option
		if cfg.RedisPrefix != "" {
			redisOpts = append(redisOpts, redis.WithPrefix(cfg.RedisPrefix))
		}
		if cfg.RedisTTL > 0 {
			redisOpts = append(redisOpts, redis.WithTTL(cfg.RedisTTL))
		}
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redisOpts...)
		loader = store
		opts = append(opts, catalog.WithLocker(redis.NewLocker(store.Client(), store.Prefix()), 10*time.Second))
		closer = store.Close
	case "loam":
		l, err := loam.Open(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open loam repository %s: %w", cfg.Dir, err)
		}
		loader = l
		backend.Watcher = l
	default:
		return nil, fmt.Errorf("unknown store %q (want memory, file, redis or loam)", cfg.Kind)
	}

	logger.Info("machine catalog opened", "store", cfg.Kind, "dir", cfg.Dir)
	backend.Catalog = catalog.New(loader, opts...)
	backend.Close = closer
	return backend, nil
}
