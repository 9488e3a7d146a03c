package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cabanas/quote-service/config"
	"github.com/cabanas/quote-service/internal/database"
)

// New builds the backend selected by cfg.Type. The returned close function
// releases connections and is always non-nil.
func New(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (Storage, func(), error) {
	noop := func() {}
	log := logger.With().Str("component", "storage").Str("type", cfg.Type).Logger()

	switch StorageType(cfg.Type) {
	case StorageTypeLocal, "":
		s, err := NewLocalStorage(cfg.BasePath)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("base_path", cfg.BasePath).Msg("Using local storage")
		return s, noop, nil

	case StorageTypeMemory:
		log.Warn().Msg("Using in-memory storage; overrides are lost on restart")
		return NewMemoryStorage(), noop, nil

	case StorageTypePostgres:
		if err := database.Connect(ctx, database.PoolConfig{
			URL:             cfg.Database.URL,
			MaxConns:        cfg.Database.MaxConnections,
			MinConns:        cfg.Database.MinConnections,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		}); err != nil {
			return nil, noop, err
		}
		s, err := NewPostgresStorage(database.Pool(), cfg.Database.Table)
		if err != nil {
			database.Close()
			return nil, noop, err
		}
		if err := s.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, noop, err
		}
		log.Info().Str("table", s.table).Msg("Using postgres storage")
		return s, database.Close, nil

	case StorageTypeRedis:
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, noop, fmt.Errorf("invalid redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := redisotel.InstrumentTracing(client); err != nil {
			log.Warn().Err(err).Msg("Redis tracing not enabled")
		}
		if err := redisotel.InstrumentMetrics(client); err != nil {
			log.Warn().Err(err).Msg("Redis metrics not enabled")
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("error connecting to redis: %w", err)
		}
		s, err := NewRedisStorage(client, cfg.Redis.KeyPrefix)
		if err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		log.Info().Str("addr", opts.Addr).Str("prefix", cfg.Redis.KeyPrefix).Msg("Using redis storage")
		return s, func() { _ = client.Close() }, nil
	}

	return nil, noop, fmt.Errorf("unknown storage type %q", cfg.Type)
}
