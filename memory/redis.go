package memory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/graphflow-ai/graphflow/types"
)

// RedisStoreConfig configures a RedisStore.
type RedisStoreConfig struct {
	// Addr is the redis host:port.
	Addr string `yaml:"addr" json:"addr"`

	// Password for the redis instance, if any.
	Password string `yaml:"password" json:"password"`

	// DB selects the redis logical database.
	DB int `yaml:"db" json:"db"`

	// Prefix is prepended to every key. Defaults to "graphflow:".
	Prefix string `yaml:"prefix" json:"prefix"`

	// TTL is applied to every entry. 0 means entries never expire.
	TTL time.Duration `yaml:"ttl" json:"ttl"`

	// PoolSize controls the connection pool. 0 uses the client default.
	PoolSize int `yaml:"pool_size" json:"pool_size"`
}

// RedisStore is a redis-backed Store. Values are JSON-encoded, so a value
// retrieved after a round trip has JSON types (map[string]any, float64, ...).
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore connects to redis and verifies the connection with a ping.
func NewRedisStore(config RedisStoreConfig, logger *zap.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix := config.Prefix
	if prefix == "" {
		prefix = "graphflow:"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
		PoolSize: config.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, types.NewError(types.ErrMemoryError, "failed to connect to redis").WithCause(err)
	}

	logger.Info("redis memory store initialized", zap.String("addr", config.Addr))

	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    config.TTL,
		logger: logger.With(zap.String("component", "memory_redis")),
	}, nil
}

func (s *RedisStore) Store(ctx context.Context, key string, value any) error {
	if key == "" {
		return types.NewError(types.ErrMemoryError, "key is required")
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return types.NewError(types.ErrMemoryError, "failed to encode value").WithCause(err)
	}
	if err := s.client.Set(ctx, s.prefix+key, payload, s.ttl).Err(); err != nil {
		return types.NewError(types.ErrMemoryError, "redis set failed").WithCause(err)
	}
	return nil
}

func (s *RedisStore) Retrieve(ctx context.Context, key string) (any, bool, error) {
	if key == "" {
		return nil, false, types.NewError(types.ErrMemoryError, "key is required")
	}
	payload, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, types.NewError(types.ErrMemoryError, "redis get failed").WithCause(err)
	}

	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return nil, false, types.NewError(types.ErrMemoryError, "failed to decode value").WithCause(err)
	}
	return value, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return types.NewError(types.ErrMemoryError, "key is required")
	}
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return types.NewError(types.ErrMemoryError, "redis del failed").WithCause(err)
	}
	return nil
}

// Close releases the underlying redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
