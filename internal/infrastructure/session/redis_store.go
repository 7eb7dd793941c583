package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
)

const defaultConnectTimeout = 5 * time.Second

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// RedisStore keeps the session in a Redis hash under a single key, for
// headless deployments of the client (order bots, CI probes) where a local
// file would not survive the host.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore wraps an established Redis client. key names the hash the
// session lives under.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Save(ctx context.Context, update domain.SessionUpdate) error {
	fields := make(map[string]string)
	applyUpdate(fields, update)
	if len(fields) == 0 {
		return nil
	}
	if err := s.client.HSet(ctx, s.key, fields).Err(); err != nil {
		return fmt.Errorf("session: redis save: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (domain.Session, error) {
	data, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return domain.Session{}, fmt.Errorf("session: redis load: %w", err)
	}
	return sessionFromMap(data), nil
}

func (s *RedisStore) SetLoggedIn(ctx context.Context, loggedIn bool) error {
	v := "false"
	if loggedIn {
		v = "true"
	}
	if err := s.client.HSet(ctx, s.key, keyIsLoggedIn, v).Err(); err != nil {
		return fmt.Errorf("session: redis set logged in: %w", err)
	}
	return nil
}

func (s *RedisStore) SetCartTotal(ctx context.Context, total decimal.Decimal) error {
	if err := s.client.HSet(ctx, s.key, keyCartTotal, total.String()).Err(); err != nil {
		return fmt.Errorf("session: redis set cart total: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("session: redis clear: %w", err)
	}
	return nil
}
