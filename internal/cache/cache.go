package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dimviana/Gestor-de-Boleto/internal/common"
	"github.com/dimviana/Gestor-de-Boleto/internal/core/boleto"
)

const keyPrefix = "boleto:result:"

// ResultCache memoizes extraction results by the SHA-256 of the source document.
type ResultCache interface {
	Get(ctx context.Context, sha256 string) (*boleto.Result, error)
	Set(ctx context.Context, sha256 string, r boleto.Result) error
	Close() error
}

var (
	_ ResultCache = (*RedisCache)(nil)
	_ ResultCache = NopCache{}
)

// New returns a RedisCache for cfg.RedisURL, or a NopCache when it is unset.
// Entries are scoped to namespace, normally the engine's spec fingerprint, so
// servers running different field specs never share records.
func New(cfg common.CacheConfig, namespace string, logger *slog.Logger) (ResultCache, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return NopCache{}, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, common.NewAppError(common.CodeConfig, "invalid REDIS_URL", err)
	}
	return NewRedisCache(redis.NewClient(opts), cfg.TTL, namespace, logger), nil
}

// RedisCache stores results as JSON with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, namespace string, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	prefix := keyPrefix
	if namespace != "" {
		prefix += namespace + ":"
	}
	return &RedisCache{client: client, ttl: ttl, prefix: prefix, logger: logger}
}

// Get returns common.ErrNotFound on a miss.
func (c *RedisCache) Get(ctx context.Context, sha256 string) (*boleto.Result, error) {
	data, err := c.client.Get(ctx, c.prefix+sha256).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cached result: %w", err)
	}

	var r boleto.Result
	if err := json.Unmarshal(data, &r); err != nil {
		c.logger.Warn("dropping unreadable cache entry", "sha256", sha256, "error", err)
		_ = c.client.Del(ctx, c.prefix+sha256).Err()
		return nil, common.ErrNotFound
	}
	return &r, nil
}

func (c *RedisCache) Set(ctx context.Context, sha256 string, r boleto.Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+sha256, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached result: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NopCache never hits.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (*boleto.Result, error) { return nil, common.ErrNotFound }
func (NopCache) Set(context.Context, string, boleto.Result) error    { return nil }
func (NopCache) Close() error                                        { return nil }
