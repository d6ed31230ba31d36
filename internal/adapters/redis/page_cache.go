package redis

import (
	"context"
	"crypto/sha256"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "discovery:page"
	defaultTTL = 2 * time.Minute
)

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewClient создает клиента и проверяет соединение
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// PageCache хранит страницы результатов в Redis как JSON с TTL
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPageCache(client *redis.Client, ttl time.Duration) (*PageCache, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &PageCache{client: client, ttl: ttl}, nil
}

// pageKey: ключ запроса хешируется, окно страницы остается читаемым
func pageKey(key domain.QueryKey, paging domain.Paging) string {
	sum := sha256.Sum256([]byte(key.String()))
	return fmt.Sprintf("%s:%s:%s:%d:%d", keyPrefix, key.VendorType, hex.EncodeToString(sum[:16]), paging.Offset, paging.Limit)
}

func (c *PageCache) Get(ctx context.Context, key domain.QueryKey, paging domain.Paging) (*domain.ResultPage[domain.VendorRecord], bool, error) {
	raw, err := c.client.Get(ctx, pageKey(key, paging)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var page domain.ResultPage[domain.VendorRecord]
	if err := json.Unmarshal(raw, &page); err != nil {
		// битая запись считается промахом и будет перезаписана
		contextkeys.LoggerFromContext(ctx).Warn("Dropping undecodable cached page", port.Fields{
			"component": "RedisPageCache",
			"error":     err.Error(),
		})
		return nil, false, nil
	}
	if page.Items == nil {
		page.Items = []domain.VendorRecord{}
	}
	return &page, true, nil
}

func (c *PageCache) Set(ctx context.Context, key domain.QueryKey, paging domain.Paging, page domain.ResultPage[domain.VendorRecord]) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to encode page: %w", err)
	}
	if err := c.client.Set(ctx, pageKey(key, paging), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
