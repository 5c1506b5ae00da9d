package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/credit-checkout/internal/domain/model"
	"github.com/polkiloo/credit-checkout/internal/domain/repository"
)

// ErrMiss reports a key absent from the cache.
var ErrMiss = errors.New("cache miss")

// Store is a minimal key value cache.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

// RedisStore implements Store on top of a redis client.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to redis at addr.
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return value, err
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

type cachedProduct struct {
	ID    int64  `json:"id"`
	SKU   string `json:"sku"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// ProductRepository serves catalog lookups from the cache and falls back to
// the wrapped repository. Misses are never cached and cache failures are
// logged and ignored.
type ProductRepository struct {
	next   repository.ProductRepository
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

// NewProductRepository wraps next with a read-through cache.
func NewProductRepository(next repository.ProductRepository, store Store, ttl time.Duration, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{next: next, store: store, ttl: ttl, logger: logger}
}

func productKey(sku string) string {
	return fmt.Sprintf("checkout:product:%s", sku)
}

// GetBySKU returns the product for sku.
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	key := productKey(sku)

	raw, err := r.store.Get(ctx, key)
	switch {
	case err == nil:
		if product, decodeErr := decodeProduct(raw); decodeErr == nil {
			return product, nil
		}
		r.logger.Warn("discarding malformed cached product", slog.String("sku", sku))
	case !errors.Is(err, ErrMiss):
		r.logger.Warn("product cache read failed", slog.String("sku", sku), slog.String("error", err.Error()))
	}

	product, err := r.next.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	if encoded, err := encodeProduct(product); err == nil {
		if err := r.store.Set(ctx, key, encoded, r.ttl); err != nil {
			r.logger.Warn("product cache write failed", slog.String("sku", sku), slog.String("error", err.Error()))
		}
	}
	return product, nil
}

func encodeProduct(p *model.Product) (string, error) {
	data, err := json.Marshal(cachedProduct{ID: p.ID, SKU: p.SKU, Name: p.Name, Price: p.Price.String()})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeProduct(raw string) (*model.Product, error) {
	var c cachedProduct
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(c.Price)
	if err != nil {
		return nil, err
	}
	return &model.Product{ID: c.ID, SKU: c.SKU, Name: c.Name, Price: price}, nil
}
