package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const catalogKeyPrefix = "catalog:"

// CatalogCache fronts a CatalogLookup with Redis. Concurrent misses for the same key share
// one backend load. Redis failures fall through to the backend.
type CatalogCache struct {
	next   portsrepo.CatalogLookup
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

// NewCatalogCache wraps next. A nil client disables caching.
func NewCatalogCache(next portsrepo.CatalogLookup, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CatalogCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogCache{next: next, client: client, ttl: ttl, logger: logger}
}

var _ portsrepo.CatalogLookup = (*CatalogCache)(nil)

func catalogKey(tenantID string, kind domain.CatalogKind) string {
	return catalogKeyPrefix + tenantID + ":" + string(kind)
}

// ListCatalog serves from Redis when possible.
func (c *CatalogCache) ListCatalog(ctx context.Context, tenantID string, kind domain.CatalogKind) ([]domain.CatalogEntry, error) {
	if c.client == nil {
		return c.next.ListCatalog(ctx, tenantID, kind)
	}
	key := catalogKey(tenantID, kind)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var entries []domain.CatalogEntry
		if jsonErr := json.Unmarshal(payload, &entries); jsonErr == nil {
			return entries, nil
		}
		c.logger.Warn("Discarding undecodable catalog cache entry", slog.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("Catalog cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		entries, err := c.next.ListCatalog(ctx, tenantID, kind)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(entries)
		if err == nil {
			err = c.client.Set(ctx, key, raw, c.ttl).Err()
		}
		if err != nil {
			c.logger.Warn("Catalog cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.CatalogEntry), nil
}

// Invalidate drops the cached entries of one catalog.
func (c *CatalogCache) Invalidate(ctx context.Context, tenantID string, kind domain.CatalogKind) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, catalogKey(tenantID, kind)).Err()
}
