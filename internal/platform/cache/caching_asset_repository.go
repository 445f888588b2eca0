// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"findata_backend/internal/feature/assets/domain/entity"
	"findata_backend/internal/feature/assets/usecase"
	ingestusecase "findata_backend/internal/feature/ingestion/usecase"
)

// AssetRepository is the full persistence surface the decorator wraps:
// the read side used by queries plus the write side used by ingestion.
type AssetRepository interface {
	FindMetricBySymbol(ctx context.Context, symbol string) (entity.Metric, error)
	ListWithMetrics(ctx context.Context) ([]entity.AssetWithMetric, error)
	SummaryRows(ctx context.Context) ([]entity.SummaryRow, error)
	ClearAll(ctx context.Context) error
	UpsertAsset(ctx context.Context, symbol, name string) (entity.Asset, error)
	UpsertMetric(ctx context.Context, assetID uint, snapshot entity.MetricSnapshot) error
}

// CachingAssetRepository decorates an AssetRepository with Redis caching.
// Reads are served from cache when possible; every write invalidates the
// whole namespace so readers never observe stale metrics.
type CachingAssetRepository struct {
	inner     AssetRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var (
	_ usecase.AssetRepository  = (*CachingAssetRepository)(nil)
	_ ingestusecase.AssetStore = (*CachingAssetRepository)(nil)
)

// NewCachingAssetRepository decorates an AssetRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "assets".
// A nil Redis client degrades to a transparent pass-through.
func NewCachingAssetRepository(rdb *redis.Client, ttl time.Duration, inner AssetRepository, namespace string) *CachingAssetRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "assets"
	}
	return &CachingAssetRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindMetricBySymbol retrieves a metric, checking cache first then falling back to the database.
func (c *CachingAssetRepository) FindMetricBySymbol(ctx context.Context, symbol string) (entity.Metric, error) {
	if c.rdb == nil {
		return c.inner.FindMetricBySymbol(ctx, symbol)
	}

	key := c.namespace + ":metric:" + safe(symbol)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Metric
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindMetricBySymbol(ctx, symbol)
	if err != nil {
		// Not-found outcomes are never cached
		return entity.Metric{}, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// ListWithMetrics retrieves the asset list, checking cache first.
func (c *CachingAssetRepository) ListWithMetrics(ctx context.Context) ([]entity.AssetWithMetric, error) {
	if c.rdb == nil {
		return c.inner.ListWithMetrics(ctx)
	}

	key := c.namespace + ":list"
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.AssetWithMetric
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.ListWithMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// SummaryRows retrieves the summary projection, checking cache first.
func (c *CachingAssetRepository) SummaryRows(ctx context.Context) ([]entity.SummaryRow, error) {
	if c.rdb == nil {
		return c.inner.SummaryRows(ctx)
	}

	key := c.namespace + ":summary"
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.SummaryRow
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.SummaryRows(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// UpsertAsset creates the asset if absent and invalidates cached reads.
func (c *CachingAssetRepository) UpsertAsset(ctx context.Context, symbol, name string) (entity.Asset, error) {
	asset, err := c.inner.UpsertAsset(ctx, symbol, name)
	if err != nil {
		return entity.Asset{}, err
	}
	c.invalidate(ctx)
	return asset, nil
}

// UpsertMetric writes the metric and invalidates cached reads.
func (c *CachingAssetRepository) UpsertMetric(ctx context.Context, assetID uint, snapshot entity.MetricSnapshot) error {
	if err := c.inner.UpsertMetric(ctx, assetID, snapshot); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// ClearAll wipes the store and invalidates cached reads.
func (c *CachingAssetRepository) ClearAll(ctx context.Context) error {
	if err := c.inner.ClearAll(ctx); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// invalidate drops every key in the namespace. Best effort: a failed cache
// deletion must not fail the write that triggered it.
func (c *CachingAssetRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingAssetRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
