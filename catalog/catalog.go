// Package catalog serves product, category, subcategory, and brand reads
// through a TTL cache. Catalog data is public and changes rarely; listing
// failures can degrade to an empty result so browsing never hard-fails on a
// flaky connection.
package catalog

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-storefront/core"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// API is the slice of the request layer the catalog reads from.
type API interface {
	ListProducts(ctx context.Context, query map[string]string) ([]core.Product, error)
	GetProduct(ctx context.Context, productID string) (core.Product, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
	GetCategory(ctx context.Context, categoryID string) (core.Category, error)
	ListSubCategories(ctx context.Context) ([]core.SubCategory, error)
	ListCategorySubCategories(ctx context.Context, categoryID string) ([]core.SubCategory, error)
	ListBrands(ctx context.Context) ([]core.Brand, error)
	GetBrand(ctx context.Context, brandID string) (core.Brand, error)
}

type Config struct {
	API API

	// CacheSize and CacheTTL bound the read cache. Zero values take the
	// defaults from core.DefaultConfig.
	CacheSize int
	CacheTTL  time.Duration

	// SilentFallback makes listing operations return empty results instead
	// of an error when the upstream call fails. Single-item lookups always
	// surface their error.
	SilentFallback bool

	Logger  core.Logger
	Metrics core.MetricsRecorder
}

type Catalog struct {
	api     API
	cache   *expirable.LRU[string, any]
	flight  singleflight.Group
	silent  bool
	logger  core.Logger
	metrics core.MetricsRecorder
}

func New(cfg Config) (*Catalog, error) {
	if cfg.API == nil {
		return nil, core.BadInputError("catalog requires an api client")
	}
	defaults := core.DefaultConfig().Catalog
	size := cfg.CacheSize
	if size <= 0 {
		size = defaults.CacheSize
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Duration(defaults.CacheTTLSec) * time.Second
	}
	c := &Catalog{
		api:     cfg.API,
		cache:   expirable.NewLRU[string, any](size, nil, ttl),
		silent:  cfg.SilentFallback,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
	if c.metrics == nil {
		c.metrics = core.NopMetricsRecorder{}
	}
	return c, nil
}

// Invalidate drops every cached entry.
func (c *Catalog) Invalidate() {
	c.cache.Purge()
}

func (c *Catalog) ListProducts(ctx context.Context, query map[string]string) ([]core.Product, error) {
	return listCached(ctx, c, "products"+queryKey(query), func(ctx context.Context) ([]core.Product, error) {
		return c.api.ListProducts(ctx, query)
	})
}

func (c *Catalog) GetProduct(ctx context.Context, productID string) (core.Product, error) {
	return getCached(ctx, c, "product:"+productID, func(ctx context.Context) (core.Product, error) {
		return c.api.GetProduct(ctx, productID)
	})
}

func (c *Catalog) ListCategories(ctx context.Context) ([]core.Category, error) {
	return listCached(ctx, c, "categories", c.api.ListCategories)
}

func (c *Catalog) GetCategory(ctx context.Context, categoryID string) (core.Category, error) {
	return getCached(ctx, c, "category:"+categoryID, func(ctx context.Context) (core.Category, error) {
		return c.api.GetCategory(ctx, categoryID)
	})
}

func (c *Catalog) ListSubCategories(ctx context.Context) ([]core.SubCategory, error) {
	return listCached(ctx, c, "subcategories", c.api.ListSubCategories)
}

func (c *Catalog) ListCategorySubCategories(ctx context.Context, categoryID string) ([]core.SubCategory, error) {
	return listCached(ctx, c, "subcategories:"+categoryID, func(ctx context.Context) ([]core.SubCategory, error) {
		return c.api.ListCategorySubCategories(ctx, categoryID)
	})
}

func (c *Catalog) ListBrands(ctx context.Context) ([]core.Brand, error) {
	return listCached(ctx, c, "brands", c.api.ListBrands)
}

func (c *Catalog) GetBrand(ctx context.Context, brandID string) (core.Brand, error) {
	return getCached(ctx, c, "brand:"+brandID, func(ctx context.Context) (core.Brand, error) {
		return c.api.GetBrand(ctx, brandID)
	})
}

// listCached serves listing reads from the cache, coalescing concurrent
// misses, and optionally degrading failures to an empty result.
func listCached[T any](ctx context.Context, c *Catalog, key string, fetch func(ctx context.Context) ([]T, error)) ([]T, error) {
	items, err := lookup(ctx, c, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		if c.silent {
			core.LogError(ctx, c.logger, "catalog fetch degraded to empty result", map[string]any{
				"key":   key,
				"error": err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}
	typed, _ := items.([]T)
	return typed, nil
}

func getCached[T any](ctx context.Context, c *Catalog, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	item, err := lookup(ctx, c, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, _ := item.(T)
	return typed, nil
}

func lookup(ctx context.Context, c *Catalog, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	if cached, ok := c.cache.Get(key); ok {
		c.metrics.IncCounter(ctx, "storefront.catalog.cache.total", 1, map[string]string{"outcome": "hit"})
		return cached, nil
	}
	c.metrics.IncCounter(ctx, "storefront.catalog.cache.total", 1, map[string]string{"outcome": "miss"})

	result, err, _ := c.flight.Do(key, func() (any, error) {
		fetched, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, fetched)
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func queryKey(query map[string]string) string {
	if len(query) == 0 {
		return ""
	}
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString("&")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(query[k])
	}
	return "?" + strings.TrimPrefix(b.String(), "&")
}
