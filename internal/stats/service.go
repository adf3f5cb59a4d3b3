package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/artelaco/catalog-backend/pkg/errors"
	"github.com/artelaco/catalog-backend/pkg/logger"
	"github.com/artelaco/catalog-backend/pkg/redis"
)

type repository interface {
	CountProducts(ctx context.Context) (int64, error)
	CountCollections(ctx context.Context) (int64, error)
	CountDistinctCategories(ctx context.Context) (int64, error)
	GroupByCategory(ctx context.Context) ([]CategoryCount, error)
}

type cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(parts ...string) string
}

// Service exposes the read-only stats snapshot.
type Service interface {
	GetStats(ctx context.Context) (*StatsDTO, error)
}

type service struct {
	repo     repository
	cache    cache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// Option tweaks service construction.
type Option func(*service)

// WithCache enables snapshot caching with the provided TTL. A zero TTL
// leaves the cache disabled.
func WithCache(c cache, ttl time.Duration) Option {
	return func(s *service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithLogger attaches a logger for cache degradation reporting.
func WithLogger(logg *logger.Logger) Option {
	return func(s *service) {
		s.logg = logg
	}
}

// NewService builds the stats service. The cache is optional; without it
// every call aggregates directly from the store.
func NewService(repo repository, opts ...Option) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stats repository required")
	}
	s := &service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GetStats computes the snapshot, serving from cache when a fresh entry
// exists. Cache failures degrade to a direct read, never to an error.
func (s *service) GetStats(ctx context.Context) (*StatsDTO, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	dto, err := s.aggregate(ctx)
	if err != nil {
		return nil, err
	}
	s.storeInCache(ctx, dto)
	return dto, nil
}

func (s *service) aggregate(ctx context.Context) (*StatsDTO, error) {
	productsCount, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	collectionsCount, err := s.repo.CountCollections(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count collections")
	}
	categoriesCount, err := s.repo.CountDistinctCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count categories")
	}
	byCategory, err := s.repo.GroupByCategory(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "group by category")
	}
	if byCategory == nil {
		byCategory = []CategoryCount{}
	}

	return &StatsDTO{
		ProductsCount:      productsCount,
		CollectionsCount:   collectionsCount,
		CategoriesCount:    categoriesCount,
		ProductsByCategory: byCategory,
	}, nil
}

func (s *service) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

func (s *service) fromCache(ctx context.Context) *StatsDTO {
	if !s.cacheEnabled() {
		return nil
	}

	raw, err := s.cache.Get(ctx, s.cacheKey())
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.warn(ctx, "stats cache read failed", err)
		}
		return nil
	}

	var dto StatsDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		s.warn(ctx, "stats cache entry corrupt", err)
		return nil
	}
	if dto.ProductsByCategory == nil {
		dto.ProductsByCategory = []CategoryCount{}
	}
	return &dto
}

func (s *service) storeInCache(ctx context.Context, dto *StatsDTO) {
	if !s.cacheEnabled() {
		return
	}

	payload, err := json.Marshal(dto)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(), string(payload), s.cacheTTL); err != nil {
		s.warn(ctx, "stats cache write failed", err)
	}
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), msg)
}

func (s *service) cacheKey() string {
	return s.cache.CacheKey("stats", "snapshot")
}
