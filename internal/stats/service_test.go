package stats

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/artelaco/catalog-backend/pkg/errors"
	"github.com/artelaco/catalog-backend/pkg/redis"
)

type stubStatsRepo struct {
	products    int64
	collections int64
	categories  int64
	byCategory  []CategoryCount
	err         error

	aggregateCalls int
}

func (s *stubStatsRepo) CountProducts(_ context.Context) (int64, error) {
	s.aggregateCalls++
	return s.products, s.err
}

func (s *stubStatsRepo) CountCollections(_ context.Context) (int64, error) {
	return s.collections, s.err
}

func (s *stubStatsRepo) CountDistinctCategories(_ context.Context) (int64, error) {
	return s.categories, s.err
}

func (s *stubStatsRepo) GroupByCategory(_ context.Context) ([]CategoryCount, error) {
	return s.byCategory, s.err
}

type stubCache struct {
	entries map[string]string
	getErr  error
	setErr  error

	setKey string
	setTTL time.Duration
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string]string{}}
}

func (s *stubCache) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	value, ok := s.entries[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (s *stubCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.setKey = key
	s.setTTL = ttl
	s.entries[key] = value.(string)
	return nil
}

func (s *stubCache) CacheKey(parts ...string) string {
	return "catalog:cache:" + strings.Join(parts, ":")
}

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil)
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceGetStatsOrdering(t *testing.T) {
	repo := &stubStatsRepo{
		products:    10,
		collections: 2,
		categories:  3,
		byCategory: []CategoryCount{
			{Category: "B", ProductQuantity: 5},
			{Category: "A", ProductQuantity: 3},
			{Category: "C", ProductQuantity: 2},
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if dto.ProductsCount != 10 || dto.CollectionsCount != 2 || dto.CategoriesCount != 3 {
		t.Fatalf("unexpected counts: %+v", dto)
	}
	if len(dto.ProductsByCategory) != 3 {
		t.Fatalf("expected three categories, got %d", len(dto.ProductsByCategory))
	}
	if dto.ProductsByCategory[0].Category != "B" || dto.ProductsByCategory[0].ProductQuantity != 5 {
		t.Fatalf("expected (B,5) first, got %+v", dto.ProductsByCategory[0])
	}
}

func TestServiceGetStatsEmptyStore(t *testing.T) {
	svc, _ := NewService(&stubStatsRepo{})

	dto, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if dto.ProductsCount != 0 || dto.CollectionsCount != 0 || dto.CategoriesCount != 0 {
		t.Fatalf("expected zero counts, got %+v", dto)
	}
	if dto.ProductsByCategory == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(dto.ProductsByCategory) != 0 {
		t.Fatalf("expected no categories, got %d", len(dto.ProductsByCategory))
	}
}

func TestServiceGetStatsDependencyError(t *testing.T) {
	svc, _ := NewService(&stubStatsRepo{err: errors.New("boom")})

	_, err := svc.GetStats(context.Background())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}

func TestServiceGetStatsWritesCache(t *testing.T) {
	repo := &stubStatsRepo{products: 4, collections: 1, categories: 1}
	cache := newStubCache()
	svc, _ := NewService(repo, WithCache(cache, 30*time.Second))

	if _, err := svc.GetStats(context.Background()); err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if cache.setKey != "catalog:cache:stats:snapshot" {
		t.Fatalf("unexpected cache key %q", cache.setKey)
	}
	if cache.setTTL != 30*time.Second {
		t.Fatalf("unexpected cache ttl %s", cache.setTTL)
	}

	var cached StatsDTO
	if err := json.Unmarshal([]byte(cache.entries[cache.setKey]), &cached); err != nil {
		t.Fatalf("unmarshal cached snapshot: %v", err)
	}
	if cached.ProductsCount != 4 {
		t.Fatalf("expected cached products count 4, got %d", cached.ProductsCount)
	}
}

func TestServiceGetStatsServesFromCache(t *testing.T) {
	repo := &stubStatsRepo{products: 4}
	cache := newStubCache()
	svc, _ := NewService(repo, WithCache(cache, 30*time.Second))

	if _, err := svc.GetStats(context.Background()); err != nil {
		t.Fatalf("first get stats: %v", err)
	}
	repo.products = 99

	dto, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("second get stats: %v", err)
	}
	if dto.ProductsCount != 4 {
		t.Fatalf("expected cached count 4, got %d", dto.ProductsCount)
	}
	if repo.aggregateCalls != 1 {
		t.Fatalf("expected a single aggregation, got %d", repo.aggregateCalls)
	}
}

func TestServiceGetStatsCacheFailureFallsThrough(t *testing.T) {
	repo := &stubStatsRepo{products: 4}
	cache := newStubCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc, _ := NewService(repo, WithCache(cache, 30*time.Second))

	dto, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if dto.ProductsCount != 4 {
		t.Fatalf("expected fresh count 4, got %d", dto.ProductsCount)
	}
}

func TestServiceGetStatsCorruptCacheEntry(t *testing.T) {
	repo := &stubStatsRepo{products: 4}
	cache := newStubCache()
	cache.entries["catalog:cache:stats:snapshot"] = "{not json"
	svc, _ := NewService(repo, WithCache(cache, 30*time.Second))

	dto, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if dto.ProductsCount != 4 {
		t.Fatalf("expected fresh count 4, got %d", dto.ProductsCount)
	}
}

func TestServiceZeroTTLDisablesCache(t *testing.T) {
	repo := &stubStatsRepo{products: 4}
	cache := newStubCache()
	svc, _ := NewService(repo, WithCache(cache, 0))

	if _, err := svc.GetStats(context.Background()); err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if len(cache.entries) != 0 {
		t.Fatal("expected cache untouched with zero ttl")
	}
}
