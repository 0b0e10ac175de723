// internal/services/cache.go
package services

import (
	"context"
	"sync"
	"time"

	"github.com/autorunai/moto-backend/internal/models"
)

// TTLCache is a small fixed-TTL map. The advisor list changes a few times a
// month, so a short TTL keeps the public pages from hammering NocoDB without
// any real staleness risk.
type TTLCache[T any] struct {
	mtx     sync.RWMutex
	entries map[string]cacheEntry[T]
	ttl     time.Duration
}

type cacheEntry[T any] struct {
	value    T
	deadline time.Time
}

func NewTTLCache[T any](ttl time.Duration) *TTLCache[T] {
	return &TTLCache[T]{
		entries: make(map[string]cacheEntry[T]),
		ttl:     ttl,
	}
}

func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.deadline) {
		var zero T
		return zero, false
	}
	return entry.value, true
}

func (c *TTLCache[T]) Set(key string, value T) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.entries[key] = cacheEntry[T]{value: value, deadline: time.Now().Add(c.ttl)}
}

func (c *TTLCache[T]) Invalidate(key string) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	delete(c.entries, key)
}

func (c *TTLCache[T]) InvalidateAll() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.entries = make(map[string]cacheEntry[T])
}

const activeAdvisorsCacheKey = "advisors:active"

// CachedAdvisorRepository decorates an AdvisorRepository with a TTL cache on
// the active list, which is the only hot read (every catalog page binds to
// it). Slug lookups stay uncached: they are single-row queries and they must
// observe status changes immediately. Any write invalidates.
type CachedAdvisorRepository struct {
	AdvisorRepository
	cache *TTLCache[[]models.Advisor]
}

func NewCachedAdvisorRepository(repo AdvisorRepository, ttl time.Duration) *CachedAdvisorRepository {
	return &CachedAdvisorRepository{
		AdvisorRepository: repo,
		cache:             NewTTLCache[[]models.Advisor](ttl),
	}
}

func (r *CachedAdvisorRepository) ListActive(ctx context.Context) ([]models.Advisor, error) {
	if cached, ok := r.cache.Get(activeAdvisorsCacheKey); ok {
		return cached, nil
	}

	advisors, err := r.AdvisorRepository.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Set(activeAdvisorsCacheKey, advisors)
	return advisors, nil
}

func (r *CachedAdvisorRepository) Create(ctx context.Context, fields map[string]any) (*models.Advisor, error) {
	defer r.cache.InvalidateAll()
	return r.AdvisorRepository.Create(ctx, fields)
}

func (r *CachedAdvisorRepository) Update(ctx context.Context, id int, fields map[string]any) (*models.Advisor, error) {
	defer r.cache.InvalidateAll()
	return r.AdvisorRepository.Update(ctx, id, fields)
}

func (r *CachedAdvisorRepository) SetStatus(ctx context.Context, id int, status models.AdvisorStatus) error {
	defer r.cache.InvalidateAll()
	return r.AdvisorRepository.SetStatus(ctx, id, status)
}

func (r *CachedAdvisorRepository) Delete(ctx context.Context, id int) error {
	defer r.cache.InvalidateAll()
	return r.AdvisorRepository.Delete(ctx, id)
}

// InvalidateCache drops every cached entry. Exposed for the admin endpoint
// so out-of-band NocoDB edits can be picked up without waiting out the TTL.
func (r *CachedAdvisorRepository) InvalidateCache() {
	r.cache.InvalidateAll()
}
