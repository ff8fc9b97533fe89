package content

import (
	"context"
	"log/slog"
	"time"
)

// ByteCache stores raw document bytes. platform/cache.Cache satisfies it.
type ByteCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

const cacheKeyPrefix = "textbook:doc:"

// CachedSource serves documents from a cache before falling back to next.
// Cache errors never fail a read.
type CachedSource struct {
	next  Source
	cache ByteCache
	ttl   time.Duration
}

// NewCachedSource wraps next with cache entries that live for ttl.
func NewCachedSource(next Source, cache ByteCache, ttl time.Duration) *CachedSource {
	return &CachedSource{next: next, cache: cache, ttl: ttl}
}

func (s *CachedSource) Open(ctx context.Context, path string) ([]byte, error) {
	key := cacheKeyPrefix + path

	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("document cache read failed", "path", path, "error", err)
	} else if ok {
		return data, nil
	}

	data, err = s.next.Open(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		slog.Warn("document cache write failed", "path", path, "error", err)
	}
	return data, nil
}
