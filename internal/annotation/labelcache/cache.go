// Package labelcache keeps the last label successfully read or written for
// each person so a flaky label endpoint degrades to stale data instead of
// blank captions.
package labelcache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"swipetree/internal/annotation/models"
	"swipetree/pkg/platform/sentinel"
)

const prefetchLimit = 4

// Remote is the authoritative label source.
type Remote interface {
	Get(ctx context.Context, id string) (models.Label, error)
	Set(ctx context.Context, l models.Label) error
}

// Cache wraps a Remote with a last-known-good copy per id.
type Cache struct {
	remote Remote

	mu    sync.RWMutex
	known map[string]models.Label
}

// New creates an empty cache over remote.
func New(remote Remote) *Cache {
	return &Cache{remote: remote, known: make(map[string]models.Label)}
}

// Get reads through to the remote. When the remote fails and a copy is
// cached, the copy is returned together with an error wrapping
// sentinel.ErrStale. Absence is never served from cache.
func (c *Cache) Get(ctx context.Context, id string) (models.Label, error) {
	l, err := c.remote.Get(ctx, id)
	if err == nil {
		c.remember(l)
		return l, nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		c.forget(id)
		return models.Label{}, err
	}
	if cached, ok := c.Peek(id); ok {
		return cached, fmt.Errorf("%w: %w", sentinel.ErrStale, err)
	}
	return models.Label{}, err
}

// Set writes through. On failure the previously cached copy is kept.
func (c *Cache) Set(ctx context.Context, l models.Label) error {
	if err := c.remote.Set(ctx, l); err != nil {
		return err
	}
	c.remember(l)
	return nil
}

// Peek returns the cached copy without contacting the remote.
func (c *Cache) Peek(id string) (models.Label, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.known[id]
	return l, ok
}

// Prefetch warms the cache for ids concurrently. Individual misses and
// failures are ignored; only context cancellation is reported.
func (c *Cache) Prefetch(ctx context.Context, ids []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchLimit)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			_, _ = c.Get(gctx, id)
			return nil
		})
	}
	return g.Wait()
}

func (c *Cache) remember(l models.Label) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.known[l.ID] = l
}

func (c *Cache) forget(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.known, id)
}
