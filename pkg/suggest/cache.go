package suggest

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

// Cached remembers a source's answers per (token, limit) for ttl. Concurrent
// lookups of the same key share one call to the wrapped source. Errors are
// not cached.
type Cached struct {
	src   Source
	cache *ttlcache.Cache[string, []Candidate]
	group singleflight.Group
}

func NewCached(src Source, ttl time.Duration) *Cached {
	c := ttlcache.New[string, []Candidate](
		ttlcache.WithTTL[string, []Candidate](ttl),
		ttlcache.WithDisableTouchOnHit[string, []Candidate](),
	)
	go c.Start()
	return &Cached{src: src, cache: c}
}

// Close stops the expiry loop.
func (c *Cached) Close() {
	c.cache.Stop()
}

func (c *Cached) Suggest(ctx context.Context, token string, limit int) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := strconv.Itoa(limit) + "\x00" + token
	if item := c.cache.Get(key); item != nil {
		log.Debugf("Cache hit for token '%s'", token)
		return item.Value(), nil
	}

	// The shared call outlives any single caller's cancellation; each
	// caller still stops waiting when its own ctx is done.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		candidates, err := c.src.Suggest(shared, token, limit)
		if err != nil {
			return nil, err
		}
		c.cache.Set(key, candidates, ttlcache.DefaultTTL)
		return candidates, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Candidate), nil
	}
}

// Stats mirrors the counters of the underlying cache.
func (c *Cached) Stats() map[string]int {
	m := c.cache.Metrics()
	return map[string]int{
		"entries": c.cache.Len(),
		"hits":    int(m.Hits),
		"misses":  int(m.Misses),
	}
}
