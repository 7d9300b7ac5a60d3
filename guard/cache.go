package guard

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/healthcheckx/health"
)

// Cache reuses a probe's last outcome for TTL and collapses concurrent checks
// into one call. Cached results carry Details["cached"] = true.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	last    outcome
	expires time.Time

	group singleflight.Group
}

// NewCache creates a cache guard. A non-positive ttl disables reuse but
// still collapses concurrent checks.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, now: time.Now}
}

// Wrap returns p behind the cache. One cache should guard one probe.
func (c *Cache) Wrap(p health.Probe) health.Probe {
	return &guarded{name: p.Name(), check: func(ctx context.Context) (health.Result, error) {
		return c.execute(ctx, p.Check)
	}}
}

// Invalidate drops the cached outcome.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.expires = time.Time{}
	c.mu.Unlock()
}

func (c *Cache) execute(ctx context.Context, check checkFunc) (health.Result, error) {
	c.mu.Lock()
	if c.now().Before(c.expires) {
		o := c.last
		c.mu.Unlock()
		return withDetail(o.res, "cached", true), o.err
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do("check", func() (any, error) {
		res, err := check(ctx)
		o := outcome{res: res, err: err}

		if c.ttl > 0 {
			c.mu.Lock()
			c.last = o
			c.expires = c.now().Add(c.ttl)
			c.mu.Unlock()
		}
		return o, nil
	})

	o := v.(outcome)
	return o.res, o.err
}
