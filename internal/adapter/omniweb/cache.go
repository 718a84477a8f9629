package omniweb

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/cosmicweather/risk-service/internal/domain"
	"github.com/cosmicweather/risk-service/internal/observability"
)

// CachedSource wraps a FeatureSource with a single-entry TTL cache. The
// dashboard refreshes on a fixed interval, so one fresh snapshot per TTL
// window is enough; errors are never cached so the next call retries.
type CachedSource struct {
	inner   domain.FeatureSource
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu        sync.Mutex
	snapshot  domain.FeatureSnapshot
	fetchedAt time.Time
}

// NewCachedSource creates a cache decorator around a feature source.
func NewCachedSource(inner domain.FeatureSource, ttl time.Duration, clk clockwork.Clock, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		ttl:     ttl,
		clock:   clk,
		metrics: metrics,
	}
}

// Fetch returns the cached snapshot while it is fresh, otherwise fetches
// from the inner source and caches the result.
func (c *CachedSource) Fetch(ctx context.Context) (domain.FeatureSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if !c.fetchedAt.IsZero() && now.Sub(c.fetchedAt) < c.ttl {
		c.metrics.FeatureCache.WithLabelValues("hit").Inc()
		return c.snapshot, nil
	}

	snapshot, err := c.inner.Fetch(ctx)
	if err != nil {
		c.metrics.FeatureCache.WithLabelValues("miss").Inc()
		return domain.FeatureSnapshot{}, err
	}

	c.snapshot = snapshot
	c.fetchedAt = now
	c.metrics.FeatureCache.WithLabelValues("miss").Inc()
	return snapshot, nil
}
