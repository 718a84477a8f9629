package omniweb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmicweather/risk-service/internal/domain"
)

type countingSource struct {
	calls    int
	snapshot domain.FeatureSnapshot
	err      error
}

func (s *countingSource) Fetch(_ context.Context) (domain.FeatureSnapshot, error) {
	s.calls++
	if s.err != nil {
		return domain.FeatureSnapshot{}, s.err
	}
	return s.snapshot, nil
}

func TestCachedSource_ServesFromCacheWithinTTL(t *testing.T) {
	inner := &countingSource{snapshot: validFeed()}
	clk := clockwork.NewFakeClock()
	cached := NewCachedSource(inner, 5*time.Minute, clk, testMetrics())

	s1, err := cached.Fetch(context.Background())
	require.NoError(t, err)
	clk.Advance(4 * time.Minute)
	s2, err := cached.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
	assert.Equal(t, 1, inner.calls, "second fetch served from cache")
}

func TestCachedSource_RefetchesAfterTTL(t *testing.T) {
	inner := &countingSource{snapshot: validFeed()}
	clk := clockwork.NewFakeClock()
	cached := NewCachedSource(inner, 5*time.Minute, clk, testMetrics())

	_, err := cached.Fetch(context.Background())
	require.NoError(t, err)
	clk.Advance(5 * time.Minute)
	_, err = cached.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls, "expired entry refetched")
}

func TestCachedSource_DoesNotCacheErrors(t *testing.T) {
	inner := &countingSource{err: errors.New("feed down")}
	clk := clockwork.NewFakeClock()
	cached := NewCachedSource(inner, 5*time.Minute, clk, testMetrics())

	_, err := cached.Fetch(context.Background())
	require.Error(t, err)

	inner.err = nil
	inner.snapshot = validFeed()
	snapshot, err := cached.Fetch(context.Background())
	require.NoError(t, err, "failure was not cached")
	assert.Equal(t, validFeed(), snapshot)
	assert.Equal(t, 2, inner.calls)
}
