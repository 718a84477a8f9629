// Package alert holds the in-memory alert history and subscriber list.
//
// The store is a bounded append-only buffer: pushes prepend a timestamped
// record and truncate to capacity, reads return the newest records first.
// There is no persistence; a process restart loses all history. Fan-out
// happens through a Notifier so delivery can be wired to a real channel
// without touching the store.
package alert

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/cosmicweather/risk-service/internal/observability"
)

// Record is one alert: arbitrary caller fields plus the "at" timestamp
// stamped on push. Fields are not validated.
type Record map[string]any

// Subscription is one alert subscription. Subscriptions are never updated or
// deleted and are held only in process memory.
type Subscription struct {
	ID         string             `json:"id"`
	Channels   []string           `json:"channels"`
	Thresholds map[string]float64 `json:"thresholds"`
	Contact    map[string]string  `json:"contact"`
}

// Notifier fans a pushed alert out to a delivery channel. Publish failures
// are logged by the store, never surfaced to the pusher.
type Notifier interface {
	Publish(ctx context.Context, rec Record) error
}

// Subscription defaults applied when the caller omits the fields.
var (
	defaultChannels   = []string{"dashboard"}
	defaultThresholds = map[string]float64{"kp": 6}
)

// Store owns the alert history and subscriber list. All access goes through
// the mutex; the HTTP server handles requests concurrently.
type Store struct {
	capacity int
	clock    clockwork.Clock
	notifier Notifier
	logger   *slog.Logger
	metrics  *observability.Metrics

	mu          sync.Mutex
	alerts      []Record
	subscribers []Subscription
}

// NewStore creates a Store that keeps the most recent capacity alerts.
func NewStore(capacity int, clk clockwork.Clock, notifier Notifier, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		capacity: capacity,
		clock:    clk,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
	}
}

// Subscribe registers a new subscription and returns it with its assigned
// identifier: unix milliseconds plus a random suffix. No deduplication.
func (s *Store) Subscribe(channels []string, thresholds map[string]float64, contact map[string]string) Subscription {
	if len(channels) == 0 {
		channels = defaultChannels
	}
	if len(thresholds) == 0 {
		thresholds = defaultThresholds
	}
	if contact == nil {
		contact = map[string]string{}
	}

	sub := Subscription{
		ID:         newSubscriptionID(s.clock),
		Channels:   channels,
		Thresholds: thresholds,
		Contact:    contact,
	}

	s.mu.Lock()
	s.subscribers = append(s.subscribers, sub)
	n := len(s.subscribers)
	s.mu.Unlock()

	s.metrics.Subscribers.Set(float64(n))
	return sub
}

// Push prepends a timestamped copy of fields to the history, truncates to
// capacity, and fans the record out through the notifier. Fan-out errors are
// logged and counted, not returned.
func (s *Store) Push(ctx context.Context, fields Record) {
	rec := make(Record, len(fields)+1)
	for k, v := range fields {
		rec[k] = v
	}
	rec["at"] = s.clock.Now().UTC()

	s.mu.Lock()
	s.alerts = append([]Record{rec}, s.alerts...)
	if len(s.alerts) > s.capacity {
		dropped := len(s.alerts) - s.capacity
		s.alerts = s.alerts[:s.capacity]
		s.metrics.AlertsDropped.Add(float64(dropped))
	}
	s.mu.Unlock()

	s.metrics.AlertsPushed.Inc()

	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, rec); err != nil {
		s.logger.Warn("alert fan-out failed", "error", err)
		s.metrics.AlertFanout.WithLabelValues("error").Inc()
		return
	}
	s.metrics.AlertFanout.WithLabelValues("success").Inc()
}

// Recent returns the stored alerts, most recent first. Records are copied so
// callers cannot mutate the history.
func (s *Store) Recent() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, len(s.alerts))
	for i, rec := range s.alerts {
		cp := make(Record, len(rec))
		for k, v := range rec {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}

// Subscribers returns a copy of the current subscriber list.
func (s *Store) Subscribers() []Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Subscription, len(s.subscribers))
	copy(out, s.subscribers)
	return out
}

// newSubscriptionID builds a low-collision identifier from the current unix
// milliseconds and a short random suffix.
func newSubscriptionID(clk clockwork.Clock) string {
	return fmt.Sprintf("%d-%s", clk.Now().UnixMilli(), uuid.NewString()[:8])
}
