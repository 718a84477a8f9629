package omniweb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cosmicweather/risk-service/internal/domain"
	"github.com/cosmicweather/risk-service/internal/observability"
)

// Client implements domain.FeatureSource against an OMNIWeb-style JSON feed.
// The feed is expected to serve the four indicator series in the same shape
// as domain.FeatureSnapshot.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a feature feed client with the given request timeout.
func NewClient(url string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// Fetch retrieves and validates the latest feature snapshot. Any transport,
// status, decode, or validation failure is returned to the caller; the
// pipeline propagates it rather than fabricating data.
func (c *Client) Fetch(ctx context.Context) (domain.FeatureSnapshot, error) {
	snapshot, err := c.fetch(ctx)
	if err != nil {
		c.metrics.FeatureFetches.WithLabelValues("error").Inc()
		return domain.FeatureSnapshot{}, err
	}
	c.metrics.FeatureFetches.WithLabelValues("success").Inc()
	return snapshot, nil
}

func (c *Client) fetch(ctx context.Context) (domain.FeatureSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.FeatureSnapshot{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.FeatureSnapshot{}, fmt.Errorf("feature feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.FeatureSnapshot{}, fmt.Errorf("feature feed error: status %d: %s", resp.StatusCode, body)
	}

	var snapshot domain.FeatureSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return domain.FeatureSnapshot{}, fmt.Errorf("decode feature feed response: %w", err)
	}

	if err := snapshot.Validate(); err != nil {
		return domain.FeatureSnapshot{}, fmt.Errorf("feature feed served malformed data: %w", err)
	}

	return snapshot, nil
}
