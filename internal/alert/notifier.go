package alert

import (
	"context"
	"log/slog"
)

// LogNotifier is the default fan-out: it logs the alert and delivers nothing.
// Production deployments swap in a real publisher (see the kafka adapter).
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates the log-only notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Publish logs the record at info level and always succeeds.
func (n *LogNotifier) Publish(_ context.Context, rec Record) error {
	n.logger.Info("alert fan-out (log only)", "alert", map[string]any(rec))
	return nil
}
