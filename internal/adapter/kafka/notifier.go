// Package kafka publishes alert fan-out to a Kafka topic. It implements
// alert.Notifier and is wired in only when fan-out is enabled in config.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/cosmicweather/risk-service/internal/alert"
	"github.com/cosmicweather/risk-service/internal/config"
)

// Notifier produces alert records to the configured fan-out topic.
type Notifier struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewNotifier creates a Kafka producer for the alert fan-out topic.
func NewNotifier(cfg *config.Config, logger *slog.Logger) *Notifier {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.AlertBrokers...),
		Topic:        cfg.AlertTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Notifier{writer: w, logger: logger}
}

// Publish serializes and writes one alert record to the fan-out topic.
func (n *Notifier) Publish(ctx context.Context, rec alert.Record) error {
	msg, err := serializeToMessage(rec)
	if err != nil {
		return err
	}
	return n.writer.WriteMessages(ctx, msg)
}

func (n *Notifier) Close() error {
	return n.writer.Close()
}

// serializeToMessage marshals an alert record into a Kafka message. The
// record's "type" field, when present, becomes the message key so alerts of
// one kind land on one partition.
func serializeToMessage(rec alert.Record) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert record: %w", err)
	}

	var key []byte
	if t, ok := rec["type"].(string); ok && t != "" {
		key = []byte(t)
	}

	msg := kafkago.Message{
		Key:   key,
		Value: data,
	}
	if at, ok := rec["at"].(time.Time); ok {
		msg.Headers = []kafkago.Header{
			{Key: "pushed_at", Value: []byte(at.Format(time.RFC3339))},
		}
	}
	return msg, nil
}
