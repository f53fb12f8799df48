package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// NewOrderChangedPublisherWithWriter exposes the writer seam to tests.
func NewOrderChangedPublisherWithWriter(w messageWriter, topic string, logger *zap.Logger) *OrderChangedPublisher {
	return newOrderChangedPublisher(w, topic, time.Second, logger)
}

func NewWriter(cfg Config, logger *zap.Logger) *kafka.Writer {
	return newWriter(cfg, logger)
}
