// Package kafka publishes board changes to a Kafka topic as JSON messages keyed by
// order id, so all changes of one order land on the same partition in order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"kds/internal/core/domain/model/order"
	"kds/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Config configures the producer.
type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// OrderChangedMessage is the wire format of one event.
type OrderChangedMessage struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	OrderID    int64     `json:"order_id,omitempty"`
	Source     string    `json:"source,omitempty"`
	OldStatus  string    `json:"old_status,omitempty"`
	NewStatus  string    `json:"new_status,omitempty"`
	Removed    int64     `json:"removed,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderChangedPublisher implements ports.OrderEventPublisher on top of kafka-go.
type OrderChangedPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
	logger  *zap.Logger
}

var _ ports.OrderEventPublisher = (*OrderChangedPublisher)(nil)

// NewOrderChangedPublisher creates a synchronous producer that waits for all
// in-sync replicas to acknowledge each batch.
func NewOrderChangedPublisher(cfg Config, logger *zap.Logger) (*OrderChangedPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka: at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka: topic is required")
	}

	logger = logger.With(zap.String("component", "kafka_publisher"), zap.String("topic", cfg.Topic))
	return newOrderChangedPublisher(newWriter(cfg, logger), cfg.Topic, cfg.WriteTimeout, logger), nil
}

// flushInterval bounds how long a synchronous write waits for more messages to batch.
const flushInterval = 5 * time.Millisecond

// newWriter builds a producer for writes on the request path: every WriteMessages
// call is flushed right away instead of waiting for kafka-go's default 1s batch.
func newWriter(cfg Config, logger *zap.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Async:                  false,
		BatchSize:              1,
		BatchTimeout:           flushInterval,
		AllowAutoTopicCreation: true,
		Logger:                 kafkaLogger{logger: logger},
		ErrorLogger:            kafkaLogger{logger: logger},
	}
}

func newOrderChangedPublisher(
	writer messageWriter,
	topic string,
	timeout time.Duration,
	logger *zap.Logger,
) *OrderChangedPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &OrderChangedPublisher{writer: writer, topic: topic, timeout: timeout, logger: logger}
}

// Publish writes all events in one batch.
func (p *OrderChangedPublisher) Publish(ctx context.Context, events ...order.ChangedEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msg, err := toMessage(e)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d order events to %s: %w", len(msgs), p.topic, err)
	}
	p.logger.Debug("order events published", zap.Int("count", len(msgs)))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *OrderChangedPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(e order.ChangedEvent) (kafka.Message, error) {
	body := OrderChangedMessage{
		EventID:    e.ID.String(),
		Type:       string(e.Type),
		OrderID:    int64(e.OrderID),
		Source:     e.Source.String(),
		Removed:    e.Removed,
		OccurredAt: e.OccurredAt,
	}
	if e.OldStatus != order.Unknown {
		body.OldStatus = e.OldStatus.String()
	}
	if e.NewStatus != order.Unknown {
		body.NewStatus = e.NewStatus.String()
	}

	value, err := json.Marshal(body)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode order event %s: %w", e.ID, err)
	}

	key := []byte(string(e.Type))
	if e.OrderID != 0 {
		key = []byte(strconv.FormatInt(int64(e.OrderID), 10))
	}

	return kafka.Message{
		Key:   key,
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
			{Key: "event_id", Value: []byte(e.ID.String())},
		},
	}, nil
}

type kafkaLogger struct {
	logger *zap.Logger
}

func (k kafkaLogger) Printf(msg string, args ...interface{}) {
	k.logger.Sugar().Debugf(msg, args...)
}
