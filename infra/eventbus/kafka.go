package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/bankcore/pkg/eventbus"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the bus uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEventBus publishes events to a single Kafka topic. Messages are keyed
// by user so a user's events land on one partition in order.
type KafkaEventBus struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewWithKafka creates a Kafka-backed event bus.
func NewWithKafka(brokers []string, topic string, logger *slog.Logger) (*KafkaEventBus, error) {
	parsed := parseBrokers(brokers)
	if len(parsed) == 0 {
		return nil, fmt.Errorf("kafka event bus: brokers are required")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("kafka event bus: topic is required")
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(parsed...),
		Topic:                  topic,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
	}
	return newKafkaBus(writer, topic, logger), nil
}

func newKafkaBus(w messageWriter, topic string, logger *slog.Logger) *KafkaEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaEventBus{writer: w, topic: topic, logger: logger.With("bus", "kafka")}
}

// Emit writes the event envelope to the topic.
func (b *KafkaEventBus) Emit(ctx context.Context, event eventbus.Event) error {
	env, raw, err := encode(event)
	if err != nil {
		return fmt.Errorf("kafka event bus: marshal failed: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(env.Key),
		Value: raw,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(env.Type)},
		},
	}
	if err := b.writer.WriteMessages(ctx, msg); err != nil {
		b.logger.Error("failed to emit event", "error", err, "type", env.Type, "topic", b.topic)
		return fmt.Errorf("kafka event bus: emit failed: %w", err)
	}
	b.logger.Debug("event emitted", "type", env.Type, "topic", b.topic)
	return nil
}

// Close flushes and closes the writer.
func (b *KafkaEventBus) Close() error {
	return b.writer.Close()
}

func parseBrokers(brokers []string) []string {
	out := make([]string, 0, len(brokers))
	for _, entry := range brokers {
		for _, b := range strings.Split(entry, ",") {
			if b = strings.TrimSpace(b); b != "" {
				out = append(out, b)
			}
		}
	}
	return out
}

var _ eventbus.Bus = (*KafkaEventBus)(nil)
