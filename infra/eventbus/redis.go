package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/bankcore/pkg/eventbus"
	"github.com/redis/go-redis/v9"
)

// RedisEventBus publishes events to a Redis stream.
type RedisEventBus struct {
	client *redis.Client
	stream string
	group  string
	logger *slog.Logger
}

// NewWithRedis creates a Redis-backed event bus on an existing client and
// makes sure the consumer group exists.
func NewWithRedis(ctx context.Context, client *redis.Client, stream, group string, logger *slog.Logger) (*RedisEventBus, error) {
	if client == nil || stream == "" || group == "" {
		return nil, fmt.Errorf("redis event bus: client, stream, and group are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis event bus: connection failed: %w", err)
	}
	err := client.XGroupCreateMkStream(ctx, stream, group, "0").Err()
	if err != nil && !isBusyGroup(err) {
		return nil, fmt.Errorf("redis event bus: create group: %w", err)
	}
	return &RedisEventBus{
		client: client,
		stream: stream,
		group:  group,
		logger: logger.With("component", "redis-event-bus"),
	}, nil
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}

// Emit publishes an event to the Redis stream.
func (b *RedisEventBus) Emit(ctx context.Context, event eventbus.Event) error {
	env, raw, err := encode(event)
	if err != nil {
		b.logger.Error("failed to marshal event", "error", err, "type", event.Type())
		return fmt.Errorf("redis event bus: marshal failed: %w", err)
	}
	_, err = b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: b.stream,
		Values: map[string]any{"type": env.Type, "key": env.Key, "event": string(raw)},
	}).Result()
	if err != nil {
		b.logger.Error("failed to emit event", "error", err, "type", event.Type())
		return fmt.Errorf("redis event bus: emit failed: %w", err)
	}
	b.logger.Debug("event emitted", "type", event.Type())
	return nil
}

// Register starts a consumer in the bus group that delivers events of
// eventType as RawEvent. It stops when ctx is cancelled. Messages of other
// types are acknowledged and skipped.
func (b *RedisEventBus) Register(ctx context.Context, eventType string, handler eventbus.HandlerFunc) {
	consumer := fmt.Sprintf("consumer-%s-%d", eventType, time.Now().UnixNano())
	b.logger.Info("registering handler", "event_type", eventType, "consumer", consumer)

	go func() {
		for ctx.Err() == nil {
			res, err := b.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    b.group,
				Consumer: consumer,
				Streams:  []string{b.stream, ">"},
				Count:    10,
				Block:    2 * time.Second,
			}).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
					b.logger.Error("error reading from stream", "error", err, "consumer", consumer)
					time.Sleep(time.Second)
				}
				continue
			}
			for _, stream := range res {
				for _, msg := range stream.Messages {
					b.deliver(ctx, eventType, msg, handler)
				}
			}
		}
	}()
}

func (b *RedisEventBus) deliver(ctx context.Context, eventType string, msg redis.XMessage, handler eventbus.HandlerFunc) {
	defer func() {
		if err := b.client.XAck(ctx, b.stream, b.group, msg.ID).Err(); err != nil {
			b.logger.Error("failed to acknowledge message", "error", err, "msg_id", msg.ID)
		}
	}()
	raw, ok := msg.Values["event"].(string)
	if !ok {
		return
	}
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		b.logger.Error("failed to unmarshal envelope", "error", err)
		return
	}
	if env.Type != eventType {
		return
	}
	if err := handler(ctx, RawEvent{EventType: env.Type, Key: env.Key, Payload: env.Payload}); err != nil {
		b.logger.Error("handler error", "error", err, "event_type", env.Type)
		b.pushToDLQ(ctx, msg.Values)
	}
}

// pushToDLQ pushes the raw event to a DLQ stream for inspection or reprocessing.
func (b *RedisEventBus) pushToDLQ(ctx context.Context, values map[string]any) {
	dlqStream := b.stream + "-DLQ"
	if err := b.client.XAdd(ctx, &redis.XAddArgs{Stream: dlqStream, Values: values}).Err(); err != nil {
		b.logger.Error("failed to push to DLQ", "error", err, "stream", dlqStream)
		return
	}
	b.logger.Warn("event pushed to DLQ", "stream", dlqStream)
}

var _ eventbus.Bus = (*RedisEventBus)(nil)
