package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/amirasaad/bankcore/infra/eventbus"
	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// wireEvent is the part of the bus envelope the smoke test checks.
type wireEvent struct {
	Type    string          `json:"type"`
	Key     string          `json:"key"`
	Payload json.RawMessage `json:"payload"`
}

// RunSmokeTest emits a ledger event through the Kafka bus and reads it back
// to verify a local broker accepts the bankcore envelope.
func RunSmokeTest(ctx context.Context, logger *slog.Logger) error {
	brokers := strings.Split(config.GetEnv("EVENTBUS_KAFKA_BROKERS", "localhost:9092"), ",")
	topic := config.GetEnv("EVENTBUS_KAFKA_TOPIC", "bankcore.events") + ".smoketest"
	groupID := config.GetEnv("GROUP_ID", "bankcore-smoketest")

	bus, err := eventbus.NewWithKafka(brokers, topic, logger)
	if err != nil {
		return err
	}
	defer func() { _ = bus.Close() }()

	userID := uuid.New()
	event := events.NewDepositRequested(userID, uuid.New(), "DEP-SMOKE", decimal.NewFromInt(100))
	if err := bus.Emit(ctx, event); err != nil {
		logger.Error("emit failed", "topic", topic, "error", err)
		return err
	}
	logger.Info("produced", "topic", topic, "type", event.Type(), "userID", userID)

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
	})
	defer func() { _ = r.Close() }()

	readCtx, cancelRead := context.WithTimeout(ctx, 10*time.Second)
	defer cancelRead()
	for {
		msg, err := r.FetchMessage(readCtx)
		if err != nil {
			logger.Error("fetch failed", "topic", topic, "error", err)
			return err
		}
		_ = r.CommitMessages(ctx, msg)

		var got wireEvent
		if err := json.Unmarshal(msg.Value, &got); err != nil {
			return fmt.Errorf("decode envelope: %w", err)
		}
		// Earlier runs leave their messages on the topic.
		if got.Key != userID.String() {
			continue
		}
		if got.Type != events.TypeDepositRequested {
			return errors.New("unexpected event type " + got.Type)
		}
		logger.Info("consumed", "topic", topic, "type", got.Type, "key", got.Key)
		logger.Info("kafka smoke test passed")
		return nil
	}
}

// main runs the smoke test and exits non-zero on failure.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := RunSmokeTest(ctx, logger); err != nil {
		os.Exit(1)
	}
}
