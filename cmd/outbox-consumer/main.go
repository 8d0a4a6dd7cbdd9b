// Command outbox-consumer reads published gamification events from Kafka
// and logs them. It is the attachment point for notification fan-out.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lifequest/platform/internal/infra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("outbox consumer failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	topic := os.Getenv("CONSUMER_TOPIC")
	if topic == "" {
		topic = "lifequest.user.ACHIEVEMENT_UNLOCKED"
	}
	groupID := os.Getenv("CONSUMER_GROUP")
	if groupID == "" {
		groupID = "lifequest-notifier"
	}

	consumer := infra.NewKafkaConsumer(cfg.KafkaBrokers, topic, groupID, cfg.KafkaEnabled, logger)
	defer consumer.Close()

	if !consumer.Enabled() {
		logger.Info("kafka disabled, nothing to consume")
		<-ctx.Done()
		return nil
	}

	logger.Info("consuming", "topic", topic, "group", groupID)
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("consumer shutting down")
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}

		var envelope struct {
			EventID       string          `json:"event_id"`
			AggregateID   string          `json:"aggregate_id"`
			EventType     string          `json:"event_type"`
			Payload       json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(msg.Value, &envelope); err != nil {
			logger.Error("malformed event", "error", err, "offset", msg.Offset)
			continue
		}
		logger.Info("event received",
			"event_id", envelope.EventID,
			"event_type", envelope.EventType,
			"user_id", envelope.AggregateID,
		)
	}
}
