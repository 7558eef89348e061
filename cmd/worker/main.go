package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/devconnect-io/devconnect/adapters/event"
	"github.com/devconnect-io/devconnect/adapters/persistence"
	"github.com/devconnect-io/devconnect/internal/config"
	"github.com/devconnect-io/devconnect/pkg/logger"
)

// The worker tails user.events and finishes account deletions: the API
// already removed the identity and profile, the worker sweeps anything
// downstream (and re-deletes the profile row, which is idempotent, in
// case the API crashed between the two writes).
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting DevConnect worker...")

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)

	userConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicUserEvents,
		GroupID:  "account-cleanup-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer userConsumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicUserEvents))

	ctx := context.Background()
	for {
		msg, err := userConsumer.ReadMessage(ctx)
		if err != nil {
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload event.UserEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("Failed to unmarshal event, skipping", err,
				zap.String("key", string(msg.Key)))
			commitMessage(userConsumer, msg, appLogger)
			continue
		}

		appLogger.Info("Processing event",
			zap.String("event_type", payload.EventType),
			zap.String("user_id", payload.UserID.String()))

		if payload.EventType == event.UserEventTypeDeleted {
			if err := profileRepo.Delete(ctx, payload.UserID); err != nil {
				appLogger.Error("Failed to clean up profile", err,
					zap.String("user_id", payload.UserID.String()))
				continue
			}
		}

		commitMessage(userConsumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
