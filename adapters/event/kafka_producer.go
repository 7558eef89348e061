package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/devconnect-io/devconnect/internal/config"
)

const (
	TopicProfileEvents = "profile.events"
	TopicUserEvents    = "user.events"
)

const (
	ProfileEventTypeUpdated           = "profile.updated"
	ProfileEventTypeExperienceAdded   = "profile.experience_added"
	ProfileEventTypeExperienceRemoved = "profile.experience_removed"
	ProfileEventTypeEducationAdded    = "profile.education_added"
	ProfileEventTypeEducationRemoved  = "profile.education_removed"
	UserEventTypeRegistered           = "user.registered"
	UserEventTypeDeleted              = "user.deleted"
)

type ProfileEventPayload struct {
	EventType  string    `json:"event_type"`
	OwnerID    uuid.UUID `json:"owner_id"`
	EntryID    string    `json:"entry_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type UserEventPayload struct {
	EventType  string    `json:"event_type"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is what the use cases depend on; KafkaProducerClient is the
// production implementation.
type Publisher interface {
	PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error
	PublishUserEvent(ctx context.Context, payload UserEventPayload) error
}

type KafkaProducerClient struct {
	ProfileEventsWriter *kafka.Writer
	UserEventsWriter    *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	profileWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	userWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicUserEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		ProfileEventsWriter: profileWriter,
		UserEventsWriter:    userWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal profile event: %w", err)
	}
	return c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OwnerID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishUserEvent(ctx context.Context, payload UserEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal user event: %w", err)
	}
	return c.UserEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.UserID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
	if c.UserEventsWriter != nil {
		c.UserEventsWriter.Close()
	}
}
