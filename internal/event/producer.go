package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rakesh-27-git/WellnessSpace/internal/domain"
	pkgkafka "github.com/Rakesh-27-git/WellnessSpace/pkg/kafka"
)

// Kafka topic constants for WellnessSpace domain events.
const (
	TopicUserRegistered   = "wellness.user.registered"
	TopicSessionPublished = "wellness.session.published"
)

// Aggregate type constants.
const (
	AggregateTypeUser    = "user"
	AggregateTypeSession = "session"
)

// Source identifier for events originating from this service.
const SourceWellnessSpace = "wellnessspace"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionPublishedData is the payload for a session.published event.
type SessionPublishedData struct {
	ID         string   `json:"id"`
	OwnerID    string   `json:"owner_id"`
	Title      string   `json:"title"`
	Tags       []string `json:"tags"`
	PayloadURL string   `json:"payload_url"`
}

// Producer publishes WellnessSpace domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:    user.ID,
		Email: user.Email,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, AggregateTypeUser, SourceWellnessSpace, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}

// PublishSessionPublished publishes a session.published event.
func (p *Producer) PublishSessionPublished(ctx context.Context, session *domain.Session) error {
	data := SessionPublishedData{
		ID:         session.ID,
		OwnerID:    session.OwnerID,
		Title:      session.Title,
		Tags:       session.Tags,
		PayloadURL: session.PayloadURL,
	}

	event, err := pkgkafka.NewEvent(TopicSessionPublished, session.ID, AggregateTypeSession, SourceWellnessSpace, data)
	if err != nil {
		return fmt.Errorf("create session.published event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicSessionPublished, event); err != nil {
		return fmt.Errorf("publish session.published event: %w", err)
	}

	p.logger.DebugContext(ctx, "published session.published event",
		slog.String("session_id", session.ID),
		slog.String("owner_id", session.OwnerID),
	)

	return nil
}
