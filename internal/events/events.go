package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/vidtube/backend/internal/config"
)

const (
	ExchangeName = "vidtube.events"
)

// Routing keys for the domain events downstream consumers care about.
const (
	UserRegistered     = "user.registered"
	VideoPublished     = "video.published"
	VideoDeleted       = "video.deleted"
	CommentAdded       = "comment.added"
	SubscriptionToggle = "subscription.toggled"
)

// Event is the envelope published for every domain event.
type Event struct {
	Type       string    `json:"type"`
	ActorID    string    `json:"actorId,omitempty"`
	SubjectID  string    `json:"subjectId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher publishes domain events to a topic exchange. Consumers bind
// their own queues with whatever routing-key patterns they need.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// New creates a new event publisher
func New(cfg config.QueueConfig) (*Publisher, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Vhost)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{
		conn:    conn,
		channel: channel,
	}, nil
}

// Close closes the publisher connection
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Publish emits a domain event. The event type doubles as the routing key.
func (p *Publisher) Publish(ctx context.Context, eventType, actorID, subjectID string) error {
	body, err := json.Marshal(Event{
		Type:       eventType,
		ActorID:    actorID,
		SubjectID:  subjectID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		ExchangeName,
		eventType,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
