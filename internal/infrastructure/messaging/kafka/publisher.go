package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/codabean/storefront/internal/core/domain"
)

const writeTimeout = 10 * time.Second

// orderConfirmedMessage is the wire payload of the orders topic.
type orderConfirmedMessage struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"orderId"`
	Username  string    `json:"username,omitempty"`
	Total     string    `json:"total"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Publisher writes order events to Kafka, keyed by order id.
type Publisher struct {
	writer *kafkaGo.Writer
	topic  string
}

// NewPublisher creates a Publisher for topic on brokers.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafkaGo.Hash{},
			RequiredAcks:           kafkaGo.RequireOne,
			AllowAutoTopicCreation: true,
		},
		topic: topic,
	}
}

// PublishOrderConfirmed implements ports.OrderPublisher.
func (p *Publisher) PublishOrderConfirmed(ctx context.Context, event domain.OrderConfirmedEvent) error {
	payload, err := encode(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.OrderID, p.topic, err)
	}
	return nil
}

// Close flushes pending writes and releases the connection.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// LogPublisher is used when no broker is configured: it records each event
// in the application log instead.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) PublishOrderConfirmed(_ context.Context, event domain.OrderConfirmedEvent) error {
	payload, err := encode(event)
	if err != nil {
		return err
	}
	p.log.Info().Str("order_id", event.OrderID).RawJSON("event", payload).Msg("order confirmed (no broker configured)")
	return nil
}

func encode(event domain.OrderConfirmedEvent) ([]byte, error) {
	payload, err := json.Marshal(orderConfirmedMessage{
		Type:      "order.confirmed",
		OrderID:   event.OrderID,
		Username:  event.Username,
		Total:     event.Total.String(),
		ItemCount: event.ItemCount,
		CreatedAt: event.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return payload, nil
}
