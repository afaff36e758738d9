// Package rabbitmq provides the AMQP implementation of the event publisher.
// Events land on a durable topic exchange with the routing key
// "<kind>.<audience>", so notification consumers can bind per event kind, per
// audience, or both.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ExchangeName is the topic exchange all order events are published to.
const ExchangeName = "marketplace.events"

// Publisher implements ports.EventPublisher over an AMQP connection.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher dials the broker and declares the topic exchange.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.NewDownstreamDegradedError("rabbitmq", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.NewDownstreamDegradedError("rabbitmq", err)
	}

	if err = ch.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.NewDownstreamDegradedError("rabbitmq", err)
	}

	return &Publisher{conn: conn, ch: ch}, nil
}

// eventEnvelope is the wire shape of one published event.
type eventEnvelope struct {
	OrderID    string    `json:"order_id"`
	Kind       string    `json:"kind"`
	Recipient  string    `json:"recipient"`
	Audience   string    `json:"audience"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publish sends one event as a persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	body, err := json.Marshal(eventEnvelope{
		OrderID:    event.OrderID.String(),
		Kind:       event.Kind,
		Recipient:  event.Recipient.String(),
		Audience:   event.Audience,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return err
	}

	routingKey := fmt.Sprintf("%s.%s", event.Kind, event.Audience)
	if err = p.ch.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	); err != nil {
		return errs.NewDownstreamDegradedError("rabbitmq", err)
	}

	return nil
}

// Close releases the channel and the connection.
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
