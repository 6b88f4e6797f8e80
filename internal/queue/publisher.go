package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"sisdisfraz-backend/internal/domain"
)

const outboundQueue = "whatsapp.outbound"

// OutboundMessage is the payload handed to the WhatsApp sender worker.
// The backend composes the text; the worker only delivers it.
type OutboundMessage struct {
	NotificationID string                  `json:"notification_id"`
	RentalID       string                  `json:"rental_id,omitempty"`
	Kind           domain.NotificationKind `json:"kind"`
	Phone          string                  `json:"phone"`
	Body           string                  `json:"body"`
	QueuedOn       time.Time               `json:"queued_on"`
}

// Publisher pushes outbound messages onto a durable RabbitMQ queue.
// It holds one connection for its lifetime; the dispatch job creates
// it at startup and closes it on shutdown.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	// Durable so queued messages survive a broker restart.
	if _, err := ch.QueueDeclare(outboundQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	return &Publisher{conn: conn, channel: ch}, nil
}

func (p *Publisher) Publish(ctx context.Context, msg OutboundMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal outbound message: %w", err)
	}

	return p.channel.PublishWithContext(ctx,
		"",            // default exchange
		outboundQueue, // routing key = queue name
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
