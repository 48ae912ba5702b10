package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/coderanges/swiftcrm/internal/usecase"
)

const (
	exchangeName = "crm.events"
	routingKey   = "invoice.status_changed"
	queueName    = "invoice.status_changed.q"
)

// RabbitProducer implements usecase.EventPublisher.
type RabbitProducer struct {
	ch *amqp.Channel
}

// NewRabbitProducer sets up the exchange, queue, and binding once at startup.
func NewRabbitProducer(ch *amqp.Channel) (*RabbitProducer, error) {
	if err := ch.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, routingKey, exchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("queue bind: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable confirm mode: %w", err)
	}

	return &RabbitProducer{ch: ch}, nil
}

// InvoiceStatusChanged publishes the event for downstream consumers
// (notifications, reporting). The write that produced it has already
// committed; the caller decides whether a publish failure is fatal.
func (p *RabbitProducer) InvoiceStatusChanged(ctx context.Context, evt usecase.InvoiceStatusEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

var _ usecase.EventPublisher = (*RabbitProducer)(nil)
