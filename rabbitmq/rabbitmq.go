package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"storefront-service/config"
	"storefront-service/models"
)

type RabbitMQ struct {
	Conn    *amqp.Connection
	Channel *amqp.Channel
	Cfg     *config.Config
}

func NewRabbitMQ(cfg *config.Config) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	return &RabbitMQ{
		Conn:    conn,
		Channel: ch,
		Cfg:     cfg,
	}, nil
}

func (r *RabbitMQ) deadLetterExchange() string {
	return r.Cfg.DeadLetterQueue + "_exchange"
}

// binding ties a durable queue to a direct exchange.
type binding struct {
	exchange   string
	queue      string
	routingKey string
	args       amqp.Table
}

func (r *RabbitMQ) topology() []binding {
	return []binding{
		{
			exchange:   r.deadLetterExchange(),
			queue:      r.Cfg.DeadLetterQueue,
			routingKey: r.Cfg.DeadLetterQueue,
			args:       amqp.Table{"x-queue-type": "classic"},
		},
		{
			exchange: r.Cfg.OrderExchange,
			queue:    r.Cfg.OrderQueue,
			args: amqp.Table{
				"x-max-priority":            r.Cfg.MaxPriority,
				"x-dead-letter-exchange":    r.deadLetterExchange(),
				"x-dead-letter-routing-key": r.Cfg.DeadLetterQueue,
			},
		},
	}
}

// SetupQueues declares the dead letter queue first so the order queue can
// reference it, then the priority order queue.
func (r *RabbitMQ) SetupQueues() error {
	for _, b := range r.topology() {
		if err := r.declare(b); err != nil {
			return err
		}
	}
	return nil
}

func (r *RabbitMQ) declare(b binding) error {
	const durable, autoDelete, internal, exclusive, noWait = true, false, false, false, false

	if err := r.Channel.ExchangeDeclare(b.exchange, amqp.ExchangeDirect, durable, autoDelete, internal, noWait, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", b.exchange, err)
	}
	if _, err := r.Channel.QueueDeclare(b.queue, durable, autoDelete, exclusive, noWait, b.args); err != nil {
		return fmt.Errorf("declare queue %s: %w", b.queue, err)
	}
	if err := r.Channel.QueueBind(b.queue, b.routingKey, b.exchange, noWait, nil); err != nil {
		return fmt.Errorf("bind queue %s to %s: %w", b.queue, b.exchange, err)
	}
	return nil
}

func (r *RabbitMQ) PublishOrderEvent(ctx context.Context, event models.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.Occurred,
		ContentType:  "application/json",
		Type:         event.Type,
		MessageId:    fmt.Sprintf("%s-%d-%d", event.Type, event.OrderID, event.Occurred.UnixNano()),
		Body:         body,
		Priority:     EventPriority(event),
	}
	if err := r.Channel.PublishWithContext(ctx, r.Cfg.OrderExchange, "", false, false, msg); err != nil {
		return fmt.Errorf("publish %s for order %d: %w", event.Type, event.OrderID, err)
	}
	return nil
}

// EventPriority ranks cancellations and large orders ahead of routine events.
func EventPriority(event models.OrderEvent) uint8 {
	switch {
	case event.GrandTotal > 1000:
		return 9
	case event.Status == models.StatusCancelled:
		return 8
	default:
		return 5
	}
}

// Close shuts the channel before the connection that owns it.
func (r *RabbitMQ) Close() {
	if r.Channel != nil {
		if err := r.Channel.Close(); err != nil {
			log.Printf("RabbitMQ channel close: %v", err)
		}
	}
	if r.Conn != nil {
		if err := r.Conn.Close(); err != nil {
			log.Printf("RabbitMQ connection close: %v", err)
		}
	}
}
