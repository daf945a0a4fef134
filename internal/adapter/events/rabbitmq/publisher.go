package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"prepaid-point-ledger/internal/core/domain"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Routing keys on the ledger events exchange.
const (
	routingKeyPayment = "ledger.payment.completed"
	routingKeyCancel  = "ledger.use.canceled"
)

// Publisher implements ports.EventPublisher on a durable RabbitMQ topic
// exchange. Events are emitted after the ledger transaction commits, so
// consumers see at-least-once delivery and must dedupe on the transaction
// unique number.
type Publisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	log      zerolog.Logger
}

// NewPublisher connects to RabbitMQ and declares the exchange.
func NewPublisher(amqpURL, exchange string, log zerolog.Logger) (*Publisher, error) {
	conn, err := amqp091.DialConfig(amqpURL, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("dialing rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring exchange: %w", err)
	}

	log.Info().Str("exchange", exchange).Msg("RabbitMQ publisher connected")
	return &Publisher{conn: conn, channel: ch, exchange: exchange, log: log}, nil
}

// PublishPayment emits a completed payment event.
func (p *Publisher) PublishPayment(ctx context.Context, event domain.PaymentEvent) error {
	return p.publish(ctx, routingKeyPayment, event)
}

// PublishCancel emits a use-cancellation event.
func (p *Publisher) PublishCancel(ctx context.Context, event domain.CancelEvent) error {
	return p.publish(ctx, routingKeyCancel, event)
}

func (p *Publisher) publish(ctx context.Context, routingKey string, body any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange, routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        jsonBody,
		},
	)
	if err == nil {
		return nil
	}

	// One-shot retry on a fresh channel; publish failures often mean the
	// old channel died with the broker connection blip.
	p.log.Warn().Err(err).Str("routing_key", routingKey).Msg("publish failed; reopening channel")
	ch, chErr := p.conn.Channel()
	if chErr != nil {
		return fmt.Errorf("reopening channel: %w", chErr)
	}
	p.channel = ch
	if exErr := p.channel.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); exErr != nil {
		return fmt.Errorf("redeclaring exchange: %w", exErr)
	}
	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        jsonBody,
	})
	if err != nil {
		return fmt.Errorf("publishing event: %w", err)
	}
	return nil
}

// Close shuts down the channel and connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher is used when no broker is configured. Publishes are logged
// and dropped.
type NopPublisher struct {
	log zerolog.Logger
}

// NewNopPublisher creates a publisher that drops every event.
func NewNopPublisher(log zerolog.Logger) *NopPublisher {
	return &NopPublisher{log: log}
}

// PublishPayment logs and drops the event.
func (p *NopPublisher) PublishPayment(_ context.Context, event domain.PaymentEvent) error {
	p.log.Debug().Str("unique_no", event.TransactionUniqueNo).Msg("event publishing disabled; payment event dropped")
	return nil
}

// PublishCancel logs and drops the event.
func (p *NopPublisher) PublishCancel(_ context.Context, event domain.CancelEvent) error {
	p.log.Debug().Str("unique_no", event.TransactionUniqueNo).Msg("event publishing disabled; cancel event dropped")
	return nil
}

// Close is a no-op.
func (p *NopPublisher) Close() error { return nil }
