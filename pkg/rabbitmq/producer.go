/**
 * @description
 * This package provides the RabbitMQ integration for the membership backend:
 * a producer for publishing payment events and a consumer for applying them.
 *
 * @dependencies
 * - github.com/rabbitmq/amqp091-go: The official Go client for RabbitMQ.
 */
package rabbitmq

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
)

// sanitizeAMQPURL trims quoting and stray prefixes that sneak into
// environment values.
func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	idx := strings.Index(strings.ToLower(clean), "amqp")
	if idx > 0 {
		clean = clean[idx:]
	}
	if _, err := url.Parse(clean); err != nil {
		return "", err
	}
	return clean, nil
}

// Producer publishes JSON events to a topic exchange.
type Producer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewProducer connects to RabbitMQ and opens a publishing channel.
func NewProducer(amqpURL string) (*Producer, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp.Dial(cleanURL)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Producer{conn: conn, channel: channel}, nil
}

// Publish marshals body as JSON and publishes it to the exchange with the
// given routing key. The exchange is declared durable on first use.
func (p *Producer) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	if err := p.channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         payload,
	})
}

// Close gracefully closes the channel and connection.
func (p *Producer) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
