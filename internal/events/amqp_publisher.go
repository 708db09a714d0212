package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

const (
	dialRetries    = 3
	dialRetryDelay = 2 * time.Second
	senderID       = "railyatra-booking"
)

// channel is the subset of *amqp.Channel the publisher uses
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes events to a durable fanout exchange
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
	logger   *logrus.Logger
}

// NewAMQPPublisher dials the broker, retrying a few times, and declares the exchange
func NewAMQPPublisher(url, exchange string, logger *logrus.Logger) (*AMQPPublisher, error) {
	var conn *amqp.Connection
	var err error

	for i := 0; i < dialRetries; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		logger.WithFields(logrus.Fields{
			"attempt":     i + 1,
			"max_retries": dialRetries,
		}).WithError(err).Warn("Failed to connect to message broker")
		time.Sleep(dialRetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to message broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchange, err)
	}

	logger.WithField("exchange", exchange).Info("Connected to message broker")

	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

// PublishBookingConfirmed publishes the event as persistent JSON
func (p *AMQPPublisher) PublishBookingConfirmed(ctx context.Context, event BookingConfirmed) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    event.ConfirmationID,
		Timestamp:    event.BookedAt,
		Type:         EventBookingConfirmed,
		Body:         body,
		Headers: amqp.Table{
			"sender_id": senderID,
		},
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	err = p.ch.Publish(p.exchange, "", false, false, msg)
	p.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to publish to exchange %q: %w", p.exchange, err)
	}

	p.logger.WithFields(logrus.Fields{
		"exchange":        p.exchange,
		"event":           EventBookingConfirmed,
		"confirmation_id": event.ConfirmationID,
	}).Info("Event published")
	return nil
}

// Close closes the channel and the connection
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
