// Package queue_publisher publishes domain events to RabbitMQ.
// Errors are logged and returned so callers can treat publication as
// best-effort without interrupting the booking flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/wsbcinema/cinema-reservation/internal/queue"
)

// Publisher implements the booking facade's EventPublisher on top of
// RabbitMQ.  The zero value is ready to use; the broker address comes
// from the environment at publish time.
type Publisher struct{}

// New returns a ready-to-use Publisher.
func New() Publisher { return Publisher{} }

// PublishReservationConfirmed publishes the event to the durable
// reservation.confirmed queue.  A fresh connection is dialed per
// publish, which keeps the publisher stateless at the cost of a
// handshake per reservation; fine at this system's commit rate.  The
// function never panics; any error is logged and returned for the
// caller to ignore.
func (Publisher) PublishReservationConfirmed(ctx context.Context, event q.ReservationConfirmedEvent) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", q.QueueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
