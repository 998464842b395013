package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPQueue is the durable queue scan events land on when the AMQP sink is
// selected.
const AMQPQueue = "tagtrack.scans"

// AMQPPublisher pushes events onto a durable RabbitMQ queue. Messages are
// marked persistent so they survive broker restarts.
type AMQPPublisher struct {
	ch    *amqp.Channel
	queue string
}

// NewAMQPPublisher dials the broker and declares the queue.
func NewAMQPPublisher(url, queue string) (*AMQPPublisher, func() error, error) {
	if queue == "" {
		queue = AMQPQueue
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}
	closer := func() error {
		_ = ch.Close()
		return conn.Close()
	}
	return &AMQPPublisher{ch: ch, queue: queue}, closer, nil
}

var _ Notifier = (*AMQPPublisher)(nil)

// Publish sends the event as a persistent JSON message on the default
// exchange.
func (p *AMQPPublisher) Publish(ctx context.Context, evt ScanEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
