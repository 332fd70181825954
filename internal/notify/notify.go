// Package notify carries schedule changes over RabbitMQ to the e-mail worker.
package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/scoala-altfel/orar/backend/internal/domain"
)

// DeclareQueue declares the durable queue shared by the API and the worker.
func DeclareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // durable
		false, // keep the queue when no consumer is attached
		false,
		false,
		nil,
	)
}

type Publisher struct {
	ch      *amqp.Channel
	queue   string
	timeout time.Duration
}

func NewPublisher(ch *amqp.Channel, queue string, timeout time.Duration) *Publisher {
	return &Publisher{
		ch:      ch,
		queue:   queue,
		timeout: timeout,
	}
}

func (p *Publisher) Publish(ctx context.Context, change domain.ScheduleChange) error {
	body, err := Encode(change)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    change.OccurredAt,
			Body:         body,
		},
	)
}

func Encode(change domain.ScheduleChange) ([]byte, error) {
	return json.Marshal(change)
}

func Decode(body []byte) (domain.ScheduleChange, error) {
	var change domain.ScheduleChange
	err := json.Unmarshal(body, &change)
	return change, err
}
