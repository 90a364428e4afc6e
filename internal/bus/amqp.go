package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"minigames-backend/internal/models"
)

// AMQP publishes to a fanout exchange. Each subscriber binds its own
// exclusive auto-delete queue so every instance gets a copy.
type AMQP struct {
	exchange string
	log      *logrus.Logger

	conn *amqp.Connection
	mu   sync.Mutex
	pub  *amqp.Channel
}

func NewAMQP(url, exchange string, log *logrus.Logger) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeFanout,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	log.WithField("exchange", exchange).Info("connected to RabbitMQ")
	return &AMQP{exchange: exchange, log: log, conn: conn, pub: ch}, nil
}

func (a *AMQP) Publish(ctx context.Context, event models.BetEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal bet event: %w", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	err = a.pub.PublishWithContext(ctx, a.exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish bet event: %w", err)
	}
	return nil
}

// Subscribe consumes on a dedicated channel until ctx is done.
func (a *AMQP) Subscribe(ctx context.Context, h Handler) error {
	ch, err := a.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	q, err := ch.QueueDeclare(
		"",
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, "", a.exchange, false, nil); err != nil {
		ch.Close()
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	msgs, err := ch.Consume(
		q.Name,
		"",
		true,  // auto-ack
		true,  // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	go func() {
		defer ch.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					a.log.Warn("bet event channel closed")
					return
				}
				if event, ok := decode(msg.Body, a.log); ok {
					h(event)
				}
			}
		}
	}()
	return nil
}

func (a *AMQP) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pub.Close()
	return a.conn.Close()
}
