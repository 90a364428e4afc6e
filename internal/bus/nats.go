package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"minigames-backend/internal/models"
)

type NATS struct {
	conn *nats.Conn
	log  *logrus.Logger
}

func NewNATS(url string, log *logrus.Logger) (*NATS, error) {
	conn, err := nats.Connect(url,
		nats.Name("minigames-backend"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Warn("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.WithField("url", c.ConnectedUrl()).Info("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	log.WithField("url", conn.ConnectedUrl()).Info("connected to nats")
	return &NATS{conn: conn, log: log}, nil
}

func (n *NATS) Publish(_ context.Context, event models.BetEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal bet event: %w", err)
	}
	if err := n.conn.Publish(Subject, data); err != nil {
		return fmt.Errorf("failed to publish bet event: %w", err)
	}
	return nil
}

// Subscribe delivers events until ctx is done.
func (n *NATS) Subscribe(ctx context.Context, h Handler) error {
	sub, err := n.conn.Subscribe(Subject, func(msg *nats.Msg) {
		if event, ok := decode(msg.Data, n.log); ok {
			h(event)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", Subject, err)
	}
	go func() {
		<-ctx.Done()
		if err := sub.Unsubscribe(); err != nil && n.conn.IsConnected() {
			n.log.WithError(err).Warn("nats unsubscribe failed")
		}
	}()
	return nil
}

func (n *NATS) Close() error {
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
		return fmt.Errorf("failed to drain nats: %w", err)
	}
	return nil
}
