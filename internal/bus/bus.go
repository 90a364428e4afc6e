package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"minigames-backend/internal/config"
	"minigames-backend/internal/models"
)

// Subject is the NATS subject resolved wagers are published on.
const Subject = "casino.bets"

type Handler func(models.BetEvent)

// Bus carries resolved wagers between instances. Every subscriber on every
// instance sees every event.
type Bus interface {
	Publish(ctx context.Context, event models.BetEvent) error
	Subscribe(ctx context.Context, h Handler) error
	Close() error
}

// New builds the bus selected by BUS_DRIVER.
func New(cfg *config.Config, log *logrus.Logger) (Bus, error) {
	switch cfg.BusDriver {
	case "", "local":
		return NewLocal(), nil
	case "nats":
		return NewNATS(cfg.NATSURL, log)
	case "amqp":
		return NewAMQP(cfg.AMQPURL, cfg.AMQPExchange, log)
	}
	return nil, fmt.Errorf("unsupported BUS_DRIVER %q", cfg.BusDriver)
}

func decode(data []byte, log *logrus.Logger) (models.BetEvent, bool) {
	var event models.BetEvent
	if err := json.Unmarshal(data, &event); err != nil {
		log.WithError(err).WithField("body", string(data)).Warn("dropping malformed bet event")
		return event, false
	}
	return event, true
}
