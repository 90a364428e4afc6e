package services

import (
	"context"

	"minigames-backend/internal/models"
)

// Publisher hands a resolved wager to every instance's websocket hub,
// usually through the event bus.
type Publisher interface {
	Publish(ctx context.Context, event models.BetEvent) error
}
