package bus

import (
	"context"
	"sync"

	"minigames-backend/internal/models"
)

// Local delivers events to subscribers in this process only.
type Local struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewLocal() *Local {
	return &Local{}
}

func (l *Local) Publish(_ context.Context, event models.BetEvent) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, h := range l.handlers {
		h(event)
	}
	return nil
}

func (l *Local) Subscribe(_ context.Context, h Handler) error {
	l.mu.Lock()
	l.handlers = append(l.handlers, h)
	l.mu.Unlock()
	return nil
}

func (l *Local) Close() error {
	l.mu.Lock()
	l.handlers = nil
	l.mu.Unlock()
	return nil
}
