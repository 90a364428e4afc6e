package services

import (
	"context"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"minigames-backend/internal/config"
	"minigames-backend/internal/models"
)

const publishTimeout = 5 * time.Second

// WagerService records resolved wagers and publishes them. Every game
// handler goes through it.
type WagerService struct {
	ledger    *Ledger
	limits    *config.GameLimits
	publisher Publisher
	pool      *ants.Pool
	log       *logrus.Logger
}

func NewWagerService(ledger *Ledger, limits *config.GameLimits, publisher Publisher, poolSize int, log *logrus.Logger) (*WagerService, error) {
	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create publish pool: %w", err)
	}
	if limits == nil {
		limits = config.DefaultGameLimits()
	}
	return &WagerService{
		ledger:    ledger,
		limits:    limits,
		publisher: publisher,
		pool:      pool,
		log:       log,
	}, nil
}

// Close waits for queued publishes up to timeout.
func (s *WagerService) Close(timeout time.Duration) {
	if err := s.pool.ReleaseTimeout(timeout); err != nil {
		s.log.WithError(err).Warn("publish pool did not drain")
	}
}

// Stake validates a display amount against the game's limits and returns it
// in minor units.
func (s *WagerService) Stake(game models.GameType, c models.Currency, amount float64) (int64, error) {
	return models.ValidateBet(amount, c, s.limits.For(game, c))
}

// PlaceWager validates the stake, asks resolve for the payout and commits
// both sides of the wager. resolve runs before any money moves; when the
// debit fails its outcome is discarded.
func (s *WagerService) PlaceWager(ctx context.Context, userID uint, game models.GameType, c models.Currency, amount float64, resolve func(bet int64) (int64, error)) (*Settlement, error) {
	bet, err := s.Stake(game, c, amount)
	if err != nil {
		return nil, err
	}
	payout, err := resolve(bet)
	if err != nil {
		return nil, err
	}
	settlement, err := s.ledger.PlaceWager(ctx, userID, game, c, bet, payout)
	if err != nil {
		return nil, err
	}
	s.publish(settlement.History)
	return settlement, nil
}

// Settle closes a wager whose stake was already debited.
func (s *WagerService) Settle(ctx context.Context, userID uint, game models.GameType, c models.Currency, staked, payout int64) (*Settlement, error) {
	settlement, err := s.ledger.SettleWager(ctx, userID, game, c, staked, payout)
	if err != nil {
		return nil, err
	}
	s.publish(settlement.History)
	return settlement, nil
}

func (s *WagerService) publish(h *models.BetHistory) {
	if s.publisher == nil {
		return
	}
	event := models.NewBetEvent(h)
	err := s.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.log.WithError(err).WithField("game", event.Game).Warn("failed to publish bet")
		}
	})
	if err != nil {
		s.log.WithError(err).WithField("game", event.Game).Warn("bet publish dropped")
	}
}
