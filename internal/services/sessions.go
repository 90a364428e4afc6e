package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"minigames-backend/internal/models"
)

// SessionGames runs the money side of multi-step games: the stake is debited
// at start, state lives in redis between moves, and the wager is settled
// exactly once when the game ends.
type SessionGames struct {
	wagers *WagerService
	ledger *Ledger
	store  *RedisService
	ttl    time.Duration
	log    *logrus.Logger
}

func NewSessionGames(wagers *WagerService, ledger *Ledger, store *RedisService, ttl time.Duration, log *logrus.Logger) *SessionGames {
	if ttl <= 0 {
		ttl = TTLGameState
	}
	return &SessionGames{wagers: wagers, ledger: ledger, store: store, ttl: ttl, log: log}
}

// Start debits the stake and stores data as the new game's state. The stake
// is refunded if the state cannot be stored.
func (s *SessionGames) Start(ctx context.Context, userID uint, game models.GameType, c models.Currency, amount float64, data any) (*models.GameState, *models.User, error) {
	bet, err := s.wagers.Stake(game, c, amount)
	if err != nil {
		return nil, nil, err
	}
	if id, err := s.store.ActiveGame(ctx, userID, game); err != nil {
		return nil, nil, err
	} else if id != "" {
		return nil, nil, models.ErrGameInProgress
	}

	state := &models.GameState{
		ID:        models.GenerateGameID(),
		UserID:    userID,
		Game:      game,
		Currency:  c,
		BetAmount: bet,
	}
	if err := state.Encode(data); err != nil {
		return nil, nil, err
	}

	user, err := s.ledger.Debit(ctx, userID, c, bet)
	if err != nil {
		return nil, nil, err
	}
	if err := s.store.CreateGameState(ctx, state, s.ttl); err != nil {
		user = s.refund(ctx, state, bet, err)
		return nil, user, err
	}

	s.log.WithFields(logrus.Fields{
		"game_id": state.ID,
		"game":    game,
		"user_id": userID,
	}).Debug("game started")
	return state, user, nil
}

func (s *SessionGames) refund(ctx context.Context, state *models.GameState, amount int64, cause error) *models.User {
	user, err := s.ledger.Refund(context.WithoutCancel(ctx), state.UserID, state.Currency, amount)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"game_id": state.ID,
			"user_id": state.UserID,
			"amount":  amount,
			"cause":   cause.Error(),
		}).Error("failed to refund stake")
		return nil
	}
	return user
}

// Load returns the user's live game with the given id.
func (s *SessionGames) Load(ctx context.Context, userID uint, game models.GameType, id string) (*models.GameState, error) {
	state, err := s.store.GetGameState(ctx, id)
	if err != nil {
		return nil, err
	}
	if state.Game != game {
		return nil, models.ErrGameNotFound
	}
	if state.UserID != userID {
		return nil, models.ErrNotGameOwner
	}
	if state.Status != models.GameStatusActive {
		return nil, models.ErrGameFinished
	}
	return state, nil
}

// Save stores data as the state's new payload if nobody else moved first.
func (s *SessionGames) Save(ctx context.Context, state *models.GameState, data any) error {
	if err := state.Encode(data); err != nil {
		return err
	}
	return s.store.UpdateGameState(ctx, state, s.ttl)
}

// Raise debits an extra stake (double, split) and saves data with it.
func (s *SessionGames) Raise(ctx context.Context, state *models.GameState, extra int64, data any) (*models.User, error) {
	user, err := s.ledger.Debit(ctx, state.UserID, state.Currency, extra)
	if err != nil {
		return nil, err
	}
	state.BetAmount += extra
	if err := s.Save(ctx, state, data); err != nil {
		state.BetAmount -= extra
		s.refund(ctx, state, extra, err)
		return nil, err
	}
	return user, nil
}

// Finish removes the game and settles its wager for payout. Only the caller
// that removes the state settles, so a game can never pay twice.
func (s *SessionGames) Finish(ctx context.Context, state *models.GameState, payout int64) (*Settlement, error) {
	if err := s.store.DeleteGameState(ctx, state); err != nil {
		return nil, err
	}
	state.Status = models.GameStatusFinished

	settlement, err := s.wagers.Settle(context.WithoutCancel(ctx), state.UserID, state.Game, state.Currency, state.BetAmount, payout)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"game_id": state.ID,
			"user_id": state.UserID,
			"staked":  state.BetAmount,
			"payout":  payout,
		}).Error("failed to settle finished game")
		return nil, err
	}
	return settlement, nil
}

// Active maps each game the user has in progress to its id.
func (s *SessionGames) Active(ctx context.Context, userID uint) (map[models.GameType]string, error) {
	return s.store.ActiveGames(ctx, userID)
}
