package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type GameType string

const (
	GameTypeDice       GameType = "dice"
	GameTypeLimbo      GameType = "limbo"
	GameTypeRoulette   GameType = "roulette"
	GameTypeWheel      GameType = "wheel"
	GameTypePlinko     GameType = "plinko"
	GameTypeKeno       GameType = "keno"
	GameTypeCases      GameType = "cases"
	GameTypeBigBass    GameType = "bigbass"
	GameTypeGates      GameType = "gates"
	GameTypeAviamaster GameType = "aviamaster"
	GameTypeBaccarat   GameType = "baccarat"
	GameTypeTeenPatti  GameType = "teenpatti"
	GameTypeBingo      GameType = "bingo"
	GameTypeMines      GameType = "mines"
	GameTypeTower      GameType = "tower"
	GameTypeChicken    GameType = "chicken"
	GameTypeSnakes     GameType = "snakes"
	GameTypeFlip       GameType = "flip"
	GameTypeRPS        GameType = "rps"
	GameTypeHiLo       GameType = "hilo"
	GameTypeBlackjack  GameType = "blackjack"
	GameTypeVideoPoker GameType = "videopoker"
)

type GameStatus string

const (
	GameStatusActive   GameStatus = "active"
	GameStatusFinished GameStatus = "finished"
)

// GameState is the keyed-store record of a multi-step game. Data holds the
// game-specific state; Version is bumped on every successful write.
type GameState struct {
	ID        string          `json:"id"`
	UserID    uint            `json:"user_id"`
	Game      GameType        `json:"game"`
	Currency  Currency        `json:"currency"`
	BetAmount int64           `json:"bet_amount"`
	Status    GameStatus      `json:"status"`
	Version   int64           `json:"version"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (s *GameState) Decode(v any) error {
	if err := json.Unmarshal(s.Data, v); err != nil {
		return fmt.Errorf("decode %s state: %w", s.Game, err)
	}
	return nil
}

func (s *GameState) Encode(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s state: %w", s.Game, err)
	}
	s.Data = data
	return nil
}

// BetEvent is pushed to every websocket client when a wager resolves.
type BetEvent struct {
	Type      string    `json:"type"`
	Username  string    `json:"username"`
	Game      GameType  `json:"game"`
	Currency  Currency  `json:"currency"`
	BetAmount float64   `json:"betAmount"`
	Payout    float64   `json:"payout"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBetEvent(h *BetHistory) BetEvent {
	return BetEvent{
		Type:      "bet",
		Username:  h.Username,
		Game:      h.Game,
		Currency:  h.Currency,
		BetAmount: FromMinor(h.BetAmount, h.Currency),
		Payout:    FromMinor(h.Payout, h.Currency),
		Timestamp: h.CreatedAt,
	}
}

type WelcomeEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
