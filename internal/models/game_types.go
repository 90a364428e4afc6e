package models

// Requests shared by every wager endpoint.

type BetRequest struct {
	Amount    float64  `json:"amount"`
	BetAmount float64  `json:"betAmount"`
	Currency  Currency `json:"currency" binding:"required"`
}

// Stake returns whichever of amount/betAmount the client sent.
func (r BetRequest) Stake() float64 {
	if r.Amount != 0 {
		return r.Amount
	}
	return r.BetAmount
}

type GameIDRequest struct {
	GameID string `json:"gameId" binding:"required"`
}

// WagerResult is the common tail of single-shot game responses.
type WagerResult struct {
	Success       bool    `json:"success"`
	Won           bool    `json:"won"`
	Multiplier    float64 `json:"multiplier"`
	Payout        float64 `json:"payout"`
	NewBalanceUSD float64 `json:"newBalanceUSD"`
	NewBalanceLBP float64 `json:"newBalanceLBP"`
}

type DicePlayRequest struct {
	BetRequest
	RollType string  `json:"rollType" binding:"required,oneof=rollUnder rollOver"`
	Target   float64 `json:"target" binding:"required"`
}

type DicePlayResponse struct {
	WagerResult
	Result float64 `json:"result"`
}

type MinesStartRequest struct {
	BetRequest
	MineCount int `json:"mineCount" binding:"required,min=1,max=24"`
}

type MinesStartResponse struct {
	Success bool    `json:"success"`
	Balance float64 `json:"balance"`
	Mines   int     `json:"mines"`
	GameID  string  `json:"gameId"`
}

type MinesRevealRequest struct {
	GameID string `json:"gameId" binding:"required"`
	Index  *int   `json:"index" binding:"required,min=0,max=24"`
}

type MinesRevealResponse struct {
	MineHit          bool     `json:"mineHit"`
	Index            int      `json:"index"`
	RevealedCount    int      `json:"revealedCount,omitempty"`
	Multiplier       float64  `json:"multiplier,omitempty"`
	AllMinePositions []int    `json:"allMinePositions,omitempty"`
	GameOver         bool     `json:"gameOver"`
	Payout           float64  `json:"payout,omitempty"`
	Balance          *float64 `json:"balance,omitempty"`
}

type LimboPlayRequest struct {
	BetRequest
	Target float64 `json:"target" binding:"required"`
}

type RouletteBetRequest struct {
	Type   string  `json:"type" binding:"required"`
	Value  int     `json:"value"`
	Amount float64 `json:"amount" binding:"required"`
}

type RouletteSpinRequest struct {
	Currency Currency             `json:"currency" binding:"required"`
	Bets     []RouletteBetRequest `json:"bets" binding:"required,min=1,max=50,dive"`
}

type RiskRequest struct {
	BetRequest
	Risk string `json:"risk" binding:"required"`
}

type PlinkoDropRequest struct {
	BetRequest
	Rows int    `json:"rows" binding:"required"`
	Risk string `json:"risk" binding:"required"`
}

type KenoPlayRequest struct {
	BetRequest
	Picks []int `json:"picks" binding:"required"`
}

type CaseOpenRequest struct {
	BetRequest
	Case string `json:"case" binding:"required"`
}

type BaccaratPlayRequest struct {
	BetRequest
	Bet string `json:"bet" binding:"required,oneof=player banker tie"`
}

type DifficultyStartRequest struct {
	BetRequest
	Difficulty string `json:"difficulty" binding:"required"`
}

type TowerStepRequest struct {
	GameID string `json:"gameId" binding:"required"`
	Tile   *int   `json:"tile" binding:"required,min=0"`
}

type ChoiceRequest struct {
	GameID string `json:"gameId" binding:"required"`
	Choice string `json:"choice" binding:"required"`
}

type HoldRequest struct {
	GameID string `json:"gameId" binding:"required"`
	Holds  []int  `json:"holds" binding:"max=5"`
}
