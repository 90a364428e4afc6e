package handlers

import (
	"github.com/gin-gonic/gin"

	"minigames-backend/internal/models"
	"minigames-backend/internal/services"
)

// start debits the stake and stores data as a new game of kind game.
func (h *GameHandler) start(c *gin.Context, game models.GameType, req models.BetRequest, data any) (*models.GameState, *models.User, bool) {
	cur, err := models.ParseCurrency(string(req.Currency))
	if err != nil {
		respondError(c, h.log, err)
		return nil, nil, false
	}
	state, user, err := h.sessions.Start(c.Request.Context(), accountID(c), game, cur, req.Stake(), data)
	if err != nil {
		respondError(c, h.log, err)
		return nil, nil, false
	}
	return state, user, true
}

// load fetches the caller's live game and decodes its payload into data.
func (h *GameHandler) load(c *gin.Context, game models.GameType, id string, data any) (*models.GameState, bool) {
	state, err := h.sessions.Load(c.Request.Context(), accountID(c), game, id)
	if err != nil {
		respondError(c, h.log, err)
		return nil, false
	}
	if err := state.Decode(data); err != nil {
		respondError(c, h.log, err)
		return nil, false
	}
	return state, true
}

// advance persists data after a move, or settles the game for payout once
// over is set. The settlement is nil while the game goes on.
func (h *GameHandler) advance(c *gin.Context, state *models.GameState, data any, over bool, payout int64) (*services.Settlement, bool) {
	if !over {
		if err := h.sessions.Save(c.Request.Context(), state, data); err != nil {
			respondError(c, h.log, err)
			return nil, false
		}
		return nil, true
	}
	s, err := h.sessions.Finish(c.Request.Context(), state, payout)
	if err != nil {
		respondError(c, h.log, err)
		return nil, false
	}
	return s, true
}

func balance(user *models.User, c models.Currency) float64 {
	return models.FromMinor(user.Balance(c), c)
}

// startResponse is what every multi-step start returns besides the game view.
func startResponse(state *models.GameState, user *models.User) gin.H {
	return gin.H{
		"success":   true,
		"gameId":    state.ID,
		"betAmount": models.FromMinor(state.BetAmount, state.Currency),
		"currency":  state.Currency,
		"balance":   balance(user, state.Currency),
	}
}

// moveResponse adds the settled wager to resp once the game has ended.
func moveResponse(state *models.GameState, s *services.Settlement, won bool, multiplier float64, resp gin.H) gin.H {
	resp["gameId"] = state.ID
	resp["gameOver"] = s != nil
	if s != nil {
		resp["wager"] = wagerResult(s, won, multiplier)
		resp["balance"] = models.FromMinor(s.Balance(state.Currency), state.Currency)
	}
	return resp
}
