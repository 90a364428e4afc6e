package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"minigames-backend/internal/games/hilo"
	"minigames-backend/internal/games/streak"
	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

// Flip and rock-paper-scissors share the streak engine; only the round differs.

func (h *GameHandler) startStreak(game models.GameType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		state, user, ok := h.start(c, game, req, streak.New())
		if !ok {
			return
		}
		resp := startResponse(state, user)
		resp["winMultiplier"] = streak.WinMultiplier
		resp["maxWins"] = streak.MaxWins
		c.JSON(http.StatusOK, resp)
	}
}

func (h *GameHandler) playStreak(game models.GameType, round func(s *streak.Streak, src rng.Source, choice string) (streak.Round, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		var st streak.Streak
		state, ok := h.load(c, game, req.GameID, &st)
		if !ok {
			return
		}
		r, err := round(&st, h.src, req.Choice)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		s, ok := h.advance(c, state, &st, r.Over, models.PayoutMinor(state.BetAmount, r.Multiplier))
		if !ok {
			return
		}
		c.JSON(http.StatusOK, moveResponse(state, s, !st.Busted, r.Multiplier, gin.H{
			"round": r,
			"wins":  st.Wins,
		}))
	}
}

func (h *GameHandler) cashoutStreak(game models.GameType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.GameIDRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		var st streak.Streak
		state, ok := h.load(c, game, req.GameID, &st)
		if !ok {
			return
		}
		mult, err := st.CashOut()
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		s, ok := h.advance(c, state, &st, true, models.PayoutMinor(state.BetAmount, mult))
		if !ok {
			return
		}
		c.JSON(http.StatusOK, moveResponse(state, s, true, mult, gin.H{"success": true, "wins": st.Wins}))
	}
}

func (h *GameHandler) StartFlip() gin.HandlerFunc   { return h.startStreak(models.GameTypeFlip) }
func (h *GameHandler) CashoutFlip() gin.HandlerFunc { return h.cashoutStreak(models.GameTypeFlip) }
func (h *GameHandler) StartRPS() gin.HandlerFunc    { return h.startStreak(models.GameTypeRPS) }
func (h *GameHandler) CashoutRPS() gin.HandlerFunc  { return h.cashoutStreak(models.GameTypeRPS) }

func (h *GameHandler) PlayFlip() gin.HandlerFunc {
	return h.playStreak(models.GameTypeFlip, (*streak.Streak).Flip)
}

func (h *GameHandler) PlayRPS() gin.HandlerFunc {
	return h.playStreak(models.GameTypeRPS, (*streak.Streak).Throw)
}

// hiloView is the client side of a hi-lo game; the deck stays on the server.
func hiloView(g *hilo.Game) gin.H {
	return gin.H{
		"current":    g.Current,
		"history":    g.History,
		"correct":    g.Correct,
		"skips":      g.Skips,
		"multiplier": g.Multiplier,
		"chances": gin.H{
			"higher": g.Chance(hilo.Higher),
			"lower":  g.Chance(hilo.Lower),
		},
	}
}

func (h *GameHandler) StartHiLo(c *gin.Context) {
	var req models.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	g := hilo.New(h.src)
	state, user, ok := h.start(c, models.GameTypeHiLo, req, g)
	if !ok {
		return
	}
	resp := startResponse(state, user)
	resp["game"] = hiloView(g)
	c.JSON(http.StatusOK, resp)
}

func (h *GameHandler) GuessHiLo(c *gin.Context) {
	var req models.ChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var g hilo.Game
	state, ok := h.load(c, models.GameTypeHiLo, req.GameID, &g)
	if !ok {
		return
	}
	step, err := g.Guess(h.src, hilo.Guess(req.Choice))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	s, ok := h.advance(c, state, &g, g.Over(), models.PayoutMinor(state.BetAmount, g.Multiplier))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, moveResponse(state, s, false, 0, gin.H{
		"step": step,
		"game": hiloView(&g),
	}))
}

func (h *GameHandler) CashoutHiLo(c *gin.Context) {
	var req models.GameIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var g hilo.Game
	state, ok := h.load(c, models.GameTypeHiLo, req.GameID, &g)
	if !ok {
		return
	}
	mult, err := g.CashOut()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	s, ok := h.advance(c, state, &g, true, models.PayoutMinor(state.BetAmount, mult))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, moveResponse(state, s, true, mult, gin.H{"success": true, "game": hiloView(&g)}))
}
