package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"minigames-backend/internal/games/tiles"
	"minigames-backend/internal/models"
)

func (h *GameHandler) StartMines(c *gin.Context) {
	var req models.MinesStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	m, err := tiles.NewMines(h.src, req.MineCount)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	state, user, ok := h.start(c, models.GameTypeMines, req.BetRequest, m)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.MinesStartResponse{
		Success: true,
		Balance: balance(user, state.Currency),
		Mines:   m.MineCount,
		GameID:  state.ID,
	})
}

func (h *GameHandler) RevealMine(c *gin.Context) {
	var req models.MinesRevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var m tiles.Mines
	state, ok := h.load(c, models.GameTypeMines, req.GameID, &m)
	if !ok {
		return
	}
	r, err := m.Reveal(*req.Index)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	s, ok := h.advance(c, state, &m, r.Over, models.PayoutMinor(state.BetAmount, r.Multiplier))
	if !ok {
		return
	}

	resp := models.MinesRevealResponse{
		MineHit:  r.MineHit,
		Index:    r.Index,
		GameOver: r.Over,
	}
	if !r.MineHit {
		resp.RevealedCount = len(m.Revealed)
		resp.Multiplier = r.Multiplier
	}
	if s != nil {
		bal := models.FromMinor(s.Balance(state.Currency), state.Currency)
		resp.AllMinePositions = m.MinePositions()
		resp.Payout = models.FromMinor(s.History.Payout, state.Currency)
		resp.Balance = &bal
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GameHandler) CashoutMines(c *gin.Context) {
	var req models.GameIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var m tiles.Mines
	state, ok := h.load(c, models.GameTypeMines, req.GameID, &m)
	if !ok {
		return
	}
	mult, err := m.CashOut()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	s, ok := h.advance(c, state, &m, true, models.PayoutMinor(state.BetAmount, mult))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, moveResponse(state, s, true, mult, gin.H{
		"success":          true,
		"revealedCount":    len(m.Revealed),
		"allMinePositions": m.MinePositions(),
	}))
}

// GetMinesState shows a live game without its mine layout. Without a gameId
// the caller's active mines game is used.
func (h *GameHandler) GetMinesState(c *gin.Context) {
	id := c.Query("gameId")
	if id == "" {
		active, err := h.sessions.Active(c.Request.Context(), accountID(c))
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		if id = active[models.GameTypeMines]; id == "" {
			respondError(c, h.log, models.ErrGameNotFound)
			return
		}
	}

	var m tiles.Mines
	state, ok := h.load(c, models.GameTypeMines, id, &m)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gameId":         state.ID,
		"betAmount":      models.FromMinor(state.BetAmount, state.Currency),
		"currency":       state.Currency,
		"mines":          m.MineCount,
		"revealed":       m.Revealed,
		"multiplier":     m.Current(),
		"nextMultiplier": m.Next(),
	})
}
