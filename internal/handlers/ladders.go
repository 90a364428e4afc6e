package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"minigames-backend/internal/games/tiles"
	"minigames-backend/internal/models"
)

func (h *GameHandler) StartTower(c *gin.Context) {
	var req models.DifficultyStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	t, err := tiles.NewTower(h.src, req.Difficulty)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	state, user, ok := h.start(c, models.GameTypeTower, req.BetRequest, t)
	if !ok {
		return
	}

	resp := startResponse(state, user)
	resp["difficulty"] = t.Difficulty
	resp["tiles"] = t.Tiles
	resp["levels"] = tiles.TowerLevels
	resp["multipliers"] = t.Multipliers
	c.JSON(http.StatusOK, resp)
}

func (h *GameHandler) StepTower(c *gin.Context) {
	var req models.TowerStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var t tiles.Tower
	state, ok := h.load(c, models.GameTypeTower, req.GameID, &t)
	if !ok {
		return
	}
	step, err := t.Step(*req.Tile)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	s, ok := h.advance(c, state, &t, step.Over, models.PayoutMinor(state.BetAmount, step.Multiplier))
	if !ok {
		return
	}

	resp := gin.H{"step": step}
	if s != nil {
		resp["bombs"] = t.Bombs
	}
	c.JSON(http.StatusOK, moveResponse(state, s, !step.Bomb, step.Multiplier, resp))
}

func (h *GameHandler) CashoutTower(c *gin.Context) {
	var req models.GameIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var t tiles.Tower
	state, ok := h.load(c, models.GameTypeTower, req.GameID, &t)
	if !ok {
		return
	}
	mult, err := t.CashOut()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	s, ok := h.advance(c, state, &t, true, models.PayoutMinor(state.BetAmount, mult))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, moveResponse(state, s, true, mult, gin.H{"success": true, "bombs": t.Bombs}))
}

func (h *GameHandler) StartChicken(c *gin.Context) {
	var req models.DifficultyStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ch, err := tiles.NewChicken(h.src, req.Difficulty)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	state, user, ok := h.start(c, models.GameTypeChicken, req.BetRequest, ch)
	if !ok {
		return
	}

	resp := startResponse(state, user)
	resp["difficulty"] = ch.Difficulty
	resp["lanes"] = ch.MaxSteps()
	resp["multipliers"] = ch.Multipliers
	c.JSON(http.StatusOK, resp)
}

func (h *GameHandler) StepChicken(c *gin.Context) {
	var req models.GameIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var ch tiles.Chicken
	state, ok := h.load(c, models.GameTypeChicken, req.GameID, &ch)
	if !ok {
		return
	}
	cross, err := ch.Step()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	s, ok := h.advance(c, state, &ch, cross.Over, models.PayoutMinor(state.BetAmount, cross.Multiplier))
	if !ok {
		return
	}

	resp := gin.H{"step": cross}
	if s != nil {
		resp["hazards"] = ch.HazardLanes()
	}
	c.JSON(http.StatusOK, moveResponse(state, s, !cross.Hit, cross.Multiplier, resp))
}

func (h *GameHandler) CashoutChicken(c *gin.Context) {
	var req models.GameIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var ch tiles.Chicken
	state, ok := h.load(c, models.GameTypeChicken, req.GameID, &ch)
	if !ok {
		return
	}
	mult, err := ch.CashOut()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	s, ok := h.advance(c, state, &ch, true, models.PayoutMinor(state.BetAmount, mult))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, moveResponse(state, s, true, mult, gin.H{"success": true, "hazards": ch.HazardLanes()}))
}

func (h *GameHandler) StartSnakes(c *gin.Context) {
	var req models.DifficultyStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	sn, err := tiles.NewSnakes(h.src, req.Difficulty)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	state, user, ok := h.start(c, models.GameTypeSnakes, req.BetRequest, sn)
	if !ok {
		return
	}

	resp := startResponse(state, user)
	resp["difficulty"] = sn.Difficulty
	resp["cells"] = tiles.SnakesCells
	resp["multipliers"] = sn.Multipliers
	c.JSON(http.StatusOK, resp)
}

func (h *GameHandler) RollSnakes(c *gin.Context) {
	var req models.GameIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var sn tiles.Snakes
	state, ok := h.load(c, models.GameTypeSnakes, req.GameID, &sn)
	if !ok {
		return
	}
	move, err := sn.Roll(h.src)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	s, ok := h.advance(c, state, &sn, move.Over, models.PayoutMinor(state.BetAmount, move.Multiplier))
	if !ok {
		return
	}

	resp := gin.H{"move": move}
	if s != nil {
		resp["snakes"] = sn.SnakeCells()
	}
	c.JSON(http.StatusOK, moveResponse(state, s, !move.Snake, move.Multiplier, resp))
}

func (h *GameHandler) CashoutSnakes(c *gin.Context) {
	var req models.GameIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var sn tiles.Snakes
	state, ok := h.load(c, models.GameTypeSnakes, req.GameID, &sn)
	if !ok {
		return
	}
	mult, err := sn.CashOut()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	s, ok := h.advance(c, state, &sn, true, models.PayoutMinor(state.BetAmount, mult))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, moveResponse(state, s, true, mult, gin.H{"success": true, "snakes": sn.SnakeCells()}))
}
