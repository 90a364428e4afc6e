package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"minigames-backend/internal/games/blackjack"
	"minigames-backend/internal/games/videopoker"
	"minigames-backend/internal/models"
	"minigames-backend/internal/services"
)

// blackjackState keeps the base bet next to the table; doubles and splits
// each add one more base bet to the game's stake.
type blackjackState struct {
	Base int64           `json:"base"`
	Game *blackjack.Game `json:"game"`
}

func blackjackView(g *blackjack.Game) gin.H {
	dealer := g.DealerView()
	return gin.H{
		"hands":       g.Hands,
		"active":      g.Active,
		"dealer":      dealer,
		"dealerValue": blackjack.CalculateHandValue(dealer),
		"split":       g.Split,
		"over":        g.Over,
	}
}

func blackjackPayout(st *blackjackState) int64 {
	return models.PayoutMinor(st.Base, st.Game.Return())
}

func blackjackResult(s *services.Settlement, st *blackjackState) models.WagerResult {
	return wagerResult(s, s.History.Payout > s.History.BetAmount, st.Game.Return()/float64(st.Game.Stakes()))
}

// DealBlackjack deals a new hand. A natural on either side settles at once
// without ever storing the game.
func (h *GameHandler) DealBlackjack(c *gin.Context) {
	var req models.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	g, err := blackjack.Deal(h.src)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if g.Over {
		st := &blackjackState{Game: g}
		s, ok := h.play(c, models.GameTypeBlackjack, req, func(bet int64) (int64, error) {
			st.Base = bet
			return blackjackPayout(st), nil
		})
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"gameOver": true,
			"game":     blackjackView(g),
			"wager":    blackjackResult(s, st),
		})
		return
	}

	st := &blackjackState{Game: g}
	cur, err := models.ParseCurrency(string(req.Currency))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if st.Base, err = h.wagers.Stake(models.GameTypeBlackjack, cur, req.Stake()); err != nil {
		respondError(c, h.log, err)
		return
	}
	state, user, ok := h.start(c, models.GameTypeBlackjack, req, st)
	if !ok {
		return
	}
	resp := startResponse(state, user)
	resp["gameOver"] = false
	resp["game"] = blackjackView(g)
	c.JSON(http.StatusOK, resp)
}

type blackjackMove func(c *gin.Context, state *models.GameState, st *blackjackState) bool

// blackjackAction loads the table, applies move and settles once the dealer
// has played.
func (h *GameHandler) blackjackAction(move blackjackMove) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.GameIDRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		var st blackjackState
		state, ok := h.load(c, models.GameTypeBlackjack, req.GameID, &st)
		if !ok || !move(c, state, &st) {
			return
		}
		s, ok := h.advance(c, state, &st, st.Game.Over, blackjackPayout(&st))
		if !ok {
			return
		}

		resp := moveResponse(state, s, false, 0, gin.H{"game": blackjackView(st.Game)})
		if s != nil {
			resp["wager"] = blackjackResult(s, &st)
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *GameHandler) moveErr(c *gin.Context, err error) bool {
	if err != nil {
		respondError(c, h.log, err)
		return false
	}
	return true
}

// raise debits one more base bet for a double or split that is about to happen.
func (h *GameHandler) raise(c *gin.Context, state *models.GameState, st *blackjackState, check func() error) bool {
	if !h.moveErr(c, check()) {
		return false
	}
	_, err := h.sessions.Raise(c.Request.Context(), state, st.Base, st)
	return h.moveErr(c, err)
}

func (h *GameHandler) HitBlackjack() gin.HandlerFunc {
	return h.blackjackAction(func(c *gin.Context, _ *models.GameState, st *blackjackState) bool {
		return h.moveErr(c, st.Game.Hit())
	})
}

func (h *GameHandler) StandBlackjack() gin.HandlerFunc {
	return h.blackjackAction(func(c *gin.Context, _ *models.GameState, st *blackjackState) bool {
		return h.moveErr(c, st.Game.Stand())
	})
}

func (h *GameHandler) DoubleBlackjack() gin.HandlerFunc {
	return h.blackjackAction(func(c *gin.Context, state *models.GameState, st *blackjackState) bool {
		return h.raise(c, state, st, st.Game.CanDouble) && h.moveErr(c, st.Game.Double())
	})
}

func (h *GameHandler) SplitBlackjack() gin.HandlerFunc {
	return h.blackjackAction(func(c *gin.Context, state *models.GameState, st *blackjackState) bool {
		return h.raise(c, state, st, st.Game.CanSplit) && h.moveErr(c, st.Game.SplitHand())
	})
}

func (h *GameHandler) DealVideoPoker(c *gin.Context) {
	var req models.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	g, err := videopoker.Deal(h.src)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	state, user, ok := h.start(c, models.GameTypeVideoPoker, req, g)
	if !ok {
		return
	}
	resp := startResponse(state, user)
	resp["hand"] = g.Hand
	resp["pays"] = videopoker.Pays
	c.JSON(http.StatusOK, resp)
}

func (h *GameHandler) DrawVideoPoker(c *gin.Context) {
	var req models.HoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var g videopoker.Game
	state, ok := h.load(c, models.GameTypeVideoPoker, req.GameID, &g)
	if !ok {
		return
	}
	res, err := g.Draw(req.Holds)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	s, ok := h.advance(c, state, &g, true, models.PayoutMinor(state.BetAmount, res.Multiplier))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, moveResponse(state, s, res.Multiplier > 1, res.Multiplier, gin.H{"result": res}))
}
