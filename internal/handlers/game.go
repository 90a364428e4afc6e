package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"minigames-backend/internal/games/aviamaster"
	"minigames-backend/internal/games/baccarat"
	"minigames-backend/internal/games/bingo"
	"minigames-backend/internal/games/cases"
	"minigames-backend/internal/games/dice"
	"minigames-backend/internal/games/keno"
	"minigames-backend/internal/games/limbo"
	"minigames-backend/internal/games/plinko"
	"minigames-backend/internal/games/roulette"
	"minigames-backend/internal/games/slots"
	"minigames-backend/internal/games/teenpatti"
	"minigames-backend/internal/games/wheel"
	"minigames-backend/internal/models"
	"minigames-backend/internal/pathdata"
	"minigames-backend/internal/rng"
	"minigames-backend/internal/services"
)

// GameHandler serves every game endpoint. Single-shot games settle inside
// one request; multi-step games keep their state in the session store.
type GameHandler struct {
	wagers   *services.WagerService
	sessions *services.SessionGames
	paths    *pathdata.Store
	src      rng.Source
	log      *logrus.Logger
}

func NewGameHandler(wagers *services.WagerService, sessions *services.SessionGames, paths *pathdata.Store, src rng.Source, log *logrus.Logger) *GameHandler {
	if src == nil {
		src = rng.Crypto()
	}
	return &GameHandler{
		wagers:   wagers,
		sessions: sessions,
		paths:    paths,
		src:      src,
		log:      log,
	}
}

// play runs one single-shot wager. resolve draws the outcome and returns the
// payout for the validated stake; nothing is debited if it fails.
func (h *GameHandler) play(c *gin.Context, game models.GameType, req models.BetRequest, resolve func(bet int64) (int64, error)) (*services.Settlement, bool) {
	cur, err := models.ParseCurrency(string(req.Currency))
	if err != nil {
		respondError(c, h.log, err)
		return nil, false
	}
	s, err := h.wagers.PlaceWager(c.Request.Context(), accountID(c), game, cur, req.Stake(), resolve)
	if err != nil {
		respondError(c, h.log, err)
		return nil, false
	}
	return s, true
}

func wagerResult(s *services.Settlement, won bool, multiplier float64) models.WagerResult {
	return models.WagerResult{
		Success:       true,
		Won:           won,
		Multiplier:    multiplier,
		Payout:        models.FromMinor(s.History.Payout, s.History.Currency),
		NewBalanceUSD: models.FromMinor(s.BalanceUSD, models.CurrencyUSD),
		NewBalanceLBP: models.FromMinor(s.BalanceLBP, models.CurrencyLBP),
	}
}

func (h *GameHandler) PlayDice(c *gin.Context) {
	var req models.DicePlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var res dice.Result
	s, ok := h.play(c, models.GameTypeDice, req.BetRequest, func(bet int64) (int64, error) {
		var err error
		res, err = dice.Play(h.src, dice.RollType(req.RollType), req.Target)
		return models.PayoutMinor(bet, res.Multiplier), err
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.DicePlayResponse{
		WagerResult: wagerResult(s, res.Won, res.Multiplier),
		Result:      res.Roll,
	})
}

func (h *GameHandler) PlayLimbo(c *gin.Context) {
	var req models.LimboPlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var res limbo.Result
	s, ok := h.play(c, models.GameTypeLimbo, req.BetRequest, func(bet int64) (int64, error) {
		var err error
		res, err = limbo.Play(h.src, req.Target)
		return models.PayoutMinor(bet, res.Multiplier), err
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wager":  wagerResult(s, res.Won, res.Multiplier),
		"result": res,
	})
}

type rouletteBetView struct {
	Type   roulette.BetKind `json:"type"`
	Value  int              `json:"value"`
	Amount float64          `json:"amount"`
	Won    bool             `json:"won"`
	Payout float64          `json:"payout"`
}

func (h *GameHandler) SpinRoulette(c *gin.Context) {
	var req models.RouletteSpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	cur, err := models.ParseCurrency(string(req.Currency))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	bets := make([]roulette.Bet, len(req.Bets))
	var total int64
	for i, b := range req.Bets {
		amount, err := h.wagers.Stake(models.GameTypeRoulette, cur, b.Amount)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		if total > math.MaxInt64-amount {
			respondError(c, h.log, fmt.Errorf("%w: total stake too large", models.ErrInvalidBet))
			return
		}
		bets[i] = roulette.Bet{Kind: roulette.BetKind(b.Type), Number: b.Value, Amount: amount}
		total += amount
	}
	if err := roulette.Validate(bets); err != nil {
		respondError(c, h.log, err)
		return
	}

	var res roulette.Result
	stake := models.BetRequest{Amount: models.FromMinor(total, cur), Currency: cur}
	s, ok := h.play(c, models.GameTypeRoulette, stake, func(bet int64) (int64, error) {
		res = roulette.Settle(roulette.Spin(h.src), bets)
		return res.Payout, nil
	})
	if !ok {
		return
	}

	views := make([]rouletteBetView, len(res.Bets))
	for i, b := range res.Bets {
		views[i] = rouletteBetView{
			Type:   b.Kind,
			Value:  b.Number,
			Amount: models.FromMinor(b.Amount, cur),
			Won:    b.Won,
			Payout: models.FromMinor(b.Payout, cur),
		}
	}
	var multiplier float64
	if res.Stake > 0 {
		multiplier = float64(res.Payout) / float64(res.Stake)
	}

	c.JSON(http.StatusOK, gin.H{
		"wager":  wagerResult(s, res.Payout > res.Stake, multiplier),
		"number": res.Number,
		"color":  res.Color,
		"bets":   views,
		"path":   h.paths.Pick(pathdata.Roulette, strconv.Itoa(res.Number)),
	})
}

func (h *GameHandler) SpinWheel(c *gin.Context) {
	var req models.RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var res wheel.Result
	s, ok := h.play(c, models.GameTypeWheel, req.BetRequest, func(bet int64) (int64, error) {
		var err error
		res, err = wheel.Spin(h.src, wheel.Risk(req.Risk))
		return models.PayoutMinor(bet, res.Multiplier), err
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wager":  wagerResult(s, res.Multiplier > 1, res.Multiplier),
		"result": res,
	})
}

func (h *GameHandler) DropPlinko(c *gin.Context) {
	var req models.PlinkoDropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var res plinko.Result
	s, ok := h.play(c, models.GameTypePlinko, req.BetRequest, func(bet int64) (int64, error) {
		var err error
		res, err = plinko.Drop(h.src, req.Rows, plinko.Risk(req.Risk))
		return models.PayoutMinor(bet, res.Multiplier), err
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wager":  wagerResult(s, res.Multiplier > 1, res.Multiplier),
		"result": res,
		"path":   h.paths.Pick(pathdata.Plinko, plinko.PathKey(res.Rows, res.Bucket)),
	})
}

func (h *GameHandler) PlayKeno(c *gin.Context) {
	var req models.KenoPlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var res keno.Result
	s, ok := h.play(c, models.GameTypeKeno, req.BetRequest, func(bet int64) (int64, error) {
		var err error
		res, err = keno.Play(h.src, req.Picks)
		return models.PayoutMinor(bet, res.Multiplier), err
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wager":  wagerResult(s, res.Multiplier > 1, res.Multiplier),
		"result": res,
	})
}

func (h *GameHandler) OpenCase(c *gin.Context) {
	var req models.CaseOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var res cases.Result
	s, ok := h.play(c, models.GameTypeCases, req.BetRequest, func(bet int64) (int64, error) {
		var err error
		res, err = cases.Open(h.src, cases.Tier(req.Case))
		return models.PayoutMinor(bet, res.Reward.Multiplier), err
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wager":  wagerResult(s, res.Reward.Multiplier > 1, res.Reward.Multiplier),
		"result": res,
	})
}

func (h *GameHandler) SpinSlots(c *gin.Context) {
	variant, err := slots.Lookup(c.Param("variant"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var req models.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var res slots.Result
	s, ok := h.play(c, models.GameType(variant.Name()), req, func(bet int64) (int64, error) {
		res = variant.Play(h.src)
		return models.PayoutMinor(bet, res.Multiplier), nil
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wager":  wagerResult(s, res.Multiplier > 1, res.Multiplier),
		"result": res,
	})
}

func (h *GameHandler) PlayAviamaster(c *gin.Context) {
	var req models.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var res aviamaster.Result
	s, ok := h.play(c, models.GameTypeAviamaster, req, func(bet int64) (int64, error) {
		res = aviamaster.Fly(h.src)
		return models.PayoutMinor(bet, res.Multiplier), nil
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wager":  wagerResult(s, res.Landed, res.Multiplier),
		"result": res,
		"path":   h.paths.Pick(pathdata.Aviamaster, aviamaster.PathKey(res.Index)),
	})
}

func (h *GameHandler) PlayBaccarat(c *gin.Context) {
	var req models.BaccaratPlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var res baccarat.Result
	s, ok := h.play(c, models.GameTypeBaccarat, req.BetRequest, func(bet int64) (int64, error) {
		var err error
		res, err = baccarat.Play(h.src, baccarat.Side(req.Bet))
		return models.PayoutMinor(bet, res.Multiplier), err
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wager":  wagerResult(s, res.Won, res.Multiplier),
		"result": res,
	})
}

func (h *GameHandler) PlayTeenPatti(c *gin.Context) {
	var req models.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var res teenpatti.Result
	s, ok := h.play(c, models.GameTypeTeenPatti, req, func(bet int64) (int64, error) {
		var err error
		res, err = teenpatti.Play(h.src)
		return models.PayoutMinor(bet, res.Multiplier), err
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wager":  wagerResult(s, res.Outcome == "win", res.Multiplier),
		"result": res,
	})
}

func (h *GameHandler) PlayBingo(c *gin.Context) {
	var req models.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var res bingo.Result
	s, ok := h.play(c, models.GameTypeBingo, req, func(bet int64) (int64, error) {
		res = bingo.Play(h.src)
		return models.PayoutMinor(bet, res.Multiplier), nil
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wager":  wagerResult(s, res.Multiplier > 1, res.Multiplier),
		"result": res,
	})
}

// GetPaths serves a whole animation path table. Clients cache it and pick
// the entry the server returns with each result.
func GetPaths(paths *pathdata.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := paths.Raw(c.Param("table"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown path table"})
			return
		}
		c.Header("Cache-Control", "public, max-age=3600")
		c.Data(http.StatusOK, "application/json", raw)
	}
}
