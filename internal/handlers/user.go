package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"minigames-backend/internal/middleware"
	"minigames-backend/internal/models"
	"minigames-backend/internal/services"
)

type UserHandler struct {
	accounts *services.AccountService
	ledger   *services.Ledger
	sessions *services.SessionGames
	log      *logrus.Logger
}

func NewUserHandler(accounts *services.AccountService, ledger *services.Ledger, sessions *services.SessionGames, log *logrus.Logger) *UserHandler {
	return &UserHandler{
		accounts: accounts,
		ledger:   ledger,
		sessions: sessions,
		log:      log,
	}
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	acc, err := h.accounts.Lookup(c.Request.Context(), roleOf(c), accountID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"account":   acc,
		"sessionId": c.GetString(middleware.KeySessionID),
	})
}

func (h *UserHandler) GetNotifications(c *gin.Context) {
	notes, err := h.ledger.Notifications(c.Request.Context(), c.GetString(middleware.KeyUsername), time.Now())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notes})
}

// queryLimit reads ?limit=; anything unparsable means the default.
func queryLimit(c *gin.Context) int {
	n, _ := strconv.Atoi(c.Query("limit"))
	return n
}

func betViews(bets []models.BetHistory) []models.BetHistoryView {
	out := make([]models.BetHistoryView, len(bets))
	for i := range bets {
		out[i] = bets[i].View()
	}
	return out
}

func (h *UserHandler) GetGameHistory(c *gin.Context) {
	bets, err := h.ledger.Bets(c.Request.Context(), services.BetFilter{
		UserID: accountID(c),
		Game:   models.GameType(c.Query("game")),
		Limit:  queryLimit(c),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bets": betViews(bets)})
}

func (h *UserHandler) GetActiveGames(c *gin.Context) {
	active, err := h.sessions.Active(c.Request.Context(), accountID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}
