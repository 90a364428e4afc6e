package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"minigames-backend/internal/models"
	"minigames-backend/internal/services"
)

// AdminHandler serves the agent, super agent and admin back office.
type AdminHandler struct {
	accounts *services.AccountService
	ledger   *services.Ledger
	log      *logrus.Logger
}

func NewAdminHandler(accounts *services.AccountService, ledger *services.Ledger, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{accounts: accounts, ledger: ledger, log: log}
}

type newAccountRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type transferRequest struct {
	Currency models.Currency `json:"currency" binding:"required"`
	Amount   float64         `json:"amount" binding:"required,gt=0"`
}

// minor parses the request currency and converts the amount to minor units.
func (r transferRequest) minor() (models.Currency, int64, error) {
	cur, err := models.ParseCurrency(string(r.Currency))
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", models.ErrInvalidRequest, err)
	}
	return cur, models.ToMinor(r.Amount, cur), nil
}

func paramID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: bad id %q", models.ErrInvalidRequest, c.Param("id"))
	}
	return uint(id), nil
}

func transferViews[T any, P interface {
	*T
	View() models.TransferView
}](rows []T) []models.TransferView {
	out := make([]models.TransferView, len(rows))
	for i := range rows {
		out[i] = P(&rows[i]).View()
	}
	return out
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req newAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	agent, err := h.accounts.Agent(c.Request.Context(), accountID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	user, err := h.accounts.Register(c.Request.Context(), req.Username, req.Password, agent)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": services.UserAccount(user)})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.ledger.AgentUsers(c.Request.Context(), accountID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make([]*services.Account, len(users))
	for i := range users {
		out[i] = services.UserAccount(&users[i])
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// agentTransfer moves money between the calling agent and one of its users.
func (h *AdminHandler) agentTransfer(kind models.TransactionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := paramID(c)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		var req transferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		cur, amount, err := req.minor()
		if err != nil {
			respondError(c, h.log, err)
			return
		}

		transfer := h.ledger.AgentDeposit
		if kind == models.TransactionTypeWithdraw {
			transfer = h.ledger.AgentWithdraw
		}
		tx, err := transfer(c.Request.Context(), accountID(c), userID, cur, amount)
		if err != nil {
			respondError(c, h.log, err)
			return
		}

		h.log.WithFields(logrus.Fields{
			"agent_id": tx.AgentID,
			"user_id":  tx.UserID,
			"type":     tx.Type,
			"currency": tx.Currency,
			"amount":   tx.Amount,
		}).Info("agent transfer")
		c.JSON(http.StatusOK, gin.H{"success": true, "transaction": tx.View()})
	}
}

func (h *AdminHandler) DepositUser() gin.HandlerFunc {
	return h.agentTransfer(models.TransactionTypeDeposit)
}

func (h *AdminHandler) WithdrawUser() gin.HandlerFunc {
	return h.agentTransfer(models.TransactionTypeWithdraw)
}

func (h *AdminHandler) AgentTransactions(c *gin.Context) {
	rows, err := h.ledger.AgentTransactions(c.Request.Context(), accountID(c), queryLimit(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transferViews(rows)})
}

func (h *AdminHandler) AgentBets(c *gin.Context) {
	bets, err := h.ledger.Bets(c.Request.Context(), services.BetFilter{
		AgentID:  accountID(c),
		Username: c.Query("username"),
		Game:     models.GameType(c.Query("game")),
		Limit:    queryLimit(c),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bets": betViews(bets)})
}

func (h *AdminHandler) CreateAgent(c *gin.Context) {
	var req newAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	agent, err := h.accounts.CreateAgent(c.Request.Context(), accountID(c), req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "agent": services.AgentAccount(agent)})
}

func (h *AdminHandler) superAgentTransfer(kind models.TransactionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		agentID, err := paramID(c)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		var req transferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		cur, amount, err := req.minor()
		if err != nil {
			respondError(c, h.log, err)
			return
		}

		transfer := h.ledger.SuperAgentDeposit
		if kind == models.TransactionTypeWithdraw {
			transfer = h.ledger.SuperAgentWithdraw
		}
		tx, err := transfer(c.Request.Context(), accountID(c), agentID, cur, amount)
		if err != nil {
			respondError(c, h.log, err)
			return
		}

		h.log.WithFields(logrus.Fields{
			"superagent_id": tx.SuperAgentID,
			"agent_id":      tx.AgentID,
			"type":          tx.Type,
			"currency":      tx.Currency,
			"amount":        tx.Amount,
		}).Info("superagent transfer")
		c.JSON(http.StatusOK, gin.H{"success": true, "transaction": tx.View()})
	}
}

func (h *AdminHandler) DepositAgent() gin.HandlerFunc {
	return h.superAgentTransfer(models.TransactionTypeDeposit)
}

func (h *AdminHandler) WithdrawAgent() gin.HandlerFunc {
	return h.superAgentTransfer(models.TransactionTypeWithdraw)
}

func (h *AdminHandler) SuperAgentTransactions(c *gin.Context) {
	rows, err := h.ledger.SuperAgentTransactions(c.Request.Context(), accountID(c), queryLimit(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transferViews(rows)})
}

func (h *AdminHandler) CreateSuperAgent(c *gin.Context) {
	var req newAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	sa, err := h.accounts.CreateSuperAgent(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "superAgent": services.SuperAgentAccount(sa)})
}

// FundSuperAgent mints balance for a super agent; it is the only way money
// enters the hierarchy.
func (h *AdminHandler) FundSuperAgent(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	cur, amount, err := req.minor()
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.ledger.FundSuperAgent(ctx, id, cur, amount); err != nil {
		respondError(c, h.log, err)
		return
	}
	acc, err := h.accounts.Lookup(ctx, models.RoleSuperAgent, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"admin_id":      accountID(c),
		"superagent_id": id,
		"currency":      cur,
		"amount":        amount,
	}).Info("superagent funded")
	c.JSON(http.StatusOK, gin.H{"success": true, "superAgent": acc})
}

type notificationRequest struct {
	Message    string  `json:"message" binding:"required"`
	Username   *string `json:"username"`
	TTLSeconds int     `json:"ttlSeconds" binding:"min=0"`
}

func (h *AdminHandler) CreateNotification(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	n, err := h.ledger.CreateNotification(c.Request.Context(), req.Message, req.Username, time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "notification": n})
}

func (h *AdminHandler) Bets(c *gin.Context) {
	var agentID uint
	if v := c.Query("agentId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondError(c, h.log, fmt.Errorf("%w: bad agentId %q", models.ErrInvalidRequest, v))
			return
		}
		agentID = uint(id)
	}
	bets, err := h.ledger.Bets(c.Request.Context(), services.BetFilter{
		AgentID:  agentID,
		Username: c.Query("username"),
		Game:     models.GameType(c.Query("game")),
		Limit:    queryLimit(c),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bets": betViews(bets)})
}
