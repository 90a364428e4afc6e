package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"minigames-backend/internal/middleware"
	"minigames-backend/internal/models"
	"minigames-backend/internal/services"
)

type AuthHandler struct {
	accounts     *services.AccountService
	jwtService   *services.JWTService
	redisService *services.RedisService
	secureCookie bool
	log          *logrus.Logger
}

func NewAuthHandler(accounts *services.AccountService, jwtService *services.JWTService, redisService *services.RedisService, secureCookie bool, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		accounts:     accounts,
		jwtService:   jwtService,
		redisService: redisService,
		secureCookie: secureCookie,
		log:          log,
	}
}

type credentials struct {
	Username string      `json:"username" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.Username, req.Password, nil)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.issue(c, http.StatusCreated, services.UserAccount(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	acc, err := h.accounts.Login(c.Request.Context(), req.Role, req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.issue(c, http.StatusOK, acc)
}

// issue opens a session for acc and hands the client its token, both in the
// body and as an http-only cookie.
func (h *AuthHandler) issue(c *gin.Context, status int, acc *services.Account) {
	now := time.Now()
	session := &models.UserSession{
		SessionID:    models.GenerateSessionID(),
		AccountID:    acc.ID,
		Role:         acc.Role,
		Username:     acc.Username,
		CreatedAt:    now,
		LastAccessed: now,
	}
	ttl := h.jwtService.TTL()
	if err := h.redisService.StoreUserSession(c.Request.Context(), session, ttl); err != nil {
		respondError(c, h.log, err)
		return
	}
	token, err := h.jwtService.GenerateToken(session)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"account_id": acc.ID,
		"role":       acc.Role,
	}).Info("session opened")

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(ttl.Seconds()), "/", "", h.secureCookie, true)
	c.JSON(status, gin.H{
		"success":   true,
		"token":     token,
		"expiresIn": int(ttl.Seconds()),
		"account":   acc,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString(middleware.KeySessionID)
	if err := h.redisService.DeleteUserSession(c.Request.Context(), roleOf(c), accountID(c), sessionID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}
