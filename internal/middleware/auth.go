package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"minigames-backend/internal/models"
	"minigames-backend/internal/services"
)

// Context keys set by AuthMiddleware.
const (
	KeyAccountID = "account_id"
	KeyRole      = "role"
	KeySessionID = "session_id"
	KeyUsername  = "username"

	TokenCookie = "token"
)

func tokenFrom(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	if q := c.Query("token"); q != "" {
		return q, true
	}
	return "", false
}

// AuthMiddleware accepts a JWT from the Authorization header, the token
// cookie or the token query parameter, and requires its session to still
// exist in redis.
func AuthMiddleware(jwtService *services.JWTService, redisService *services.RedisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := tokenFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		session, err := redisService.GetUserSession(c.Request.Context(), claims.Role, claims.AccountID, claims.SessionID)
		if err != nil {
			if errors.Is(err, models.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or invalid"})
				return
			}
			c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(KeyAccountID, session.AccountID)
		c.Set(KeyRole, session.Role)
		c.Set(KeySessionID, session.SessionID)
		c.Set(KeyUsername, session.Username)

		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role is not listed.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(KeyRole)
		r, ok := role.(models.Role)
		if !ok || !slices.Contains(roles, r) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

// RateLimitMiddleware allows limit requests per window for each caller.
// Authenticated callers are counted per account, others per client IP.
func RateLimitMiddleware(redisService *services.RedisService, action string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, id := "ip", uint(0)
		key := action
		if v, ok := c.Get(KeyAccountID); ok {
			role, _ := c.Get(KeyRole)
			scope = string(role.(models.Role))
			id = v.(uint)
		} else {
			key = action + ":" + c.ClientIP()
		}

		allowed, err := redisService.CheckRateLimit(c.Request.Context(), scope, id, key, limit, window)
		if err != nil {
			c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Rate limit check failed"})
			return
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}

		c.Next()
	}
}
