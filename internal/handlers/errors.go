package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"minigames-backend/internal/middleware"
	"minigames-backend/internal/models"
)

var statusByError = []struct {
	err    error
	status int
}{
	{models.ErrInvalidBet, http.StatusBadRequest},
	{models.ErrInvalidRequest, http.StatusBadRequest},
	{models.ErrInvalidMove, http.StatusBadRequest},
	{models.ErrInsufficientBalance, http.StatusBadRequest},
	{models.ErrUnauthorized, http.StatusUnauthorized},
	{models.ErrInvalidCredentials, http.StatusUnauthorized},
	{models.ErrForbidden, http.StatusForbidden},
	{models.ErrNotGameOwner, http.StatusForbidden},
	{models.ErrGameNotFound, http.StatusNotFound},
	{models.ErrUserNotFound, http.StatusNotFound},
	{models.ErrAccountNotFound, http.StatusNotFound},
	{models.ErrStateConflict, http.StatusConflict},
	{models.ErrGameInProgress, http.StatusConflict},
	{models.ErrGameFinished, http.StatusConflict},
	{models.ErrUsernameTaken, http.StatusConflict},
}

func statusFor(err error) int {
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the JSON error for err. Unknown errors are logged and
// reported without detail.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.Error(err)
		log.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"account_id": c.GetUint(middleware.KeyAccountID),
		}).Error("request failed")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request",
		"details": err.Error(),
	})
}

func accountID(c *gin.Context) uint {
	return c.GetUint(middleware.KeyAccountID)
}

func roleOf(c *gin.Context) models.Role {
	v, _ := c.Get(middleware.KeyRole)
	role, _ := v.(models.Role)
	return role
}
