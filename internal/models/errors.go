package models

import "errors"

var (
	ErrInvalidBet          = errors.New("invalid bet")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUserNotFound        = errors.New("user not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")

	ErrGameNotFound   = errors.New("game not found")
	ErrNotGameOwner   = errors.New("game belongs to another user")
	ErrGameFinished   = errors.New("game is not active")
	ErrGameInProgress = errors.New("game already in progress")
	ErrStateConflict  = errors.New("game state changed concurrently")
	ErrInvalidMove    = errors.New("invalid move")
)
