package services

import "time"

const (
	KeyUserSession = "session:%s:%d:%s" // role, account id, session id
	KeyGameState   = "game:state:%s"
	KeyActiveGame  = "user:%d:active:%s"
	KeyActiveGames = "user:%d:active:*"
	KeyRateLimit   = "ratelimit:%s:%d:%s"

	TTLUserSession = 24 * time.Hour
	TTLGameState   = 24 * time.Hour

	DefaultRateLimitBets  = 120 // per minute, single-shot and multi-step moves
	DefaultRateLimitAuth  = 10  // login/register per minute per address
	DefaultRateLimitAdmin = 60
)
