package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"minigames-backend/internal/middleware"
	"minigames-backend/internal/models"
	"minigames-backend/internal/pathdata"
	"minigames-backend/internal/rng"
	"minigames-backend/internal/services"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Accounts *services.AccountService
	Ledger   *services.Ledger
	Wagers   *services.WagerService
	Sessions *services.SessionGames
	Redis    *services.RedisService
	JWT      *services.JWTService
	Paths    *pathdata.Store
	Hub      *Hub
	Source   rng.Source
	Log      *logrus.Logger

	SecureCookie bool
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func NewRouter(d Deps) *gin.Engine {
	authHandler := NewAuthHandler(d.Accounts, d.JWT, d.Redis, d.SecureCookie, d.Log)
	userHandler := NewUserHandler(d.Accounts, d.Ledger, d.Sessions, d.Log)
	gameHandler := NewGameHandler(d.Wagers, d.Sessions, d.Paths, d.Source, d.Log)
	adminHandler := NewAdminHandler(d.Accounts, d.Ledger, d.Log)

	router := gin.New()
	router.Use(middleware.AccessLog(d.Log), gin.Recovery(), cors())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "clients": d.Hub.Clients()})
	})
	router.GET("/ws", d.Hub.HandleWebSocket)
	router.GET("/games/paths/:table", middleware.Gzip(), GetPaths(d.Paths))

	authLimit := middleware.RateLimitMiddleware(d.Redis, "auth", services.DefaultRateLimitAuth, time.Minute)
	router.POST("/auth/register", authLimit, authHandler.Register)
	router.POST("/auth/login", authLimit, authHandler.Login)

	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(d.JWT, d.Redis))
	{
		protected.GET("/me", userHandler.GetCurrentUser)
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/notifications", userHandler.GetNotifications)
	}

	players := protected.Group("/games", middleware.RequireRole(models.RoleUser, models.RoleAdmin))
	players.GET("/history", userHandler.GetGameHistory)
	players.GET("/active", userHandler.GetActiveGames)

	games := players.Group("/", middleware.RateLimitMiddleware(d.Redis, "bet", services.DefaultRateLimitBets, time.Minute))
	{
		games.POST("/dice/play", gameHandler.PlayDice)
		games.POST("/limbo/play", gameHandler.PlayLimbo)
		games.POST("/roulette/spin", gameHandler.SpinRoulette)
		games.POST("/wheel/spin", gameHandler.SpinWheel)
		games.POST("/plinko/drop", gameHandler.DropPlinko)
		games.POST("/keno/play", gameHandler.PlayKeno)
		games.POST("/cases/open", gameHandler.OpenCase)
		games.POST("/slots/:variant/spin", gameHandler.SpinSlots)
		games.POST("/aviamaster/play", gameHandler.PlayAviamaster)
		games.POST("/baccarat/play", gameHandler.PlayBaccarat)
		games.POST("/teenpatti/play", gameHandler.PlayTeenPatti)
		games.POST("/bingo/play", gameHandler.PlayBingo)

		mines := games.Group("/mines")
		{
			mines.POST("/start", gameHandler.StartMines)
			mines.POST("/reveal", gameHandler.RevealMine)
			mines.POST("/cashout", gameHandler.CashoutMines)
			mines.GET("/state", gameHandler.GetMinesState)
		}

		tower := games.Group("/tower")
		{
			tower.POST("/start", gameHandler.StartTower)
			tower.POST("/step", gameHandler.StepTower)
			tower.POST("/cashout", gameHandler.CashoutTower)
		}

		chicken := games.Group("/chicken")
		{
			chicken.POST("/start", gameHandler.StartChicken)
			chicken.POST("/step", gameHandler.StepChicken)
			chicken.POST("/cashout", gameHandler.CashoutChicken)
		}

		snakes := games.Group("/snakes")
		{
			snakes.POST("/start", gameHandler.StartSnakes)
			snakes.POST("/roll", gameHandler.RollSnakes)
			snakes.POST("/cashout", gameHandler.CashoutSnakes)
		}

		flip := games.Group("/flip")
		{
			flip.POST("/start", gameHandler.StartFlip())
			flip.POST("/play", gameHandler.PlayFlip())
			flip.POST("/cashout", gameHandler.CashoutFlip())
		}

		rps := games.Group("/rps")
		{
			rps.POST("/start", gameHandler.StartRPS())
			rps.POST("/play", gameHandler.PlayRPS())
			rps.POST("/cashout", gameHandler.CashoutRPS())
		}

		hl := games.Group("/hilo")
		{
			hl.POST("/start", gameHandler.StartHiLo)
			hl.POST("/guess", gameHandler.GuessHiLo)
			hl.POST("/cashout", gameHandler.CashoutHiLo)
		}

		bj := games.Group("/blackjack")
		{
			bj.POST("/deal", gameHandler.DealBlackjack)
			bj.POST("/hit", gameHandler.HitBlackjack())
			bj.POST("/stand", gameHandler.StandBlackjack())
			bj.POST("/double", gameHandler.DoubleBlackjack())
			bj.POST("/split", gameHandler.SplitBlackjack())
		}

		vp := games.Group("/videopoker")
		{
			vp.POST("/deal", gameHandler.DealVideoPoker)
			vp.POST("/draw", gameHandler.DrawVideoPoker)
		}
	}

	adminLimit := middleware.RateLimitMiddleware(d.Redis, "admin", services.DefaultRateLimitAdmin, time.Minute)

	agent := protected.Group("/agent", middleware.RequireRole(models.RoleAgent), adminLimit)
	{
		agent.POST("/users", adminHandler.CreateUser)
		agent.GET("/users", adminHandler.ListUsers)
		agent.POST("/users/:id/deposit", adminHandler.DepositUser())
		agent.POST("/users/:id/withdraw", adminHandler.WithdrawUser())
		agent.GET("/transactions", adminHandler.AgentTransactions)
		agent.GET("/bets", adminHandler.AgentBets)
	}

	superAgent := protected.Group("/superagent", middleware.RequireRole(models.RoleSuperAgent), adminLimit)
	{
		superAgent.POST("/agents", adminHandler.CreateAgent)
		superAgent.POST("/agents/:id/deposit", adminHandler.DepositAgent())
		superAgent.POST("/agents/:id/withdraw", adminHandler.WithdrawAgent())
		superAgent.GET("/transactions", adminHandler.SuperAgentTransactions)
	}

	admin := protected.Group("/admin", middleware.RequireRole(models.RoleAdmin), adminLimit)
	{
		admin.POST("/superagents", adminHandler.CreateSuperAgent)
		admin.POST("/superagents/:id/deposit", adminHandler.FundSuperAgent)
		admin.POST("/notifications", adminHandler.CreateNotification)
		admin.GET("/bets", adminHandler.Bets)
	}

	return router
}
