package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"minigames-backend/internal/database"
	"minigames-backend/internal/logger"
	"minigames-backend/internal/models"
	"minigames-backend/internal/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func newTestRedis(t *testing.T) (*services.RedisService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return services.NewRedisServiceWithClient(client), mr
}

func createUser(t *testing.T, db *gorm.DB, name string, usd, lbp int64) *models.User {
	t.Helper()
	u := &models.User{Username: name, PasswordHash: "x", BalanceUSD: usd, BalanceLBP: lbp}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func reload(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var u models.User
	if err := db.First(&u, id).Error; err != nil {
		t.Fatal(err)
	}
	return &u
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.BetEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e models.BetEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Events() []models.BetEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.BetEvent(nil), p.events...)
}

func newWagers(t *testing.T, db *gorm.DB, pub services.Publisher) *services.WagerService {
	t.Helper()
	w, err := services.NewWagerService(services.NewLedger(db), nil, pub, 4, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	return w
}
