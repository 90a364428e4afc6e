package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"minigames-backend/internal/database"
	"minigames-backend/internal/handlers"
	"minigames-backend/internal/logger"
	"minigames-backend/internal/models"
	"minigames-backend/internal/pathdata"
	"minigames-backend/internal/rng"
	"minigames-backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
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

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	store  *services.RedisService
	jwt    *services.JWTService
	pub    *recordingPublisher
	hub    *handlers.Hub
	router *gin.Engine
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := services.NewRedisServiceWithClient(client)

	dir := t.TempDir()
	table := []byte(`{"0":[{"x":[0,1,2]}],"1":[{"x":[3,4,5]}]}`)
	if err := os.WriteFile(filepath.Join(dir, "plinko_paths.json"), table, 0o644); err != nil {
		t.Fatal(err)
	}
	paths, err := pathdata.Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	log := logger.Discard()
	pub := &recordingPublisher{}
	ledger := services.NewLedger(db)
	wagers, err := services.NewWagerService(ledger, nil, pub, 4, log)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { wagers.Close(time.Second) })

	hub := handlers.NewHub(log)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	jwt := services.NewJWTService("test-secret", time.Hour)
	env := &testEnv{t: t, db: db, store: store, jwt: jwt, pub: pub, hub: hub}
	env.router = handlers.NewRouter(handlers.Deps{
		Accounts: services.NewAccountService(db, log),
		Ledger:   ledger,
		Wagers:   wagers,
		Sessions: services.NewSessionGames(wagers, ledger, store, time.Hour, log),
		Redis:    store,
		JWT:      jwt,
		Paths:    paths,
		Hub:      hub,
		Source:   rng.Seeded(42),
		Log:      log,
	})
	return env
}

// user creates a player funded with cents and returns it with a token.
func (e *testEnv) user(name string, cents int64) (*models.User, string) {
	e.t.Helper()
	u := &models.User{Username: name, PasswordHash: "x", BalanceUSD: cents}
	if err := e.db.Create(u).Error; err != nil {
		e.t.Fatalf("create user: %v", err)
	}
	return u, e.token(models.RoleUser, u.ID, name)
}

func (e *testEnv) token(role models.Role, id uint, username string) string {
	e.t.Helper()
	session := &models.UserSession{
		SessionID: models.GenerateSessionID(),
		AccountID: id,
		Role:      role,
		Username:  username,
		CreatedAt: time.Now(),
	}
	if err := e.store.StoreUserSession(context.Background(), session, time.Hour); err != nil {
		e.t.Fatal(err)
	}
	token, err := e.jwt.GenerateToken(session)
	if err != nil {
		e.t.Fatal(err)
	}
	return token
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) balance(id uint) int64 {
	e.t.Helper()
	var u models.User
	if err := e.db.First(&u, id).Error; err != nil {
		e.t.Fatal(err)
	}
	return u.BalanceUSD
}

func (e *testEnv) bets(userID uint) []models.BetHistory {
	e.t.Helper()
	var rows []models.BetHistory
	if err := e.db.Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		e.t.Fatal(err)
	}
	return rows
}

func (e *testEnv) gameState(id string, v any) {
	e.t.Helper()
	state, err := e.store.GetGameState(context.Background(), id)
	if err != nil {
		e.t.Fatal(err)
	}
	if err := state.Decode(v); err != nil {
		e.t.Fatal(err)
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body, err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d; body %s", w.Code, status, w.Body)
	}
}

func usd(x float64) int64 { return models.ToMinor(x, models.CurrencyUSD) }

// eventually polls cond for up to a second.
func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
