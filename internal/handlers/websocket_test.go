package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"minigames-backend/internal/models"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func TestWebSocketReceivesBets(t *testing.T) {
	env := newEnv(t)
	srv := httptest.NewServer(env.router)
	t.Cleanup(srv.Close)

	a, b := dial(t, srv), dial(t, srv)
	for _, conn := range []*websocket.Conn{a, b} {
		var welcome models.WelcomeEvent
		if err := conn.ReadJSON(&welcome); err != nil {
			t.Fatal(err)
		}
		if welcome.Type != "welcome" {
			t.Fatalf("first message = %+v", welcome)
		}
	}
	eventually(t, func() bool { return env.hub.Clients() == 2 })

	w := env.do(http.MethodGet, "/health", "", nil)
	expectStatus(t, w, http.StatusOK)
	if clients := decode[map[string]any](t, w)["clients"]; clients != float64(2) {
		t.Errorf("health clients = %v", clients)
	}

	env.hub.BroadcastBet(models.BetEvent{
		Type:      "bet",
		Username:  "alice",
		Game:      models.GameTypeDice,
		Currency:  models.CurrencyUSD,
		BetAmount: 1,
		Payout:    1.98,
		Timestamp: time.Now(),
	})

	for _, conn := range []*websocket.Conn{a, b} {
		var ev models.BetEvent
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatal(err)
		}
		if ev.Type != "bet" || ev.Username != "alice" || ev.Game != models.GameTypeDice || ev.Payout != 1.98 {
			t.Errorf("event = %+v", ev)
		}
	}

	a.Close()
	eventually(t, func() bool { return env.hub.Clients() == 1 })
}
