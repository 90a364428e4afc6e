package handlers_test

import (
	"net/http"
	"slices"
	"testing"

	"minigames-backend/internal/games/tiles"
	"minigames-backend/internal/models"
)

func startMines(t *testing.T, env *testEnv, token string, mines int) models.MinesStartResponse {
	t.Helper()
	w := env.do(http.MethodPost, "/games/mines/start", token, map[string]any{
		"amount": 1, "currency": "USD", "mineCount": mines,
	})
	expectStatus(t, w, http.StatusOK)
	return decode[models.MinesStartResponse](t, w)
}

func safeTile(m *tiles.Mines) int {
	for i, mine := range m.Mines {
		if !mine && !slices.Contains(m.Revealed, i) {
			return i
		}
	}
	return -1
}

func mineTile(m *tiles.Mines) int {
	return m.MinePositions()[0]
}

func TestMinesRevealAndCashout(t *testing.T) {
	env := newEnv(t)
	u, token := env.user("alice", 1000)

	start := startMines(t, env, token, 3)
	if !start.Success || start.Mines != 3 || start.GameID == "" || start.Balance != 9 {
		t.Fatalf("start = %+v", start)
	}
	if got := env.balance(u.ID); got != 900 {
		t.Fatalf("balance after start = %d, want 900", got)
	}

	w := env.do(http.MethodPost, "/games/mines/start", token, map[string]any{"amount": 1, "currency": "USD", "mineCount": 3})
	expectStatus(t, w, http.StatusConflict)

	var m tiles.Mines
	env.gameState(start.GameID, &m)
	idx := safeTile(&m)

	w = env.do(http.MethodPost, "/games/mines/reveal", token, map[string]any{"gameId": start.GameID, "index": idx})
	expectStatus(t, w, http.StatusOK)
	reveal := decode[models.MinesRevealResponse](t, w)
	if reveal.MineHit || reveal.Index != idx || reveal.RevealedCount != 1 || reveal.GameOver {
		t.Fatalf("reveal = %+v", reveal)
	}
	if reveal.Multiplier <= 1 || reveal.AllMinePositions != nil || reveal.Balance != nil {
		t.Fatalf("reveal leaked or wrong multiplier: %s", w.Body)
	}

	w = env.do(http.MethodPost, "/games/mines/reveal", token, map[string]any{"gameId": start.GameID, "index": idx})
	expectStatus(t, w, http.StatusBadRequest)

	w = env.do(http.MethodGet, "/games/mines/state", token, nil)
	expectStatus(t, w, http.StatusOK)
	state := decode[map[string]any](t, w)
	if state["gameId"] != start.GameID {
		t.Errorf("state = %v", state)
	}
	if _, leaked := state["mines"].([]any); leaked {
		t.Errorf("state leaked mine layout: %v", state)
	}

	w = env.do(http.MethodPost, "/games/mines/cashout", token, map[string]any{"gameId": start.GameID})
	expectStatus(t, w, http.StatusOK)
	cash := decode[struct {
		GameOver         bool               `json:"gameOver"`
		AllMinePositions []int              `json:"allMinePositions"`
		Wager            models.WagerResult `json:"wager"`
	}](t, w)
	payout := models.PayoutMinor(100, reveal.Multiplier)
	if !cash.GameOver || len(cash.AllMinePositions) != 3 || usd(cash.Wager.Payout) != payout {
		t.Fatalf("cashout = %s", w.Body)
	}
	if got := env.balance(u.ID); got != 900+payout {
		t.Errorf("balance = %d, want %d", got, 900+payout)
	}

	bets := env.bets(u.ID)
	if len(bets) != 1 || bets[0].BetAmount != 100 || bets[0].Payout != payout {
		t.Fatalf("history = %+v", bets)
	}

	w = env.do(http.MethodPost, "/games/mines/cashout", token, map[string]any{"gameId": start.GameID})
	expectStatus(t, w, http.StatusNotFound)
	if n := len(env.bets(u.ID)); n != 1 {
		t.Errorf("second cashout wrote history, rows = %d", n)
	}
}

func TestMinesHitMine(t *testing.T) {
	env := newEnv(t)
	u, token := env.user("bob", 1000)

	start := startMines(t, env, token, 5)
	var m tiles.Mines
	env.gameState(start.GameID, &m)
	idx := mineTile(&m)

	w := env.do(http.MethodPost, "/games/mines/reveal", token, map[string]any{"gameId": start.GameID, "index": idx})
	expectStatus(t, w, http.StatusOK)
	reveal := decode[models.MinesRevealResponse](t, w)
	if !reveal.MineHit || !reveal.GameOver || len(reveal.AllMinePositions) != 5 {
		t.Fatalf("reveal = %s", w.Body)
	}
	if reveal.Balance == nil || *reveal.Balance != 9 {
		t.Fatalf("balance = %v", reveal.Balance)
	}
	if got := env.balance(u.ID); got != 900 {
		t.Errorf("balance = %d, want 900", got)
	}
	bets := env.bets(u.ID)
	if len(bets) != 1 || bets[0].Payout != 0 {
		t.Errorf("history = %+v", bets)
	}

	// a new game may start once the last one is over
	startMines(t, env, token, 5)
}

func TestMinesOwnership(t *testing.T) {
	env := newEnv(t)
	_, alice := env.user("alice", 1000)
	_, mallory := env.user("mallory", 1000)

	start := startMines(t, env, alice, 3)
	w := env.do(http.MethodPost, "/games/mines/reveal", mallory, map[string]any{"gameId": start.GameID, "index": 0})
	expectStatus(t, w, http.StatusForbidden)

	w = env.do(http.MethodPost, "/games/tower/step", alice, map[string]any{"gameId": start.GameID, "tile": 0})
	expectStatus(t, w, http.StatusNotFound)

	w = env.do(http.MethodPost, "/games/mines/reveal", alice, map[string]any{"gameId": "game_missing", "index": 0})
	expectStatus(t, w, http.StatusNotFound)
}

func TestMinesStartInsufficientBalance(t *testing.T) {
	env := newEnv(t)
	u, token := env.user("carol", 50)

	w := env.do(http.MethodPost, "/games/mines/start", token, map[string]any{"amount": 1, "currency": "USD", "mineCount": 3})
	expectStatus(t, w, http.StatusBadRequest)

	w = env.do(http.MethodGet, "/games/active", token, nil)
	expectStatus(t, w, http.StatusOK)
	active := decode[map[string]map[string]string](t, w)
	if len(active["active"]) != 0 {
		t.Errorf("active = %v", active)
	}
	if got := env.balance(u.ID); got != 50 {
		t.Errorf("balance = %d", got)
	}
}

func TestFlipStreak(t *testing.T) {
	env := newEnv(t)
	u, token := env.user("dave", 1000)

	w := env.do(http.MethodPost, "/games/flip/start", token, map[string]any{"amount": 1, "currency": "USD"})
	expectStatus(t, w, http.StatusOK)
	id := decode[map[string]any](t, w)["gameId"].(string)

	w = env.do(http.MethodPost, "/games/flip/cashout", token, map[string]any{"gameId": id})
	expectStatus(t, w, http.StatusBadRequest)

	for {
		w = env.do(http.MethodPost, "/games/flip/play", token, map[string]any{"gameId": id, "choice": "heads"})
		expectStatus(t, w, http.StatusOK)
		resp := decode[map[string]any](t, w)
		if resp["gameOver"] == true {
			break
		}
		if resp["wins"].(float64) >= 2 {
			w = env.do(http.MethodPost, "/games/flip/cashout", token, map[string]any{"gameId": id})
			expectStatus(t, w, http.StatusOK)
			break
		}
	}

	bets := env.bets(u.ID)
	if len(bets) != 1 || bets[0].Game != models.GameTypeFlip {
		t.Fatalf("history = %+v", bets)
	}
	if got := env.balance(u.ID); got != 900+bets[0].Payout {
		t.Errorf("balance = %d, want %d", got, 900+bets[0].Payout)
	}
	if p := bets[0].Payout; p != 0 && p != models.PayoutMinor(100, 3.8416) {
		t.Errorf("payout = %d", p)
	}
}

func TestTowerAndChicken(t *testing.T) {
	env := newEnv(t)
	u, token := env.user("erin", 1000)

	w := env.do(http.MethodPost, "/games/tower/start", token, map[string]any{"amount": 1, "currency": "USD", "difficulty": "easy"})
	expectStatus(t, w, http.StatusOK)
	tower := decode[map[string]any](t, w)["gameId"].(string)

	var tw tiles.Tower
	env.gameState(tower, &tw)
	safe := slices.Index(tw.Bombs[0], false)
	w = env.do(http.MethodPost, "/games/tower/step", token, map[string]any{"gameId": tower, "tile": safe})
	expectStatus(t, w, http.StatusOK)
	if decode[map[string]any](t, w)["gameOver"] != false {
		t.Fatalf("step = %s", w.Body)
	}
	w = env.do(http.MethodPost, "/games/tower/cashout", token, map[string]any{"gameId": tower})
	expectStatus(t, w, http.StatusOK)

	w = env.do(http.MethodPost, "/games/chicken/start", token, map[string]any{"amount": 1, "currency": "USD", "difficulty": "daredevil"})
	expectStatus(t, w, http.StatusOK)
	chicken := decode[map[string]any](t, w)["gameId"].(string)

	var ch tiles.Chicken
	env.gameState(chicken, &ch)
	hazard := slices.Index(ch.Hazards, true)
	var resp map[string]any
	for lane := 0; resp == nil || resp["gameOver"] != true; lane++ {
		w = env.do(http.MethodPost, "/games/chicken/step", token, map[string]any{"gameId": chicken})
		expectStatus(t, w, http.StatusOK)
		resp = decode[map[string]any](t, w)
		if lane == hazard && resp["gameOver"] != true {
			t.Fatalf("chicken survived hazard lane %d: %s", lane, w.Body)
		}
	}

	bets := env.bets(u.ID)
	if len(bets) != 2 {
		t.Fatalf("history = %+v", bets)
	}
	if hazard < ch.MaxSteps() && bets[1].Payout != 0 {
		t.Errorf("chicken paid %d after a hazard", bets[1].Payout)
	}
	if want := models.PayoutMinor(100, tw.Multipliers[1]); bets[0].Payout != want {
		t.Errorf("tower payout = %d, want %d", bets[0].Payout, want)
	}
	if got := env.balance(u.ID); got != 800+bets[0].Payout+bets[1].Payout {
		t.Errorf("balance = %d", got)
	}
}

// hiloGuess picks the likelier guess that can both win and lose, or skip
// when neither can.
func hiloGuess(game map[string]any) string {
	chances := game["chances"].(map[string]any)
	higher, lower := chances["higher"].(float64), chances["lower"].(float64)
	playable := func(p float64) bool { return p > 0 && p < 1 }
	switch {
	case playable(lower) && (!playable(higher) || lower > higher):
		return "lower"
	case playable(higher):
		return "higher"
	}
	return "skip"
}

func TestSnakesRollAndCashout(t *testing.T) {
	env := newEnv(t)
	u, token := env.user("sam", 1000)

	w := env.do(http.MethodPost, "/games/snakes/start", token, map[string]any{"amount": 1, "currency": "USD", "difficulty": "volcano"})
	expectStatus(t, w, http.StatusBadRequest)

	w = env.do(http.MethodPost, "/games/snakes/start", token, map[string]any{"amount": 1, "currency": "USD", "difficulty": "easy"})
	expectStatus(t, w, http.StatusOK)
	start := decode[map[string]any](t, w)
	id := start["gameId"].(string)
	if _, leaked := start["snakes"]; leaked {
		t.Fatal("start leaked the snake cells")
	}

	var sn tiles.Snakes
	env.gameState(id, &sn)
	snake := sn.SnakeCells()[0]

	w = env.do(http.MethodPost, "/games/snakes/roll", token, map[string]any{"gameId": id})
	expectStatus(t, w, http.StatusOK)
	resp := decode[struct {
		Move     tiles.Move `json:"move"`
		GameOver bool       `json:"gameOver"`
		Snakes   []int      `json:"snakes"`
	}](t, w)
	if resp.Move.Snake != (resp.Move.To == snake) || resp.GameOver != resp.Move.Snake {
		t.Fatalf("roll = %s", w.Body)
	}
	if !resp.GameOver {
		w = env.do(http.MethodPost, "/games/snakes/cashout", token, map[string]any{"gameId": id})
		expectStatus(t, w, http.StatusOK)
		if cells := decode[map[string]any](t, w)["snakes"].([]any); len(cells) != 1 || cells[0] != float64(snake) {
			t.Errorf("cashout snakes = %v", cells)
		}
	} else if len(resp.Snakes) != 1 {
		t.Errorf("bust did not reveal snakes: %s", w.Body)
	}

	bets := env.bets(u.ID)
	if len(bets) != 1 || bets[0].Game != models.GameTypeSnakes {
		t.Fatalf("history = %+v", bets)
	}
	if !resp.GameOver && bets[0].Payout != models.PayoutMinor(100, sn.Multipliers[1]) {
		t.Errorf("payout = %d", bets[0].Payout)
	}
	if got := env.balance(u.ID); got != 900+bets[0].Payout {
		t.Errorf("balance = %d", got)
	}
}

func TestHiLoGuessAndCashout(t *testing.T) {
	env := newEnv(t)
	u, token := env.user("frank", 1000)

	w := env.do(http.MethodPost, "/games/hilo/start", token, map[string]any{"amount": 1, "currency": "USD"})
	expectStatus(t, w, http.StatusOK)
	resp := decode[map[string]any](t, w)
	id := resp["gameId"].(string)
	if _, leaked := resp["game"].(map[string]any)["deck"]; leaked {
		t.Fatal("start leaked the deck")
	}

	w = env.do(http.MethodPost, "/games/hilo/guess", token, map[string]any{"gameId": id, "choice": "sideways"})
	expectStatus(t, w, http.StatusBadRequest)

	for i := 0; i < 3; i++ {
		w = env.do(http.MethodPost, "/games/hilo/guess", token, map[string]any{"gameId": id, "choice": "skip"})
		expectStatus(t, w, http.StatusOK)
		resp = decode[map[string]any](t, w)
	}
	if skips := resp["game"].(map[string]any)["skips"].(float64); skips != 3 {
		t.Errorf("skips = %v", skips)
	}

	w = env.do(http.MethodPost, "/games/hilo/cashout", token, map[string]any{"gameId": id})
	expectStatus(t, w, http.StatusBadRequest)

	choice := hiloGuess(resp["game"].(map[string]any))
	for choice == "skip" {
		w = env.do(http.MethodPost, "/games/hilo/guess", token, map[string]any{"gameId": id, "choice": "skip"})
		expectStatus(t, w, http.StatusOK)
		resp = decode[map[string]any](t, w)
		choice = hiloGuess(resp["game"].(map[string]any))
	}
	w = env.do(http.MethodPost, "/games/hilo/guess", token, map[string]any{"gameId": id, "choice": choice})
	expectStatus(t, w, http.StatusOK)
	if decode[map[string]any](t, w)["gameOver"] != true {
		w = env.do(http.MethodPost, "/games/hilo/cashout", token, map[string]any{"gameId": id})
		expectStatus(t, w, http.StatusOK)
	}

	bets := env.bets(u.ID)
	if len(bets) != 1 || bets[0].Game != models.GameTypeHiLo {
		t.Fatalf("history = %+v", bets)
	}
	if got := env.balance(u.ID); got != 900+bets[0].Payout {
		t.Errorf("balance = %d", got)
	}
}

func TestBlackjackSettles(t *testing.T) {
	env := newEnv(t)
	u, token := env.user("grace", 10000)

	for round := 0; round < 5; round++ {
		w := env.do(http.MethodPost, "/games/blackjack/deal", token, map[string]any{"amount": 1, "currency": "USD"})
		expectStatus(t, w, http.StatusOK)
		resp := decode[map[string]any](t, w)
		if resp["gameOver"] != true {
			id := resp["gameId"].(string)
			w = env.do(http.MethodPost, "/games/blackjack/stand", token, map[string]any{"gameId": id})
			expectStatus(t, w, http.StatusOK)
			resp = decode[map[string]any](t, w)
		}
		if resp["gameOver"] != true || resp["wager"] == nil {
			t.Fatalf("round %d did not settle: %v", round, resp)
		}
	}

	bets := env.bets(u.ID)
	if len(bets) != 5 {
		t.Fatalf("history rows = %d, want 5", len(bets))
	}
	want := int64(10000)
	for _, b := range bets {
		if b.BetAmount != 100 {
			t.Errorf("stake = %d, want 100", b.BetAmount)
		}
		switch b.Payout {
		case 0, 100, 200, 250:
		default:
			t.Errorf("payout = %d", b.Payout)
		}
		want += b.Payout - b.BetAmount
	}
	if got := env.balance(u.ID); got != want {
		t.Errorf("balance = %d, want %d", got, want)
	}
}

func TestBlackjackDoubleChargesAnotherStake(t *testing.T) {
	env := newEnv(t)
	u, token := env.user("heidi", 10000)

	var id string
	for id == "" {
		w := env.do(http.MethodPost, "/games/blackjack/deal", token, map[string]any{"amount": 1, "currency": "USD"})
		expectStatus(t, w, http.StatusOK)
		if resp := decode[map[string]any](t, w); resp["gameOver"] != true {
			id = resp["gameId"].(string)
		}
	}
	before := len(env.bets(u.ID))

	w := env.do(http.MethodPost, "/games/blackjack/double", token, map[string]any{"gameId": id})
	expectStatus(t, w, http.StatusOK)
	if decode[map[string]any](t, w)["gameOver"] != true {
		t.Fatalf("double did not finish the hand: %s", w.Body)
	}

	bets := env.bets(u.ID)
	if len(bets) != before+1 {
		t.Fatalf("history rows = %d", len(bets))
	}
	last := bets[len(bets)-1]
	if last.BetAmount != 200 {
		t.Errorf("doubled stake = %d, want 200", last.BetAmount)
	}
	switch last.Payout {
	case 0, 200, 400:
	default:
		t.Errorf("payout = %d", last.Payout)
	}
	want := int64(10000)
	for _, b := range bets {
		want += b.Payout - b.BetAmount
	}
	if got := env.balance(u.ID); got != want {
		t.Errorf("balance = %d, want %d", got, want)
	}
}

func TestVideoPokerDealDraw(t *testing.T) {
	env := newEnv(t)
	u, token := env.user("ivan", 1000)

	w := env.do(http.MethodPost, "/games/videopoker/deal", token, map[string]any{"amount": 1, "currency": "USD"})
	expectStatus(t, w, http.StatusOK)
	resp := decode[map[string]any](t, w)
	if _, leaked := resp["deck"]; leaked {
		t.Fatal("deal leaked the deck")
	}
	if hand := resp["hand"].([]any); len(hand) != 5 {
		t.Fatalf("hand = %v", hand)
	}
	id := resp["gameId"].(string)

	w = env.do(http.MethodPost, "/games/videopoker/draw", token, map[string]any{"gameId": id, "holds": []int{0, 7}})
	expectStatus(t, w, http.StatusBadRequest)

	w = env.do(http.MethodPost, "/games/videopoker/draw", token, map[string]any{"gameId": id, "holds": []int{0, 1}})
	expectStatus(t, w, http.StatusOK)
	if decode[map[string]any](t, w)["gameOver"] != true {
		t.Fatalf("draw = %s", w.Body)
	}

	bets := env.bets(u.ID)
	if len(bets) != 1 {
		t.Fatalf("history rows = %d", len(bets))
	}
	if got := env.balance(u.ID); got != 900+bets[0].Payout {
		t.Errorf("balance = %d", got)
	}
}
