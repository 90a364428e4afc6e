package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"minigames-backend/internal/models"
	"minigames-backend/internal/services"
)

type fakeStore struct {
	purgedAt time.Time
	since    time.Time
	totals   []services.GameTotals
	err      error
}

func (f *fakeStore) PurgeNotifications(_ context.Context, now time.Time) (int64, error) {
	f.purgedAt = now
	return 3, f.err
}

func (f *fakeStore) Totals(_ context.Context, since time.Time) ([]services.GameTotals, error) {
	f.since = since
	return f.totals, f.err
}

func newTestScheduler(t *testing.T, store Store) (*Scheduler, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(&buf)

	s, err := New(store, log)
	if err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC) }
	return s, &buf
}

func TestSchedulesBothJobs(t *testing.T) {
	s, _ := newTestScheduler(t, &fakeStore{})
	if n := len(s.cron.Entries()); n != 2 {
		t.Errorf("entries = %d, want 2", n)
	}
	s.Start()
	s.Stop()
}

func TestPurgeNotifications(t *testing.T) {
	store := &fakeStore{}
	s, buf := newTestScheduler(t, store)

	s.PurgeNotifications()
	if !store.purgedAt.Equal(s.now()) {
		t.Errorf("purged at %v", store.purgedAt)
	}
	if !strings.Contains(buf.String(), `"deleted":3`) {
		t.Errorf("log = %s", buf.String())
	}

	store.err = errors.New("db down")
	buf.Reset()
	s.PurgeNotifications()
	if !strings.Contains(buf.String(), "notification purge failed") {
		t.Errorf("failure not logged: %s", buf.String())
	}
}

func TestSummary(t *testing.T) {
	store := &fakeStore{totals: []services.GameTotals{
		{Game: models.GameTypeDice, Currency: models.CurrencyUSD, Bets: 4, Staked: 1000, Paid: 990},
	}}
	s, buf := newTestScheduler(t, store)

	s.Summary()
	if want := s.now().Add(-time.Hour); !store.since.Equal(want) {
		t.Errorf("since = %v, want %v", store.since, want)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line: %v (%s)", err, buf.String())
	}
	if line["game"] != "dice" || line["staked"] != 10.0 || line["paid"] != 9.9 || line["rtp"] != 0.99 {
		t.Errorf("summary line = %v", line)
	}
}
