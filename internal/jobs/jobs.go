package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"minigames-backend/internal/models"
	"minigames-backend/internal/services"
)

const (
	PurgeSchedule   = "@every 10m"
	SummarySchedule = "@hourly"
	jobTimeout      = time.Minute
)

// Store is the part of the ledger the scheduled jobs touch.
type Store interface {
	PurgeNotifications(ctx context.Context, now time.Time) (int64, error)
	Totals(ctx context.Context, since time.Time) ([]services.GameTotals, error)
}

type Scheduler struct {
	cron  *cron.Cron
	store Store
	log   *logrus.Logger
	now   func() time.Time
}

func New(store Store, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:  cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		store: store,
		log:   log,
		now:   time.Now,
	}
	if _, err := s.cron.AddFunc(PurgeSchedule, s.PurgeNotifications); err != nil {
		return nil, fmt.Errorf("failed to schedule purge: %w", err)
	}
	if _, err := s.cron.AddFunc(SummarySchedule, s.Summary); err != nil {
		return nil, fmt.Errorf("failed to schedule summary: %w", err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.WithField("jobs", len(s.cron.Entries())).Info("scheduler started")
}

// Stop waits for running jobs to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) PurgeNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.store.PurgeNotifications(ctx, s.now())
	if err != nil {
		s.log.WithError(err).Error("notification purge failed")
		return
	}
	if n > 0 {
		s.log.WithField("deleted", n).Info("purged expired notifications")
	}
}

// Summary logs the last hour of wagers per game and currency.
func (s *Scheduler) Summary() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	totals, err := s.store.Totals(ctx, s.now().Add(-time.Hour))
	if err != nil {
		s.log.WithError(err).Error("wager summary failed")
		return
	}
	for _, t := range totals {
		fields := logrus.Fields{
			"game":     t.Game,
			"currency": t.Currency,
			"bets":     t.Bets,
			"staked":   models.FromMinor(t.Staked, t.Currency),
			"paid":     models.FromMinor(t.Paid, t.Currency),
		}
		if t.Staked > 0 {
			fields["rtp"] = float64(t.Paid) / float64(t.Staked)
		}
		s.log.WithFields(fields).Info("hourly wager summary")
	}
}
