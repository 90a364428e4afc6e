package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"minigames-backend/internal/models"
)

// Ledger owns every balance mutation. Each operation runs in one database
// transaction and debits with a conditional update so concurrent wagers can
// never drive a balance below zero.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Settlement is the outcome of a ledger write on a user balance.
type Settlement struct {
	History    *models.BetHistory
	BalanceUSD int64
	BalanceLBP int64
}

func (s *Settlement) Balance(c models.Currency) int64 {
	if c == models.CurrencyLBP {
		return s.BalanceLBP
	}
	return s.BalanceUSD
}

func debit(tx *gorm.DB, model any, id uint, c models.Currency, amount int64, notFound error) error {
	col := models.BalanceColumn(c)
	res := tx.Model(model).
		Where("id = ? AND "+col+" >= ?", id, amount).
		Update(col, gorm.Expr(col+" - ?", amount))
	if res.Error != nil {
		return fmt.Errorf("failed to debit %s: %w", col, res.Error)
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
			return fmt.Errorf("failed to look up account: %w", err)
		}
		if n == 0 {
			return notFound
		}
		return models.ErrInsufficientBalance
	}
	return nil
}

func credit(tx *gorm.DB, model any, id uint, c models.Currency, amount int64, notFound error) error {
	col := models.BalanceColumn(c)
	res := tx.Model(model).
		Where("id = ?", id).
		Update(col, gorm.Expr(col+" + ?", amount))
	if res.Error != nil {
		return fmt.Errorf("failed to credit %s: %w", col, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}

func loadUser(tx *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := tx.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (l *Ledger) User(ctx context.Context, id uint) (*models.User, error) {
	return loadUser(l.db.WithContext(ctx), id)
}

// PlaceWager debits bet, credits payout and records the bet in one transaction.
func (l *Ledger) PlaceWager(ctx context.Context, userID uint, game models.GameType, c models.Currency, bet, payout int64) (*Settlement, error) {
	if bet <= 0 || payout < 0 {
		return nil, models.ErrInvalidBet
	}
	var out *Settlement
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := debit(tx, &models.User{}, userID, c, bet, models.ErrUserNotFound); err != nil {
			return err
		}
		s, err := settle(tx, userID, game, c, bet, payout)
		if err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SettleWager credits the payout of a wager whose stake was debited earlier
// and writes its history row.
func (l *Ledger) SettleWager(ctx context.Context, userID uint, game models.GameType, c models.Currency, staked, payout int64) (*Settlement, error) {
	if staked <= 0 || payout < 0 {
		return nil, models.ErrInvalidBet
	}
	var out *Settlement
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := settle(tx, userID, game, c, staked, payout)
		if err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func settle(tx *gorm.DB, userID uint, game models.GameType, c models.Currency, staked, payout int64) (*Settlement, error) {
	if payout > 0 {
		if err := credit(tx, &models.User{}, userID, c, payout, models.ErrUserNotFound); err != nil {
			return nil, err
		}
	}
	user, err := loadUser(tx, userID)
	if err != nil {
		return nil, err
	}
	history := &models.BetHistory{
		UserID:    user.ID,
		AgentID:   user.AgentID,
		AgentName: user.AgentName,
		Username:  user.Username,
		Game:      game,
		Currency:  c,
		BetAmount: staked,
		Payout:    payout,
		CreatedAt: time.Now(),
	}
	if err := tx.Create(history).Error; err != nil {
		return nil, fmt.Errorf("failed to record bet: %w", err)
	}
	return &Settlement{History: history, BalanceUSD: user.BalanceUSD, BalanceLBP: user.BalanceLBP}, nil
}

// Debit takes amount from a user balance without recording a bet. It is the
// opening move of multi-step games.
func (l *Ledger) Debit(ctx context.Context, userID uint, c models.Currency, amount int64) (*models.User, error) {
	if amount <= 0 {
		return nil, models.ErrInvalidBet
	}
	var user *models.User
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := debit(tx, &models.User{}, userID, c, amount, models.ErrUserNotFound); err != nil {
			return err
		}
		u, err := loadUser(tx, userID)
		user = u
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Refund returns a stake taken by Debit.
func (l *Ledger) Refund(ctx context.Context, userID uint, c models.Currency, amount int64) (*models.User, error) {
	if amount <= 0 {
		return nil, models.ErrInvalidBet
	}
	var user *models.User
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := credit(tx, &models.User{}, userID, c, amount, models.ErrUserNotFound); err != nil {
			return err
		}
		u, err := loadUser(tx, userID)
		user = u
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// BetFilter narrows history queries. Zero fields match everything.
type BetFilter struct {
	UserID   uint
	AgentID  uint
	Username string
	Game     models.GameType
	Limit    int
}

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

func clampLimit(n int) int {
	if n <= 0 {
		return defaultHistoryLimit
	}
	if n > maxHistoryLimit {
		return maxHistoryLimit
	}
	return n
}

func (l *Ledger) Bets(ctx context.Context, f BetFilter) ([]models.BetHistory, error) {
	q := l.db.WithContext(ctx).Model(&models.BetHistory{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.AgentID != 0 {
		q = q.Where("agent_id = ?", f.AgentID)
	}
	if f.Username != "" {
		q = q.Where("username = ?", f.Username)
	}
	if f.Game != "" {
		q = q.Where("game = ?", f.Game)
	}
	var bets []models.BetHistory
	if err := q.Order("id DESC").Limit(clampLimit(f.Limit)).Find(&bets).Error; err != nil {
		return nil, fmt.Errorf("failed to query bets: %w", err)
	}
	return bets, nil
}

// GameTotals aggregates resolved wagers for one game and currency.
type GameTotals struct {
	Game     models.GameType
	Currency models.Currency
	Bets     int64
	Staked   int64
	Paid     int64
}

func (l *Ledger) Totals(ctx context.Context, since time.Time) ([]GameTotals, error) {
	var rows []GameTotals
	err := l.db.WithContext(ctx).Model(&models.BetHistory{}).
		Select("game, currency, COUNT(*) AS bets, SUM(bet_amount) AS staked, SUM(payout) AS paid").
		Where("created_at >= ?", since).
		Group("game, currency").
		Order("game, currency").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bets: %w", err)
	}
	return rows, nil
}
