package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"minigames-backend/internal/models"
)

// AgentDeposit moves amount from an agent to one of its users.
func (l *Ledger) AgentDeposit(ctx context.Context, agentID, userID uint, c models.Currency, amount int64) (*models.AgentUserTransaction, error) {
	return l.agentTransfer(ctx, agentID, userID, c, amount, models.TransactionTypeDeposit)
}

// AgentWithdraw moves amount from a user back to its agent.
func (l *Ledger) AgentWithdraw(ctx context.Context, agentID, userID uint, c models.Currency, amount int64) (*models.AgentUserTransaction, error) {
	return l.agentTransfer(ctx, agentID, userID, c, amount, models.TransactionTypeWithdraw)
}

func (l *Ledger) agentTransfer(ctx context.Context, agentID, userID uint, c models.Currency, amount int64, kind models.TransactionType) (*models.AgentUserTransaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrInvalidRequest)
	}
	row := &models.AgentUserTransaction{AgentID: agentID, UserID: userID, Type: kind, Currency: c, Amount: amount}
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := loadUser(tx, userID)
		if err != nil {
			return err
		}
		if user.AgentID == nil || *user.AgentID != agentID {
			return models.ErrForbidden
		}
		if kind == models.TransactionTypeDeposit {
			err = move(tx, &models.Agent{}, agentID, &models.User{}, userID, c, amount)
		} else {
			err = move(tx, &models.User{}, userID, &models.Agent{}, agentID, c, amount)
		}
		if err != nil {
			return err
		}
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("failed to record transfer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// SuperAgentDeposit moves amount from a super agent to one of its agents.
func (l *Ledger) SuperAgentDeposit(ctx context.Context, superAgentID, agentID uint, c models.Currency, amount int64) (*models.SuperAgentTransaction, error) {
	return l.superAgentTransfer(ctx, superAgentID, agentID, c, amount, models.TransactionTypeDeposit)
}

func (l *Ledger) SuperAgentWithdraw(ctx context.Context, superAgentID, agentID uint, c models.Currency, amount int64) (*models.SuperAgentTransaction, error) {
	return l.superAgentTransfer(ctx, superAgentID, agentID, c, amount, models.TransactionTypeWithdraw)
}

func (l *Ledger) superAgentTransfer(ctx context.Context, superAgentID, agentID uint, c models.Currency, amount int64, kind models.TransactionType) (*models.SuperAgentTransaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrInvalidRequest)
	}
	row := &models.SuperAgentTransaction{SuperAgentID: superAgentID, AgentID: agentID, Type: kind, Currency: c, Amount: amount}
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var agent models.Agent
		if err := tx.First(&agent, agentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrAccountNotFound
			}
			return fmt.Errorf("failed to load agent: %w", err)
		}
		if agent.SuperAgentID != superAgentID {
			return models.ErrForbidden
		}
		var err error
		if kind == models.TransactionTypeDeposit {
			err = move(tx, &models.SuperAgent{}, superAgentID, &models.Agent{}, agentID, c, amount)
		} else {
			err = move(tx, &models.Agent{}, agentID, &models.SuperAgent{}, superAgentID, c, amount)
		}
		if err != nil {
			return err
		}
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("failed to record transfer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// FundSuperAgent credits a super agent from outside the ledger. Only admins
// reach it.
func (l *Ledger) FundSuperAgent(ctx context.Context, superAgentID uint, c models.Currency, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", models.ErrInvalidRequest)
	}
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return credit(tx, &models.SuperAgent{}, superAgentID, c, amount, models.ErrAccountNotFound)
	})
}

func move(tx *gorm.DB, from any, fromID uint, to any, toID uint, c models.Currency, amount int64) error {
	if err := debit(tx, from, fromID, c, amount, notFoundFor(from)); err != nil {
		return err
	}
	return credit(tx, to, toID, c, amount, notFoundFor(to))
}

func notFoundFor(model any) error {
	if _, ok := model.(*models.User); ok {
		return models.ErrUserNotFound
	}
	return models.ErrAccountNotFound
}

func (l *Ledger) AgentTransactions(ctx context.Context, agentID uint, limit int) ([]models.AgentUserTransaction, error) {
	var rows []models.AgentUserTransaction
	err := l.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("id DESC").
		Limit(clampLimit(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query agent transactions: %w", err)
	}
	return rows, nil
}

func (l *Ledger) SuperAgentTransactions(ctx context.Context, superAgentID uint, limit int) ([]models.SuperAgentTransaction, error) {
	var rows []models.SuperAgentTransaction
	err := l.db.WithContext(ctx).
		Where("super_agent_id = ?", superAgentID).
		Order("id DESC").
		Limit(clampLimit(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query super agent transactions: %w", err)
	}
	return rows, nil
}

func (l *Ledger) AgentUsers(ctx context.Context, agentID uint) ([]models.User, error) {
	var users []models.User
	if err := l.db.WithContext(ctx).Where("agent_id = ?", agentID).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to query agent users: %w", err)
	}
	return users, nil
}
