package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"minigames-backend/internal/models"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 64
	minPasswordLen = 6
)

// Account is the role-independent view of a user, agent or super agent.
type Account struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	models.BalanceView
}

type AccountService struct {
	db   *gorm.DB
	log  *logrus.Logger
	cost int
}

func NewAccountService(db *gorm.DB, log *logrus.Logger) *AccountService {
	return &AccountService{db: db, log: log, cost: bcrypt.DefaultCost}
}

func validateCredentials(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return "", fmt.Errorf("%w: username must be %d-%d characters", models.ErrInvalidRequest, minUsernameLen, maxUsernameLen)
	}
	if len(password) < minPasswordLen {
		return "", fmt.Errorf("%w: password must be at least %d characters", models.ErrInvalidRequest, minPasswordLen)
	}
	return username, nil
}

func (s *AccountService) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}

func (s *AccountService) usernameTaken(tx *gorm.DB, model any, username string) error {
	var n int64
	if err := tx.Model(model).Where("username = ?", username).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if n > 0 {
		return models.ErrUsernameTaken
	}
	return nil
}

// Register creates a player account. agent may be nil for self sign-up.
func (s *AccountService) Register(ctx context.Context, username, password string, agent *models.Agent) (*models.User, error) {
	username, err := validateCredentials(username, password)
	if err != nil {
		return nil, err
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Username: username, PasswordHash: hash}
	if agent != nil {
		user.AgentID = &agent.ID
		user.AgentName = agent.Username
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.usernameTaken(tx, &models.User{}, username); err != nil {
			return err
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return user, nil
}

func (s *AccountService) CreateAgent(ctx context.Context, superAgentID uint, username, password string) (*models.Agent, error) {
	username, err := validateCredentials(username, password)
	if err != nil {
		return nil, err
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	agent := &models.Agent{Username: username, PasswordHash: hash, SuperAgentID: superAgentID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.usernameTaken(tx, &models.Agent{}, username); err != nil {
			return err
		}
		return tx.Create(agent).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"agent_id": agent.ID, "super_agent_id": superAgentID}).Info("agent created")
	return agent, nil
}

func (s *AccountService) CreateSuperAgent(ctx context.Context, username, password string) (*models.SuperAgent, error) {
	username, err := validateCredentials(username, password)
	if err != nil {
		return nil, err
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	sa := &models.SuperAgent{Username: username, PasswordHash: hash}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.usernameTaken(tx, &models.SuperAgent{}, username); err != nil {
			return err
		}
		return tx.Create(sa).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.WithField("super_agent_id", sa.ID).Info("super agent created")
	return sa, nil
}

// SeedAdmin makes sure an admin user with the given name exists.
func (s *AccountService) SeedAdmin(ctx context.Context, username, password string) error {
	var existing models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	switch {
	case err == nil:
		if !existing.IsAdmin {
			return s.db.WithContext(ctx).Model(&existing).Update("is_admin", true).Error
		}
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	user, err := s.Register(ctx, username, password, nil)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(user).Update("is_admin", true).Error
}

// Login checks credentials against the table that holds role. Users and
// admins share a table; the stored flag decides which one logged in.
func (s *AccountService) Login(ctx context.Context, role models.Role, username, password string) (*Account, error) {
	var (
		hash string
		acc  *Account
		err  error
	)
	db := s.db.WithContext(ctx)
	switch role {
	case models.RoleUser, models.RoleAdmin, "":
		var u models.User
		err = db.Where("username = ?", username).First(&u).Error
		hash, acc = u.PasswordHash, UserAccount(&u)
	case models.RoleAgent:
		var a models.Agent
		err = db.Where("username = ?", username).First(&a).Error
		hash, acc = a.PasswordHash, AgentAccount(&a)
	case models.RoleSuperAgent:
		var sa models.SuperAgent
		err = db.Where("username = ?", username).First(&sa).Error
		hash, acc = sa.PasswordHash, SuperAgentAccount(&sa)
	default:
		return nil, fmt.Errorf("%w: unknown role %q", models.ErrInvalidRequest, role)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, models.ErrInvalidCredentials
	}
	if role == models.RoleAdmin && acc.Role != models.RoleAdmin {
		return nil, models.ErrInvalidCredentials
	}
	return acc, nil
}

// Lookup loads the account a session points at.
func (s *AccountService) Lookup(ctx context.Context, role models.Role, id uint) (*Account, error) {
	db := s.db.WithContext(ctx)
	var err error
	var acc *Account
	switch role {
	case models.RoleUser, models.RoleAdmin:
		var u models.User
		err = db.First(&u, id).Error
		acc = UserAccount(&u)
	case models.RoleAgent:
		var a models.Agent
		err = db.First(&a, id).Error
		acc = AgentAccount(&a)
	case models.RoleSuperAgent:
		var sa models.SuperAgent
		err = db.First(&sa, id).Error
		acc = SuperAgentAccount(&sa)
	default:
		return nil, models.ErrUnauthorized
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return acc, nil
}

func (s *AccountService) Agent(ctx context.Context, id uint) (*models.Agent, error) {
	var a models.Agent
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load agent: %w", err)
	}
	return &a, nil
}

func UserAccount(u *models.User) *Account {
	return &Account{ID: u.ID, Username: u.Username, Role: u.Role(), BalanceView: models.NewBalanceView(u.BalanceUSD, u.BalanceLBP)}
}

func AgentAccount(a *models.Agent) *Account {
	return &Account{ID: a.ID, Username: a.Username, Role: models.RoleAgent, BalanceView: models.NewBalanceView(a.BalanceUSD, a.BalanceLBP)}
}

func SuperAgentAccount(sa *models.SuperAgent) *Account {
	return &Account{ID: sa.ID, Username: sa.Username, Role: models.RoleSuperAgent, BalanceView: models.NewBalanceView(sa.BalanceUSD, sa.BalanceLBP)}
}
