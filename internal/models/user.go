package models

import "time"

type Role string

const (
	RoleUser       Role = "user"
	RoleAgent      Role = "agent"
	RoleSuperAgent Role = "superagent"
	RoleAdmin      Role = "admin"
)

// User balances are in minor units, see Currency.Scale.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	BalanceUSD   int64     `gorm:"not null;default:0" json:"-"`
	BalanceLBP   int64     `gorm:"not null;default:0" json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"isAdmin"`
	AgentID      *uint     `gorm:"index" json:"agentId,omitempty"`
	AgentName    string    `gorm:"size:64" json:"agentName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) Balance(c Currency) int64 {
	if c == CurrencyLBP {
		return u.BalanceLBP
	}
	return u.BalanceUSD
}

func (u *User) Role() Role {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

type Agent struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	BalanceUSD   int64     `gorm:"not null;default:0" json:"-"`
	BalanceLBP   int64     `gorm:"not null;default:0" json:"-"`
	SuperAgentID uint      `gorm:"index;not null" json:"superAgentId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SuperAgent struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	BalanceUSD   int64     `gorm:"not null;default:0" json:"-"`
	BalanceLBP   int64     `gorm:"not null;default:0" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BalanceView is the display form of a pair of minor-unit balances.
type BalanceView struct {
	BalanceUSD float64 `json:"balanceUSD"`
	BalanceLBP float64 `json:"balanceLBP"`
}

func NewBalanceView(usd, lbp int64) BalanceView {
	return BalanceView{
		BalanceUSD: FromMinor(usd, CurrencyUSD),
		BalanceLBP: FromMinor(lbp, CurrencyLBP),
	}
}

type UserSession struct {
	SessionID    string    `json:"session_id"`
	AccountID    uint      `json:"account_id"`
	Role         Role      `json:"role"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
}
