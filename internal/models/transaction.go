package models

import "time"

type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeWithdraw TransactionType = "withdraw"
)

// BetHistory is written once per resolved wager and never updated.
type BetHistory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	AgentID   *uint     `gorm:"index" json:"agentId,omitempty"`
	AgentName string    `gorm:"size:64" json:"agentName,omitempty"`
	Username  string    `gorm:"size:64;not null" json:"username"`
	Game      GameType  `gorm:"index;size:32;not null" json:"game"`
	Currency  Currency  `gorm:"size:3;not null" json:"currency"`
	BetAmount int64     `gorm:"not null" json:"-"`
	Payout    int64     `gorm:"not null" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

type BetHistoryView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	AgentName string    `json:"agentName,omitempty"`
	Game      GameType  `json:"game"`
	Currency  Currency  `json:"currency"`
	BetAmount float64   `json:"betAmount"`
	Payout    float64   `json:"payout"`
	CreatedAt time.Time `json:"createdAt"`
}

func (b *BetHistory) View() BetHistoryView {
	return BetHistoryView{
		ID:        b.ID,
		Username:  b.Username,
		AgentName: b.AgentName,
		Game:      b.Game,
		Currency:  b.Currency,
		BetAmount: FromMinor(b.BetAmount, b.Currency),
		Payout:    FromMinor(b.Payout, b.Currency),
		CreatedAt: b.CreatedAt,
	}
}

type SuperAgentTransaction struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	SuperAgentID uint            `gorm:"index;not null" json:"superAgentId"`
	AgentID      uint            `gorm:"index;not null" json:"agentId"`
	Type         TransactionType `gorm:"size:16;not null" json:"type"`
	Currency     Currency        `gorm:"size:3;not null" json:"currency"`
	Amount       int64           `gorm:"not null" json:"-"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type AgentUserTransaction struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	AgentID   uint            `gorm:"index;not null" json:"agentId"`
	UserID    uint            `gorm:"index;not null" json:"userId"`
	Type      TransactionType `gorm:"size:16;not null" json:"type"`
	Currency  Currency        `gorm:"size:3;not null" json:"currency"`
	Amount    int64           `gorm:"not null" json:"-"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Notification with a nil Username is shown to everyone.
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Message   string    `gorm:"size:512;not null" json:"message"`
	Username  *string   `gorm:"index;size:64" json:"username"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// TransferView is the display form of either transfer ledger row.
type TransferView struct {
	ID        uint            `json:"id"`
	From      uint            `json:"from"`
	To        uint            `json:"to"`
	Type      TransactionType `json:"type"`
	Currency  Currency        `json:"currency"`
	Amount    float64         `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (t *SuperAgentTransaction) View() TransferView {
	return TransferView{ID: t.ID, From: t.SuperAgentID, To: t.AgentID, Type: t.Type,
		Currency: t.Currency, Amount: FromMinor(t.Amount, t.Currency), CreatedAt: t.CreatedAt}
}

func (t *AgentUserTransaction) View() TransferView {
	return TransferView{ID: t.ID, From: t.AgentID, To: t.UserID, Type: t.Type,
		Currency: t.Currency, Amount: FromMinor(t.Amount, t.Currency), CreatedAt: t.CreatedAt}
}
