package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeBuy        TransactionType = "BUY"
	TransactionTypeSell       TransactionType = "SELL"
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// TransactionTypes lists every accepted transaction type.
var TransactionTypes = []TransactionType{
	TransactionTypeBuy,
	TransactionTypeSell,
	TransactionTypeDeposit,
	TransactionTypeWithdrawal,
}

// Valid reports whether t is one of the accepted transaction types.
func (t TransactionType) Valid() bool {
	for _, known := range TransactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// MutatesHolding reports whether recording t changes a holding.
func (t TransactionType) MutatesHolding() bool {
	return t == TransactionTypeBuy || t == TransactionTypeSell
}

// Transaction is an immutable, append-only ledger entry.
// Symbol, Quantity and Price are always set for BUY/SELL and optional otherwise.
type Transaction struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	PortfolioID string          `gorm:"not null;index" json:"portfolio_id"`
	HoldingID   *string         `gorm:"index" json:"holding_id"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Symbol      *string         `json:"symbol"`
	Quantity    *float64        `json:"quantity"`
	Price       *float64        `json:"price"`
	TotalAmount float64         `gorm:"not null" json:"total_amount"`
	OccurredAt  time.Time       `gorm:"not null" json:"occurred_at"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
}
