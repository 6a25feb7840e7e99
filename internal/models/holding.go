package models

import "time"

// Holding is the derived position in one symbol within a portfolio. It is
// maintained by BUY/SELL transactions and never deleted directly.
type Holding struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	PortfolioID string    `gorm:"not null;index" json:"portfolio_id"`
	Symbol      string    `gorm:"not null" json:"symbol"`
	Quantity    float64   `gorm:"not null" json:"quantity"`
	AverageCost float64   `gorm:"not null" json:"average_cost"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
