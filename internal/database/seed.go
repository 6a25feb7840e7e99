package database

import (
	"fmt"
	"time"

	"folio/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DemoPortfolioID identifies the portfolio created by Seed.
const DemoPortfolioID = "portfolio-demo-001"

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func ptr[T any](v T) *T { return &v }

// DemoFixture is a small, self-consistent ledger: a cash deposit followed by
// one AAPL purchase that produced the AAPL holding.
type DemoFixture struct {
	Portfolio    models.Portfolio
	Holdings     []models.Holding
	Transactions []models.Transaction
}

// NewDemoFixture returns a fresh copy of the demo data.
func NewDemoFixture() DemoFixture {
	return DemoFixture{
		Portfolio: models.Portfolio{
			ID:           DemoPortfolioID,
			Name:         "Demo Growth Portfolio",
			BaseCurrency: "USD",
			CreatedAt:    mustTime("2024-01-15T09:30:00Z"),
		},
		Holdings: []models.Holding{
			{
				ID:          "holding-aapl-001",
				PortfolioID: DemoPortfolioID,
				Symbol:      "AAPL",
				Quantity:    10,
				AverageCost: 150.25,
				CreatedAt:   mustTime("2024-01-15T09:35:00Z"),
			},
		},
		Transactions: []models.Transaction{
			{
				ID:          "txn-deposit-001",
				PortfolioID: DemoPortfolioID,
				Type:        models.TransactionTypeDeposit,
				TotalAmount: 5000,
				OccurredAt:  mustTime("2024-01-15T09:31:00Z"),
				CreatedAt:   mustTime("2024-01-15T09:31:00Z"),
			},
			{
				ID:          "txn-buy-aapl-001",
				PortfolioID: DemoPortfolioID,
				HoldingID:   ptr("holding-aapl-001"),
				Type:        models.TransactionTypeBuy,
				Symbol:      ptr("AAPL"),
				Quantity:    ptr(10.0),
				Price:       ptr(150.25),
				TotalAmount: 1502.5,
				OccurredAt:  mustTime("2024-01-15T09:36:00Z"),
				CreatedAt:   mustTime("2024-01-15T09:36:00Z"),
			},
		},
	}
}

// Seed upserts the demo fixture. Running it twice leaves the same rows.
func Seed(db *gorm.DB) error {
	fixture := NewDemoFixture()
	upsert := clause.OnConflict{UpdateAll: true}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(upsert).Create(&fixture.Portfolio).Error; err != nil {
			return fmt.Errorf("seed portfolio: %w", err)
		}
		if err := tx.Clauses(upsert).Create(&fixture.Holdings).Error; err != nil {
			return fmt.Errorf("seed holdings: %w", err)
		}
		if err := tx.Clauses(upsert).Create(&fixture.Transactions).Error; err != nil {
			return fmt.Errorf("seed transactions: %w", err)
		}
		return nil
	})
}
