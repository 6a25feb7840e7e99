package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"folio/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestPortfolio creates a USD portfolio with a unique id.
func CreateTestPortfolio(t *testing.T, db *gorm.DB) *models.Portfolio {
	t.Helper()

	n := nextID()
	portfolio := &models.Portfolio{
		ID:           fmt.Sprintf("portfolio-%d", n),
		Name:         fmt.Sprintf("Test Portfolio %d", n),
		BaseCurrency: "USD",
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.Create(portfolio).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return portfolio
}

// CreateTestHolding inserts a holding directly, bypassing the transaction path.
func CreateTestHolding(t *testing.T, db *gorm.DB, portfolioID, symbol string, quantity, averageCost float64) *models.Holding {
	t.Helper()

	holding := &models.Holding{
		ID:          fmt.Sprintf("holding-%d", nextID()),
		PortfolioID: portfolioID,
		Symbol:      symbol,
		Quantity:    quantity,
		AverageCost: averageCost,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// CreateTestDeposit records a DEPOSIT transaction of the given amount.
func CreateTestDeposit(t *testing.T, db *gorm.DB, portfolioID string, amount float64, occurredAt time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		ID:          fmt.Sprintf("txn-%d", nextID()),
		PortfolioID: portfolioID,
		Type:        models.TransactionTypeDeposit,
		TotalAmount: amount,
		OccurredAt:  occurredAt.UTC(),
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
