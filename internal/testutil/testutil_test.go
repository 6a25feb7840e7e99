package testutil_test

import (
	"testing"
	"time"

	"folio/internal/errors"
	"folio/internal/models"
	"folio/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"portfolios", "holdings", "transactions", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolation(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestPortfolio(t, first)

	var count int64
	second.Model(&models.Portfolio{}).Count(&count)
	if count != 0 {
		t.Errorf("expected isolated database, found %d portfolios", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	portfolio := testutil.CreateTestPortfolio(t, db)
	if portfolio.ID == "" {
		t.Fatal("portfolio should have an id")
	}

	holding := testutil.CreateTestHolding(t, db, portfolio.ID, "AAPL", 2, 100)
	if holding.Quantity != 2 {
		t.Errorf("expected quantity 2, got %v", holding.Quantity)
	}

	tx := testutil.CreateTestDeposit(t, db, portfolio.ID, 500, time.Now())
	if tx.Type != models.TransactionTypeDeposit {
		t.Errorf("expected DEPOSIT, got %s", tx.Type)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrNotFound, "custom message")
	appErr := testutil.AssertAppError(t, err, "NOT_FOUND")
	if appErr.Message != "custom message" {
		t.Errorf("expected custom message, got %s", appErr.Message)
	}
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
