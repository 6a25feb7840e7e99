package services

import (
	"testing"

	"folio/internal/models"
	"folio/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	svc.Log(AuditCreatePortfolio, "portfolio", "p1", "127.0.0.1", map[string]any{"name": "Main"})
	svc.Log(AuditDeletePortfolio, "portfolio", "p1", "127.0.0.1", nil)

	var entries []models.AuditLog
	testutil.AssertNoError(t, db.Order("created_at ASC").Find(&entries).Error)

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != AuditCreatePortfolio || entries[0].Changes != `{"name":"Main"}` {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
	if entries[0].ID == "" {
		t.Error("expected generated id")
	}
	if entries[1].Changes != "" {
		t.Errorf("expected empty changes, got %q", entries[1].Changes)
	}
}

func TestAuditLogFailureDoesNotPanic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuditService(db)
	testutil.TeardownTestDB(t, db)

	svc.Log(AuditCreateHolding, "holding", "h1", "", nil)
}

func TestAuditLogUnencodableChanges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	svc.Log(AuditUpdatePortfolio, "portfolio", "p1", "", map[string]any{"bad": make(chan int)})

	var entry models.AuditLog
	testutil.AssertNoError(t, db.Take(&entry).Error)
	if entry.Changes != "{}" {
		t.Errorf("expected {}, got %q", entry.Changes)
	}
}
