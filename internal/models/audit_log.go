package models

import (
	"time"

	"folio/internal/uuid"

	"gorm.io/gorm"
)

// AuditLog records ledger mutations made through the API.
// This is append-only data: no soft deletes.
type AuditLog struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Action       string    `gorm:"not null" json:"action"`
	ResourceType string    `gorm:"not null" json:"resource_type"`
	ResourceID   string    `gorm:"not null" json:"resource_id"`
	IPAddress    string    `json:"ip_address"`
	Changes      string    `json:"changes,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New()
	}
	return nil
}
