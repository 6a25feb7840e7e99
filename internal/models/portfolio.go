package models

import "time"

// Portfolio is a named container of holdings and transactions. Deleting a
// portfolio cascades to both.
type Portfolio struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	BaseCurrency string    `gorm:"not null" json:"base_currency"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}
