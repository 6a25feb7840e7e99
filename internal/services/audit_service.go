package services

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"folio/internal/logger"
	"folio/internal/models"
)

// Audit actions recorded for ledger mutations.
const (
	AuditCreatePortfolio   = "CREATE_PORTFOLIO"
	AuditUpdatePortfolio   = "UPDATE_PORTFOLIO"
	AuditDeletePortfolio   = "DELETE_PORTFOLIO"
	AuditCreateHolding     = "CREATE_HOLDING"
	AuditCreateTransaction = "CREATE_TRANSACTION"
)

type auditService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db, log: logger.Named("audit")}
}

// Log appends an audit row. The ledger mutation it describes has already
// committed, so a failure here is only logged.
func (s *auditService) Log(action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	entry := models.AuditLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      s.encodeChanges(action, changes),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		s.log.Warnw("audit entry dropped",
			"action", action,
			"resource", resourceType+"/"+resourceID,
			"error", err,
		)
	}
}

// encodeChanges renders changes as JSON; nil stays empty and an
// unencodable map becomes "{}".
func (s *auditService) encodeChanges(action string, changes map[string]any) string {
	if changes == nil {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		s.log.Warnw("audit changes not encodable", "action", action, "error", err)
		return "{}"
	}
	return string(data)
}
