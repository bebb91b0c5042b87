package services

import (
	"encoding/json"

	"endpage/internal/logger"
	"endpage/internal/models"
	"endpage/internal/repository"
)

// auditService records security-relevant actions: lockouts, penalties, page
// and media changes, role updates.
type auditService struct {
	store *repository.Store
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(store *repository.Store) AuditServicer {
	return &auditService{store: store}
}

// Log records an audit event. Errors are logged and swallowed. Must not be
// called from inside a store transaction.
func (s *auditService) Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]any) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.store.AuditLogs().Create(entry); err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

// History returns userID's audit trail, newest first.
func (s *auditService) History(userID uint) ([]models.AuditLog, error) {
	return s.store.AuditLogs().ListByUser(userID)
}
