package repository

import (
	"gorm.io/gorm"

	apperrors "endpage/internal/errors"
	"endpage/internal/models"
)

// AuditLogRepository persists audit entries.
type AuditLogRepository struct {
	db *gorm.DB
}

func (r *AuditLogRepository) Create(entry *models.AuditLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListByUser returns a user's audit trail, newest first.
func (r *AuditLogRepository) ListByUser(userID uint) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	if err := r.db.Where("user_id = ?", userID).Order(newestFirst).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}
