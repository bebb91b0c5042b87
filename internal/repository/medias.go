package repository

import (
	"gorm.io/gorm"

	apperrors "endpage/internal/errors"
	"endpage/internal/models"
)

// MediaRepository persists media metadata. File bytes live in storage.
type MediaRepository struct {
	db *gorm.DB
}

func (r *MediaRepository) Create(media *models.Media) error {
	if err := r.db.Create(media).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (r *MediaRepository) ListByEndPage(endPageID uint) ([]models.Media, error) {
	medias := []models.Media{}
	if err := r.db.Where("end_page_id = ?", endPageID).Order(newestFirst).Find(&medias).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return medias, nil
}
