package repository

import (
	"gorm.io/gorm"

	apperrors "endpage/internal/errors"
	"endpage/internal/models"
)

// CommentRepository persists comments.
type CommentRepository struct {
	db *gorm.DB
}

func (r *CommentRepository) Create(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListByEndPage returns the comments of one page, newest first.
func (r *CommentRepository) ListByEndPage(endPageID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := r.db.Where("end_page_id = ?", endPageID).Order(newestFirst).Find(&comments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return comments, nil
}
