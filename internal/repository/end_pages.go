package repository

import (
	"time"

	"gorm.io/gorm"

	apperrors "endpage/internal/errors"
	"endpage/internal/models"
	"endpage/internal/pagination"
	"endpage/internal/uuid"
)

// EndPageRepository persists end pages.
type EndPageRepository struct {
	db *gorm.DB
}

func (r *EndPageRepository) FindByID(id uint) (*models.EndPage, error) {
	var page models.EndPage
	if err := r.db.First(&page, id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrEndPageNotFound)
	}
	return &page, nil
}

// FindByUUID returns the page with the given public identifier. A malformed
// identifier yields ErrInvalidUUID without touching the database.
func (r *EndPageRepository) FindByUUID(id string) (*models.EndPage, error) {
	canonical, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrInvalidUUID
	}
	var page models.EndPage
	if err := r.db.Where("uuid = ?", canonical).First(&page).Error; err != nil {
		return nil, notFound(err, apperrors.ErrEndPageNotFound)
	}
	return &page, nil
}

// FindByUUIDWithRelations is FindByUUID with media and comments loaded,
// newest first.
func (r *EndPageRepository) FindByUUIDWithRelations(id string) (*models.EndPage, error) {
	canonical, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrInvalidUUID
	}
	var page models.EndPage
	err = r.db.
		Preload("Medias", func(db *gorm.DB) *gorm.DB { return db.Order(newestFirst) }).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order(newestFirst) }).
		Where("uuid = ?", canonical).
		First(&page).Error
	if err != nil {
		return nil, notFound(err, apperrors.ErrEndPageNotFound)
	}
	return &page, nil
}

// ListPublic returns non-private pages, newest first.
func (r *EndPageRepository) ListPublic(page pagination.PageRequest) ([]models.EndPage, int64, error) {
	query := r.db.Model(&models.EndPage{}).Where("is_private = ?", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var pages []models.EndPage
	if err := query.Order(newestFirst).Scopes(pagination.Paginate(page)).Find(&pages).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pages, total, nil
}

// ListByOwner returns the pages owned by userID, newest first. Private pages
// are included only when includePrivate is set.
func (r *EndPageRepository) ListByOwner(userID uint, includePrivate bool) ([]models.EndPage, error) {
	query := r.db.Where("user_id = ?", userID)
	if !includePrivate {
		query = query.Where("is_private = ?", false)
	}
	pages := []models.EndPage{}
	if err := query.Order(newestFirst).Find(&pages).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pages, nil
}

func (r *EndPageRepository) Create(page *models.EndPage) error {
	if err := r.db.Create(page).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// AddRating records one vote in a single UPDATE so that concurrent votes are
// never lost. The right-hand sides read the pre-update column values.
func (r *EndPageRepository) AddRating(id uint, rating int) error {
	res := r.db.Model(&models.EndPage{}).Where("id = ?", id).UpdateColumns(map[string]any{
		"total_rating":    gorm.Expr("total_rating + ?", rating),
		"number_of_votes": gorm.Expr("number_of_votes + 1"),
		"average_rating":  gorm.Expr("(total_rating + ?) * 1.0 / (number_of_votes + 1)", rating),
		"updated_at":      time.Now(),
	})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrEndPageNotFound
	}
	return nil
}

// Delete removes the page together with its comments and media rows.
func (r *EndPageRepository) Delete(id uint) error {
	if err := r.db.Where("end_page_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := r.db.Where("end_page_id = ?", id).Delete(&models.Media{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	res := r.db.Delete(&models.EndPage{}, id)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrEndPageNotFound
	}
	return nil
}
