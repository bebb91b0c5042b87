package services

import (
	"strings"

	apperrors "endpage/internal/errors"
	"endpage/internal/models"
	"endpage/internal/repository"
)

const maxAuthorLength = 255

// commentService handles anonymous comments.
type commentService struct {
	store *repository.Store
}

// NewCommentService creates a new CommentServicer.
func NewCommentService(store *repository.Store) CommentServicer {
	return &commentService{store: store}
}

// AddComment appends a comment to the referenced page. Comments are not
// moderated. Private pages accept comments only from callers allowed to
// read them.
func (s *commentService) AddComment(pageRef, author, text string, viewer Viewer) (*models.Comment, error) {
	author = strings.TrimSpace(author)
	if author == "" || strings.TrimSpace(text) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "author and text are required")
	}
	if len([]rune(author)) > maxAuthorLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "author must be at most 255 characters")
	}

	page, err := findPage(s.store, pageRef)
	if err != nil {
		return nil, err
	}
	if err := checkVisible(page, viewer); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		EndPageID: page.ID,
		Author:    author,
		Text:      text,
	}
	if err := s.store.Comments().Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a page's comments, newest first, under the same
// privacy rule as reading the page.
func (s *commentService) ListComments(pageRef string, viewer Viewer) ([]models.Comment, error) {
	page, err := findPage(s.store, pageRef)
	if err != nil {
		return nil, err
	}
	if err := checkVisible(page, viewer); err != nil {
		return nil, err
	}
	return s.store.Comments().ListByEndPage(page.ID)
}
