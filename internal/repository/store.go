// Package repository is the persistence boundary. Each repository wraps the
// shared *gorm.DB; Store groups them and provides a unit of work.
package repository

import (
	"errors"

	"gorm.io/gorm"

	apperrors "endpage/internal/errors"
)

// newestFirst is the ordering every collection uses.
const newestFirst = "created_at DESC, id DESC"

// Store groups the repositories over one database handle.
type Store struct {
	db *gorm.DB
}

// New creates a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for callers that need raw access (tests, CLI).
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Users() *UserRepository         { return &UserRepository{db: s.db} }
func (s *Store) EndPages() *EndPageRepository   { return &EndPageRepository{db: s.db} }
func (s *Store) Comments() *CommentRepository   { return &CommentRepository{db: s.db} }
func (s *Store) Medias() *MediaRepository       { return &MediaRepository{db: s.db} }
func (s *Store) AuditLogs() *AuditLogRepository { return &AuditLogRepository{db: s.db} }

// Transaction runs fn inside a database transaction. Every repository obtained
// from the Store passed to fn shares that transaction; returning an error
// rolls it back.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// notFound maps gorm.ErrRecordNotFound to sentinel and wraps anything else as
// an internal error.
func notFound(err error, sentinel *apperrors.AppError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
