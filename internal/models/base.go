package models

import "time"

// Base contains common columns for all tables
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All lists every persisted model, in dependency order, for auto-migration.
func All() []any {
	return []any{
		&User{},
		&EndPage{},
		&Media{},
		&Comment{},
		&AuditLog{},
	}
}
