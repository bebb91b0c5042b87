package models

import (
	"endpage/internal/uuid"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EndPage is a farewell page. It is addressed externally by UUID only.
type EndPage struct {
	Base
	UUID            string                      `gorm:"size:36;uniqueIndex;not null;<-:create" json:"uuid"`
	UserID          *uint                       `gorm:"index" json:"user_id,omitempty"`
	User            *User                       `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Title           string                      `gorm:"size:255;not null" json:"title"`
	Content         string                      `gorm:"type:text;not null" json:"content"`
	Tone            Tone                        `gorm:"size:32;not null" json:"tone"`
	BackgroundType  *BackgroundType             `gorm:"size:16" json:"background_type"`
	BackgroundValue *string                     `gorm:"size:255" json:"background_value"`
	IsPrivate       bool                        `gorm:"not null;default:false" json:"is_private"`
	Emails          datatypes.JSONSlice[string] `gorm:"type:json" json:"emails"`
	TotalRating     int                         `gorm:"not null;default:0" json:"total_rating"`
	NumberOfVotes   int                         `gorm:"not null;default:0" json:"number_of_votes"`
	AverageRating   *float64                    `json:"average_rating"`
	Medias          []Media                     `gorm:"foreignKey:EndPageID;constraint:OnDelete:CASCADE" json:"medias"`
	Comments        []Comment                   `gorm:"foreignKey:EndPageID;constraint:OnDelete:CASCADE" json:"comments"`
}

// BeforeCreate assigns the public UUID. It is never reassigned afterwards.
func (e *EndPage) BeforeCreate(tx *gorm.DB) error {
	if e.UUID == "" {
		e.UUID = uuid.New()
	}
	return nil
}

// BeforeSave keeps AverageRating consistent with the running totals.
func (e *EndPage) BeforeSave(tx *gorm.DB) error {
	e.RecomputeAverage()
	return nil
}

// RecomputeAverage sets AverageRating to TotalRating/NumberOfVotes, or nil
// when there are no votes yet.
func (e *EndPage) RecomputeAverage() {
	if e.NumberOfVotes <= 0 {
		e.AverageRating = nil
		return
	}
	avg := float64(e.TotalRating) / float64(e.NumberOfVotes)
	e.AverageRating = &avg
}

// IsOwnedBy reports whether userID owns the page.
func (e *EndPage) IsOwnedBy(userID uint) bool {
	return e.UserID != nil && *e.UserID == userID
}
