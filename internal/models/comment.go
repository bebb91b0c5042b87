package models

// Comment is an anonymous note left on an end page.
type Comment struct {
	Base
	EndPageID uint   `gorm:"not null;index" json:"end_page_id"`
	Author    string `gorm:"size:255;not null" json:"author"`
	Text      string `gorm:"type:text;not null" json:"text"`
}
