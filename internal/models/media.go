package models

import "strings"

// MediaKind is the coarse family of an uploaded file.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

// AllowedMediaTypes is the upload allow-list.
var AllowedMediaTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"video/mp4",
	"audio/mpeg",
	"audio/ogg",
	"audio/wav",
}

// KindFromMediaType maps a MIME type to its MediaKind.
func KindFromMediaType(mediaType string) MediaKind {
	switch {
	case strings.HasPrefix(mediaType, "video/"):
		return MediaVideo
	case strings.HasPrefix(mediaType, "audio/"):
		return MediaAudio
	default:
		return MediaImage
	}
}

// Media is a file attached to an end page.
type Media struct {
	Base
	EndPageID        uint      `gorm:"not null;index" json:"end_page_id"`
	Kind             MediaKind `gorm:"size:16;not null" json:"kind"`
	MediaType        string    `gorm:"size:100;not null" json:"media_type"`
	Filename         string    `gorm:"size:255;not null" json:"filename"`
	OriginalFilename string    `gorm:"size:255" json:"original_filename"`
	FileSize         int64     `gorm:"not null" json:"file_size"`
	FullURL          string    `gorm:"-" json:"full_url"`
}

// ResolveURL fills FullURL from the public media base URL.
func (m *Media) ResolveURL(baseURL string) {
	m.FullURL = strings.TrimRight(baseURL, "/") + "/" + m.Filename
}

func (Media) TableName() string {
	return "media"
}
