package entity

import "time"

// VideoCategory classifies campaign videos.
type VideoCategory string

const (
	CategoryNews        VideoCategory = "news"
	CategoryTestimony   VideoCategory = "testimony"
	CategoryDocumentary VideoCategory = "documentary"
	CategoryEvent       VideoCategory = "event"
)

// IsValid checks if the video category is a recognized value.
func (c VideoCategory) IsValid() bool {
	switch c {
	case CategoryNews, CategoryTestimony, CategoryDocumentary, CategoryEvent:
		return true
	default:
		return false
	}
}

// Video is a campaign video managed through the admin panel.
// Title holds the Turkish title; TitleEN the English one.
type Video struct {
	ID          int64
	Title       string
	TitleEN     string
	Description string
	URL         string
	Category    VideoCategory
	Featured    bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
