// Package video provides HTTP handlers for the campaign video catalog.
// Reads are public; mutations require an admin bearer token.
package video

import (
	"time"

	"solidarity-api/internal/domain/entity"
)

// DTO represents the JSON structure for video data transfer.
type DTO struct {
	ID          int64      `json:"id" example:"1"`
	Title       string     `json:"title" example:"Dayanışma Yürüyüşü"`
	TitleEN     string     `json:"titleEn,omitempty" example:"Solidarity March"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url" example:"https://videos.example.org/watch/1"`
	Category    string     `json:"category" example:"event"`
	Featured    bool       `json:"featured" example:"false"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" example:"2025-10-26T10:00:00Z"`
	CreatedAt   time.Time  `json:"createdAt" example:"2025-10-26T12:00:00Z"`
	UpdatedAt   time.Time  `json:"updatedAt" example:"2025-10-26T12:00:00Z"`
}

func toDTO(v *entity.Video) DTO {
	return DTO{
		ID:          v.ID,
		Title:       v.Title,
		TitleEN:     v.TitleEN,
		Description: v.Description,
		URL:         v.URL,
		Category:    string(v.Category),
		Featured:    v.Featured,
		PublishedAt: v.PublishedAt,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
