package repository

import (
	"context"

	"solidarity-api/internal/domain/entity"
)

// VideoFilter contains optional filters for video listing.
type VideoFilter struct {
	Category *entity.VideoCategory // Optional: filter by category
	Featured *bool                 // Optional: filter by featured flag
	Limit    int                   // Maximum rows to return (0 means server default)
	Offset   int                   // Rows to skip
}

// VideoRepository defines the persistence interface for campaign videos.
type VideoRepository interface {
	// Get retrieves a video by ID.
	// Returns entity.ErrNotFound if the video does not exist.
	Get(ctx context.Context, id int64) (*entity.Video, error)

	// List retrieves videos matching the filter, ordered by published_at
	// DESC with NULLs last. Returns an empty slice (not nil) when no
	// videos match.
	List(ctx context.Context, f VideoFilter) ([]*entity.Video, error)

	// Insert stores a new video and returns its assigned ID.
	Insert(ctx context.Context, v *entity.Video) (int64, error)

	// Update rewrites the mutable fields of an existing video.
	// Returns entity.ErrNotFound if the video does not exist.
	Update(ctx context.Context, v *entity.Video) error

	// Delete removes a video by ID.
	// Returns entity.ErrNotFound if the video does not exist.
	Delete(ctx context.Context, id int64) error
}
