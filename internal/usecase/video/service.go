package video

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"solidarity-api/internal/domain/entity"
	"solidarity-api/internal/repository"
	"solidarity-api/internal/resilience/retry"
)

// CreateInput represents the input for publishing a new video.
type CreateInput struct {
	Title       string
	TitleEN     string
	Description string
	URL         string
	Category    string
	Featured    bool
	PublishedAt *time.Time
}

// UpdateInput represents a partial update to an existing video.
// Nil fields are left unchanged.
type UpdateInput struct {
	ID          int64
	Title       *string
	TitleEN     *string
	Description *string
	URL         *string
	Category    *string
	Featured    *bool
	PublishedAt *time.Time
}

// ListInput carries the optional filters for video listings.
type ListInput struct {
	Category string
	Featured *bool
	Limit    int
	Offset   int
}

// Service handles the video catalog used by the admin panel and the
// public video pages.
type Service struct {
	Repo  repository.VideoRepository
	Retry retry.Config
}

// NewService creates a video service with the database retry policy.
func NewService(repo repository.VideoRepository) *Service {
	return &Service{Repo: repo, Retry: retry.DBConfig()}
}

// Get retrieves a video by ID.
// Returns ErrVideoNotFound if the video does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Video, error) {
	if id <= 0 {
		return nil, &entity.ValidationError{Field: "id", Message: "must be positive"}
	}

	var video *entity.Video
	err := retry.Do(ctx, s.Retry, func() error {
		var err error
		video, err = s.Repo.Get(ctx, id)
		return err
	})
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return video, nil
}

// List retrieves videos matching the filters, newest first.
func (s *Service) List(ctx context.Context, in ListInput) ([]*entity.Video, error) {
	filter := repository.VideoFilter{Limit: in.Limit, Offset: in.Offset}
	if in.Category != "" {
		category := entity.VideoCategory(in.Category)
		if !category.IsValid() {
			return nil, &entity.ValidationError{Field: "category", Message: "is not an accepted value"}
		}
		filter.Category = &category
	}
	filter.Featured = in.Featured

	var videos []*entity.Video
	err := retry.Do(ctx, s.Retry, func() error {
		var err error
		videos, err = s.Repo.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

// Create publishes a new video and returns its assigned ID.
// Returns a ValidationError if any input field is invalid.
func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	if in.Title == "" {
		return 0, &entity.ValidationError{Field: "title", Message: "is required"}
	}
	if err := validateVideoURL(in.URL); err != nil {
		return 0, err
	}
	category := entity.VideoCategory(in.Category)
	if !category.IsValid() {
		return 0, &entity.ValidationError{Field: "category", Message: "is not an accepted value"}
	}

	v := &entity.Video{
		Title:       in.Title,
		TitleEN:     in.TitleEN,
		Description: in.Description,
		URL:         in.URL,
		Category:    category,
		Featured:    in.Featured,
		PublishedAt: in.PublishedAt,
	}

	var id int64
	err := retry.Do(ctx, s.Retry, func() error {
		var err error
		id, err = s.Repo.Insert(ctx, v)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("create video: %w", err)
	}
	return id, nil
}

// Update applies a partial update to an existing video.
// Returns ErrVideoNotFound if the video does not exist.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Video, error) {
	existing, err := s.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		existing.Title = *in.Title
	}
	if in.TitleEN != nil {
		existing.TitleEN = *in.TitleEN
	}
	if in.Description != nil {
		existing.Description = *in.Description
	}
	if in.URL != nil {
		if err := validateVideoURL(*in.URL); err != nil {
			return nil, err
		}
		existing.URL = *in.URL
	}
	if in.Category != nil {
		category := entity.VideoCategory(*in.Category)
		if !category.IsValid() {
			return nil, &entity.ValidationError{Field: "category", Message: "is not an accepted value"}
		}
		existing.Category = category
	}
	if in.Featured != nil {
		existing.Featured = *in.Featured
	}
	if in.PublishedAt != nil {
		existing.PublishedAt = in.PublishedAt
	}
	if existing.Title == "" {
		return nil, &entity.ValidationError{Field: "title", Message: "is required"}
	}

	err = retry.Do(ctx, s.Retry, func() error {
		return s.Repo.Update(ctx, existing)
	})
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}
	return existing, nil
}

// Delete removes a video by ID.
// Returns ErrVideoNotFound if the video does not exist.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return &entity.ValidationError{Field: "id", Message: "must be positive"}
	}

	err := retry.Do(ctx, s.Retry, func() error {
		return s.Repo.Delete(ctx, id)
	})
	if errors.Is(err, entity.ErrNotFound) {
		return ErrVideoNotFound
	}
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	return nil
}

func validateVideoURL(raw string) error {
	if raw == "" {
		return &entity.ValidationError{Field: "url", Message: "is required"}
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &entity.ValidationError{Field: "url", Message: "must be a valid HTTP(S) URL"}
	}
	return nil
}
