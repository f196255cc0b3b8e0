package video_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solidarity-api/internal/domain/entity"
	"solidarity-api/internal/handler/http/video"
	"solidarity-api/internal/repository"
	"solidarity-api/internal/resilience/retry"
	videoUC "solidarity-api/internal/usecase/video"
)

type stubVideoRepo struct {
	videos  map[int64]*entity.Video
	nextID  int64
	repoErr error
}

func newStubVideoRepo() *stubVideoRepo {
	return &stubVideoRepo{videos: map[int64]*entity.Video{}, nextID: 1}
}

func (s *stubVideoRepo) Get(_ context.Context, id int64) (*entity.Video, error) {
	if s.repoErr != nil {
		return nil, s.repoErr
	}
	v, ok := s.videos[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (s *stubVideoRepo) List(_ context.Context, f repository.VideoFilter) ([]*entity.Video, error) {
	if s.repoErr != nil {
		return nil, s.repoErr
	}
	out := make([]*entity.Video, 0, len(s.videos))
	for _, v := range s.videos {
		if f.Category != nil && v.Category != *f.Category {
			continue
		}
		if f.Featured != nil && v.Featured != *f.Featured {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *stubVideoRepo) Insert(_ context.Context, v *entity.Video) (int64, error) {
	if s.repoErr != nil {
		return 0, s.repoErr
	}
	v.ID = s.nextID
	s.nextID++
	s.videos[v.ID] = v
	return v.ID, nil
}

func (s *stubVideoRepo) Update(_ context.Context, v *entity.Video) error {
	if s.repoErr != nil {
		return s.repoErr
	}
	if _, ok := s.videos[v.ID]; !ok {
		return entity.ErrNotFound
	}
	copied := *v
	s.videos[v.ID] = &copied
	return nil
}

func (s *stubVideoRepo) Delete(_ context.Context, id int64) error {
	if s.repoErr != nil {
		return s.repoErr
	}
	if _, ok := s.videos[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.videos, id)
	return nil
}

func newVideoService(stub *stubVideoRepo) *videoUC.Service {
	svc := videoUC.NewService(stub)
	svc.Retry = retry.Config{
		MaxRetries:     1,
		BaseDelay:      time.Millisecond,
		MaxDelay:       time.Millisecond,
		Multiplier:     1,
		JitterFraction: 0,
	}
	return svc
}

type videoEnvelope struct {
	Success bool      `json:"success"`
	Data    video.DTO `json:"data"`
}

func TestGetHandler_Success(t *testing.T) {
	stub := newStubVideoRepo()
	stub.videos[1] = &entity.Video{
		ID:       1,
		Title:    "Dayanışma Yürüyüşü",
		TitleEN:  "Solidarity March",
		URL:      "https://videos.example.org/watch/1",
		Category: entity.CategoryEvent,
	}

	handler := video.GetHandler{Svc: newVideoService(stub)}

	req := httptest.NewRequest(http.MethodGet, "/api/videos/1", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var result videoEnvelope
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Success {
		t.Error("success = false, want true")
	}
	if result.Data.ID != 1 {
		t.Errorf("data.id = %d, want 1", result.Data.ID)
	}
	if result.Data.Title != "Dayanışma Yürüyüşü" {
		t.Errorf("data.title = %q, want %q", result.Data.Title, "Dayanışma Yürüyüşü")
	}
	if result.Data.Category != "event" {
		t.Errorf("data.category = %q, want %q", result.Data.Category, "event")
	}
}

func TestGetHandler_InvalidID(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "zero id", path: "/api/videos/0"},
		{name: "negative id", path: "/api/videos/-1"},
		{name: "non-numeric id", path: "/api/videos/abc"},
		{name: "empty id", path: "/api/videos/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := video.GetHandler{Svc: newVideoService(newStubVideoRepo())}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestGetHandler_NotFound(t *testing.T) {
	handler := video.GetHandler{Svc: newVideoService(newStubVideoRepo())}

	req := httptest.NewRequest(http.MethodGet, "/api/videos/999", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestGetHandler_DatabaseError(t *testing.T) {
	stub := newStubVideoRepo()
	stub.repoErr = errors.New("connection refused")
	handler := video.GetHandler{Svc: newVideoService(stub)}

	req := httptest.NewRequest(http.MethodGet, "/api/videos/1", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}
