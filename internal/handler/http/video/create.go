package video

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"solidarity-api/internal/domain/entity"
	"solidarity-api/internal/handler/http/respond"
	videoUC "solidarity-api/internal/usecase/video"
)

type CreateHandler struct{ Svc *videoUC.Service }

// ServeHTTP publishes a new video.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		TitleEN     string `json:"titleEn"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Category    string `json:"category"`
		Featured    bool   `json:"featured"`
		PublishedAt string `json:"publishedAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	var publishedAt *time.Time
	if req.PublishedAt != "" {
		t, err := time.Parse(time.RFC3339, req.PublishedAt)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("publishedAt must be in RFC3339 format"))
			return
		}
		publishedAt = &t
	}

	id, err := h.Svc.Create(r.Context(), videoUC.CreateInput{
		Title:       req.Title,
		TitleEN:     req.TitleEN,
		Description: req.Description,
		URL:         req.URL,
		Category:    req.Category,
		Featured:    req.Featured,
		PublishedAt: publishedAt,
	})
	if err != nil {
		code := http.StatusInternalServerError
		var vErr *entity.ValidationError
		if errors.As(err, &vErr) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    map[string]int64{"id": id},
	})
}
