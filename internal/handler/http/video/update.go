package video

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"solidarity-api/internal/domain/entity"
	"solidarity-api/internal/handler/http/pathutil"
	"solidarity-api/internal/handler/http/respond"
	videoUC "solidarity-api/internal/usecase/video"
)

type UpdateHandler struct{ Svc *videoUC.Service }

// ServeHTTP applies a partial update to an existing video. Fields
// absent from the body are left unchanged.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/api/videos/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Title       *string `json:"title"`
		TitleEN     *string `json:"titleEn"`
		Description *string `json:"description"`
		URL         *string `json:"url"`
		Category    *string `json:"category"`
		Featured    *bool   `json:"featured"`
		PublishedAt *string `json:"publishedAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	var publishedAt *time.Time
	if req.PublishedAt != nil {
		t, err := time.Parse(time.RFC3339, *req.PublishedAt)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("publishedAt must be in RFC3339 format"))
			return
		}
		publishedAt = &t
	}

	updated, err := h.Svc.Update(r.Context(), videoUC.UpdateInput{
		ID:          id,
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
		switch {
		case errors.Is(err, videoUC.ErrVideoNotFound):
			code = http.StatusNotFound
		case errors.As(err, &vErr):
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    toDTO(updated),
	})
}
