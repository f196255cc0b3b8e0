package video

import (
	"errors"
	"net/http"

	"solidarity-api/internal/handler/http/pathutil"
	"solidarity-api/internal/handler/http/respond"
	videoUC "solidarity-api/internal/usecase/video"
)

type DeleteHandler struct{ Svc *videoUC.Service }

// ServeHTTP removes a video.
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/api/videos/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, videoUC.ErrVideoNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
