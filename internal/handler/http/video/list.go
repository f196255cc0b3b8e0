package video

import (
	"errors"
	"net/http"
	"strconv"

	"solidarity-api/internal/domain/entity"
	"solidarity-api/internal/handler/http/respond"
	videoUC "solidarity-api/internal/usecase/video"
)

type ListHandler struct{ Svc *videoUC.Service }

// ServeHTTP returns videos matching the optional category, featured,
// limit and offset query parameters, newest first.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	in := videoUC.ListInput{Category: q.Get("category")}

	if raw := q.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("featured must be a boolean"))
			return
		}
		in.Featured = &featured
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("limit must be a non-negative number"))
			return
		}
		in.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("offset must be a non-negative number"))
			return
		}
		in.Offset = offset
	}

	videos, err := h.Svc.List(r.Context(), in)
	if err != nil {
		code := http.StatusInternalServerError
		var vErr *entity.ValidationError
		if errors.As(err, &vErr) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	dtos := make([]DTO, 0, len(videos))
	for _, v := range videos {
		dtos = append(dtos, toDTO(v))
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    dtos,
	})
}
