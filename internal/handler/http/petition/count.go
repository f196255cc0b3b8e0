package petition

import (
	"net/http"
	"time"

	"solidarity-api/internal/handler/http/respond"
	petitionUC "solidarity-api/internal/usecase/petition"
)

type CountHandler struct{ Svc *petitionUC.Service }

// ServeHTTP answers the public signature counter. The count is served
// from a short-TTL cache, so lastUpdated reports when it was last
// recomputed rather than the current time.
func (h CountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	total, err := h.Svc.Count(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"totalCount":  total,
		"lastUpdated": h.Svc.LastUpdated().UTC().Format(time.RFC3339),
	})
}
