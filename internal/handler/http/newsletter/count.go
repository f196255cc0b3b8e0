package newsletter

import (
	"net/http"

	"solidarity-api/internal/handler/http/respond"
	newsletterUC "solidarity-api/internal/usecase/newsletter"
)

type CountHandler struct{ Svc *newsletterUC.Service }

// ServeHTTP answers the active subscriber counter, served from a
// short-TTL cache.
func (h CountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	count, err := h.Svc.SubscriberCount(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"subscriberCount": count,
	})
}
