// Package newsletter provides the HTTP handlers for newsletter
// signups and the subscriber counter.
package newsletter

import (
	"errors"
	"net/http"

	"solidarity-api/internal/form"
	"solidarity-api/internal/handler/http/respond"
	"solidarity-api/internal/observability/metrics"
	newsletterUC "solidarity-api/internal/usecase/newsletter"
)

type SubscribeHandler struct{ Svc *newsletterUC.Service }

// ServeHTTP stores or refreshes a subscription. Resubmitting an email
// with an inactive row reactivates it and answers 200; an actively
// subscribed email maps to 409.
func (h SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := form.Payload(r.Context())

	outcome, err := h.Svc.Subscribe(r.Context(), newsletterUC.SubscribeInput{
		Email:     form.String(data, "email"),
		FirstName: form.String(data, "firstName"),
		Interests: form.Strings(data, "interests"),
	})
	if errors.Is(err, newsletterUC.ErrAlreadySubscribed) {
		metrics.RecordFormSubmission("newsletter", metrics.StatusDuplicate)
		respond.JSON(w, http.StatusConflict, map[string]string{"error": "already subscribed"})
		return
	}
	if err != nil {
		metrics.RecordFormSubmission("newsletter", metrics.StatusFailed)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	metrics.RecordFormSubmission("newsletter", metrics.StatusAccepted)
	status := http.StatusOK
	if outcome.Created {
		status = http.StatusCreated
	}
	respond.JSON(w, status, map[string]interface{}{"success": true})
}
