// Package contact provides the HTTP handler for the contact form.
package contact

import (
	"net/http"

	"solidarity-api/internal/form"
	"solidarity-api/internal/handler/http/respond"
	"solidarity-api/internal/observability/metrics"
	contactUC "solidarity-api/internal/usecase/contact"
)

type SubmitHandler struct{ Svc *contactUC.Service }

// ServeHTTP stores a contact submission. The pipeline has already
// sanitized and validated the payload by the time this runs.
func (h SubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := form.Payload(r.Context())

	_, err := h.Svc.Submit(r.Context(), contactUC.SubmitInput{
		Name:    form.String(data, "name"),
		Email:   form.String(data, "email"),
		Subject: form.String(data, "subject"),
		Message: form.String(data, "message"),
		Locale:  form.String(data, "locale"),
	})
	if err != nil {
		metrics.RecordFormSubmission("contact", metrics.StatusFailed)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	metrics.RecordFormSubmission("contact", metrics.StatusAccepted)
	respond.JSON(w, http.StatusCreated, map[string]interface{}{"success": true})
}
