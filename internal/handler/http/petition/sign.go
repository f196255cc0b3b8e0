// Package petition provides the HTTP handlers for the campaign
// petition: signing and the public signature counter.
package petition

import (
	"errors"
	"net/http"

	"solidarity-api/internal/form"
	"solidarity-api/internal/handler/http/respond"
	"solidarity-api/internal/observability/metrics"
	petitionUC "solidarity-api/internal/usecase/petition"
)

type SignHandler struct{ Svc *petitionUC.Service }

// ServeHTTP stores a petition signature and answers with the updated
// total. A repeat signature for the same email maps to 409.
func (h SignHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := form.Payload(r.Context())

	total, err := h.Svc.Sign(r.Context(), petitionUC.SignInput{
		Email:     form.String(data, "email"),
		FirstName: form.String(data, "firstName"),
		LastName:  form.String(data, "lastName"),
		City:      form.String(data, "city"),
		Locale:    form.String(data, "locale"),
	})
	if errors.Is(err, petitionUC.ErrAlreadySigned) {
		metrics.RecordFormSubmission("petition", metrics.StatusDuplicate)
		respond.JSON(w, http.StatusConflict, map[string]string{"error": "already signed"})
		return
	}
	if err != nil {
		metrics.RecordFormSubmission("petition", metrics.StatusFailed)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	metrics.RecordFormSubmission("petition", metrics.StatusAccepted)
	metrics.UpdatePetitionSignatures(total)
	respond.JSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"totalCount": total,
	})
}
