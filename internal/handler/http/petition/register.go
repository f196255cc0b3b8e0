package petition

import (
	"net/http"

	"solidarity-api/internal/form"
	petitionUC "solidarity-api/internal/usecase/petition"
)

// Register registers the petition routes. Signing runs through the
// full pipeline; the counter endpoint is read-only and ungated.
func Register(mux *http.ServeMux, svc *petitionUC.Service, rateLimit form.Middleware) {
	pipeline := form.WithMiddleware(form.Options{
		RateLimit: rateLimit,
		Sanitize:  PetitionSanitize(),
		Validate:  PetitionValidate(),
	})
	mux.Handle("POST /api/petition", pipeline(SignHandler{svc}))
	mux.Handle("GET /api/petition", CountHandler{svc})
}

// PetitionSanitize extends the base petition schema with the optional
// locale field sent by the bilingual frontend.
func PetitionSanitize() form.SanitizeSchema {
	schema := form.PetitionSanitizeSchema()
	schema["locale"] = form.SanitizeRule{Trim: true, Case: form.CaseLower, MaxLength: 5}
	return schema
}

// PetitionValidate accepts the optional locale alongside the base
// petition fields.
func PetitionValidate() form.ValidateSchema {
	schema := form.PetitionValidateSchema()
	schema["locale"] = form.ValidateRule{Type: form.FieldString, MaxLength: 5}
	return schema
}
