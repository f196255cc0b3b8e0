package contact

import (
	"net/http"

	"solidarity-api/internal/form"
	contactUC "solidarity-api/internal/usecase/contact"
)

// Register registers the contact form route. The submission runs
// through the full pipeline: rate limit, sanitize, validate, handler.
func Register(mux *http.ServeMux, svc *contactUC.Service, rateLimit form.Middleware) {
	pipeline := form.WithMiddleware(form.Options{
		RateLimit: rateLimit,
		Sanitize:  ContactSanitize(),
		Validate:  ContactValidate(),
	})
	mux.Handle("POST /api/contact", pipeline(SubmitHandler{svc}))
}

// ContactSanitize extends the base contact schema with the optional
// locale field sent by the bilingual frontend.
func ContactSanitize() form.SanitizeSchema {
	schema := form.ContactSanitizeSchema()
	schema["locale"] = form.SanitizeRule{Trim: true, Case: form.CaseLower, MaxLength: 5}
	return schema
}

// ContactValidate accepts the optional locale alongside the base
// contact fields. Unsupported locales fall back to Turkish downstream.
func ContactValidate() form.ValidateSchema {
	schema := form.ContactValidateSchema()
	schema["locale"] = form.ValidateRule{Type: form.FieldString, MaxLength: 5}
	return schema
}
