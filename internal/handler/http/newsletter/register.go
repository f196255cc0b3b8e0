package newsletter

import (
	"net/http"

	"solidarity-api/internal/form"
	newsletterUC "solidarity-api/internal/usecase/newsletter"
)

// Register registers the newsletter routes. Signups run through the
// full pipeline; the counter endpoint is read-only and ungated.
func Register(mux *http.ServeMux, svc *newsletterUC.Service, rateLimit form.Middleware) {
	pipeline := form.WithMiddleware(form.Options{
		RateLimit: rateLimit,
		Sanitize:  form.NewsletterSanitizeSchema(),
		Validate:  form.NewsletterValidateSchema(),
	})
	mux.Handle("POST /api/newsletter", pipeline(SubscribeHandler{svc}))
	mux.Handle("GET /api/newsletter", CountHandler{svc})
}
