package metrics

import "time"

// Form submission outcomes.
const (
	StatusAccepted  = "accepted"
	StatusDuplicate = "duplicate"
	StatusFailed    = "failed"
)

// RecordFormSubmission records the outcome of a public form submission.
// Form should be "contact", "petition" or "newsletter".
func RecordFormSubmission(form, status string) {
	FormSubmissionsTotal.WithLabelValues(form, status).Inc()
}

// UpdatePetitionSignatures updates the petition signature gauge.
// Called whenever the signature counter is recomputed.
func UpdatePetitionSignatures(count int64) {
	PetitionSignaturesTotal.Set(float64(count))
}

// UpdateNewsletterSubscribers updates the active subscriber gauge.
// Called whenever the subscriber counter is recomputed.
func UpdateNewsletterSubscribers(count int64) {
	NewsletterSubscribersTotal.Set(float64(count))
}

// UpdateVideosTotal updates the published video gauge.
func UpdateVideosTotal(count int) {
	VideosTotal.Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "insert_signature").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
