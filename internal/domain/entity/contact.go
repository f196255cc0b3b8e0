// Package entity defines the core domain records of the campaign
// backend: contact submissions, petition signatures, newsletter
// subscriptions, and campaign videos.
package entity

import "time"

// ContactSubmission is a message sent through the contact form.
// Submissions are append-only; there is no deduplication on contact
// messages.
type ContactSubmission struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	Message   string
	Locale    string // "tr" or "en", defaults to "tr"
	CreatedAt time.Time
}
