package entity

import "time"

// NewsletterSubscription is a newsletter signup keyed by email.
// Re-subscribing does not create a second row: the existing row is
// updated in place (name, interests, active flag).
type NewsletterSubscription struct {
	ID           int64
	Email        string
	FirstName    string
	Interests    []string
	Active       bool
	SubscribedAt time.Time
	UpdatedAt    time.Time
}

// NewsletterInterests lists the interest topics a subscriber may pick.
var NewsletterInterests = []string{"news", "events", "boycott", "petitions"}

// IsValidInterest reports whether the given topic is a recognized
// newsletter interest.
func IsValidInterest(topic string) bool {
	for _, v := range NewsletterInterests {
		if v == topic {
			return true
		}
	}
	return false
}
