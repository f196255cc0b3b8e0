package entity

import "time"

// PetitionSignature is a single signature on the campaign petition.
// Email is the natural key: one signature per email, enforced by a
// unique constraint in the store.
type PetitionSignature struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	City      string // optional
	Locale    string
	CreatedAt time.Time
}
