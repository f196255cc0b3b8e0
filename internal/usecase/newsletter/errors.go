package newsletter

import "errors"

// ErrAlreadySubscribed is returned when the email already has an
// active subscription.
var ErrAlreadySubscribed = errors.New("already subscribed")
