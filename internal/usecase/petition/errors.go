// Package petition provides use cases for the campaign petition:
// signing and the public signature counter.
package petition

import "errors"

// ErrAlreadySigned indicates that a signature already exists for the
// email address. One signature per email; route handlers map this to
// HTTP 409.
var ErrAlreadySigned = errors.New("already signed")
