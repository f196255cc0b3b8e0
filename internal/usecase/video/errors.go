// Package video provides use cases for the admin-managed video catalog.
package video

import "errors"

// ErrVideoNotFound indicates that the requested video does not exist.
// Route handlers map this to HTTP 404.
var ErrVideoNotFound = errors.New("video not found")
