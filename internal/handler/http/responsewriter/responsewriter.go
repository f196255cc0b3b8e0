// Package responsewriter records the status code and body size of a
// response as it is written, for the request log and metrics lines.
package responsewriter

import (
	"net/http"
)

// Recorder wraps an http.ResponseWriter and observes what the handler
// writes. The zero status is 200 since net/http sends that when a
// handler writes a body without an explicit WriteHeader.
type Recorder struct {
	http.ResponseWriter

	status    int
	bytes     int
	committed bool
}

func Wrap(w http.ResponseWriter) *Recorder {
	return &Recorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader forwards the first status code and drops repeats, which
// net/http would log as superfluous calls.
func (rec *Recorder) WriteHeader(status int) {
	if rec.committed {
		return
	}
	rec.status = status
	rec.committed = true
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *Recorder) Write(p []byte) (int, error) {
	if !rec.committed {
		rec.WriteHeader(http.StatusOK)
	}
	n, err := rec.ResponseWriter.Write(p)
	rec.bytes += n
	return n, err
}

// StatusCode returns the status sent to the client, or 200 when the
// handler never wrote one.
func (rec *Recorder) StatusCode() int {
	return rec.status
}

// BytesWritten returns the total body bytes written so far.
func (rec *Recorder) BytesWritten() int {
	return rec.bytes
}

// Unwrap exposes the underlying writer for http.ResponseController.
func (rec *Recorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}
