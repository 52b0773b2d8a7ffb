package server

import (
	"bytes"
	"net/http"
)

const maxRecordedBody = 4 << 10

// capturingWriter records the status and the head of the body of a response
// on its way to the client.
type capturingWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	head        bytes.Buffer
	truncated   bool
}

func newCapturingWriter(w http.ResponseWriter) *capturingWriter {
	return &capturingWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *capturingWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	room := maxRecordedBody - w.head.Len()
	switch {
	case room >= len(b):
		w.head.Write(b)
	case room > 0:
		w.head.Write(b[:room])
		w.truncated = true
	default:
		w.truncated = len(b) > 0 || w.truncated
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *capturingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *capturingWriter) Status() int {
	return w.status
}

// Body returns the recorded head, marked when the response was longer.
func (w *capturingWriter) Body() string {
	if w.truncated {
		return w.head.String() + "...(truncated)"
	}
	return w.head.String()
}
