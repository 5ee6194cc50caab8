package sse

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

var (
	ErrClosed       = errors.New("event stream already terminated")
	ErrNotStreaming = errors.New("response writer does not support flushing")
)

// writes events as "data: <json>\n\n" frames and refuses anything after a terminal event
type Writer struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	closed  bool
}

// sends the event-stream headers and returns a writer for the body
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrNotStreaming
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &Writer{w: w, flusher: flusher}, nil
}

func (w *Writer) Send(ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	data, err := Encode(ev)
	if err != nil {
		return err
	}

	if IsTerminal(ev) {
		w.closed = true
	}

	if _, err := fmt.Fprintf(w.w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	w.flusher.Flush()

	return nil
}

// reports whether a terminal event was sent
func (w *Writer) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.closed
}
