package sse

import (
	"bufio"
	"io"
	"strings"

	"codeberg.org/devassist/server/internal/logger"
)

const maxFrameSize = 1024 * 1024

// reads events from an event-stream body, skipping noise
type Reader struct {
	scanner   *bufio.Scanner
	malformed int
}

func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)

	return &Reader{scanner: scanner}
}

// returns the next well-formed event or io.EOF
func (r *Reader) Next() (Event, error) {
	for r.scanner.Scan() {
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "data: ") {
			r.skip(line, nil)
			continue
		}

		ev, err := Decode([]byte(strings.TrimPrefix(line, "data: ")))
		if err != nil {
			r.skip(line, err)
			continue
		}

		return ev, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	return nil, io.EOF
}

// number of lines ignored so far
func (r *Reader) Malformed() int {
	return r.malformed
}

func (r *Reader) skip(line string, err error) {
	r.malformed++

	if len(line) > 120 {
		line = line[:120]
	}

	logger.Debug("ignoring malformed event line", "line", line, "error", err)
}
