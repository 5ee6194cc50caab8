// Package budget caps a provider stream at an estimated token budget and
// strips the markdown fence models like to wrap code in.
package budget

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"

	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/tokens"
)

// appended once when the budget runs out
const LimitMarker = "\n\n[TOKEN_LIMIT_REACHED]"

type Kind int

const (
	KindText Kind = iota
	KindLimit
)

type Fragment struct {
	Kind Kind
	Text string
}

type Options struct {
	// zero disables the budget
	MaxTokens int

	// remove a leading ```lang fence and its closing ```
	StripFences bool
}

var (
	openFence  = regexp.MustCompile("(?i)^```[a-z0-9+#.-]*[ \\t]*\\r?\\n?")
	closeFence = regexp.MustCompile("```\\s*$")
	fenceTag   = regexp.MustCompile(`(?i)^[a-z0-9+#.-]*[ \t]*\r?\n`)
	tagOnly    = regexp.MustCompile(`(?i)^[a-z0-9+#.-]+$`)
)

// wraps a provider stream; not safe for concurrent use
type Stream struct {
	src  llm.TextStream
	opts Options

	total   int
	done    bool
	pending []Fragment

	seenFirst  bool
	inFence    bool
	tagPending bool

	// trailing backticks that may start a closing fence split across fragments
	held string
}

func NewStream(src llm.TextStream, opts Options) *Stream {
	return &Stream{src: src, opts: opts}
}

// returns the next fragment, or io.EOF once the stream or the budget is exhausted
func (s *Stream) Next() (Fragment, error) {
	for {
		if len(s.pending) > 0 {
			f := s.pending[0]
			s.pending = s.pending[1:]
			return f, nil
		}

		if s.done {
			return Fragment{}, io.EOF
		}

		text, err := s.src.Recv()
		if errors.Is(err, io.EOF) {
			s.done = true
			s.flushHeld()
			continue
		}

		if err != nil {
			s.done = true
			return Fragment{}, fmt.Errorf("generation failed: %w", err)
		}

		if text == "" {
			continue
		}

		cost := tokens.Estimate(text)
		s.total += cost

		if s.opts.MaxTokens > 0 && s.total >= s.opts.MaxTokens {
			s.truncate(text, cost)
			continue
		}

		if out := s.clean(text); out != "" {
			return Fragment{Kind: KindText, Text: out}, nil
		}
	}
}

// reports whether the budget cut the stream short
func (s *Stream) LimitReached() bool {
	return s.opts.MaxTokens > 0 && s.total >= s.opts.MaxTokens
}

// releases the upstream stream
func (s *Stream) Close() error {
	s.done = true
	return s.src.Close()
}

// queues the share of text that still fits, then the marker, and stops reading
func (s *Stream) truncate(text string, cost int) {
	s.done = true

	remaining := s.opts.MaxTokens - (s.total - cost)
	if remaining > 0 && cost > 0 {
		runes := []rune(text)
		allowed := int(math.Floor(float64(remaining) * float64(len(runes)) / float64(cost)))

		if allowed > len(runes) {
			allowed = len(runes)
		}

		if allowed > 0 {
			if out := s.clean(string(runes[:allowed])); out != "" {
				s.pending = append(s.pending, Fragment{Kind: KindText, Text: out})
			}
		}
	}

	s.flushHeld()
	s.pending = append(s.pending, Fragment{Kind: KindLimit, Text: LimitMarker})
	s.src.Close() //nolint:errcheck,gosec // nothing more will be read
}

// applies fence stripping to one non-empty fragment
func (s *Stream) clean(text string) string {
	if !s.opts.StripFences {
		return text
	}

	if !s.seenFirst {
		s.seenFirst = true

		trimmed := strings.TrimLeft(text, " \t\r\n")
		if !strings.HasPrefix(trimmed, "```") {
			return text
		}

		s.inFence = true
		opening := openFence.FindString(trimmed)
		text = trimmed[len(opening):]

		// the language tag may arrive in the next fragment
		s.tagPending = !strings.Contains(opening, "\n") && text == ""

		return s.closeFence(text)
	}

	if s.tagPending {
		switch {
		case fenceTag.MatchString(text):
			text = fenceTag.ReplaceAllString(text, "")
			s.tagPending = false
		case tagOnly.MatchString(text):
			return ""
		default:
			s.tagPending = false
		}
	}

	return s.closeFence(text)
}

func (s *Stream) closeFence(text string) string {
	if !s.inFence {
		return text
	}

	text = s.held + text
	s.held = ""

	if strings.Contains(text, "```") {
		s.inFence = false
		return closeFence.ReplaceAllString(text, "")
	}

	// at most two backticks can trail here; keep them until the next fragment decides
	trimmed := strings.TrimRight(text, "`")
	s.held = text[len(trimmed):]

	return trimmed
}

// queues backticks that turned out not to be a closing fence
func (s *Stream) flushHeld() {
	if s.held == "" {
		return
	}

	s.pending = append(s.pending, Fragment{Kind: KindText, Text: s.held})
	s.held = ""
}
