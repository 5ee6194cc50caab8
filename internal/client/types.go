package client

import (
	"errors"
	"fmt"

	"codeberg.org/devassist/server/internal/sse"
)

// the body ended without a done or error event
var ErrAbnormalTermination = errors.New("stream ended without a done or error event")

// a terminal error event sent by the server
type StreamError struct {
	Message string
}

func (e *StreamError) Error() string {
	return e.Message
}

// a request refused before the stream opened
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

// everything a single stream delivered
type Result struct {
	// generated code or prose
	Artifact string

	// redirect text when the request was off topic
	Helpful   string
	IsHelpful bool

	Language *sse.LanguageDetected

	TokenLimitReached bool
	TokenLimitMessage string
}

// text the stream produced, whichever buffer it went to
func (r *Result) Text() string {
	if r.IsHelpful {
		return r.Helpful
	}

	return r.Artifact
}

// called for every event as it arrives
type EventFunc func(step string, ev sse.Event)

// guide plus the commands extracted from it
type Troubleshooting struct {
	Guide    *Result
	Commands *Result
}

// optimized query plus its explanation
type Optimization struct {
	Query       *Result
	Explanation *Result
}

type toolRequest struct {
	Description          string `json:"description,omitempty"`
	Code                 string `json:"code,omitempty"`
	Query                string `json:"query,omitempty"`
	OriginalQuery        string `json:"originalQuery,omitempty"`
	OptimizedQuery       string `json:"optimizedQuery,omitempty"`
	TroubleshootingGuide string `json:"troubleshootingGuide,omitempty"`
	Provider             string `json:"provider"`
	Mode                 string `json:"mode,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}
