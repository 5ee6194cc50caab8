package pipeline

import (
	"time"

	"codeberg.org/devassist/server/internal/langdetect"
	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/sse"
	"codeberg.org/devassist/server/internal/validator"
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateDetecting  State = "detecting"
	StateHelpful    State = "helpful_responding"
	StateGenerating State = "generating"
	StateDone       State = "done"
	StateError      State = "error"
)

// receives the events of one request in order
type Sink interface {
	Send(ev sse.Event) error
}

// how a run ended
type Outcome struct {
	State             State
	Helpful           bool
	TokenLimitReached bool
	Err               error
}

// picks a language detector for the request's provider
type DetectorFunc func(provider llm.Provider) langdetect.Detector

type Options struct {
	Validator *validator.Validator
	Detector  DetectorFunc

	// upper bound on one request, validation included
	Timeout time.Duration
}
