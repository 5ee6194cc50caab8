// Package pipeline drives one tool request from validation to the final event.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"codeberg.org/devassist/server/internal/budget"
	"codeberg.org/devassist/server/internal/langdetect"
	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/logger"
	"codeberg.org/devassist/server/internal/metrics"
	"codeberg.org/devassist/server/internal/sse"
	"codeberg.org/devassist/server/internal/tools"
	"codeberg.org/devassist/server/internal/validator"
)

const defaultTimeout = 3 * time.Minute

var errIncompleteTool = errors.New("tool has no generation or helpful prompt")

type Pipeline struct {
	validator *validator.Validator
	detector  DetectorFunc
	timeout   time.Duration
}

func New(opts Options) *Pipeline {
	p := &Pipeline{
		validator: opts.Validator,
		detector:  opts.Detector,
		timeout:   opts.Timeout,
	}

	if p.validator == nil {
		p.validator = validator.New(0)
	}

	if p.detector == nil {
		p.detector = func(provider llm.Provider) langdetect.Detector {
			return langdetect.NewModelDetector(provider)
		}
	}

	if p.timeout <= 0 {
		p.timeout = defaultTimeout
	}

	return p
}

// validates input, then streams either the artifact or a helpful redirect
func (p *Pipeline) RunValidated(ctx context.Context, provider llm.Provider, tool tools.Tool, input string, sink Sink) Outcome {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	r := p.newRun(ctx, tool.Name, provider, sink)

	if tool.Generate == nil || tool.Helpful == nil {
		return r.finish(r.fail(tool.FailurePrefix+": tool is not runnable", errIncompleteTool))
	}

	r.transition(StateValidating)
	result := p.validator.Validate(ctx, provider, tool.Policy, input)

	if !result.IsValid {
		r.log.Info("request off topic, sending helpful response", "relevance", result.Relevance)
		return r.finish(r.helpful(ctx, tool, input))
	}

	r.transition(StateGenerating)

	return r.finish(r.relay(ctx, tool.Generate(input), tool.Budget, tool.LimitMessage, tool.FailurePrefix, false))
}

// validates code, detects its language and streams tests for it
func (p *Pipeline) RunUnitTests(ctx context.Context, provider llm.Provider, code string, sink Sink) Outcome {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	tool := tools.UnitTests
	r := p.newRun(ctx, tool.Name, provider, sink)

	r.transition(StateValidating)
	result := p.validator.Validate(ctx, provider, tool.Policy, code)

	if !result.IsValid {
		r.log.Info("request off topic, sending helpful response", "relevance", result.Relevance)
		return r.finish(r.helpful(ctx, tool, code))
	}

	r.transition(StateDetecting)

	info, err := p.detector(provider).Detect(ctx, code)
	if err != nil {
		return r.finish(r.fail(detectionMessage(err), err))
	}

	if err := r.send(sse.LanguageDetected{
		Language:    string(info.Language),
		Framework:   info.Framework,
		DisplayName: info.DisplayName,
	}); err != nil {
		return r.finish(r.abort(err))
	}

	if info.Language == langdetect.Unknown {
		return r.finish(r.fail(tools.UnknownLanguageMessage, nil))
	}

	r.log.Debug("language detected", "language", info.Language, "framework", info.Framework)
	r.transition(StateGenerating)

	return r.finish(r.relay(ctx, tools.UnitTestRequest(code, info), tool.Budget, tool.LimitMessage, tool.FailurePrefix, false))
}

// streams a follow-up task without validation
func (p *Pipeline) RunTask(ctx context.Context, provider llm.Provider, task tools.Task, sink Sink) Outcome {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	r := p.newRun(ctx, task.Name, provider, sink)
	r.transition(StateGenerating)

	return r.finish(r.relay(ctx, task.Request, task.Budget, task.LimitMessage, task.FailurePrefix, false))
}

func detectionMessage(err error) string {
	var de *langdetect.DetectionError
	if errors.As(err, &de) {
		return "Language detection failed: " + de.Cause.Error()
	}

	return "Language detection failed: " + err.Error()
}

// state of one request
type run struct {
	tool     string
	provider llm.Provider
	sink     Sink
	log      *slog.Logger
	state    State
	start    time.Time
}

func (p *Pipeline) newRun(ctx context.Context, tool string, provider llm.Provider, sink Sink) *run {
	return &run{
		tool:     tool,
		provider: provider,
		sink:     sink,
		log:      logger.FromContext(ctx).With("tool", tool, "provider", provider.Name()),
		state:    StateIdle,
		start:    time.Now(),
	}
}

func (r *run) transition(to State) {
	r.log.Debug("pipeline transition", "from", r.state, "to", to)
	r.state = to
}

func (r *run) send(ev sse.Event) error {
	return r.sink.Send(ev)
}

func (r *run) helpful(ctx context.Context, tool tools.Tool, input string) Outcome {
	r.transition(StateHelpful)

	// redirects are short prose, no budget or fence handling
	return r.relay(ctx, tool.Helpful(input), budget.Options{}, tool.LimitMessage, tool.FailurePrefix, true)
}

// pumps provider fragments through the budget into the sink
func (r *run) relay(ctx context.Context, req llm.Request, opts budget.Options, limitMessage, failurePrefix string, helpful bool) Outcome {
	upstream, err := r.provider.Stream(ctx, req)
	if err != nil {
		return r.fail(fmt.Sprintf("%s: %s", failurePrefix, err), err)
	}

	stream := budget.NewStream(upstream, opts)
	defer stream.Close() //nolint:errcheck

	limitReached := false

	for {
		frag, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return r.fail(fmt.Sprintf("%s: %s", failurePrefix, err), err)
		}

		var ev sse.Event = sse.Chunk{Text: frag.Text, IsHelpfulResponse: helpful}
		if frag.Kind == budget.KindLimit {
			limitReached = true
			ev = sse.TokenLimit{Message: limitMessage}
		}

		if err := r.send(ev); err != nil {
			return r.abort(err)
		}
	}

	if err := r.send(sse.Done{IsHelpfulResponse: helpful, TokenLimitReached: limitReached}); err != nil {
		return r.abort(err)
	}

	r.transition(StateDone)

	return Outcome{State: StateDone, Helpful: helpful, TokenLimitReached: limitReached}
}

// sends the terminal error event
func (r *run) fail(message string, cause error) Outcome {
	r.transition(StateError)
	r.log.Warn("generation failed", "message", message, "error", cause)

	if err := r.send(sse.Error{Message: message}); err != nil {
		r.log.Debug("could not deliver error event", "error", err)
	}

	if cause == nil {
		cause = errors.New(message)
	}

	return Outcome{State: StateError, Err: cause}
}

// the client went away or the sink is closed; nothing more can be delivered
func (r *run) abort(err error) Outcome {
	r.transition(StateError)
	r.log.Info("stream aborted", "error", err)

	return Outcome{State: StateError, Err: err}
}

func (r *run) finish(out Outcome) Outcome {
	result := string(out.State)
	if out.State == StateDone && out.Helpful {
		result = "helpful"
	}

	metrics.GenerationRequests.WithLabelValues(r.tool, string(r.provider.Name()), result).Inc()
	metrics.StreamDuration.WithLabelValues(r.tool).Observe(time.Since(r.start).Seconds())

	if out.TokenLimitReached {
		metrics.TokenLimitHits.WithLabelValues(r.tool).Inc()
	}

	return out
}
