// Package llmtest provides a scripted llm.Provider for tests.
package llmtest

import (
	"context"
	"errors"
	"io"
	"sync"

	"codeberg.org/devassist/server/internal/llm"
)

var (
	ErrNoCompletion = errors.New("llmtest: no completion queued")
	ErrNoStream     = errors.New("llmtest: no stream queued")
)

type completion struct {
	text string
	err  error
}

type script struct {
	fragments []string
	err       error
	openErr   error
}

// fake provider that replays queued completions and streams in order
type Provider struct {
	name llm.Name

	mu          sync.Mutex
	completions []completion
	scripts     []script
	requests    []llm.Request
	streams     []*Stream
}

func New(name llm.Name) *Provider {
	return &Provider{name: name}
}

// queues the result of the next Complete call
func (p *Provider) QueueCompletion(text string, err error) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.completions = append(p.completions, completion{text: text, err: err})
	return p
}

// queues the next stream; err, when set, is returned after the fragments
func (p *Provider) QueueStream(fragments []string, err error) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.scripts = append(p.scripts, script{fragments: fragments, err: err})
	return p
}

// makes the next Stream call fail before any fragment
func (p *Provider) QueueStreamError(err error) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.scripts = append(p.scripts, script{openErr: err})
	return p
}

// returns every request seen so far
func (p *Provider) Requests() []llm.Request {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]llm.Request(nil), p.requests...)
}

// returns every stream handed out so far
func (p *Provider) Streams() []*Stream {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*Stream(nil), p.streams...)
}

func (p *Provider) Name() llm.Name {
	return p.name
}

func (p *Provider) Complete(ctx context.Context, req llm.Request) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.requests = append(p.requests, req)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if len(p.completions) == 0 {
		return "", ErrNoCompletion
	}

	c := p.completions[0]
	p.completions = p.completions[1:]

	return c.text, c.err
}

func (p *Provider) Stream(ctx context.Context, req llm.Request) (llm.TextStream, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.requests = append(p.requests, req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(p.scripts) == 0 {
		return nil, ErrNoStream
	}

	s := p.scripts[0]
	p.scripts = p.scripts[1:]

	if s.openErr != nil {
		return nil, s.openErr
	}

	stream := &Stream{fragments: s.fragments, err: s.err}
	p.streams = append(p.streams, stream)

	return stream, nil
}

// scripted llm.TextStream
type Stream struct {
	mu        sync.Mutex
	fragments []string
	err       error
	pos       int
	closed    bool
}

func (s *Stream) Recv() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", io.ErrClosedPipe
	}

	if s.pos < len(s.fragments) {
		frag := s.fragments[s.pos]
		s.pos++
		return frag, nil
	}

	if s.err != nil {
		return "", s.err
	}

	return "", io.EOF
}

func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// reports whether Close was called
func (s *Stream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// reports how many fragments were pulled
func (s *Stream) Consumed() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pos
}

// source that always hands out the same providers
type Source map[llm.Name]llm.Provider

func (s Source) Get(name llm.Name) (llm.Provider, error) {
	p, ok := s[name]
	if !ok {
		return nil, llm.ErrUnknownProvider
	}

	return p, nil
}
