package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-1.5-flash"

type GeminiProvider struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
}

// creates a Gemini adapter; BaseURL overrides the API host (the version path is added by the SDK)
func NewGemini(pc ProviderConfig) (*GeminiProvider, error) {
	if pc.Model == "" {
		pc.Model = defaultGeminiModel
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     pc.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: providerHTTPClient,
	}

	if pc.BaseURL != "" {
		clientConfig.HTTPOptions.BaseURL = strings.TrimRight(pc.BaseURL, "/") + "/"
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client:  client,
		model:   pc.Model,
		limiter: newLimiter(pc),
	}, nil
}

func (p *GeminiProvider) Name() Name {
	return Gemini
}

func (p *GeminiProvider) Complete(ctx context.Context, req Request) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, geminiContents(req), geminiConfig(req))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return geminiText(resp)
}

func (p *GeminiProvider) Stream(ctx context.Context, req Request) (TextStream, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	seq := p.client.Models.GenerateContentStream(ctx, p.model, geminiContents(req), geminiConfig(req))
	next, stop := iter.Pull2(seq)

	stream := &geminiStream{next: next, stop: stop}

	// pull the first response so request failures surface before any fragment
	text, err := stream.Recv()
	if errors.Is(err, io.EOF) {
		return stream, nil
	}

	if err != nil {
		stream.Close() //nolint:errcheck,gosec // nothing was handed out yet
		return nil, err
	}

	stream.head = &text

	return stream, nil
}

func geminiContents(req Request) []*genai.Content {
	return []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
}

func geminiConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: int32(req.MaxOutputTokens), //nolint:gosec // small positive budgets
	}

	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(req.System)}}
	}

	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	return cfg
}

// concatenates the text parts of the first candidate
func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", nil
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("Gemini API error: prompt blocked (%s)", resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			b.WriteString(part.Text)
		}
	}

	return b.String(), nil
}

// pull adapter over the SDK's response iterator
type geminiStream struct {
	next func() (*genai.GenerateContentResponse, error, bool)
	stop func()

	// first fragment, already pulled by Stream
	head *string
	done bool
}

func (s *geminiStream) Recv() (string, error) {
	if s.head != nil {
		text := *s.head
		s.head = nil
		return text, nil
	}

	if s.done {
		return "", io.EOF
	}

	resp, err, ok := s.next()
	if !ok {
		s.done = true
		return "", io.EOF
	}

	if err != nil {
		s.done = true
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return geminiText(resp)
}

func (s *geminiStream) Close() error {
	s.done = true
	s.head = nil
	s.stop()
	return nil
}
