package client

import (
	"context"
	"regexp"
	"strings"

	"codeberg.org/devassist/server/internal/sse"
)

const (
	StepComponent  = "component"
	StepDockerfile = "dockerfile"
	StepUnitTests  = "unit-tests"
	StepGuide      = "guide"
	StepCommands   = "commands"
	StepOptimize   = "optimize"
	StepExplain    = "explain"
)

var codeBlock = regexp.MustCompile("(?s)```.*?```")

// reports whether markdown contains a fenced code block
func HasCodeBlocks(markdown string) bool {
	return codeBlock.MatchString(markdown)
}

func (c *Client) GenerateComponent(ctx context.Context, provider, description string, onEvent EventFunc) (*Result, error) {
	return c.Stream(ctx, "/api/generate-component", toolRequest{
		Description: description,
		Provider:    provider,
	}, step(StepComponent, onEvent))
}

func (c *Client) GenerateDockerfile(ctx context.Context, provider, description string, onEvent EventFunc) (*Result, error) {
	return c.Stream(ctx, "/api/generate-dockerfile", toolRequest{
		Description: description,
		Provider:    provider,
	}, step(StepDockerfile, onEvent))
}

func (c *Client) GenerateUnitTests(ctx context.Context, provider, code string, onEvent EventFunc) (*Result, error) {
	return c.Stream(ctx, "/api/generate-unit-tests", toolRequest{
		Code:     code,
		Provider: provider,
	}, step(StepUnitTests, onEvent))
}

// streams a guide, then extracts its commands when it has any
func (c *Client) Troubleshoot(ctx context.Context, provider, description string, onEvent EventFunc) (*Troubleshooting, error) {
	guide, err := c.Stream(ctx, "/api/network-troubleshooting", toolRequest{
		Description: description,
		Provider:    provider,
		Mode:        "troubleshoot",
	}, step(StepGuide, onEvent))

	out := &Troubleshooting{Guide: guide}
	if err != nil {
		return out, err
	}

	text := strings.TrimSpace(guide.Artifact)
	if guide.IsHelpful || guide.TokenLimitReached || text == "" || !HasCodeBlocks(text) {
		return out, nil
	}

	out.Commands, err = c.Stream(ctx, "/api/network-troubleshooting", toolRequest{
		TroubleshootingGuide: text,
		Provider:             provider,
		Mode:                 "extract-code",
	}, step(StepCommands, onEvent))

	return out, err
}

// streams an optimized query, then an explanation of what changed
func (c *Client) OptimizeSQL(ctx context.Context, provider, query string, onEvent EventFunc) (*Optimization, error) {
	original := strings.TrimSpace(query)

	optimized, err := c.Stream(ctx, "/api/optimize-sql", toolRequest{
		Query:    original,
		Provider: provider,
		Mode:     "optimize",
	}, step(StepOptimize, onEvent))

	out := &Optimization{Query: optimized}
	if err != nil {
		return out, err
	}

	text := strings.TrimSpace(optimized.Artifact)
	if optimized.IsHelpful || optimized.TokenLimitReached || text == "" {
		return out, nil
	}

	out.Explanation, err = c.Stream(ctx, "/api/optimize-sql", toolRequest{
		OriginalQuery:  original,
		OptimizedQuery: text,
		Provider:       provider,
		Mode:           "explain",
	}, step(StepExplain, onEvent))

	return out, err
}

func step(name string, onEvent EventFunc) func(sse.Event) {
	if onEvent == nil {
		return nil
	}

	return func(ev sse.Event) {
		onEvent(name, ev)
	}
}
