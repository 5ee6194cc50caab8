// Package client consumes the tool endpoints' event streams.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"codeberg.org/devassist/server/internal/sse"
)

const defaultEndpoint = "http://localhost:8080"

// talks to a devassist server
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// creates a client for endpoint; streams are bounded by ctx, not by an http timeout
func New(endpoint string) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{},
	}
}

// creates a client for DEVASSIST_API_ENDPOINT, or localhost
func NewFromEnv() *Client {
	endpoint := os.Getenv("DEVASSIST_API_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return New(endpoint)
}

// posts body to path and consumes the event stream it returns
func (c *Client) Stream(ctx context.Context, path string, body any, onEvent func(sse.Event)) (*Result, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, requestError(resp)
	}

	return consume(sse.NewReader(resp.Body), onEvent)
}

func requestError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024)) //nolint:errcheck

	var body errorResponse
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return &RequestError{Status: resp.StatusCode, Message: body.Error}
	}

	return &RequestError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
}

// folds events into a result until a terminal event arrives
func consume(reader *sse.Reader, onEvent func(sse.Event)) (*Result, error) {
	result := &Result{}
	bucketChosen := false

	for {
		ev, err := reader.Next()
		if stderrors.Is(err, io.EOF) {
			return result, ErrAbnormalTermination
		}

		if err != nil {
			return result, fmt.Errorf("failed to read stream: %w", err)
		}

		if onEvent != nil {
			onEvent(ev)
		}

		switch e := ev.(type) {
		case sse.Chunk:
			// the first chunk decides where the whole stream goes
			if !bucketChosen {
				result.IsHelpful = e.IsHelpfulResponse
				bucketChosen = true
			}

			if result.IsHelpful {
				result.Helpful += e.Text
			} else {
				result.Artifact += e.Text
			}

		case sse.LanguageDetected:
			lang := e
			result.Language = &lang

		case sse.TokenLimit:
			result.TokenLimitReached = true
			result.TokenLimitMessage = e.Message

		case sse.Done:
			if e.IsHelpfulResponse && !bucketChosen {
				result.IsHelpful = true
			}

			if e.TokenLimitReached {
				result.TokenLimitReached = true
			}

			return result, nil

		case sse.Error:
			return result, &StreamError{Message: e.Message}
		}
	}
}
