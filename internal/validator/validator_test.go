package validator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"codeberg.org/devassist/server/internal/llm/llmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy(threshold int) Policy {
	return Policy{
		Tool:          "dockerfile",
		Threshold:     threshold,
		RejectMessage: "I can only generate Dockerfiles.",
		BuildPrompt: func(input string) string {
			return fmt.Sprintf("Is this about Dockerfiles? %q", input)
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		reply     string
		want      Result
	}{
		{
			name:      "on topic",
			threshold: 70,
			reply:     `{"isValid": true, "relevance": 95}`,
			want:      Result{IsValid: true, Relevance: 95},
		},
		{
			name:      "below threshold",
			threshold: 70,
			reply:     `{"isValid": true, "relevance": 60}`,
			want:      Result{IsValid: false, Relevance: 60, Message: "I can only generate Dockerfiles."},
		},
		{
			name:      "lower threshold passes",
			threshold: 30,
			reply:     `{"isValid": true, "relevance": 35}`,
			want:      Result{IsValid: true, Relevance: 35},
		},
		{
			name:      "rejected with model message",
			threshold: 70,
			reply:     `{"isValid": false, "relevance": 5, "message": "Please describe an application to containerize."}`,
			want:      Result{IsValid: false, Relevance: 5, Message: "Please describe an application to containerize."},
		},
		{
			name:      "missing relevance",
			threshold: 70,
			reply:     `{"isValid": true}`,
			want:      Result{IsValid: false, Relevance: 0, Message: "I can only generate Dockerfiles."},
		},
		{
			name:      "relevance clamped",
			threshold: 70,
			reply:     `{"isValid": true, "relevance": 250}`,
			want:      Result{IsValid: true, Relevance: 100},
		},
		{
			name:      "json wrapped in prose",
			threshold: 50,
			reply:     "Sure! ```json\n{\"isValid\": true, \"relevance\": 80.4}\n```",
			want:      Result{IsValid: true, Relevance: 80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := llmtest.New("openai").QueueCompletion(tt.reply, nil)

			got := New(0).Validate(context.Background(), p, testPolicy(tt.threshold), "FROM node")

			assert.Equal(t, tt.want, got)

			reqs := p.Requests()
			require.Len(t, reqs, 1)
			assert.True(t, reqs[0].JSON)
			assert.Equal(t, 200, reqs[0].MaxOutputTokens)
			assert.InDelta(t, 0.3, reqs[0].Temperature, 0.001)
		})
	}
}

func TestValidate_FailsOpen(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{"transport error", "", errors.New("connection refused")},
		{"empty reply", "", nil},
		{"not json", "I think this is fine", nil},
		{"broken json", `{"isValid": tru}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := llmtest.New("gemini").QueueCompletion(tt.reply, tt.err)

			got := New(time.Minute).Validate(context.Background(), p, testPolicy(70), "anything")

			assert.Equal(t, Result{IsValid: true}, got)
		})
	}
}

func TestValidate_CachesSuccessfulResults(t *testing.T) {
	p := llmtest.New("openai").
		QueueCompletion(`{"isValid": false, "relevance": 10}`, nil).
		QueueCompletion(`{"isValid": true, "relevance": 90}`, nil)

	v := New(time.Minute)

	first := v.Validate(context.Background(), p, testPolicy(70), "what is the weather")
	second := v.Validate(context.Background(), p, testPolicy(70), "what is the weather")

	assert.Equal(t, first, second)
	assert.Len(t, p.Requests(), 1, "second call should be served from cache")

	// a different input is a different key
	third := v.Validate(context.Background(), p, testPolicy(70), "node app with redis")
	assert.True(t, third.IsValid)
	assert.Len(t, p.Requests(), 2)
}

func TestValidate_DoesNotCacheFailOpen(t *testing.T) {
	p := llmtest.New("openai").
		QueueCompletion("", errors.New("timeout")).
		QueueCompletion(`{"isValid": false, "relevance": 0}`, nil)

	v := New(time.Minute)

	assert.True(t, v.Validate(context.Background(), p, testPolicy(70), "hello").IsValid)
	assert.False(t, v.Validate(context.Background(), p, testPolicy(70), "hello").IsValid)
}
