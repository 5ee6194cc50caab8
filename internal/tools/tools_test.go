package tools

import (
	"testing"

	"codeberg.org/devassist/server/internal/langdetect"
	"github.com/stretchr/testify/assert"
)

func TestTools_Limits(t *testing.T) {
	tests := []struct {
		tool        Tool
		threshold   int
		maxTokens   int
		stripFences bool
		message     string
	}{
		{Component, 70, 1000, true, "Token limit reached (1000 tokens maximum). Generation stopped for security."},
		{Dockerfile, 70, 200, true, "Token limit reached (200 tokens maximum). Generation stopped for security."},
		{UnitTests, 30, 1000, true, "Token limit reached (1000 tokens maximum). Generation stopped for security."},
		{Network, 50, 2000, false, "Token limit reached (2000 tokens maximum). Generation stopped for security."},
		{SQL, 70, 1500, true, "Token limit reached (1500 tokens maximum). Generation stopped for security."},
	}

	for _, tt := range tests {
		t.Run(tt.tool.Name, func(t *testing.T) {
			assert.Equal(t, tt.threshold, tt.tool.Policy.Threshold)
			assert.Equal(t, tt.maxTokens, tt.tool.Budget.MaxTokens)
			assert.Equal(t, tt.stripFences, tt.tool.Budget.StripFences)
			assert.Equal(t, tt.message, tt.tool.LimitMessage)
			assert.NotEmpty(t, tt.tool.Policy.RejectMessage)
			assert.NotNil(t, tt.tool.Helpful)
		})
	}
}

func TestTools_PromptsCarryInput(t *testing.T) {
	input := "a node express api with redis"

	for _, tool := range []Tool{Component, Dockerfile, UnitTests, Network, SQL} {
		t.Run(tool.Name, func(t *testing.T) {
			assert.Contains(t, tool.Generate(input).Prompt, input)
			assert.Contains(t, tool.Helpful(input).Prompt, input)
			assert.Contains(t, tool.Policy.BuildPrompt(input), input)
			assert.Contains(t, tool.Policy.BuildPrompt(input), `"relevance"`)
		})
	}
}

func TestUnitTestRequest(t *testing.T) {
	req := UnitTestRequest("def add(a, b):\n    return a + b", langdetect.InfoFor(langdetect.Python))

	assert.Contains(t, req.System, "pytest")
	assert.Contains(t, req.System, "Python")
	assert.Contains(t, req.Prompt, "return a + b")
}

func TestUnitTestRequest_UnknownLanguage(t *testing.T) {
	req := UnitTestRequest("hello there", langdetect.InfoFor(langdetect.Unknown))

	assert.NotContains(t, req.System, "Unknown")
	assert.Contains(t, req.System, "standard test framework")
	assert.Contains(t, req.Prompt, "hello there")
}

func TestUnitTests_GenerateUsesPatternDetection(t *testing.T) {
	req := UnitTests.Generate("def add(a, b):\n    return a + b")

	assert.Contains(t, req.System, "pytest")
	assert.Contains(t, req.Prompt, "python code")
}

func TestFollowUpTasks(t *testing.T) {
	explain := SQLExplanation("SELECT * FROM t", "SELECT id FROM t")
	assert.Equal(t, 1500, explain.Budget.MaxTokens)
	assert.Equal(t, "Token limit reached. Explanation truncated.", explain.LimitMessage)
	assert.Contains(t, explain.Request.Prompt, "SELECT * FROM t")
	assert.Contains(t, explain.Request.Prompt, "SELECT id FROM t")

	extract := CommandExtraction("Run `ping 8.8.8.8`")
	assert.True(t, extract.Budget.StripFences)
	assert.Contains(t, extract.Request.Prompt, "ping 8.8.8.8")
}
