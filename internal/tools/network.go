package tools

import (
	"fmt"

	"codeberg.org/devassist/server/internal/budget"
	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/validator"
)

const (
	networkThreshold   = 50
	networkMaxTokens   = 2000
	extractionMaxToken = 1000
	networkReject      = "I can only help troubleshoot network problems. Please describe the connectivity issue you're seeing."
)

var Network = Tool{
	Name: "network",
	Policy: validator.Policy{
		Tool:          "network",
		Threshold:     networkThreshold,
		RejectMessage: networkReject,
		BuildPrompt: func(input string) string {
			return validationPrompt("Network Troubleshooting Assistant", "diagnosing a network, connectivity, DNS, routing, firewall or latency problem", networkThreshold, []string{
				"Answer general questions",
				"Write application code",
				"Help with problems unrelated to networks",
			}, networkReject, input)
		},
	},
	Budget:        budget.Options{MaxTokens: networkMaxTokens},
	LimitMessage:  limitMessage(networkMaxTokens),
	FailurePrefix: processFailurePrefix,
	Generate: func(description string) llm.Request {
		return llm.Request{
			System: `You are a senior network engineer. Write a step-by-step troubleshooting guide in Markdown.
Start with the most likely causes, give the exact diagnostic commands for Linux, macOS and Windows in fenced code blocks, and explain how to read their output.
Finish with a short list of fixes ordered from least to most invasive.`,
			Prompt:          fmt.Sprintf("Help me troubleshoot this network problem: %s", description),
			Temperature:     generationTemperature,
			MaxOutputTokens: 3000,
		}
	},
	Helpful: func(description string) llm.Request {
		return helpfulRequest("network troubleshooting", "describe the network problem they're experiencing", description)
	},
}

// pulls the runnable commands out of a troubleshooting guide
func CommandExtraction(guide string) Task {
	return Task{
		Name: "network-extract",
		Request: llm.Request{
			System: `You extract runnable commands from troubleshooting guides.
Return ONLY the commands as a single script with one short comment line above each group, no explanations, no markdown code blocks.
Keep the order used in the guide and drop commands that only make sense as illustrations.`,
			Prompt:          fmt.Sprintf("Extract the commands from this troubleshooting guide:\n\n%s", guide),
			Temperature:     0.2,
			MaxOutputTokens: 1500,
		},
		Budget:        budget.Options{MaxTokens: extractionMaxToken, StripFences: true},
		LimitMessage:  "Token limit reached. Command extraction truncated.",
		FailurePrefix: processFailurePrefix,
	}
}
