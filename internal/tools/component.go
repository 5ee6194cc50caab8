package tools

import (
	"fmt"

	"codeberg.org/devassist/server/internal/budget"
	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/validator"
)

const (
	componentThreshold = 70
	componentMaxTokens = 1000
	componentReject    = "I can only generate React components with TypeScript. Please describe a React component you'd like me to create."
)

var Component = Tool{
	Name: "component",
	Policy: validator.Policy{
		Tool:          "component",
		Threshold:     componentThreshold,
		RejectMessage: componentReject,
		BuildPrompt: func(input string) string {
			return validationPrompt("React Component Generator", "generating a React component", componentThreshold, []string{
				"Answer general questions",
				"Generate non-React code",
				"Provide explanations or tutorials",
				"Generate backend code, APIs, or server-side code",
				"Generate CSS files, configuration files, or other non-component code",
			}, componentReject, input)
		},
	},
	Budget:        budget.Options{MaxTokens: componentMaxTokens, StripFences: true},
	LimitMessage:  limitMessage(componentMaxTokens),
	FailurePrefix: "Failed to generate component",
	Generate: func(description string) llm.Request {
		return llm.Request{
			System: `You are an expert React developer. Generate clean, production-ready React components with TypeScript.
Return ONLY the component code, no explanations, no markdown code blocks, no additional text.
The component should be a complete, functional React component that can be used directly.`,
			Prompt:          fmt.Sprintf("Generate a React component with TypeScript based on this description: %s", description),
			Temperature:     generationTemperature,
			MaxOutputTokens: 2000,
		}
	},
	Helpful: func(description string) llm.Request {
		return helpfulRequest("React component generation", "describe a React component they'd like to create", description)
	},
}
