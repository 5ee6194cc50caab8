// Package tools holds the prompts and limits of each developer tool.
package tools

import (
	"fmt"

	"codeberg.org/devassist/server/internal/budget"
	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/validator"
)

const (
	generationTemperature = 0.7
	helpfulTemperature    = 0.7
	helpfulMaxTokens      = 500

	// generic prefix for tools that have more than one mode
	processFailurePrefix = "Failed to process request"
)

// a validated generation tool
type Tool struct {
	Name          string
	Policy        validator.Policy
	Budget        budget.Options
	LimitMessage  string
	FailurePrefix string

	// prompt for the artifact when the request is on topic
	Generate func(input string) llm.Request

	// prompt for the redirecting answer when it is not
	Helpful func(input string) llm.Request
}

// an unvalidated follow-up generation (SQL explanation, command extraction)
type Task struct {
	Name          string
	Request       llm.Request
	Budget        budget.Options
	LimitMessage  string
	FailurePrefix string
}

func limitMessage(maxTokens int) string {
	return fmt.Sprintf("Token limit reached (%d tokens maximum). Generation stopped for security.", maxTokens)
}

// builds the short redirect reply shared by every tool
func helpfulRequest(scope, ask, input string) llm.Request {
	return llm.Request{
		System: fmt.Sprintf(`You are an assistant for a %s app.
When users ask questions that are NOT primarily about %s, you must:
1. Politely inform them that this app can ONLY help with %s
2. Be direct and clear - do not answer their unrelated question
3. Encourage them to %s

Keep your response brief, clear, and focused. Maximum 2-3 sentences.`, scope, scope, scope, ask),
		Prompt:          fmt.Sprintf("The user asked: %q\n\nRespond by letting them know what this app can do and ask them to %s.", input, ask),
		Temperature:     helpfulTemperature,
		MaxOutputTokens: helpfulMaxTokens,
	}
}

// builds the validation question shared by every tool
func validationPrompt(app, focus string, threshold int, cannot []string, reject, input string) string {
	list := ""
	for _, c := range cannot {
		list += "- " + c + "\n"
	}

	return fmt.Sprintf(`You are a validation assistant for a %s app.
Your task is to determine if the user's request is AT LEAST %d%% about %s.

The app cannot:
%s
IMPORTANT: The request must be at least %d%% focused on %s. If it's less than %d%% related, it's invalid.

Respond with ONLY a JSON object in this exact format:
{"isValid": true, "relevance": <number 0-100>} if the request is at least %d%% about %s
{"isValid": false, "relevance": <number 0-100>, "message": %q} otherwise

User request: %q

Respond with ONLY the JSON, no additional text:`,
		app, threshold, focus, list, threshold, focus, threshold, threshold, focus, reject, input)
}
