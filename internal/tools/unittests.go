package tools

import (
	"fmt"

	"codeberg.org/devassist/server/internal/budget"
	"codeberg.org/devassist/server/internal/langdetect"
	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/validator"
)

const (
	unitTestsThreshold = 30
	unitTestsMaxTokens = 1000
	unitTestsReject    = "I can only generate unit tests for source code. Please paste the code you'd like tests for."

	// submissions longer than this are rejected before validation
	MaxUnitTestLines = 1000

	UnknownLanguageMessage = "Could not detect code language. Please ensure your code is valid and recognizable."
)

// the pipeline detects the language first and calls UnitTestRequest; Generate falls back to the pattern table
var UnitTests = Tool{
	Name: "unit-tests",
	Policy: validator.Policy{
		Tool:          "unit-tests",
		Threshold:     unitTestsThreshold,
		RejectMessage: unitTestsReject,
		BuildPrompt: func(code string) string {
			return validationPrompt("Unit Test Generator", "source code that unit tests can be written for", unitTestsThreshold, []string{
				"Answer general questions",
				"Generate tests for prose, configuration without logic, or natural-language descriptions",
				"Write new application features",
			}, unitTestsReject, code)
		},
	},
	Budget:        budget.Options{MaxTokens: unitTestsMaxTokens, StripFences: true},
	LimitMessage:  limitMessage(unitTestsMaxTokens),
	FailurePrefix: "Failed to generate unit tests",
	Generate: func(code string) llm.Request {
		return UnitTestRequest(code, langdetect.Classify(code))
	},
	Helpful: func(code string) llm.Request {
		return helpfulRequest("unit test generation", "paste the source code they'd like unit tests for", code)
	},
}

// builds the generation prompt for code in the detected language
func UnitTestRequest(code string, info langdetect.Info) llm.Request {
	display, framework, language := info.DisplayName, info.Framework, string(info.Language)

	if info.Language == langdetect.Unknown || info.Framework == "" {
		display, framework, language = "polyglot", "the standard test framework of the code's language", "source"
	}

	return llm.Request{
		System: fmt.Sprintf(`You are an expert %s developer who writes thorough unit tests with %s.
Cover the happy path, edge cases and error handling of every public function.
Return ONLY the test code, no explanations, no markdown code blocks, no additional text.
The tests must be complete and runnable as a single test file.`, display, framework),
		Prompt:          fmt.Sprintf("Generate unit tests using %s for this %s code:\n\n%s", framework, language, code),
		Temperature:     generationTemperature,
		MaxOutputTokens: 3000,
	}
}
