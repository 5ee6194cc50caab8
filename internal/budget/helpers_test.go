package budget

import "codeberg.org/devassist/server/internal/llm"

func llmRequest() llm.Request {
	return llm.Request{Prompt: "test"}
}
