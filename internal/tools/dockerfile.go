package tools

import (
	"fmt"

	"codeberg.org/devassist/server/internal/budget"
	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/validator"
)

const (
	dockerfileThreshold = 70
	dockerfileMaxTokens = 200
	dockerfileReject    = "I can only generate Dockerfiles. Please describe the application you'd like to containerize."
)

var Dockerfile = Tool{
	Name: "dockerfile",
	Policy: validator.Policy{
		Tool:          "dockerfile",
		Threshold:     dockerfileThreshold,
		RejectMessage: dockerfileReject,
		BuildPrompt: func(input string) string {
			return validationPrompt("Dockerfile Generator", "generating a Dockerfile or containerizing an application", dockerfileThreshold, []string{
				"Answer general questions",
				"Write application code",
				"Generate docker-compose files, Kubernetes manifests, or CI pipelines",
				"Provide tutorials about Docker",
			}, dockerfileReject, input)
		},
	},
	Budget:        budget.Options{MaxTokens: dockerfileMaxTokens, StripFences: true},
	LimitMessage:  limitMessage(dockerfileMaxTokens),
	FailurePrefix: "Failed to generate Dockerfile",
	Generate: func(description string) llm.Request {
		return llm.Request{
			System: `You are a DevOps engineer who writes small, secure, production-ready Dockerfiles.
Prefer official slim or alpine base images, multi-stage builds when there is a build step, a non-root user, and explicit EXPOSE and CMD instructions.
Return ONLY the Dockerfile content, no explanations, no markdown code blocks, no additional text. Keep comments inside the Dockerfile short.`,
			Prompt:          fmt.Sprintf("Generate a Dockerfile for this application: %s", description),
			Temperature:     generationTemperature,
			MaxOutputTokens: 1000,
		}
	},
	Helpful: func(description string) llm.Request {
		return helpfulRequest("Dockerfile generation", "describe the application they'd like to containerize", description)
	},
}
