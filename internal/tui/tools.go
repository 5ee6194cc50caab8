package tui

import (
	"context"

	"codeberg.org/devassist/server/internal/client"
)

var Tools = []Tool{
	{
		Command:     "component",
		Title:       "React Component Generator",
		Placeholder: "describe the component, e.g. a pricing card with three tiers",
		Run: func(ctx context.Context, c *client.Client, provider, input string, onEvent client.EventFunc) error {
			_, err := c.GenerateComponent(ctx, provider, input, onEvent)
			return err
		},
	},
	{
		Command:     "dockerfile",
		Title:       "Dockerfile Generator",
		Placeholder: "describe the application, e.g. a Go API with a Postgres dependency",
		Run: func(ctx context.Context, c *client.Client, provider, input string, onEvent client.EventFunc) error {
			_, err := c.GenerateDockerfile(ctx, provider, input, onEvent)
			return err
		},
	},
	{
		Command:     "tests",
		Title:       "Unit Test Generator",
		Placeholder: "paste the code to test",
		Run: func(ctx context.Context, c *client.Client, provider, input string, onEvent client.EventFunc) error {
			_, err := c.GenerateUnitTests(ctx, provider, input, onEvent)
			return err
		},
	},
	{
		Command:     "network",
		Title:       "Network Troubleshooting",
		Placeholder: "describe the network problem",
		Run: func(ctx context.Context, c *client.Client, provider, input string, onEvent client.EventFunc) error {
			_, err := c.Troubleshoot(ctx, provider, input, onEvent)
			return err
		},
	},
	{
		Command:     "sql",
		Title:       "SQL Optimizer",
		Placeholder: "paste the SQL query to optimize",
		Run: func(ctx context.Context, c *client.Client, provider, input string, onEvent client.EventFunc) error {
			_, err := c.OptimizeSQL(ctx, provider, input, onEvent)
			return err
		},
	},
}

// looks up a tool by its command name
func FindTool(command string) (Tool, bool) {
	for _, t := range Tools {
		if t.Command == command {
			return t, true
		}
	}

	return Tool{}, false
}

// steps whose output is prose rather than code
func isMarkdownStep(step string) bool {
	return step == client.StepGuide || step == client.StepExplain
}

func stepTitle(step string) string {
	switch step {
	case client.StepGuide:
		return "troubleshooting guide"
	case client.StepCommands:
		return "commands"
	case client.StepOptimize:
		return "optimized query"
	case client.StepExplain:
		return "explanation"
	case client.StepUnitTests:
		return "unit tests"
	default:
		return step
	}
}
