package tui

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"codeberg.org/devassist/server/internal/client"
	"codeberg.org/devassist/server/internal/sse"
)

// streams one tool run as plain text, for pipes and dumb terminals
func RunPlain(ctx context.Context, c *client.Client, command, provider, input string, out, errOut io.Writer) error {
	tool, ok := FindTool(command)
	if !ok {
		return fmt.Errorf("unknown tool %q, expected one of: %s", command, strings.Join(toolCommands(), ", "))
	}

	current := ""

	err := tool.Run(ctx, c, provider, input, func(step string, ev sse.Event) {
		if step != current {
			if current != "" {
				fmt.Fprintf(out, "\n\n--- %s ---\n", stepTitle(step)) //nolint:errcheck
			}
			current = step
		}

		switch e := ev.(type) {
		case sse.Chunk:
			fmt.Fprint(out, e.Text) //nolint:errcheck
		case sse.LanguageDetected:
			fmt.Fprintf(errOut, "detected %s, tests use %s\n", e.DisplayName, e.Framework) //nolint:errcheck
		case sse.TokenLimit:
			fmt.Fprintf(errOut, "\n%s\n", e.Message) //nolint:errcheck
		case sse.Done:
			fmt.Fprintln(out) //nolint:errcheck
		}
	})

	var streamErr *client.StreamError
	if stderrors.As(err, &streamErr) {
		return fmt.Errorf("server: %s", streamErr.Message)
	}

	return err
}

func toolCommands() []string {
	names := make([]string, 0, len(Tools))
	for _, t := range Tools {
		names = append(names, t.Command)
	}

	return names
}
