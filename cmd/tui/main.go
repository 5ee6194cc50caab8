package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"codeberg.org/devassist/server/internal/client"
	"codeberg.org/devassist/server/internal/tui"
)

func main() {
	env := os.Getenv("DEVASSIST_ENV")
	if env == "" {
		env = "development"
	}

	provider := os.Getenv("DEVASSIST_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	c := client.NewFromEnv()

	// pipes get a plain stream: devassist-tui <tool> < input
	if !term.IsTerminal(os.Stdout.Fd()) || len(os.Args) > 1 {
		if err := runPlain(c, provider); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	app := tui.NewApp(env, provider, c)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running devassist: %v\n", err)
		os.Exit(1)
	}
}

func runPlain(c *client.Client, provider string) error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: %s <component|dockerfile|tests|network|sql> < input", os.Args[0])
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return tui.RunPlain(ctx, c, os.Args[1], provider, string(input), os.Stdout, os.Stderr)
}
