package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/devassist/server/internal/client"
	"codeberg.org/devassist/server/internal/sse"
)

// runs the tool in the background and feeds its events into a channel
func startStream(ctx context.Context, id int, c *client.Client, tool Tool, provider, input string) <-chan tea.Msg {
	ch := make(chan tea.Msg, 64)

	send := func(msg tea.Msg) {
		select {
		case ch <- msg:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(ch)

		err := tool.Run(ctx, c, provider, input, func(step string, ev sse.Event) {
			send(StreamEventMsg{id: id, step: step, ev: ev})
		})

		send(StreamDoneMsg{id: id, err: err})
	}()

	return ch
}

// waits for the next message of a running stream
func waitForStream(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}

		return msg
	}
}
