package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"codeberg.org/devassist/server/internal/client"
	"codeberg.org/devassist/server/internal/sse"
)

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateEditor
)

// main TUI application model
type Model struct {
	state    AppState
	env      string
	provider string
	width    int
	height   int
	err      error
	client   *client.Client
	welcome  *Welcome
	editor   *EditorModel
}

// one developer tool reachable from the welcome screen
type Tool struct {
	Command     string
	Title       string
	Placeholder string
	Run         func(ctx context.Context, c *client.Client, provider, input string, onEvent client.EventFunc) error
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to open the editor for a tool
type EnterEditorMsg struct {
	tool Tool
}

// sent when the provider toggle changes
type ProviderChangedMsg struct {
	provider string
}

// welcome screen model
type Welcome struct {
	env      string
	provider string
	input    string
	commands []Command
}

// represents an available TUI command
type Command struct {
	Name        string
	Description string
}

// one step of a stream as shown in the output pane
type section struct {
	step    string
	text    string
	helpful bool
	notices []string
	err     string
}

// tool input and streaming output
type EditorModel struct {
	tool     Tool
	provider string
	client   *client.Client

	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	width  int
	height int

	sections   []*section
	isFetching bool
	streamID   int
	stream     <-chan tea.Msg
	cancel     context.CancelFunc
}

// carries one event of the running stream
type StreamEventMsg struct {
	id   int
	step string
	ev   sse.Event
}

// sent once the running stream and any follow-up finished
type StreamDoneMsg struct {
	id  int
	err error
}
