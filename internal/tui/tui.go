// Package tui is a terminal front-end for the devassist tools.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/devassist/server/internal/client"
)

func NewApp(env, provider string, c *client.Client) *Model {
	return &Model{
		state:    StateWelcome,
		env:      env,
		provider: provider,
		client:   c,
		welcome:  NewWelcome(env, provider),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// only quit from welcome screen, not from editor
		if msg.String() == "ctrl+c" && m.state == StateWelcome {
			return m, tea.Quit
		}

		// in editor, ctrl+c stops the stream and goes back to welcome
		if msg.String() == "ctrl+c" && m.state == StateEditor {
			m.editor.Stop()
			m.state = StateWelcome
			return m, nil
		}

		// any key dismisses an error
		if m.err != nil {
			m.err = nil
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if m.editor != nil {
			m.editor, _ = m.editor.Update(msg)
		}

		return m, nil

	case ErrorMsg:
		m.err = msg.err
		return m, nil

	case ProviderChangedMsg:
		m.provider = msg.provider

	case EnterEditorMsg:
		m.editor = NewEditorModel(msg.tool, m.provider, m.client)
		m.editor, _ = m.editor.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.state = StateEditor
		return m, m.editor.Init()
	}

	switch m.state {
	case StateWelcome:
		return m.updateWelcome(msg)

	case StateEditor:
		return m.updateEditor(msg)

	default:
		return m, nil
	}
}

func (m *Model) View() string {
	if m.err != nil {
		return errorView(m.err)
	}

	switch m.state {
	case StateWelcome:
		return m.welcome.View()

	case StateEditor:
		return m.editor.View()

	default:
		return "Unknown state"
	}
}

func (m *Model) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.welcome, cmd = m.welcome.Update(msg)

	return m, cmd
}

func (m *Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	return m, cmd
}

func errorView(err error) string {
	return fmt.Sprintf("\n  %s\n\n  %s\n", errorStyle.Render("Error: "+err.Error()), helpStyle.Render("press any key to continue"))
}
