package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codeberg.org/devassist/server/internal/llm"
)

// returns a new welcome screen
func NewWelcome(env, provider string) *Welcome {
	commands := make([]Command, 0, len(Tools)+2)
	for _, t := range Tools {
		commands = append(commands, Command{Name: t.Command, Description: strings.ToLower(t.Title)})
	}

	commands = append(commands,
		Command{Name: "provider", Description: "switch between openai and gemini"},
		Command{Name: "quit", Description: "exit devassist"},
	)

	return &Welcome{
		env:      env,
		provider: provider,
		commands: commands,
	}
}

func (m *Welcome) Update(msg tea.Msg) (*Welcome, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			cmd := m.executeCommand()
			m.input = ""
			return m, cmd
		case "backspace":
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
		default:
			if len(msg.String()) == 1 {
				m.input += msg.String()
			}
		}

	case ProviderChangedMsg:
		m.provider = msg.provider
	}

	return m, nil
}

func (m *Welcome) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("ai tools for everyday engineering chores"))
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("env: %s | provider: %s", strings.ToUpper(m.env), m.provider)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Render("commands:"))
	b.WriteString("\n\n")

	for _, cmd := range m.commands {
		line := fmt.Sprintf("  %s %s",
			commandStyle.Render(cmd.Name),
			commandDescStyle.Render("- "+cmd.Description),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")

	prompt := promptStyle.Render("> ")
	input := inputStyle.Render(m.input + "_")
	b.WriteString(prompt + input)
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("type a command and press enter. press ctrl+c to quit."))

	return b.String()
}

func (m *Welcome) executeCommand() tea.Cmd {
	cmd := strings.TrimSpace(m.input)

	if tool, ok := FindTool(cmd); ok {
		return func() tea.Msg {
			return EnterEditorMsg{tool: tool}
		}
	}

	switch cmd {
	case "quit":
		return tea.Quit

	case "provider":
		next := string(llm.Gemini)
		if m.provider == string(llm.Gemini) {
			next = string(llm.OpenAI)
		}

		return func() tea.Msg {
			return ProviderChangedMsg{provider: next}
		}

	case "":
		return nil

	default:
		return func() tea.Msg {
			return ErrorMsg{err: fmt.Errorf("unknown command: %s", cmd)}
		}
	}
}
