package tui

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"codeberg.org/devassist/server/internal/client"
	"codeberg.org/devassist/server/internal/sse"
)

const (
	inputHeight  = 6
	chromeHeight = inputHeight + 8
)

// returns a new editor for tool
func NewEditorModel(tool Tool, provider string, c *client.Client) *EditorModel {
	ta := textarea.New()
	ta.Placeholder = tool.Placeholder
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(inputHeight)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = infoStyle

	return &EditorModel{
		tool:     tool,
		provider: provider,
		client:   c,
		input:    ta,
		viewport: viewport.New(80, 10),
		spinner:  sp,
	}
}

func (m *EditorModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *EditorModel) Update(msg tea.Msg) (*EditorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			return m, m.submit()

		case "ctrl+l":
			m.Stop()
			m.sections = nil
			m.input.Reset()
			m.refresh()
			return m, nil

		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case StreamEventMsg:
		if msg.id != m.streamID {
			return m, nil
		}

		m.apply(msg.step, msg.ev)
		m.refresh()

		return m, waitForStream(m.stream)

	case StreamDoneMsg:
		if msg.id != m.streamID {
			return m, nil
		}

		m.finish(msg.err)
		m.refresh()

		return m, nil

	case spinner.TickMsg:
		if !m.isFetching {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *EditorModel) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorWhite).
		Render(strings.ToUpper(m.tool.Title))

	help := lipgloss.NewStyle().
		Foreground(colorGray).
		Render(fmt.Sprintf("[%s] [Ctrl+S: Send] [Ctrl+L: Clear] [Ctrl+C: Back]", m.provider))

	gap := max(0, m.width-lipgloss.Width(header)-lipgloss.Width(help)-2)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, header, strings.Repeat(" ", gap), help))
	b.WriteString("\n\n")

	b.WriteString(borderStyle.Width(max(20, m.width-4)).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(borderStyle.Width(max(20, m.width-4)).Render(m.input.View()))
	b.WriteString("\n")

	if m.isFetching {
		b.WriteString(infoStyle.Render(m.spinner.View() + " streaming..."))
	}

	return b.String()
}

// cancels the running stream, if any; its pending messages are ignored
func (m *EditorModel) Stop() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	m.streamID++
	m.isFetching = false
}

func (m *EditorModel) submit() tea.Cmd {
	input := strings.TrimSpace(m.input.Value())
	if input == "" || m.isFetching {
		return nil
	}

	m.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.sections = nil
	m.isFetching = true
	m.stream = startStream(ctx, m.streamID, m.client, m.tool, m.provider, input)
	m.refresh()

	return tea.Batch(waitForStream(m.stream), m.spinner.Tick)
}

// folds one event into the output sections
func (m *EditorModel) apply(step string, ev sse.Event) {
	s := m.section(step)

	switch e := ev.(type) {
	case sse.Chunk:
		if s.text == "" {
			s.helpful = e.IsHelpfulResponse
		}
		s.text += e.Text

	case sse.LanguageDetected:
		s.notices = append(s.notices, fmt.Sprintf("detected %s, tests use %s", e.DisplayName, e.Framework))

	case sse.TokenLimit:
		s.notices = append(s.notices, e.Message)

	case sse.Error:
		s.err = e.Message
	}
}

func (m *EditorModel) finish(err error) {
	m.isFetching = false

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	var streamErr *client.StreamError
	switch {
	case err == nil, stderrors.As(err, &streamErr):
		// stream errors are already shown in their section
	case stderrors.Is(err, context.Canceled):
	default:
		s := m.section("request")
		s.err = err.Error()
	}
}

func (m *EditorModel) section(step string) *section {
	for _, s := range m.sections {
		if s.step == step {
			return s
		}
	}

	s := &section{step: step}
	m.sections = append(m.sections, s)

	return s
}

func (m *EditorModel) resize(width, height int) {
	m.width = width
	m.height = height

	m.input.SetWidth(max(20, width-6))
	m.viewport.Width = max(20, width-6)
	m.viewport.Height = max(5, height-chromeHeight)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(20, width-8)),
	)
	if err == nil {
		m.renderer = renderer
	}
}

func (m *EditorModel) refresh() {
	if len(m.sections) == 0 {
		m.viewport.SetContent(infoStyle.Render("ready! type below and press ctrl+s."))
		return
	}

	m.viewport.SetContent(m.render())
	m.viewport.GotoBottom()
}

func (m *EditorModel) render() string {
	var b strings.Builder

	for i, s := range m.sections {
		if i > 0 || len(m.sections) > 1 {
			b.WriteString(sectionStyle.Render("── " + stepTitle(s.step)))
			b.WriteString("\n")
		}

		for _, n := range s.notices {
			b.WriteString(noticeStyle.Render(n))
			b.WriteString("\n")
		}

		switch {
		case s.helpful:
			b.WriteString(noticeStyle.Width(m.viewport.Width).Render(s.text))
		case isMarkdownStep(s.step):
			b.WriteString(m.markdown(s.text))
		default:
			b.WriteString(s.text)
		}

		if s.err != "" {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render("error: " + s.err))
		}

		b.WriteString("\n\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *EditorModel) markdown(text string) string {
	if m.renderer == nil {
		return text
	}

	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}

	return strings.Trim(out, "\n")
}
