package tui

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/devassist/server/internal/client"
	"codeberg.org/devassist/server/internal/sse"
)

func typeText(w *Welcome, text string) tea.Cmd {
	for _, r := range text {
		w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestWelcome_Commands(t *testing.T) {
	tests := []struct {
		input string
		want  tea.Msg
	}{
		{"provider", ProviderChangedMsg{provider: "gemini"}},
		{"dockerfile", EnterEditorMsg{tool: Tools[1]}},
		{"bogus", ErrorMsg{err: fmt.Errorf("unknown command: bogus")}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			w := NewWelcome("development", "openai")

			cmd := typeText(w, tt.input)
			require.NotNil(t, cmd)

			got := cmd()
			if enter, ok := got.(EnterEditorMsg); ok {
				assert.Equal(t, "dockerfile", enter.tool.Command)
				return
			}
			assert.Equal(t, tt.want, got)
			assert.Empty(t, w.input)
		})
	}
}

func TestEditor_AppliesEvents(t *testing.T) {
	tool, ok := FindTool("sql")
	require.True(t, ok)

	m := NewEditorModel(tool, "openai", client.New("http://unused"))
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	m.apply(client.StepOptimize, sse.Chunk{Text: "SELECT id\n"})
	m.apply(client.StepOptimize, sse.Chunk{Text: "FROM t;"})
	m.apply(client.StepExplain, sse.TokenLimit{Message: "Token limit reached. Explanation truncated."})
	m.apply(client.StepExplain, sse.Error{Message: "Failed to process request: boom"})

	require.Len(t, m.sections, 2)
	assert.Equal(t, "SELECT id\nFROM t;", m.sections[0].text)
	assert.Equal(t, []string{"Token limit reached. Explanation truncated."}, m.sections[1].notices)
	assert.Equal(t, "Failed to process request: boom", m.sections[1].err)

	out := m.render()
	assert.Contains(t, out, "SELECT id")
	assert.Contains(t, out, "explanation")
	assert.Contains(t, out, "boom")
}

func TestEditor_IgnoresStaleStreams(t *testing.T) {
	tool, _ := FindTool("dockerfile")
	m := NewEditorModel(tool, "openai", client.New("http://unused"))

	m.Stop()
	m.Update(StreamEventMsg{id: 0, step: client.StepDockerfile, ev: sse.Chunk{Text: "FROM x"}})

	assert.Empty(t, m.sections)
}

func TestRunPlain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"languageDetected\":true,\"language\":\"go\",\"framework\":\"testing\",\"displayName\":\"Go\"}\n\n")
		fmt.Fprint(w, "data: {\"chunk\":\"func TestAdd(t *testing.T) {}\",\"isHelpfulResponse\":false}\n\n")
		fmt.Fprint(w, "data: {\"done\":true,\"isHelpfulResponse\":false,\"tokenLimitReached\":false}\n\n")
	}))
	defer srv.Close()

	var out, errOut bytes.Buffer
	err := RunPlain(context.Background(), client.New(srv.URL), "tests", "openai", "func Add() {}", &out, &errOut)
	require.NoError(t, err)

	assert.Equal(t, "func TestAdd(t *testing.T) {}\n", out.String())
	assert.Equal(t, "detected Go, tests use testing\n", errOut.String())
}

func TestRunPlain_UnknownTool(t *testing.T) {
	err := RunPlain(context.Background(), client.New("http://unused"), "poem", "openai", "", &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "component, dockerfile, tests, network, sql")
}
