package ui

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rafflehouse/artcli/internal/render"
)

// Preview walks the resolved image candidates the way a prize card does:
// probe the current candidate, advance on load failure, stop on the first
// loadable URL or on exhaustion ("artwork unavailable").

type probeResult struct {
	url string
	err error
}

type previewModel struct {
	title    string
	state    *render.State
	log      []string
	loaded   string // first candidate that probed OK
	finished bool
	quitting bool
}

func (m previewModel) Init() tea.Cmd {
	if url, ok := m.state.Current(); ok {
		return probeCandidate(url)
	}
	return nil
}

func probeCandidate(url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
		if err != nil {
			return probeResult{url: url, err: err}
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return probeResult{url: url, err: err}
		}
		resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return probeResult{url: url, err: fmt.Errorf("status %d", resp.StatusCode)}
		}
		return probeResult{url: url}
	}
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			m.quitting = true
			return m, tea.Quit
		}

	case probeResult:
		if msg.err == nil {
			m.log = append(m.log, Success(TruncateURI(msg.url, 70)))
			m.loaded = msg.url
			m.finished = true
			return m, nil
		}

		m.log = append(m.log, Warn(fmt.Sprintf("%s — %v", TruncateURI(msg.url, 56), msg.err)))
		if m.state.Advance() {
			next, _ := m.state.Current()
			return m, probeCandidate(next)
		}
		m.finished = true
		return m, nil
	}
	return m, nil
}

func (m previewModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(StyleTitle.Render("  "+m.title) + "\n\n")

	for _, line := range m.log {
		sb.WriteString("  " + line + "\n")
	}

	switch {
	case !m.finished:
		if url, ok := m.state.Current(); ok {
			sb.WriteString("  " + Meta("probing "+TruncateURI(url, 64)) + "\n")
		}
	case m.loaded != "":
		sb.WriteString("\n  " + Val(m.loaded) + "\n")
	default:
		sb.WriteString("\n  " + Err("artwork unavailable") + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(StyleMeta.Render("  [ q / Enter ] close") + "\n")
	return sb.String()
}

// RunPreview steps through image candidates interactively and returns the
// first loadable URL, or "" when every candidate failed or the user quit.
func RunPreview(title string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("no candidates to preview")
	}

	m := previewModel{title: title, state: render.NewState(candidates)}
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("preview: %w", err)
	}

	fm := final.(previewModel)
	return fm.loaded, nil
}
