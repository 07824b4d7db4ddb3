package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openaipro/openaipro/pkg/providers/openai"
)

// completionResult carries the API call outcome back into the wait model.
type completionResult struct {
	completion openai.Completion
	err        error
}

// waitModel renders a spinner on stderr while the API call runs as a
// bubbletea command. It reads no input; cancellation is handled by the
// signal-aware context the call closure captures.
type waitModel struct {
	spinner spinner.Model
	message string
	call    func() (openai.Completion, error)
	result  completionResult
	done    bool
}

func newWaitModel(call func() (openai.Completion, error)) waitModel {
	s := spinner.New()
	s.Spinner = spinner.Spinner{Frames: spinnerFrames, FPS: time.Second / 10}
	s.Style = spinnerStyle

	return waitModel{
		spinner: s,
		message: randomThinkingMessage(),
		call:    call,
	}
}

func (m waitModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			completion, err := m.call()
			return completionResult{completion: completion, err: err}
		},
	)
}

func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case completionResult:
		m.result = msg
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m waitModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), spinnerStyle.Render(m.message))
}

// completeWithSpinner runs the API call under a spinner program. The spinner
// writes to stderr so piped stdout stays clean.
func completeWithSpinner(call func() (openai.Completion, error)) (openai.Completion, error) {
	p := tea.NewProgram(newWaitModel(call), tea.WithOutput(os.Stderr), tea.WithInput(nil))

	m, err := p.Run()
	if err != nil {
		return openai.Completion{}, fmt.Errorf("spinner: %w", err)
	}

	res := m.(waitModel).result

	return res.completion, res.err
}
