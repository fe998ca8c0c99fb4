package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type uploadDoneMsg struct {
	err error
}

type uploadSpinnerModel struct {
	spinner spinner.Model
	label   string
	upload  tea.Cmd
	err     error
	done    bool
}

func newUploadSpinnerModel(label string, upload tea.Cmd) uploadSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return uploadSpinnerModel{
		spinner: s,
		label:   label,
		upload:  upload,
	}
}

func (m uploadSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.upload)
}

func (m uploadSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case uploadDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m uploadSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runUploadSpinner(ctx context.Context, output io.Writer, upload func(context.Context) error) error {
	uploadCmd := func() tea.Msg {
		return uploadDoneMsg{err: upload(ctx)}
	}

	p := tea.NewProgram(
		newUploadSpinnerModel("Uploading dictionaries...", uploadCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(uploadSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
