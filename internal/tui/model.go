package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nguyentantai21042004/meeting-secretary/internal/controller"
)

// RegionMsg carries a display write from the controller into the program.
type RegionMsg struct {
	Region controller.Region
	Text   string
}

// actionDoneMsg is sent when a controller action returns.
type actionDoneMsg struct {
	err error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	focusStyle  = paneStyle.BorderForeground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model for the client: a status line, a transcript pane
// and, in summarize mode, a summary pane.
type Model struct {
	ctx         context.Context
	ctrl        controller.Controller
	showSummary bool

	status     string
	lastErr    bool
	transcript string
	summary    string
	busy       bool

	spinner        spinner.Model
	input          textinput.Model
	prompting      bool
	transcriptView viewport.Model
	summaryView    viewport.Model
	// focusSummary routes j/k to the summary pane instead of the transcript.
	focusSummary   bool
}

// NewModel builds the initial model. ctx is passed to every controller action.
func NewModel(ctx context.Context, ctrl controller.Controller, showSummary bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "path/to/recording.wav"
	ti.Prompt = "File: "
	ti.CharLimit = 4096

	return Model{
		ctx:            ctx,
		ctrl:           ctrl,
		showSummary:    showSummary,
		status:         "Ready",
		spinner:        sp,
		input:          ti,
		transcriptView: viewport.New(80, 10),
		summaryView:    viewport.New(80, 6),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case RegionMsg:
		switch msg.Region {
		case controller.RegionStatus:
			m.status = msg.Text
			m.lastErr = false
		case controller.RegionTranscript:
			m.transcript = msg.Text
			m.transcriptView.SetContent(msg.Text)
			m.transcriptView.GotoTop()
		case controller.RegionSummary:
			m.summary = msg.Text
			m.summaryView.SetContent(msg.Text)
			m.summaryView.GotoTop()
		}
		return m, nil

	case actionDoneMsg:
		m.busy = m.ctrl.Busy()
		m.lastErr = msg.err != nil && !errors.Is(msg.err, controller.ErrBusy)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.showSummary {
			m.focusSummary = !m.focusSummary
		}
		return m, nil
	case "j", "down":
		m.focused().LineDown(1)
		return m, nil
	case "k", "up":
		m.focused().LineUp(1)
		return m, nil
	}

	// Triggers are disabled while an action is in flight.
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "s":
		return m.dispatch(m.ctrl.Start)
	case "x":
		return m.dispatch(m.ctrl.Stop)
	case "r":
		return m.dispatch(m.ctrl.Run)
	case "f":
		m.prompting = true
		m.input.SetValue("")
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.prompting = false
		m.input.Blur()
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.input.Value())
		m.prompting = false
		m.input.Blur()
		return m.dispatch(func(ctx context.Context) error {
			return m.ctrl.RunFile(ctx, path)
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) focused() *viewport.Model {
	if m.showSummary && m.focusSummary {
		return &m.summaryView
	}
	return &m.transcriptView
}

// dispatch runs action off the event loop and starts the spinner.
func (m Model) dispatch(action func(ctx context.Context) error) (tea.Model, tea.Cmd) {
	m.busy = true
	ctx := m.ctx
	run := func() tea.Msg {
		return actionDoneMsg{err: action(ctx)}
	}
	return m, tea.Batch(run, m.spinner.Tick)
}

func (m *Model) resize(width, height int) {
	w := width - 4
	if w < 20 {
		w = 20
	}
	// title + status + help + borders
	avail := height - 8
	if avail < 4 {
		avail = 4
	}

	m.transcriptView.Width = w
	m.summaryView.Width = w
	m.input.Width = w - len(m.input.Prompt)

	if m.showSummary {
		m.summaryView.Height = avail / 3
		m.transcriptView.Height = avail - m.summaryView.Height - 2
	} else {
		m.transcriptView.Height = avail
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Meeting Secretary"))
	b.WriteString("\n")

	status := m.status
	if m.busy {
		status = m.spinner.View() + " " + status
	}
	if m.lastErr {
		b.WriteString(errStyle.Render(status))
	} else {
		b.WriteString(statusStyle.Render(status))
	}
	b.WriteString("\n")

	transcriptPane, summaryPane := focusStyle, paneStyle
	if m.showSummary && m.focusSummary {
		transcriptPane, summaryPane = paneStyle, focusStyle
	}

	b.WriteString(transcriptPane.Render(labelStyle.Render("Transcript") + "\n" + m.transcriptView.View()))
	b.WriteString("\n")

	if m.showSummary {
		b.WriteString(summaryPane.Render(labelStyle.Render("Summary") + "\n" + m.summaryView.View()))
		b.WriteString("\n")
	}

	if m.prompting {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter upload • esc cancel"))
	} else if m.showSummary {
		b.WriteString(helpStyle.Render("s start • x stop • r run • f upload file • tab switch pane • j/k scroll • q quit"))
	} else {
		b.WriteString(helpStyle.Render("s start • x stop • r run • f upload file • j/k scroll • q quit"))
	}

	return b.String()
}
