package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nguyentantai21042004/meeting-secretary/internal/controller"
)

type fakeController struct {
	calls    []string
	filePath string
	busy     bool
	err      error
}

func (f *fakeController) Start(ctx context.Context) error {
	f.calls = append(f.calls, "start")
	return f.err
}

func (f *fakeController) Stop(ctx context.Context) error {
	f.calls = append(f.calls, "stop")
	return f.err
}

func (f *fakeController) Run(ctx context.Context) error {
	f.calls = append(f.calls, "run")
	return f.err
}

func (f *fakeController) Busy() bool { return f.busy }

func (f *fakeController) RunFile(ctx context.Context, path string) error {
	f.calls = append(f.calls, "run-file")
	f.filePath = path
	return f.err
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runAction executes the batch returned by dispatch and feeds the action result back.
func runAction(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected tea.BatchMsg")
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if done, ok := c().(actionDoneMsg); ok {
			next, _ := m.Update(done)
			return next.(Model)
		}
	}
	t.Fatal("no action in batch")
	return m
}

func TestKeysDispatchActions(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"s", "start"},
		{"x", "stop"},
		{"r", "run"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			ctrl := &fakeController{}
			m := NewModel(context.Background(), ctrl, false)

			next, cmd := m.Update(key(tt.key))
			m = next.(Model)
			if !m.busy {
				t.Error("model should be busy after dispatch")
			}

			m = runAction(t, m, cmd)
			if len(ctrl.calls) != 1 || ctrl.calls[0] != tt.want {
				t.Errorf("calls = %v, want [%s]", ctrl.calls, tt.want)
			}
			if m.busy {
				t.Error("model should not be busy after the action returns")
			}
		})
	}
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	ctrl := &fakeController{}
	m := NewModel(context.Background(), ctrl, false)
	m.busy = true

	_, cmd := m.Update(key("r"))
	if cmd != nil {
		t.Error("no command expected while busy")
	}
	if len(ctrl.calls) != 0 {
		t.Errorf("calls = %v, want none", ctrl.calls)
	}
}

func TestFilePrompt(t *testing.T) {
	ctrl := &fakeController{}
	m := NewModel(context.Background(), ctrl, false)

	next, _ := m.Update(key("f"))
	m = next.(Model)
	if !m.prompting {
		t.Fatal("f should open the file prompt")
	}

	for _, r := range "a.wav" {
		next, _ = m.Update(key(string(r)))
		m = next.(Model)
	}
	if !strings.Contains(m.View(), "enter upload") {
		t.Error("prompt help should be visible")
	}

	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	if m.prompting {
		t.Error("enter should close the prompt")
	}
	runAction(t, m, cmd)

	if ctrl.filePath != "a.wav" {
		t.Errorf("RunFile path = %q, want %q", ctrl.filePath, "a.wav")
	}
}

func TestFilePromptEmptySubmit(t *testing.T) {
	ctrl := &fakeController{err: controller.ErrNoFile}
	m := NewModel(context.Background(), ctrl, false)

	next, _ := m.Update(key("f"))
	m = next.(Model)
	next, cmd := m.Update(key("enter"))
	m = runAction(t, next.(Model), cmd)

	if ctrl.filePath != "" {
		t.Errorf("RunFile path = %q, want empty", ctrl.filePath)
	}
	if !m.lastErr {
		t.Error("a missing file should render as an error")
	}
}

func TestFilePromptEscape(t *testing.T) {
	ctrl := &fakeController{}
	m := NewModel(context.Background(), ctrl, false)

	next, _ := m.Update(key("f"))
	next, cmd := next.(Model).Update(key("esc"))
	m = next.(Model)

	if m.prompting {
		t.Error("esc should close the prompt")
	}
	if cmd != nil {
		t.Error("esc should not dispatch anything")
	}
	if len(ctrl.calls) != 0 {
		t.Errorf("calls = %v, want none", ctrl.calls)
	}
}

func TestRegionMessagesUpdateView(t *testing.T) {
	m := NewModel(context.Background(), &fakeController{}, true)

	for _, msg := range []RegionMsg{
		{Region: controller.RegionStatus, Text: "Done"},
		{Region: controller.RegionTranscript, Text: "hello world"},
		{Region: controller.RegionSummary, Text: "short summary"},
	} {
		next, _ := m.Update(msg)
		m = next.(Model)
	}

	if m.status != "Done" || m.transcript != "hello world" || m.summary != "short summary" {
		t.Errorf("model = status %q transcript %q summary %q", m.status, m.transcript, m.summary)
	}

	view := m.View()
	for _, want := range []string{"Done", "hello world", "short summary", "Summary"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTabSwitchesScrollPane(t *testing.T) {
	long := strings.Repeat("line\n", 40)
	m := NewModel(context.Background(), &fakeController{}, true)
	for _, msg := range []tea.Msg{
		RegionMsg{Region: controller.RegionTranscript, Text: long},
		RegionMsg{Region: controller.RegionSummary, Text: long},
		key("j"),
	} {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	if m.transcriptView.YOffset != 1 || m.summaryView.YOffset != 0 {
		t.Fatalf("before tab: transcript offset %d, summary offset %d", m.transcriptView.YOffset, m.summaryView.YOffset)
	}

	for _, k := range []string{"tab", "j", "j"} {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	if m.transcriptView.YOffset != 1 || m.summaryView.YOffset != 2 {
		t.Errorf("after tab: transcript offset %d, summary offset %d", m.transcriptView.YOffset, m.summaryView.YOffset)
	}
	if !strings.Contains(m.View(), "tab switch pane") {
		t.Error("help should mention tab in summarize mode")
	}

	next, _ := m.Update(key("tab"))
	m = next.(Model)
	next, _ = m.Update(key("k"))
	m = next.(Model)
	if m.transcriptView.YOffset != 0 || m.summaryView.YOffset != 2 {
		t.Errorf("after second tab: transcript offset %d, summary offset %d", m.transcriptView.YOffset, m.summaryView.YOffset)
	}
}

func TestTabIgnoredWithoutSummary(t *testing.T) {
	m := NewModel(context.Background(), &fakeController{}, false)
	next, _ := m.Update(key("tab"))
	if next.(Model).focusSummary {
		t.Error("tab should not focus a hidden summary pane")
	}
}

func TestActionErrorMarksStatus(t *testing.T) {
	m := NewModel(context.Background(), &fakeController{}, false)

	next, _ := m.Update(actionDoneMsg{err: errors.New("boom")})
	if !next.(Model).lastErr {
		t.Error("lastErr should be set after a failed action")
	}

	next, _ = m.Update(actionDoneMsg{err: controller.ErrBusy})
	if next.(Model).lastErr {
		t.Error("ErrBusy should not be rendered as an error")
	}
}

func TestQuit(t *testing.T) {
	m := NewModel(context.Background(), &fakeController{}, false)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
