package repl

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/smileynet/phonebook/internal/style"
)

func newTestModel(rec *recorder) Model {
	return NewModel(rec.eval, style.Plain(&bytes.Buffer{}), WithPrompt("> "))
}

func typeLine(m Model, line string) Model {
	m.input.SetValue(line)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model)
}

func TestModel_Init_ReturnsCmd(t *testing.T) {
	m := newTestModel(&recorder{})
	if m.Init() == nil {
		t.Fatal("Init() should return a non-nil Cmd for the cursor blink")
	}
}

func TestModel_Submit_EvaluatesAndClears(t *testing.T) {
	// Given: a model with text in the input
	rec := &recorder{}
	m := newTestModel(rec)
	m.input.SetValue("add John 1234567890")

	// When: enter is pressed
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated := next.(Model)

	// Then: the line is evaluated, recorded, and the input is cleared
	if len(rec.lines) != 1 || rec.lines[0] != "add John 1234567890" {
		t.Errorf("evaluated %v", rec.lines)
	}
	if updated.input.Value() != "" {
		t.Errorf("input = %q, want empty", updated.input.Value())
	}
	if len(updated.history) != 1 {
		t.Errorf("history = %v, want 1 entry", updated.history)
	}
	if cmd == nil {
		t.Error("submit should return a print Cmd")
	}
	if updated.done {
		t.Error("model should not be done after a normal reply")
	}
}

func TestModel_Submit_BlankNotRecorded(t *testing.T) {
	rec := &recorder{replies: map[string]Reply{"": {}}}
	m := typeLine(newTestModel(rec), "")

	if len(m.history) != 0 {
		t.Errorf("history = %v, want empty", m.history)
	}
	if len(rec.lines) != 1 {
		t.Errorf("blank line should still reach the evaluator, got %v", rec.lines)
	}
}

func TestModel_Submit_QuitReply(t *testing.T) {
	rec := &recorder{replies: map[string]Reply{"exit": {Text: "Good bye!", Quit: true}}}
	m := typeLine(newTestModel(rec), "exit")

	if !m.done {
		t.Error("model should be done after a quit reply")
	}
	if m.View() != "" {
		t.Errorf("View() = %q, want empty once done", m.View())
	}
}

func TestModel_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
		{name: "esc", msg: tea.KeyMsg{Type: tea.KeyEsc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(&recorder{})
			next, cmd := m.Update(tt.msg)
			if !next.(Model).done {
				t.Error("model should be done")
			}
			if cmd == nil {
				t.Error("expected tea.Quit cmd")
			}
		})
	}
}

func TestModel_HistoryRecall(t *testing.T) {
	// Given: two submitted lines
	m := newTestModel(&recorder{})
	m = typeLine(m, "phone John")
	m = typeLine(m, "all")

	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}
	step := func(m Model, k tea.KeyMsg) Model {
		next, _ := m.Update(k)
		return next.(Model)
	}

	// When/Then: up walks back, stops at the oldest, down returns to empty
	m = step(m, up)
	if got := m.input.Value(); got != "all" {
		t.Errorf("after 1 up = %q, want %q", got, "all")
	}
	m = step(m, up)
	m = step(m, up)
	if got := m.input.Value(); got != "phone John" {
		t.Errorf("after 3 ups = %q, want %q", got, "phone John")
	}
	m = step(m, down)
	m = step(m, down)
	if got := m.input.Value(); got != "" {
		t.Errorf("after returning down = %q, want empty", got)
	}
}

func TestModel_View_ShowsPromptAndHelp(t *testing.T) {
	m := newTestModel(&recorder{})
	view := m.View()

	if !bytes.Contains([]byte(view), []byte("> ")) {
		t.Errorf("View() = %q, want prompt", view)
	}
	if !bytes.Contains([]byte(view), []byte("quit")) {
		t.Errorf("View() = %q, want help bar", view)
	}
}

// TestModel_Teatest_Conversation drives the model through a short session via teatest.
func TestModel_Teatest_Conversation(t *testing.T) {
	rec := &recorder{replies: map[string]Reply{"exit": {Text: "Good bye!", Quit: true}}}
	m := NewModel(rec.eval, style.Plain(&bytes.Buffer{}), WithPrompt("> "), WithGreeting("Welcome!"))

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	tm.Type("hello")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type("exit")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if !final.done {
		t.Error("final model should be done")
	}
	if len(final.history) != 2 || final.history[0] != "hello" || final.history[1] != "exit" {
		t.Errorf("history = %v, want [hello exit]", final.history)
	}
}
