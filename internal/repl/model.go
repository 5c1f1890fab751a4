package repl

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/phonebook/internal/style"
)

// Model is the Bubble Tea model for the interactive session. Finished
// exchanges are printed above the input line and scroll with the terminal.
type Model struct {
	input    textinput.Model
	help     help.Model
	keys     keyMap
	eval     Evaluator
	styles   *style.Styles
	prompt   string
	greeting string

	history []string // Submitted non-blank lines, oldest first.
	cursor  int      // Index into history while browsing; len(history) when not.
	done    bool
}

// ModelOption configures optional Model settings.
type ModelOption func(*Model)

// WithPrompt sets the text shown before the input field.
func WithPrompt(prompt string) ModelOption {
	return func(m *Model) { m.prompt = prompt }
}

// WithGreeting sets a line printed once when the program starts.
func WithGreeting(greeting string) ModelOption {
	return func(m *Model) { m.greeting = greeting }
}

// NewModel creates a Model that sends each submitted line to eval.
func NewModel(eval Evaluator, styles *style.Styles, opts ...ModelOption) Model {
	m := Model{
		help:   help.New(),
		keys:   defaultKeyMap(),
		eval:   eval,
		styles: styles,
	}
	for _, opt := range opts {
		opt(&m)
	}

	ti := textinput.New()
	ti.Prompt = styles.Prompt(m.prompt)
	ti.Placeholder = "help"
	ti.Focus()
	m.input = ti
	return m
}

// Init starts the cursor blink and prints the greeting.
func (m Model) Init() tea.Cmd {
	if m.greeting == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, tea.Println(m.styles.Render(style.ToneInfo, m.greeting)))
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-len(m.prompt)-1, 1)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Prev):
			m.recall(-1)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.recall(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit evaluates the current line and prints the exchange.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if line != "" {
		m.history = append(m.history, line)
	}
	m.cursor = len(m.history)

	reply := m.eval(line)
	out := m.styles.Prompt(m.prompt) + line
	if reply.Text != "" {
		out += "\n" + m.styles.Render(reply.Tone, reply.Text)
	}
	if reply.Quit {
		m.done = true
		return m, tea.Sequence(tea.Println(out), tea.Quit)
	}
	return m, tea.Println(out)
}

// recall moves through submitted lines; stepping past the newest clears the input.
func (m *Model) recall(step int) {
	next := m.cursor + step
	if next < 0 || next > len(m.history) {
		return
	}
	m.cursor = next
	if next == len(m.history) {
		m.input.Reset()
		return
	}
	m.input.SetValue(m.history[next])
	m.input.CursorEnd()
}

// View renders the input line and the help bar.
func (m Model) View() string {
	if m.done {
		return ""
	}
	return m.input.View() + "\n" + m.styles.Dim(m.help.View(m.keys)) + "\n"
}
