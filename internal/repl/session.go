// Package repl runs the interactive read-eval-print session.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/phonebook/internal/style"
)

// Reply is what the session shows for one submitted line.
type Reply struct {
	Text string
	Tone style.Tone
	Quit bool // End the session after showing Text.
}

// Evaluator runs one input line.
type Evaluator func(line string) Reply

// Session reads lines until a Reply asks to quit or input ends.
type Session interface {
	Run(ctx context.Context) error
}

// Options configures session creation.
type Options struct {
	In          io.Reader     // Input source (default: os.Stdin).
	Out         io.Writer     // Output destination (default: os.Stdout).
	ForcePlain  bool          // Force the line loop even on a TTY.
	Prompt      string        // Shown before every line.
	Greeting    string        // Printed once when the session starts.
	Styles      *style.Styles // Default: no colors.
	Eval        Evaluator
	StopOnError bool // Plain only: end with a LineError on the first failure reply.
}

// NewSession returns a TUI session when both ends are terminals, or a plain
// line loop otherwise. ForcePlain overrides TTY detection.
func NewSession(opts Options) Session {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Styles == nil {
		opts.Styles = style.Plain(opts.Out)
	}

	if opts.ForcePlain || !isTTY(opts.In) || !isTTY(opts.Out) {
		return &PlainSession{opts: opts}
	}
	return &TUISession{opts: opts}
}

// isTTY reports whether v is a file connected to a terminal.
func isTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// LineError reports the input line whose reply ended a StopOnError session.
type LineError struct {
	Line int
	Text string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Text)
}

// PlainSession reads lines from a reader and prints replies as text.
type PlainSession struct {
	opts Options
}

// Run loops until a quit reply, end of input, or cancellation.
// End of input is not an error.
func (s *PlainSession) Run(ctx context.Context) error {
	w, st := s.opts.Out, s.opts.Styles
	if s.opts.Greeting != "" {
		_, _ = fmt.Fprintln(w, st.Render(style.ToneInfo, s.opts.Greeting))
	}

	scanner := bufio.NewScanner(s.opts.In)
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.opts.Prompt != "" {
			_, _ = fmt.Fprint(w, st.Prompt(s.opts.Prompt))
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("repl: reading input: %w", err)
			}
			return nil
		}

		reply := s.opts.Eval(scanner.Text())
		if reply.Text != "" {
			_, _ = fmt.Fprintln(w, st.Render(reply.Tone, reply.Text))
		}
		if reply.Quit {
			return nil
		}
		if s.opts.StopOnError && reply.Tone == style.ToneFailure {
			return &LineError{Line: n, Text: reply.Text}
		}
	}
}

// TUISession runs the session as a Bubble Tea program.
// Falls back to PlainSession if the program fails to start.
type TUISession struct {
	opts Options
}

// Run starts the Bubble Tea program on the configured input and output.
func (s *TUISession) Run(ctx context.Context) error {
	m := NewModel(s.opts.Eval, s.opts.Styles,
		WithPrompt(s.opts.Prompt),
		WithGreeting(s.opts.Greeting),
	)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(s.opts.In),
		tea.WithOutput(s.opts.Out),
	)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		plain := &PlainSession{opts: s.opts}
		return plain.Run(ctx)
	}
	return nil
}
