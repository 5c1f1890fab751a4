package repl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/smileynet/phonebook/internal/style"
)

// recorder is an Evaluator that records lines and answers from a script.
type recorder struct {
	lines   []string
	replies map[string]Reply
}

func (r *recorder) eval(line string) Reply {
	r.lines = append(r.lines, line)
	if rep, ok := r.replies[line]; ok {
		return rep
	}
	return Reply{Text: "echo " + line, Tone: style.ToneSuccess}
}

func TestNewSession_NonTTYIsPlain(t *testing.T) {
	// Given: in-memory reader and writer
	s := NewSession(Options{In: strings.NewReader(""), Out: &bytes.Buffer{}})

	// Then: the plain line loop is chosen
	if _, ok := s.(*PlainSession); !ok {
		t.Errorf("NewSession() = %T, want *PlainSession", s)
	}
}

func TestPlainSession_RunsUntilQuit(t *testing.T) {
	// Given: a script that quits on the second line
	rec := &recorder{replies: map[string]Reply{
		"exit": {Text: "Good bye!", Quit: true},
	}}
	var out bytes.Buffer
	s := NewSession(Options{
		In:       strings.NewReader("hello\nexit\nnever read\n"),
		Out:      &out,
		Prompt:   "> ",
		Greeting: "Welcome!",
		Eval:     rec.eval,
	})

	// When: the session runs
	err := s.Run(context.Background())

	// Then: it stops at the quit reply and prints every exchange
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(rec.lines) != 2 {
		t.Errorf("evaluated %v, want 2 lines", rec.lines)
	}
	want := "Welcome!\n> echo hello\n> Good bye!\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestPlainSession_EOFEndsCleanly(t *testing.T) {
	rec := &recorder{}
	s := NewSession(Options{In: strings.NewReader("one\ntwo"), Out: &bytes.Buffer{}, Eval: rec.eval})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(rec.lines) != 2 {
		t.Errorf("evaluated %v, want [one two]", rec.lines)
	}
}

func TestPlainSession_EmptyReplyPrintsNothing(t *testing.T) {
	rec := &recorder{replies: map[string]Reply{"": {}}}
	var out bytes.Buffer
	s := NewSession(Options{In: strings.NewReader("\n"), Out: &out, Eval: rec.eval})

	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want empty", out.String())
	}
}

func TestPlainSession_StopOnError(t *testing.T) {
	// Given: a strict session whose second line fails
	rec := &recorder{replies: map[string]Reply{
		"bad": {Text: "Invalid command.", Tone: style.ToneFailure},
	}}
	s := NewSession(Options{
		In:          strings.NewReader("ok\nbad\nafter\n"),
		Out:         &bytes.Buffer{},
		Eval:        rec.eval,
		StopOnError: true,
	})

	// When: it runs
	err := s.Run(context.Background())

	// Then: it reports the failing line and reads no further
	var le *LineError
	if !errors.As(err, &le) {
		t.Fatalf("Run() error = %v, want *LineError", err)
	}
	if le.Line != 2 || le.Text != "Invalid command." {
		t.Errorf("LineError = %+v", le)
	}
	if len(rec.lines) != 2 {
		t.Errorf("evaluated %v, want 2 lines", rec.lines)
	}
}

func TestPlainSession_FailureWithoutStopContinues(t *testing.T) {
	rec := &recorder{replies: map[string]Reply{
		"bad": {Text: "Invalid command.", Tone: style.ToneFailure},
	}}
	s := NewSession(Options{In: strings.NewReader("bad\nok\n"), Out: &bytes.Buffer{}, Eval: rec.eval})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(rec.lines) != 2 {
		t.Errorf("evaluated %v, want 2 lines", rec.lines)
	}
}

func TestPlainSession_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := &recorder{}
	s := NewSession(Options{In: strings.NewReader("hello\n"), Out: &bytes.Buffer{}, Eval: rec.eval})

	err := s.Run(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if len(rec.lines) != 0 {
		t.Errorf("evaluated %v after cancel", rec.lines)
	}
}
