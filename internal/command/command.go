// Package command parses input lines and runs them against a contact directory.
package command

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a Result for display.
type Kind string

const (
	KindOK    Kind = "ok"
	KindInfo  Kind = "info"
	KindError Kind = "error"
)

// Result is the outcome of one input line.
type Result struct {
	Text string
	Kind Kind
	Quit bool // Session should end after showing Text.
}

// OK returns a success Result.
func OK(format string, args ...any) Result {
	return Result{Text: fmt.Sprintf(format, args...), Kind: KindOK}
}

// Info returns a neutral Result, used for empty listings and no-ops.
func Info(format string, args ...any) Result {
	return Result{Text: fmt.Sprintf(format, args...), Kind: KindInfo}
}

// Input is a tokenized command line.
type Input struct {
	Name string
	Args []string
}

// ErrEmptyInput is returned by Parse for blank lines.
var ErrEmptyInput = errors.New("command: empty input")

// Parse splits line on whitespace. The first token, lower-cased, is the
// command name; the rest are arguments, kept verbatim.
func Parse(line string) (Input, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Input{}, ErrEmptyInput
	}
	return Input{Name: strings.ToLower(fields[0]), Args: fields[1:]}, nil
}

// MalformedCommandError indicates a known command was given the wrong number
// of arguments.
type MalformedCommandError struct {
	Command string
	Usage   string
}

func (e *MalformedCommandError) Error() string {
	return fmt.Sprintf("wrong arguments for %s, usage: %s", e.Command, e.Usage)
}

// UnknownCommandError indicates a command name is not registered.
type UnknownCommandError struct {
	Name      string
	Available []string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}
