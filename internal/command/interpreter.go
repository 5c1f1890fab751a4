package command

import (
	"errors"

	"github.com/smileynet/phonebook/internal/contact"
)

// Interpreter runs raw input lines and always produces a displayable Result.
type Interpreter struct {
	registry *Registry
}

// NewInterpreter creates an Interpreter dispatching to r.
func NewInterpreter(r *Registry) *Interpreter {
	return &Interpreter{registry: r}
}

// Exec parses and dispatches line. Errors become KindError results; blank
// lines produce an empty info Result.
func (i *Interpreter) Exec(line string) Result {
	in, err := Parse(line)
	if errors.Is(err, ErrEmptyInput) {
		return Result{Kind: KindInfo}
	}
	res, err := i.registry.Dispatch(in)
	if err != nil {
		return Result{Text: describe(err), Kind: KindError}
	}
	return res
}

// describe turns an error into the line shown to the user.
func describe(err error) string {
	var (
		malformed *MalformedCommandError
		unknown   *UnknownCommandError
		invalid   *contact.ValidationError
	)
	switch {
	case errors.As(err, &malformed):
		return "Usage: " + malformed.Usage
	case errors.As(err, &unknown):
		return "Invalid command. Type \"help\" to list commands."
	case errors.As(err, &invalid):
		return "Invalid " + invalid.Field + " " + invalid.Value + ": " + invalid.Reason + "."
	case errors.Is(err, contact.ErrNotFound):
		return capitalize(err.Error()) + "."
	default:
		return err.Error()
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
