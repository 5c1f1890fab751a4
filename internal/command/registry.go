package command

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// RunFunc executes a command with its already arity-checked arguments.
type RunFunc func(args []string) (Result, error)

// Spec describes one command.
type Spec struct {
	Usage   string // e.g. "add <name> <phone>"
	Summary string
	Args    int // Exact number of arguments.
	Run     RunFunc
}

// Registry maps command names to specs.
// It is not safe for concurrent use; registration should happen at startup.
type Registry struct {
	specs  map[string]Spec
	order  []string
	logger *zap.Logger
}

// NewRegistry creates an empty Registry. A nil logger disables logging.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{specs: make(map[string]Spec), logger: logger}
}

// Register adds a named command. Overwrites if name already exists.
// Panics if name is empty or s.Run is nil (programmer error).
func (r *Registry) Register(name string, s Spec) {
	if name == "" {
		panic("command: Register called with empty name")
	}
	if s.Run == nil {
		panic("command: Register called with nil Run")
	}
	if _, ok := r.specs[name]; !ok {
		r.order = append(r.order, name)
	}
	r.specs[name] = s
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (Spec, bool) {
	s, ok := r.specs[name]
	return s, ok
}

// Dispatch runs in against the matching command.
// Returns UnknownCommandError or MalformedCommandError before running anything.
func (r *Registry) Dispatch(in Input) (Result, error) {
	s, ok := r.specs[in.Name]
	if !ok {
		r.logger.Debug("unknown command", zap.String("command", in.Name))
		return Result{}, &UnknownCommandError{Name: in.Name, Available: r.Names()}
	}
	if len(in.Args) != s.Args {
		r.logger.Debug("malformed command",
			zap.String("command", in.Name),
			zap.Int("args", len(in.Args)),
			zap.Int("want", s.Args),
		)
		return Result{}, &MalformedCommandError{Command: in.Name, Usage: s.Usage}
	}

	res, err := s.Run(in.Args)
	if err != nil {
		r.logger.Debug("command failed", zap.String("command", in.Name), zap.Error(err))
		return Result{}, err
	}
	r.logger.Debug("command done",
		zap.String("command", in.Name),
		zap.String("kind", string(res.Kind)),
		zap.Bool("quit", res.Quit),
	)
	return res, nil
}

// Names returns registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Help renders one "usage  summary" line per command in registration order.
func (r *Registry) Help() string {
	width := 0
	for _, name := range r.order {
		if n := len(r.specs[name].Usage); n > width {
			width = n
		}
	}
	var b strings.Builder
	for i, name := range r.order {
		s := r.specs[name]
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-*s  %s", width, s.Usage, s.Summary)
	}
	return b.String()
}
