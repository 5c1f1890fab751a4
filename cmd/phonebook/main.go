package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/phonebook"
	"github.com/smileynet/phonebook/internal/command"
	"github.com/smileynet/phonebook/internal/config"
	"github.com/smileynet/phonebook/internal/contact"
	"github.com/smileynet/phonebook/internal/logging"
	"github.com/smileynet/phonebook/internal/repl"
	"github.com/smileynet/phonebook/internal/seed"
	"github.com/smileynet/phonebook/internal/style"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const greeting = "Welcome to the assistant bot!"

// Globals holds flags shared by every command.
type Globals struct {
	Config  string `help:"Extra config file applied over the user and project files." type:"path"`
	Seed    string `help:"YAML file of contacts to preload; demo.yaml falls back to the built-in sample."`
	Today   string `help:"Reference date for birthdays (DD.MM.YYYY). Defaults to the current date."`
	Horizon int    `help:"Days ahead to look for birthdays (overrides config)." default:"-1"`
}

// CLI is the top-level command structure for phonebook.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Shell   ShellCmd         `cmd:"" default:"1" help:"Start the interactive assistant."`
	Run     RunCmd           `cmd:"" help:"Run assistant commands from a script, one per line."`
}

// ShellCmd starts the interactive assistant.
type ShellCmd struct {
	NoTUI bool `help:"Force plain line input even if stdin and stdout are a TTY." default:"false"`
}

// Run executes the shell command.
func (s *ShellCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return s.run(ctx, g, os.Stdin, os.Stdout)
}

// run builds the assistant and runs an interactive session, enabling testable wiring.
func (s *ShellCmd) run(ctx context.Context, g *Globals, in io.Reader, out io.Writer) error {
	a, err := newAssistant(g, out)
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer a.close()

	session := repl.NewSession(repl.Options{
		In:         in,
		Out:        out,
		ForcePlain: s.NoTUI,
		Prompt:     a.cfg.Display.Prompt,
		Greeting:   greeting,
		Styles:     a.styles,
		Eval:       a.eval,
	})
	return session.Run(ctx)
}

// RunCmd executes a script of assistant commands without prompting.
type RunCmd struct {
	Script string `arg:"" help:"Script file, or - for stdin."`
	Strict bool   `help:"Stop at the first command that fails." default:"false"`
}

// Run executes the run command.
func (r *RunCmd) Run(g *Globals) error {
	in := io.Reader(os.Stdin)
	if r.Script != "-" {
		f, err := os.Open(r.Script)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		defer f.Close()
		in = f
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return r.run(ctx, g, in, os.Stdout)
}

// run executes the script from in, enabling testable wiring.
func (r *RunCmd) run(ctx context.Context, g *Globals, in io.Reader, out io.Writer) error {
	a, err := newAssistant(g, out)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	defer a.close()

	session := repl.NewSession(repl.Options{
		In:          in,
		Out:         out,
		ForcePlain:  true,
		Styles:      a.styles,
		Eval:        a.eval,
		StopOnError: r.Strict,
	})
	if err := session.Run(ctx); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// assistant is the wired command interpreter shared by shell and run.
type assistant struct {
	cfg    *config.Config
	logger *zap.Logger
	styles *style.Styles
	interp *command.Interpreter
}

// newAssistant loads config, builds the directory (optionally seeded), and
// registers every command.
func newAssistant(g *Globals, out io.Writer) (*assistant, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}

	clock, err := referenceClock(g.Today)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		return nil, err
	}

	styles, err := style.New(out, cfg.Display.Color)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	dir := contact.NewDirectory()
	if g.Seed != "" {
		fsys, name := phonebook.SeedSource(g.Seed)
		n, err := seed.Load(fsys, name, dir)
		if err != nil {
			_ = logger.Sync()
			return nil, err
		}
		logger.Info("seeded directory", zap.String("path", g.Seed), zap.Int("contacts", n))
	}

	reg := command.NewRegistry(logger)
	command.NewBook(dir,
		command.WithClock(clock),
		command.WithHorizon(cfg.Birthdays.HorizonDays),
	).Register(reg)

	return &assistant{
		cfg:    cfg,
		logger: logger,
		styles: styles,
		interp: command.NewInterpreter(reg),
	}, nil
}

// eval adapts command results to session replies.
func (a *assistant) eval(line string) repl.Reply {
	res := a.interp.Exec(line)
	return repl.Reply{Text: res.Text, Tone: toneOf(res.Kind), Quit: res.Quit}
}

func (a *assistant) close() {
	_ = a.logger.Sync()
}

func toneOf(k command.Kind) style.Tone {
	switch k {
	case command.KindOK:
		return style.ToneSuccess
	case command.KindError:
		return style.ToneFailure
	default:
		return style.ToneInfo
	}
}

// loadConfig loads layered config from user, project and flag paths with env
// and flag overrides.
func loadConfig(g *Globals) (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/phonebook/config.yaml"),
		".phonebook.yaml",
	}
	if g.Config != "" {
		paths = append(paths, g.Config)
	}
	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if g.Horizon >= 0 {
		cfg.Birthdays.HorizonDays = g.Horizon
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// referenceClock returns time.Now, or a fixed clock when today is set.
func referenceClock(today string) (func() time.Time, error) {
	if today == "" {
		return time.Now, nil
	}
	t, err := time.ParseInLocation(contact.DateLayout, today, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --today %q: want DD.MM.YYYY", today)
	}
	return func() time.Time { return t }, nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitCommand = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var le *repl.LineError
	if errors.As(err, &le) {
		return exitCommand
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Description("A contact book assistant: phones, birthdays and who to congratulate next."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
