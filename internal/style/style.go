// Package style renders assistant output with lipgloss colors.
package style

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color modes accepted by New.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Tone selects how a line of output is colored.
type Tone int

const (
	ToneInfo Tone = iota
	ToneSuccess
	ToneFailure
)

// Adaptive colors for light and dark terminals: green, red, blue, yellow, gray.
var (
	successColor = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	failureColor = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	infoColor    = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	promptColor  = lipgloss.AdaptiveColor{Light: "3", Dark: "11"}
	dimColor     = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
)

// Styles holds the lipgloss styles bound to one output.
type Styles struct {
	success lipgloss.Style
	failure lipgloss.Style
	info    lipgloss.Style
	prompt  lipgloss.Style
	dim     lipgloss.Style
}

// New builds Styles for w. In auto mode colors follow terminal detection on w;
// always and never force a color profile.
func New(w io.Writer, mode string) (*Styles, error) {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAuto, "":
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	default:
		return nil, fmt.Errorf("style: unknown color mode %q", mode)
	}
	return &Styles{
		success: r.NewStyle().Foreground(successColor),
		failure: r.NewStyle().Foreground(failureColor),
		info:    r.NewStyle().Foreground(infoColor),
		prompt:  r.NewStyle().Foreground(promptColor),
		dim:     r.NewStyle().Foreground(dimColor),
	}, nil
}

// Plain returns Styles that never emit escape codes.
func Plain(w io.Writer) *Styles {
	s, _ := New(w, ColorNever)
	return s
}

// Render colors text by tone.
func (s *Styles) Render(t Tone, text string) string {
	switch t {
	case ToneSuccess:
		return s.success.Render(text)
	case ToneFailure:
		return s.failure.Render(text)
	default:
		return s.info.Render(text)
	}
}

// Prompt colors the input prompt.
func (s *Styles) Prompt(text string) string {
	return s.prompt.Render(text)
}

// Dim renders secondary text such as the help bar.
func (s *Styles) Dim(text string) string {
	return s.dim.Render(text)
}
