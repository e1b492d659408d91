package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Terminal writes notifications to a terminal, styled when the output
// supports color. Success and info go to out, errors to errOut.
type Terminal struct {
	out    io.Writer
	errOut io.Writer
	color  bool
}

// NewTerminal returns a Terminal writing to stdout/stderr, with color
// enabled only when stdout is a tty and NO_COLOR is unset.
func NewTerminal() *Terminal {
	return &Terminal{
		out:    os.Stdout,
		errOut: os.Stderr,
		color:  colorEnabled(),
	}
}

// NewTerminalWriter returns a Terminal writing both streams to w,
// without color. Used by command tests.
func NewTerminalWriter(w io.Writer) *Terminal {
	return &Terminal{out: w, errOut: w}
}

// Success prints a success message.
func (t *Terminal) Success(message string) {
	t.write(t.out, successStyle, message)
}

// Error prints an error message.
func (t *Terminal) Error(message string) {
	t.write(t.errOut, errorStyle, "error: "+message)
}

// Info prints a status message.
func (t *Terminal) Info(message string) {
	t.write(t.out, infoStyle, message)
}

func (t *Terminal) write(w io.Writer, style lipgloss.Style, message string) {
	if t.color {
		message = style.Render(message)
	}
	fmt.Fprintln(w, message)
}

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
