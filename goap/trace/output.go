package trace

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// OutputFormatter renders Events for human consumption: colorize when
// writing to a terminal, fall back to plain text otherwise.
type OutputFormatter struct {
	useColor bool
	writer   io.Writer
}

// NewOutputFormatter creates a formatter, auto-detecting color support
// with github.com/mattn/go-isatty.
func NewOutputFormatter(w io.Writer) *OutputFormatter {
	if w == nil {
		w = os.Stdout
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &OutputFormatter{useColor: useColor, writer: w}
}

// Handle implements trace.Handler, printing each Event as it arrives.
func (f *OutputFormatter) Handle(e Event) {
	if out := f.Format(e); out != "" {
		fmt.Fprintln(f.writer, out)
	}
}

// Format converts a single Event to a human-readable line.
func (f *OutputFormatter) Format(e Event) string {
	latency := f.formatLatency(e.Latency)
	switch e.Outcome {
	case OutcomeAccepted:
		return fmt.Sprintf("%s %s [%s] step %d: %s",
			latency, f.colorize("+", color.FgGreen), e.Method, e.Step, e.Action)

	case OutcomeRejected:
		return fmt.Sprintf("%s %s [%s] step %d: %s — %s",
			latency, f.colorize("x", color.FgRed), e.Method, e.Step, e.Action, e.Reason)

	case OutcomePruned:
		return fmt.Sprintf("%s %s [%s] step %d: %s — already reached a stronger world",
			latency, f.colorize("~", color.FgYellow), e.Method, e.Step, e.Action)

	case OutcomeGoalReached:
		return fmt.Sprintf("%s %s [%s] goal reached after %d step(s)",
			latency, f.colorize("===", color.FgGreen), e.Method, e.Step)

	case OutcomeDepthLimited:
		return fmt.Sprintf("%s %s [%s] depth limit reached at step %d",
			latency, f.colorize("!!!", color.FgYellow), e.Method, e.Step)

	default:
		return fmt.Sprintf("%s [%s] step %d: %s (%s)", latency, e.Method, e.Step, e.Action, e.Outcome)
	}
}

// formatLatency renders a duration as [XXXµs]/[XXX.Xms], color-coded by
// magnitude.
func (f *OutputFormatter) formatLatency(d time.Duration) string {
	if d < time.Millisecond {
		s := fmt.Sprintf("[%dµs]", d.Microseconds())
		if !f.useColor {
			return s
		}
		return color.GreenString(s)
	}

	ms := float64(d.Microseconds()) / 1000.0
	s := fmt.Sprintf("[%.1fms]", ms)
	if !f.useColor {
		return s
	}
	switch {
	case ms < 5:
		return color.GreenString(s)
	case ms < 25:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}

func (f *OutputFormatter) colorize(text string, attrs ...color.Attribute) string {
	if !f.useColor {
		return text
	}
	return color.New(attrs...).Sprint(text)
}

// ConsoleHandler creates a Handler that prints formatted Events to stdout.
func ConsoleHandler() Handler {
	formatter := NewOutputFormatter(os.Stdout)
	return formatter.Handle
}
