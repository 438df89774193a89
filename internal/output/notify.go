package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Level is the severity of a notification.
type Level string

const (
	// LevelInfo reports full success.
	LevelInfo Level = "info"

	// LevelWarn reports partial success, e.g. files skipped because they
	// already existed.
	LevelWarn Level = "warn"

	// LevelError reports failure.
	LevelError Level = "error"
)

// Notification is the single terminal message a command produces.
type Notification struct {
	Level   Level
	Message string

	// Details are optional lines shown under the message, such as every
	// collected configuration problem.
	Details []string
}

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

var (
	levelInfo  = lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	levelWarn  = lipgloss.NewStyle().Foreground(ColorYellow).Render("!")
	levelError = lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed).Render("✖")
)

// TerminalNotifier renders notifications to a writer.
type TerminalNotifier struct {
	Out io.Writer
}

// NewTerminalNotifier creates a notifier writing to out.
func NewTerminalNotifier(out io.Writer) *TerminalNotifier {
	return &TerminalNotifier{Out: out}
}

// Notify implements Notifier.
func (t *TerminalNotifier) Notify(n Notification) {
	fmt.Fprint(t.Out, FormatNotification(n))
}

// FormatNotification renders n as a symbol, a bold message and indented
// details, one per line.
func FormatNotification(n Notification) string {
	var b strings.Builder

	switch n.Level {
	case LevelWarn:
		b.WriteString(levelWarn)
	case LevelError:
		b.WriteString(levelError)
	default:
		b.WriteString(levelInfo)
	}
	b.WriteString(" ")
	b.WriteString(StyleSummary.Render(n.Message))
	b.WriteString("\n")

	for _, d := range n.Details {
		b.WriteString("  ")
		b.WriteString(StyleDim.Render("•"))
		b.WriteString(" ")
		b.WriteString(d)
		b.WriteString("\n")
	}

	return b.String()
}

// Counts summarises the files an operation touched.
type Counts struct {
	Added   int
	Skipped int
	Failed  int
}

// Summary renders counts as a short sentence, e.g.
// "3 files added, 1 skipped (already existed), 0 failed".
func (c Counts) Summary() string {
	return fmt.Sprintf("%s added, %d skipped (already existed), %d failed",
		plural(c.Added, "file"), c.Skipped, c.Failed)
}

// Level picks the notification level for counts: error when nothing was
// added or something failed without anything being added, warn for partial
// results, info otherwise.
func (c Counts) Level() Level {
	switch {
	case c.Added == 0 && c.Skipped == 0:
		return LevelError
	case c.Failed > 0 && c.Added == 0:
		return LevelError
	case c.Failed > 0 || c.Skipped > 0:
		return LevelWarn
	default:
		return LevelInfo
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
