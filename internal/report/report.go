// Package report prints the emoji coded console output shared by every
// command.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/fatih/color"
)

// Logger writes colored lines to one writer. It is safe for concurrent use
// so live jobs running side by side do not interleave partial lines.
type Logger struct {
	mu  sync.Mutex
	out io.Writer

	cyan   *color.Color
	green  *color.Color
	yellow *color.Color
	red    *color.Color
}

func New(out io.Writer) *Logger {
	return &Logger{
		out:    out,
		cyan:   color.New(color.FgCyan),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
	}
}

// Stdout returns a Logger on color.Output.
func Stdout() *Logger {
	return New(color.Output)
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard)
}

func (l *Logger) line(c *color.Color, prefix, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	if c == nil {
		fmt.Fprintf(l.out, "%s%s\n", prefix, msg)
		return
	}
	c.Fprintf(l.out, "%s%s\n", prefix, msg)
}

// Info prints a progress line. Callers pick their own emoji.
func (l *Logger) Info(format string, args ...any) {
	l.line(l.cyan, "", format, args...)
}

func (l *Logger) Success(format string, args ...any) {
	l.line(l.green, "✅ ", format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.line(l.yellow, "⚠️  ", format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.line(l.red, "❌ ", format, args...)
}

func (l *Logger) Plain(format string, args ...any) {
	l.line(nil, "", format, args...)
}

// Failure logs err with the marker of its api.Kind.
func (l *Logger) Failure(what string, err error) {
	switch api.Classify(err) {
	case api.KindTimeout:
		l.line(l.yellow, "🕐 ", "%s: timed out (%v)", what, err)
	case api.KindTransport:
		l.line(l.red, "🔌 ", "%s: %v", what, err)
	case api.KindValidation:
		l.line(l.yellow, "⚠️  ", "%s: %s", what, api.Message(err))
	default:
		l.line(l.red, "❌ ", "%s: %v", what, err)
	}
}

// Row is one line of a count table.
type Row struct {
	Name    string
	Count   int
	Samples []string
	Err     error
}

// Table prints rows as an aligned NAME/COUNT/SAMPLES table.
func (l *Logger) Table(title string, rows []Row) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.green.Fprintf(l.out, "📊 %s\n", title)
	w := tabwriter.NewWriter(l.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOUNT\tSAMPLES")
	fmt.Fprintln(w, "----\t-----\t-------")
	for _, r := range rows {
		if r.Err != nil {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, "-", r.Err.Error())
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", r.Name, r.Count, strings.Join(r.Samples, ", "))
	}
	w.Flush()
}
