// Package terminal prints API data and documents for a human reader.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/recruitgenius/recruit-cli/internal/app"
	"github.com/recruitgenius/recruit-cli/internal/view"
)

const (
	reset     = "\033[0m"
	bold      = "\033[1m"
	dim       = "\033[2m"
	underline = "\033[4m"
	red       = "\033[31m"
	green     = "\033[32m"
	yellow    = "\033[33m"
	magenta   = "\033[35m"
	cyan      = "\033[36m"
	white     = "\033[37m"
)

var toneColors = map[view.Tone]string{
	view.ToneSky:     cyan,
	view.ToneAmber:   yellow,
	view.ToneViolet:  magenta,
	view.ToneGreen:   green,
	view.ToneNeutral: white,
}

var gradeColors = map[view.Grade]string{
	view.Good: green,
	view.Warn: yellow,
	view.Poor: red,
}

var levelColors = map[app.Level]string{
	app.LevelInfo:    cyan,
	app.LevelLoading: dim,
	app.LevelSuccess: green,
	app.LevelError:   red,
}

// Printer writes rendered output to out and notifications to status. It is
// safe for concurrent use.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	status io.Writer
	color  bool
}

// New enables colors only when out is a terminal and noColor is not set.
func New(out, status io.Writer, noColor bool) *Printer {
	return &Printer{
		out:    out,
		status: status,
		color:  !noColor && isTerminal(out),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Notify implements app.Notifier.
func (p *Printer) Notify(n app.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prefix := ""
	switch n.Level {
	case app.LevelError:
		prefix = "✗ "
	case app.LevelSuccess:
		prefix = "✓ "
	case app.LevelLoading:
		prefix = "… "
	}
	fmt.Fprintln(p.status, p.paint(levelColors[n.Level], prefix+n.Message))
}

func (p *Printer) paint(code, s string) string {
	if !p.color || code == "" || s == "" {
		return s
	}
	return code + s + reset
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

func (p *Printer) badge(status string) string {
	if status == "" {
		return ""
	}
	return p.paint(toneColors[view.StatusTone(status)], "["+status+"]")
}

func (p *Printer) skills(skills []string) string {
	preview := view.PreviewSkills(skills)
	parts := make([]string, 0, len(preview.Shown)+1)
	for _, s := range preview.Shown {
		parts = append(parts, p.paint(cyan, s))
	}
	if marker := preview.Marker(); marker != "" {
		parts = append(parts, p.paint(dim, marker))
	}
	return strings.Join(parts, " · ")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
