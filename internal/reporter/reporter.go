package reporter

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/mattn/go-isatty"

	"github.com/oxhq/svcheck/internal/token"
)

// Diagnostic is one reported event: its kind, severity, source position,
// the file it was raised against, and the rendered message body.
type Diagnostic struct {
	ID       MsgID
	Severity Severity
	File     string
	Pos      token.Position
	Message  string
}

func (d Diagnostic) String() string {
	if d.Pos == (token.Position{}) {
		return fmt.Sprintf("[%s] %s | %s", d.Severity, d.File, d.Message)
	}
	return fmt.Sprintf("[%s] %s:%s | %s", d.Severity, d.File, d.Pos, d.Message)
}

// dedupKey identifies a (MsgID, file, context) tuple for ErrNotFound-style
// suppression: the same missing symbol referenced many times in one file
// is reported once, mirroring reporter.rs's prev_msg HashMap.
type dedupKey struct {
	id      MsgID
	file    string
	context string
}

// Reporter is the single diagnostic sink threaded explicitly through
// Project, Parser, and Elaborator construction — never a package-level
// global, per the checker's "no global mutable state" convention. Default
// exists only for cmd/svcheck's composition root.
type Reporter struct {
	out      io.Writer
	color    bool
	severity map[MsgID]Severity
	seen     map[dedupKey]bool
	diags    []Diagnostic
	abortAt  int // 0 disables the abort-after-N-errors threshold
	errCount int
}

// New builds a Reporter writing to out. Coloring is auto-detected via
// go-isatty when out is an *os.File attached to a terminal.
func New(out io.Writer) *Reporter {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Reporter{
		out:      out,
		color:    color,
		severity: map[MsgID]Severity{},
		seen:     map[dedupKey]bool{},
	}
}

var defaultReporter *Reporter

// Default returns a process-wide stderr-backed Reporter, lazily built.
// Only cmd/svcheck's composition root should call this; library code takes
// a *Reporter as a constructor argument.
func Default() *Reporter {
	if defaultReporter == nil {
		defaultReporter = New(os.Stderr)
	}
	return defaultReporter
}

// SetSeverity overrides the severity for id, used by internal/config to
// apply user/env overrides over defaultSeverity.
func (r *Reporter) SetSeverity(id MsgID, sev Severity) {
	r.severity[id] = sev
}

// SetAbortThreshold makes Report panic-free but have Aborted() return true
// once errCount reaches n; 0 (the zero value) disables the threshold.
func (r *Reporter) SetAbortThreshold(n int) {
	r.abortAt = n
}

func (r *Reporter) severityFor(id MsgID) Severity {
	if s, ok := r.severity[id]; ok {
		return s
	}
	return DefaultSeverity(id)
}

// Report records and prints a diagnostic. file and context together form
// the dedup key for ErrNotFound: the same unresolved name in the same file
// prints only once. Other MsgIDs are never deduped.
func (r *Reporter) Report(id MsgID, file string, pos token.Position, context string, args ...any) {
	if id == ErrNotFound {
		key := dedupKey{id: id, file: file, context: context}
		if r.seen[key] {
			return
		}
		r.seen[key] = true
	}

	sev := r.severityFor(id)
	d := Diagnostic{ID: id, Severity: sev, File: file, Pos: pos, Message: template(id, args...)}
	r.diags = append(r.diags, d)
	if sev == Error {
		r.errCount++
	}
	fmt.Fprintln(r.out, r.render(d))
}

// render formats d, applying ANSI color to the severity prefix when the
// Reporter's output is a terminal.
func (r *Reporter) render(d Diagnostic) string {
	if !r.color {
		return d.String()
	}
	code := "0"
	switch d.Severity {
	case Error:
		code = "31"
	case Warning:
		code = "33"
	case Info:
		code = "36"
	case Debug:
		code = "90"
	}
	prefix := fmt.Sprintf("\x1b[%sm[%s]\x1b[0m", code, d.Severity)
	if d.Pos == (token.Position{}) {
		return fmt.Sprintf("%s %s | %s", prefix, d.File, d.Message)
	}
	return fmt.Sprintf("%s %s:%s | %s", prefix, d.File, d.Pos, d.Message)
}

// Aborted reports whether the configured abort threshold has been reached.
func (r *Reporter) Aborted() bool {
	return r.abortAt > 0 && r.errCount >= r.abortAt
}

// HasErrors reports whether any Error-severity diagnostic has been
// recorded, used by cmd/svcheck to choose its process exit code.
func (r *Reporter) HasErrors() bool {
	return r.errCount > 0
}

// Diagnostics returns all recorded diagnostics, file then position ordered.
func (r *Reporter) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(r.diags))
	copy(out, r.diags)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Pos.Before(out[j].Pos)
	})
	return out
}
