// Package notify carries artifact-load diagnostics from the loader layer to
// whichever surface is rendering: dashboard notices, TUI lines, CLI stderr,
// MCP tool output. Reporters never fail and never panic.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fatih/color"
)

// Severity classifies how a diagnostic should be presented.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Kind identifies the failure class behind a diagnostic.
type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindDecodeError Kind = "decode_error"
	KindSchemaError Kind = "schema_error"
	KindUnexpected  Kind = "unexpected"
)

// Diagnostic is one observational message about a degraded load. It never
// changes what a loader returns.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
}

// Reporter receives diagnostics. Implementations must be safe to call with
// a zero Diagnostic and must not retain the slice backing any formatting.
type Reporter interface {
	Report(d Diagnostic)
}

// Warningf reports a formatted warning-severity diagnostic to r.
func Warningf(r Reporter, kind Kind, format string, args ...any) {
	r.Report(Diagnostic{Severity: SeverityWarning, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Errorf reports a formatted error-severity diagnostic to r.
func Errorf(r Reporter, kind Kind, format string, args ...any) {
	r.Report(Diagnostic{Severity: SeverityError, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Recorder collects diagnostics in order. One recorder per render keeps
// renders independent; safe for concurrent use anyway.
type Recorder struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diags = append(r.diags, d)
}

// Diagnostics returns a copy of everything reported so far, in order.
func (r *Recorder) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (r *Recorder) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Len returns the number of recorded diagnostics.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.diags)
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diags = nil
}

// Logger routes diagnostics to a slog.Logger at the matching level.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

func (l *Logger) Report(d Diagnostic) {
	if d.Severity == SeverityError {
		l.logger.Error(d.Message, "kind", string(d.Kind))
		return
	}
	l.logger.Warn(d.Message, "kind", string(d.Kind))
}

// Console writes human-readable diagnostic lines to a writer, colorized
// when the terminal supports it.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Report(d Diagnostic) {
	label := color.YellowString("warning")
	if d.Severity == SeverityError {
		label = color.RedString("error")
	}
	fmt.Fprintf(c.out, "%s: %s\n", label, d.Message)
}

// Multi fans each diagnostic out to every reporter in order.
func Multi(reporters ...Reporter) Reporter {
	return multi(reporters)
}

type multi []Reporter

func (m multi) Report(d Diagnostic) {
	for _, r := range m {
		r.Report(d)
	}
}

// Discard drops every diagnostic.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}
