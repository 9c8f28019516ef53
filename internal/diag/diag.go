// Package diag collects compiler diagnostics — lexical, syntax, and semantic
// errors alike — into one sortable, caret-rendering Bag. Grounded on the
// Rust original's error_handler::ErrorHandler (original_source/error_handler/
// src/error_handler.rs): a running program text plus a slice of located
// errors, sorted by position and rendered with a "line N:col" header, a
// source line, and a caret pointing at the offending column.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/google/uuid"
)

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Position locates a diagnostic in source text.
type Position struct {
	Line     int // 1-based
	Col      int // 1-based
	SourceLine string
}

func (p Position) String() string {
	return fmt.Sprintf("line %d:%d", p.Line, p.Col)
}

// Error is one located diagnostic. Kind is a stable machine-readable tag
// (e.g. "undefined-variable", "func-params-invalid-amount") so callers and tests can
// switch on the failure category instead of string-matching Message; it
// mirrors the granular semantic-error constructors the Rust source defines
// under error_handler/src/error/semantic.
type Error struct {
	Severity Severity
	Kind     string
	Message  string
	Pos      Position
}

// Error satisfies the error interface so a diag.Error can be returned
// directly from a fallible operation (e.g. Parser.Parse) before it has a
// Bag to live in.
func (e *Error) Error() string { return e.String() }

func (e Error) String() string {
	pointer := strings.Repeat(" ", max0(e.Pos.Col-1)) + "^"
	return fmt.Sprintf("%s: %s\n --> %s\n  |\n%3d | %s\n  |   %s\n",
		e.Severity, e.Message, e.Pos, e.Pos.Line, e.Pos.SourceLine, pointer)
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Bag accumulates diagnostics over one compilation run, identified by a
// session ID so a cache entry or log line can be correlated back to the
// run that produced it.
type Bag struct {
	SessionID uuid.UUID
	errs      []Error
}

func NewBag() *Bag {
	return &Bag{SessionID: uuid.New()}
}

func (b *Bag) Add(e Error) { b.errs = append(b.errs, e) }

func (b *Bag) Errorf(pos Position, kind, format string, args ...interface{}) {
	b.Add(Error{Severity: SeverityError, Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (b *Bag) Warnf(pos Position, kind, format string, args ...interface{}) {
	b.Add(Error{Severity: SeverityWarning, Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (b *Bag) HasErrors() bool {
	for _, e := range b.errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns every diagnostic sorted by position, matching the Rust
// original's get_error_messages/get_raw_errors, which sort by position
// before rendering.
func (b *Bag) Errors() []Error {
	sorted := append([]Error(nil), b.errs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, c := sorted[i].Pos, sorted[j].Pos
		if a.Line != c.Line {
			return a.Line < c.Line
		}
		return a.Col < c.Col
	})
	return sorted
}

func (b *Bag) Len() int { return len(b.errs) }

// String renders every diagnostic as a caret-annotated block, preceded by
// an aligned summary table with a header row and one row per diagnostic
// (rendered via rosed, the same table library the LALR table renderer uses).
func (b *Bag) String() string {
	var sb strings.Builder
	errs := b.Errors()

	summary := [][]string{{"SEV", "KIND", "LOCATION"}}
	for _, e := range errs {
		summary = append(summary, []string{e.Severity.String(), e.Kind, e.Pos.String()})
	}
	if len(summary) > 1 {
		table := rosed.Edit("").InsertTableOpts(0, summary, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).String()
		sb.WriteString(table)
		sb.WriteString("\n\n")
	}

	for _, e := range errs {
		sb.WriteString(e.String())
		sb.WriteRune('\n')
	}
	return sb.String()
}
