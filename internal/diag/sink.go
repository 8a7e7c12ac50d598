// Package diag implements the compiler's diagnostic sink: a bounded,
// append-only list of structured error records consulted between pipeline
// stages, in the spirit of wut4's per-stage fmt.Fprintf(os.Stderr, ...)
// error reporting but carrying enough structure (source line, span length,
// label/note/help) to print the caret-underlined format spec.md §6
// describes.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Capacity bounds the sink the way spec.md §4.2 requires; Append is a
// silent no-op once the sink is full.
const Capacity = 256

// Category classifies a Record by pipeline stage, mirroring spec.md §7's
// taxonomy (Lexical, Syntactic, Semantic, Lowering, Infrastructure).
type Category string

const (
	Lexical        Category = "lexical error"
	Syntactic      Category = "syntax error"
	Semantic       Category = "error"
	Lowering       Category = "lowering error"
	Infrastructure Category = "internal error"
)

// Record is one structured diagnostic.
type Record struct {
	Category   Category
	File       string
	Message    string
	Line       int
	Column     int
	SourceLine string
	SpanLen    int
	Label      string
	Note       string
	Help       string
}

// Sink accumulates Records up to Capacity. A zero Sink is ready to use.
// spec.md §9 asks that the process-wide static list be replaced by a sink
// value threaded through stage entry points; Sink is that value. Nothing
// here is safe for concurrent use — spec.md §5 establishes the pipeline is
// strictly single-threaded, so no locking is attempted.
type Sink struct {
	records []Record
}

// Append records a diagnostic; once the sink is at Capacity, further
// diagnostics are dropped silently (spec.md §4.2).
func (s *Sink) Append(r Record) {
	if len(s.records) >= Capacity {
		return
	}
	s.records = append(s.records, r)
}

// Errorf is a convenience wrapper around Append for the common case of a
// plain formatted message at a source position.
func (s *Sink) Errorf(cat Category, file string, line, col int, sourceLine string, spanLen int, format string, args ...any) {
	s.Append(Record{
		Category:   cat,
		File:       file,
		Message:    fmt.Sprintf(format, args...),
		Line:       line,
		Column:     col,
		SourceLine: sourceLine,
		SpanLen:    spanLen,
	})
}

// Len reports how many diagnostics have been recorded.
func (s *Sink) Len() int { return len(s.records) }

// HasErrors reports whether any diagnostics are present; the driver
// consults this between stages per spec.md §4.8.
func (s *Sink) HasErrors() bool { return len(s.records) > 0 }

// Clear empties the sink. Tests must never rely on a Sink surviving
// between pipeline runs (spec.md §9); Clear exists for callers that reuse
// one Sink value across multiple Run calls in-process.
func (s *Sink) Clear() { s.records = nil }

// Records returns the accumulated diagnostics in order.
func (s *Sink) Records() []Record { return s.records }

var (
	categoryColor = color.New(color.FgRed, color.Bold)
	locationColor = color.New(color.FgCyan)
	caretColor    = color.New(color.FgRed, color.Bold)
)

// Report prints every accumulated diagnostic to w in the format spec.md §6
// specifies:
//
//	<category>: <message>
//	  --> file:line:col
//	   <pad> |
//	   <line> | <source line>
//	   <pad> | <spaces><carets>
//	[label]
//	[note]
//	[help]
//	<blank line>
//
// It returns true if any diagnostics were present, the same boolean the
// driver uses to decide whether the pipeline already failed.
func (s *Sink) Report(w io.Writer) bool {
	for _, r := range s.records {
		lineNumStr := fmt.Sprintf("%d", r.Line)
		pad := strings.Repeat(" ", len(lineNumStr))

		fmt.Fprintf(w, "%s: %s\n", categoryColor.Sprint(string(r.Category)), r.Message)
		fmt.Fprintf(w, "  %s%s:%d:%d\n", "--> ", locationColor.Sprint(r.File), r.Line, r.Column)
		fmt.Fprintf(w, " %s |\n", pad)
		fmt.Fprintf(w, " %s | %s\n", lineNumStr, r.SourceLine)

		spanLen := r.SpanLen
		if spanLen < 1 {
			spanLen = 1
		}
		col := r.Column
		if col < 1 {
			col = 1
		}
		carets := strings.Repeat("^", spanLen)
		fmt.Fprintf(w, " %s | %s%s\n", pad, strings.Repeat(" ", col-1), caretColor.Sprint(carets))

		if r.Label != "" {
			fmt.Fprintf(w, "%s\n", r.Label)
		}
		if r.Note != "" {
			fmt.Fprintf(w, "note: %s\n", r.Note)
		}
		if r.Help != "" {
			fmt.Fprintf(w, "help: %s\n", r.Help)
		}
		fmt.Fprintln(w)
	}
	return len(s.records) > 0
}
