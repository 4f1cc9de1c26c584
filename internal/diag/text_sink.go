package diag

import (
	"fmt"
	"io"
	"sync"

	"github.com/aelto/cahirp/internal/format"
)

// TextSink renders events as human-readable lines, colorized via the same
// ColorScheme approach the teacher uses for its terminal output.
type TextSink struct {
	w      io.Writer
	colors *format.ColorScheme
	mu     sync.Mutex
}

// NewTextSink creates a TextSink writing to w with colors enabled or not.
func NewTextSink(w io.Writer, useColor bool) *TextSink {
	return &TextSink{w: w, colors: format.NewColorScheme(useColor)}
}

// Emit implements Sink.
func (s *TextSink) Emit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	label, color := s.label(e.Kind)
	fmt.Fprintf(s.w, "%s%s%s", color, label, s.colors.Reset)

	if e.Mod != "" {
		fmt.Fprintf(s.w, " [%s%s%s]", s.colors.Mod, e.Mod, s.colors.Reset)
	}
	if e.File != "" {
		fmt.Fprintf(s.w, " %s%s%s", s.colors.File, e.File, s.colors.Reset)
	}
	if e.DirectiveID >= 0 {
		fmt.Fprintf(s.w, " #%d", e.DirectiveID)
	}
	if e.Message != "" {
		fmt.Fprintf(s.w, ": %s", e.Message)
	}
	fmt.Fprintln(s.w)

	for _, note := range e.Notes {
		fmt.Fprintf(s.w, "  note: %s\n", note)
	}
}

func (s *TextSink) label(k Kind) (string, string) {
	switch k {
	case KindParseDiagnostic, KindNoLocation, KindPersistError:
		return "error", s.colors.Error
	case KindMissingFile:
		return "warn", s.colors.Warning
	default:
		return "info", s.colors.Info
	}
}
