// Package emitter splices a directive's code snippet into a file's contents
// at a resolved cursor position, reproducing the indentation of the
// adjacent surrounding line.
package emitter

import (
	"strings"
	"unicode/utf8"

	"github.com/aelto/cahirp/internal/cursor"
)

// Emit splices code into file at pos. It returns the new contents and true
// on success. It returns the original, unmodified file and false when pos
// does not land on a valid location — either past end-of-file or off a
// UTF-8 character boundary — so the caller can surface a no-location
// diagnostic without ever corrupting the file.
func Emit(file, code string, pos cursor.Position) (string, bool) {
	idx := pos.Index
	if idx < 0 || idx > len(file) {
		return file, false
	}
	if idx < len(file) && !utf8.RuneStart(file[idx]) {
		return file, false
	}

	left := strings.TrimRight(file[:idx], " \t")
	if strings.HasSuffix(left, "\n") {
		left = strings.TrimRight(left[:len(left)-1], " \t") + "\n"
	}
	right := file[idx:]

	selEnd := pos.SelectionLen
	if selEnd > len(right) {
		selEnd = len(right)
	}

	return left + reindent(code, leadingIndent(right)) + right[selEnd:], true
}

// reindent re-indents every non-blank line of code with indent, trimming
// each line first. An entirely blank snippet produces no output at all, so
// an empty-code emit is the identity on the surrounding text (aside from the
// trailing-whitespace trim applied to the preceding line).
func reindent(code, indent string) string {
	if strings.TrimSpace(code) == "" {
		return ""
	}

	var b strings.Builder
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			b.WriteString(indent)
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// leadingIndent returns the run of spaces and tabs at the start of the first
// line of s — the line the cursor sits in front of, whose indentation the
// spliced snippet should match.
func leadingIndent(s string) string {
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[:nl]
	}

	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}
