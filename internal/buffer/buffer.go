// Package buffer gives line-oriented, read-only access to an editor buffer and
// locates documentation comment blocks in it.
package buffer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DocMarker starts a documentation comment line.
const DocMarker = "///"

// FromCursor asks FindDocBlockEnd to start from the buffer's cursor line.
const FromCursor = -1

// Buffer is the view of an editor buffer the locator needs. Lines are 0-based.
type Buffer interface {
	Text() string
	CursorLine() int
	Line(n int) string
	LineCount() int
}

// Document is a Buffer over an in-memory snapshot of a file.
type Document struct {
	text   string
	lines  []string
	cursor int
}

// NewDocument creates a document with the cursor on the first line. Carriage
// returns are dropped.
func NewDocument(text string) *Document {
	text = strings.ReplaceAll(text, "\r", "")
	return &Document{text: text, lines: strings.Split(text, "\n")}
}

func (d *Document) Text() string { return d.text }
func (d *Document) CursorLine() int { return d.cursor }
func (d *Document) LineCount() int { return len(d.lines) }
func (d *Document) Lines() []string { return d.lines }
func (d *Document) SetCursor(n int) { d.cursor = clamp(n, 0, len(d.lines)-1) }

// Line returns line n, or "" when n is out of range.
func (d *Document) Line(n int) string {
	if n < 0 || n >= len(d.lines) {
		return ""
	}
	return d.lines[n]
}

// IsDocLine reports whether line belongs to a documentation comment.
func IsDocLine(line string) bool {
	return strings.Contains(line, DocMarker)
}

// FindDocBlockEnd checks the line directly above from. When it is a
// documentation line, from is returned: the line just past the block, where a
// declaration or an insertion belongs. Otherwise it returns -1. The check does
// not skip blank or code lines. FromCursor uses the cursor line.
func FindDocBlockEnd(buf Buffer, from int) int {
	if from == FromCursor {
		from = buf.CursorLine()
	}
	if from > buf.LineCount() {
		from = buf.LineCount()
	}
	prev := from - 1
	if prev < 0 || !IsDocLine(buf.Line(prev)) {
		return -1
	}
	return prev + 1
}

// FindDocBlockStart returns the first line of the run of documentation lines
// that ends just above end, or -1 if line end-1 is not a documentation line.
func FindDocBlockStart(buf Buffer, end int) int {
	if end < 0 || FindDocBlockEnd(buf, end) < 0 {
		return -1
	}
	start := end - 1
	for start > 0 && IsDocLine(buf.Line(start-1)) {
		start--
	}
	return start
}

// LineIndent returns the leading whitespace of line lineNo of text.
func LineIndent(text string, lineNo int) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
	if lineNo < 0 || lineNo >= len(lines) {
		return ""
	}
	line := lines[lineNo]
	return line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
}

// LineIndentColumn returns how many whitespace characters precede the first
// non-blank character of line lineNo. Out-of-range lines report 0.
func LineIndentColumn(text string, lineNo int) int {
	return utf8.RuneCountInString(LineIndent(text, lineNo))
}

func clamp(n, lo, hi int) int {
	if n > hi {
		n = hi
	}
	if n < lo {
		n = lo
	}
	return n
}
