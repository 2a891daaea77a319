package buffer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleLines has documentation on lines 3-5 and the declaration on line 6.
var sampleLines = []string{
	"codeunit 50100 Sample",
	"{",
	"",
	"    /// <summary>",
	"    /// ${1:Run.}",
	"    /// </summary>",
	"    procedure Run()",
	"    begin",
	"    end;",
	"}",
}

func sampleDoc() *Document {
	return NewDocument(strings.Join(sampleLines, "\r\n"))
}

func TestDocument(t *testing.T) {
	doc := sampleDoc()
	assert.Equal(t, len(sampleLines), doc.LineCount())
	assert.Equal(t, "    procedure Run()", doc.Line(6))
	assert.Equal(t, "", doc.Line(-1))
	assert.Equal(t, "", doc.Line(100))
	assert.NotContains(t, doc.Text(), "\r")

	doc.SetCursor(100)
	assert.Equal(t, len(sampleLines)-1, doc.CursorLine())
}

func TestFindDocBlockEnd(t *testing.T) {
	doc := sampleDoc()

	t.Run("Declaration below the block", func(t *testing.T) {
		assert.Equal(t, 6, FindDocBlockEnd(doc, 6))
	})

	t.Run("No comment directly above", func(t *testing.T) {
		assert.Equal(t, -1, FindDocBlockEnd(doc, 2))
		assert.Equal(t, -1, FindDocBlockEnd(doc, 7), "The scan stops at the first non-comment line")
	})

	t.Run("Inside the block", func(t *testing.T) {
		assert.Equal(t, 5, FindDocBlockEnd(doc, 5))
	})

	t.Run("Top of file", func(t *testing.T) {
		assert.Equal(t, -1, FindDocBlockEnd(doc, 0))
		top := NewDocument("/// <summary>\n/// X\n/// </summary>\ntable 1 X")
		assert.Equal(t, 3, FindDocBlockEnd(top, 3))
		assert.Equal(t, 1, FindDocBlockEnd(top, 1))
	})

	t.Run("Cursor", func(t *testing.T) {
		doc.SetCursor(6)
		assert.Equal(t, 6, FindDocBlockEnd(doc, FromCursor))
		doc.SetCursor(1)
		assert.Equal(t, -1, FindDocBlockEnd(doc, FromCursor))
	})

	t.Run("Past the end", func(t *testing.T) {
		tail := NewDocument("x\n/// trailing")
		assert.Equal(t, 2, FindDocBlockEnd(tail, 50))
	})
}

func TestFindDocBlockStart(t *testing.T) {
	doc := sampleDoc()
	assert.Equal(t, 3, FindDocBlockStart(doc, 6))
	assert.Equal(t, -1, FindDocBlockStart(doc, 3))

	top := NewDocument("/// a\n/// b\nprocedure")
	assert.Equal(t, 0, FindDocBlockStart(top, 2))
}

func TestLineIndentColumn(t *testing.T) {
	text := strings.Join(sampleLines, "\n")
	tests := []struct {
		line int
		want int
	}{
		{0, 0},
		{2, 0},
		{6, 4},
		{99, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LineIndentColumn(text, tt.line), "line %d", tt.line)
	}

	// Only leading whitespace counts toward the column.
	assert.Equal(t, 2, LineIndentColumn("\t\tprocedure X()  ", 0), "Trailing whitespace does not count")
	require.Equal(t, "\t\t", LineIndent("\t\tprocedure X()", 0))
}
