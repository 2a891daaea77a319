package generator

import (
	"regexp"
	"strconv"
	"strings"
)

// Deferred requests a fragment whose placeholder index is assigned later by
// Assemble. Real indices start at 1; anything below is treated as Deferred.
const Deferred = 0

// IndexMarker stands in for the placeholder index of a deferred fragment.
const IndexMarker = "__idx__"

// LinePrefix starts every documentation line.
const LinePrefix = "/// "

// Fragment is a piece of XML documentation in "///" comment form carrying
// snippet placeholders ("${N:text}").
type Fragment string

var (
	placeholderRe = regexp.MustCompile(`\$\{(?:\d+|` + IndexMarker + `):((?:\\.|[^\\}])*)\}`)
	indexRe       = regexp.MustCompile(`\\*\$\{(?:\d+|` + IndexMarker + `):`)
)

// Unresolved reports whether the fragment still carries the index marker.
func (f Fragment) Unresolved() bool {
	return strings.Contains(string(f), "${"+IndexMarker+":")
}

// Resolve replaces the first index marker with idx.
func (f Fragment) Resolve(idx int) Fragment {
	return Fragment(strings.Replace(string(f), "${"+IndexMarker+":", "${"+strconv.Itoa(idx)+":", 1))
}

// renumber rewrites every placeholder index of f, resolved or not, with the
// numbers following *idx in order of appearance. Escaped "\${" is text.
func (f Fragment) renumber(idx *int) Fragment {
	return Fragment(indexRe.ReplaceAllStringFunc(string(f), func(m string) string {
		slashes := len(m) - len(strings.TrimLeft(m, `\`))
		if slashes%2 == 1 {
			return m
		}
		*idx++
		return m[:slashes] + "${" + strconv.Itoa(*idx) + ":"
	}))
}

// Plain replaces every placeholder with its default text, for writing the
// documentation straight into a file instead of expanding it as a snippet.
func (f Fragment) Plain() string {
	return placeholderRe.ReplaceAllStringFunc(string(f), func(m string) string {
		return unescapeSnippet(placeholderRe.FindStringSubmatch(m)[1])
	})
}

// Indent prefixes every line of the fragment with indent.
func (f Fragment) Indent(indent string) Fragment {
	if f == "" || indent == "" {
		return f
	}
	lines := strings.Split(string(f), "\n")
	for i, l := range lines {
		lines[i] = indent + l
	}
	return Fragment(strings.Join(lines, "\n"))
}

func (f Fragment) String() string {
	return string(f)
}

func placeholder(idx int, text string) string {
	index := IndexMarker
	if idx > Deferred {
		index = strconv.Itoa(idx)
	}
	return "${" + index + ":" + escapeSnippet(text) + "}"
}

var snippetEscaper = strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`)

func escapeSnippet(s string) string {
	return snippetEscaper.Replace(s)
}

func unescapeSnippet(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
