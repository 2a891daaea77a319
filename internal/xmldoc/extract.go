package xmldoc

import (
	"regexp"
	"strings"
)

// ExtractTag returns the lines of the first <tag> element in text, from the
// line that opens it through the line that closes it, joined by "\n". With a
// non-empty attrName only an opening of the exact form <tag attrName="attrValue">
// matches. It returns "" when nothing matches.
//
// The scan is line based so it works on blocks that are not valid XML, as long
// as the opening and closing lines are intact.
func ExtractTag(text, tag, attrName, attrValue string) string {
	open := "<" + tag + ">"
	if attrName != "" {
		open = "<" + tag + " " + attrName + `="` + attrValue + `">`
	}
	closing := "</" + tag + ">"

	var out []string
	inside := false
	for _, line := range strings.Split(text, "\n") {
		if !inside && strings.Contains(line, open) {
			inside = true
		}
		if !inside {
			continue
		}
		out = append(out, line)
		if strings.Contains(line, closing) {
			break
		}
	}
	return strings.Join(out, "\n")
}

// Element is a top-level tag of a documentation block with the lines it spans.
type Element struct {
	Name string
	Text string
}

var openTagRe = regexp.MustCompile(`^\s*(?:///)?\s*<([A-Za-z_][\w.-]*)(?:\s[^>]*?)?(/?)>`)

// Elements lists the top-level tags of text in order, each from the line that
// opens it through the line that closes it. Like ExtractTag the scan is line
// based: a tag must open at the start of a line, and lines outside any tag are
// skipped. An element left open runs to the end of text.
func Elements(text string) []Element {
	var out []Element
	var lines []string
	name, closing := "", ""
	for _, line := range strings.Split(text, "\n") {
		if name == "" {
			m := openTagRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if m[2] == "/" {
				out = append(out, Element{Name: m[1], Text: line})
				continue
			}
			name, closing = m[1], "</"+m[1]+">"
			lines = nil
		}
		lines = append(lines, line)
		if strings.Contains(line, closing) {
			out = append(out, Element{Name: name, Text: strings.Join(lines, "\n")})
			name = ""
		}
	}
	if name != "" {
		out = append(out, Element{Name: name, Text: strings.Join(lines, "\n")})
	}
	return out
}
