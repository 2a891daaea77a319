package extractor

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	objectHeaderRe = regexp.MustCompile(`(?i)^\s*(table|tableextension|page|pageextension|codeunit|report|reportextension|query|xmlport|enum|enumextension|interface|controladdin|permissionset|permissionsetextension|profile|entitlement)\s+(?:(\d+)\s+)?("[^"]+"|[\w.]+)(?:\s+(extends|implements)\s+(.+?))?\s*(?:\{.*)?$`)
	procedureRe    = regexp.MustCompile(`(?i)^\s*(?:(local|internal|protected)\s+)?procedure\s+("[^"]+"|\w+)\s*\(`)
	attributeRe    = regexp.MustCompile(`^\s*\[.*\]\s*$`)
	returnRe       = regexp.MustCompile(`^\s*(?:("[^"]+"|\w+)\s*)?:\s*(.+?)\s*;?\s*$`)
)

// Extractor turns AL source text into construct descriptors.
type Extractor struct {
	// Locals controls whether local procedures are reported.
	Locals bool
}

// NewExtractor creates a new extractor.
func NewExtractor() *Extractor {
	return &Extractor{Locals: true}
}

// ExtractFromFile reads and scans a single AL source file.
func (e *Extractor) ExtractFromFile(filepath string) (*File, error) {
	src, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath, err)
	}
	return e.ExtractFromSource(filepath, string(src)), nil
}

// ExtractFromSource scans src line by line for object and procedure headers.
// Procedures found before any object header are dropped.
func (e *Extractor) ExtractFromSource(path, src string) *File {
	lines := strings.Split(strings.ReplaceAll(src, "\r", ""), "\n")
	file := &File{Path: path}

	var current *Object
	for i := 0; i < len(lines); i++ {
		line := stripLineComment(lines[i])

		if m := objectHeaderRe.FindStringSubmatch(line); m != nil {
			objType, _ := ParseObjectType(m[1])
			obj := &Object{
				Type:       objType,
				Name:       unquote(m[3]),
				Line:       i,
				AnchorLine: anchorLine(lines, i),
			}
			if m[2] != "" {
				obj.ID, _ = strconv.Atoi(m[2])
			}
			if m[4] != "" {
				_ = obj.ExtensionKind.UnmarshalText([]byte(m[4]))
				obj.ExtensionTarget = extensionTarget(m[5])
			}
			file.Objects = append(file.Objects, obj)
			current = obj
			continue
		}

		m := procedureRe.FindStringSubmatch(line)
		if m == nil || current == nil {
			continue
		}
		access := strings.ToLower(m[1])
		header, last := joinHeader(lines, i)
		proc := parseProcedureHeader(header)
		proc.Access = access
		proc.Line = i
		proc.AnchorLine = anchorLine(lines, i)
		proc.HeaderEnd = last
		i = last
		if access == "local" && !e.Locals {
			continue
		}
		current.Procedures = append(current.Procedures, proc)
	}
	return file
}

// joinHeader collects a procedure header that may span several lines, up to
// the line that closes the parameter list. It returns the joined text and the
// index of the last line consumed.
func joinHeader(lines []string, start int) (string, int) {
	var b strings.Builder
	depth := 0
	opened := false
	for i := start; i < len(lines); i++ {
		line := stripLineComment(lines[i])
		if i > start {
			b.WriteByte(' ')
		}
		b.WriteString(strings.TrimSpace(line))
		inQuote := false
		for _, r := range line {
			switch {
			case r == '"':
				inQuote = !inQuote
			case inQuote:
			case r == '(':
				depth++
				opened = true
			case r == ')':
				depth--
			}
		}
		if opened && depth <= 0 {
			return b.String(), i
		}
	}
	return b.String(), len(lines) - 1
}

func parseProcedureHeader(header string) *Procedure {
	proc := &Procedure{}
	m := procedureRe.FindStringSubmatchIndex(header)
	if m == nil {
		return proc
	}
	proc.Name = unquote(header[m[4]:m[5]])

	open := m[1] - 1
	end := matchingParen(header, open)
	if end < 0 {
		return proc
	}
	for _, raw := range splitTopLevel(header[open+1:end], ';') {
		if p := parseParameter(raw); p != nil {
			proc.Parameters = append(proc.Parameters, p)
		}
	}

	rest := header[end+1:]
	if i := strings.IndexByte(rest, '{'); i >= 0 {
		rest = rest[:i]
	}
	if rm := returnRe.FindStringSubmatch(rest); rm != nil {
		proc.Return = &Return{Name: unquote(rm[1]), Type: strings.TrimSpace(rm[2])}
	}
	return proc
}

// parseParameter parses "[var] Name: Type [Subtype...] [temporary]".
func parseParameter(raw string) *Parameter {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	p := &Parameter{}
	if len(raw) > 4 && strings.EqualFold(raw[:4], "var ") {
		p.ByReference = true
		raw = strings.TrimSpace(raw[4:])
	}
	colon := indexOutsideQuotes(raw, ':')
	if colon < 0 {
		return nil
	}
	p.Name = unquote(strings.TrimSpace(raw[:colon]))

	typeDecl := strings.TrimSpace(raw[colon+1:])
	if fields := strings.Fields(typeDecl); len(fields) > 1 && strings.EqualFold(fields[len(fields)-1], "temporary") {
		p.Temporary = true
		typeDecl = strings.TrimSpace(typeDecl[:strings.LastIndex(strings.ToLower(typeDecl), "temporary")])
	}
	typ, sub := splitType(typeDecl)
	p.Type = typ
	p.Subtype = sub
	return p
}

// splitType separates the leading type keyword (brackets included, e.g.
// "Text[100]") from whatever qualifies it.
func splitType(decl string) (string, string) {
	depth := 0
	for i, r := range decl {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ' ', '\t':
			if depth == 0 {
				return decl[:i], strings.TrimSpace(decl[i+1:])
			}
		}
	}
	return decl, ""
}

func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth := 0
	inQuote := false
	start := 0
	for i, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			depth--
		case r == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func matchingParen(s string, open int) int {
	depth := 0
	inQuote := false
	for i := open; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func indexOutsideQuotes(s string, c byte) int {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '"':
			inQuote = !inQuote
		case !inQuote && s[i] == c:
			return i
		}
	}
	return -1
}

// anchorLine walks up over attribute lines ("[Scope('OnPrem')]") directly
// above a declaration.
func anchorLine(lines []string, decl int) int {
	anchor := decl
	for i := decl - 1; i >= 0 && attributeRe.MatchString(lines[i]); i-- {
		anchor = i
	}
	return anchor
}

func extensionTarget(raw string) string {
	targets := splitTopLevel(raw, ',')
	for i, t := range targets {
		targets[i] = unquote(strings.TrimSpace(t))
	}
	return strings.Join(targets, ", ")
}

// stripLineComment removes a trailing // comment that is not inside a quoted
// identifier or a string literal.
func stripLineComment(line string) string {
	inQuote, inString := false, false
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '"' && !inString:
			inQuote = !inQuote
		case c == '\'' && !inQuote:
			inString = !inString
		case c == '/' && !inQuote && !inString && i+1 < len(line) && line[i+1] == '/':
			return line[:i]
		}
	}
	return line
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
