// Package updater inserts and refreshes documentation blocks in AL source.
package updater

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"aldoc/internal/buffer"
	"aldoc/internal/extractor"
	"aldoc/internal/generator"
	"aldoc/internal/xmldoc"

	"github.com/pmezard/go-difflib/difflib"
)

// Target is the construct an edit documents: exactly one field is set.
type Target struct {
	Object    *extractor.Object
	Procedure *extractor.Procedure
}

// Line is the declaration line.
func (t Target) Line() int {
	if t.Object != nil {
		return t.Object.Line
	}
	return t.Procedure.Line
}

// End is the last line of the declaration header.
func (t Target) End() int {
	if t.Object != nil {
		return t.Object.Line
	}
	return t.Procedure.HeaderEnd
}

// Anchor is the line the documentation block sits directly above.
func (t Target) Anchor() int {
	if t.Object != nil {
		return t.Object.AnchorLine
	}
	return t.Procedure.AnchorLine
}

func (t Target) String() string {
	if t.Object != nil {
		return t.Object.Type.String() + " " + t.Object.Name
	}
	return "procedure " + t.Procedure.Name
}

// Edit replaces lines [Start, End) with Lines.
type Edit struct {
	Target Target
	Start  int
	End    int
	Lines  []string
}

type Options struct {
	Snippet bool // keep ${N:...} placeholders
	Objects bool // document object declarations too
}

type DocUpdater struct {
	opts Options
}

func NewDocUpdater(opts Options) *DocUpdater {
	return &DocUpdater{opts: opts}
}

// Targets lists the constructs of file in source order.
func (u *DocUpdater) Targets(file *extractor.File) []Target {
	var targets []Target
	for _, obj := range file.Objects {
		if u.opts.Objects {
			targets = append(targets, Target{Object: obj})
		}
		for _, proc := range obj.Procedures {
			targets = append(targets, Target{Procedure: proc})
		}
	}
	return targets
}

// TargetAt finds the construct declared at line, counting its attribute
// lines as part of the declaration.
func (u *DocUpdater) TargetAt(file *extractor.File, line int) (Target, bool) {
	for _, obj := range file.Objects {
		if obj.AnchorLine <= line && line <= obj.Line {
			return Target{Object: obj}, true
		}
		for _, proc := range obj.Procedures {
			if proc.AnchorLine <= line && line <= proc.Line {
				return Target{Procedure: proc}, true
			}
		}
	}
	return Target{}, false
}

// Missing returns the constructs that have no documentation block above them.
func (u *DocUpdater) Missing(doc buffer.Buffer, file *extractor.File) []Target {
	var missing []Target
	for _, t := range u.Targets(file) {
		if buffer.FindDocBlockEnd(doc, t.Anchor()) < 0 {
			missing = append(missing, t)
		}
	}
	return missing
}

// Plan computes the edit that documents t. An existing block is refreshed:
// its summary, remarks, and the <param>/<returns> tags that still match the
// declaration are kept, missing ones are generated, stale ones dropped. Any
// other top-level tag is kept after them. A
// block without a <summary> is free text and is left alone. The second result
// is false when there is nothing to change.
func (u *DocUpdater) Plan(doc *buffer.Document, t Target) (Edit, bool) {
	anchor := t.Anchor()
	start := anchor
	existing := ""
	if end := buffer.FindDocBlockEnd(doc, anchor); end >= 0 {
		start = buffer.FindDocBlockStart(doc, end)
		existing = strings.Join(doc.Lines()[start:end], "\n")
		if xmldoc.ExtractTag(existing, "summary", "", "") == "" {
			return Edit{}, false
		}
	}

	var frag generator.Fragment
	if t.Object != nil {
		frag = u.objectBlock(t.Object, existing)
	} else {
		frag = u.procedureBlock(t.Procedure, existing)
	}
	if frag == "" {
		return Edit{}, false
	}

	frag = frag.Indent(buffer.LineIndent(doc.Text(), anchor))
	text := frag.String()
	if !u.opts.Snippet {
		text = frag.Plain()
	}
	if text == existing {
		return Edit{}, false
	}
	return Edit{Target: t, Start: start, End: anchor, Lines: strings.Split(text, "\n")}, true
}

func (u *DocUpdater) objectBlock(obj *extractor.Object, existing string) generator.Fragment {
	summary := kept(xmldoc.ExtractTag(existing, "summary", "", ""))
	if summary == "" {
		summary = generator.ObjectDoc(obj, generator.Deferred)
	}
	return generator.Assemble(withRemarks(summary, existing), nil, others(existing))
}

func (u *DocUpdater) procedureBlock(proc *extractor.Procedure, existing string) generator.Fragment {
	summary := kept(xmldoc.ExtractTag(existing, "summary", "", ""))
	if summary == "" {
		summary = generator.ProcedureSummary(proc, generator.Deferred)
	}
	if summary == "" || proc.Name == "" {
		return ""
	}

	params := make([]generator.Fragment, 0, len(proc.Parameters))
	for _, p := range proc.Parameters {
		f := kept(xmldoc.ExtractTag(existing, "param", "name", p.Name))
		if f == "" {
			f = generator.ParameterDoc(p, generator.Deferred)
		}
		params = append(params, f)
	}

	var ret generator.Fragment
	if proc.Return != nil {
		ret = kept(xmldoc.ExtractTag(existing, "returns", "", ""))
		if ret == "" {
			ret = generator.ReturnDoc(proc.Return, generator.Deferred)
		}
	}
	if extra := others(existing); extra != "" {
		if ret != "" {
			extra = ret + "\n" + extra
		}
		ret = extra
	}
	return generator.Assemble(withRemarks(summary, existing), params, ret)
}

func withRemarks(summary generator.Fragment, existing string) generator.Fragment {
	if remarks := kept(xmldoc.ExtractTag(existing, "remarks", "", "")); remarks != "" {
		return summary + "\n" + remarks
	}
	return summary
}

// generated names the tags a refresh rebuilds from the declaration.
var generated = map[string]bool{"summary": true, "remarks": true, "param": true, "returns": true}

// others keeps the remaining top-level tags of an existing block, such as
// <example>, <exception> or <seealso>, in source order.
func others(existing string) generator.Fragment {
	var parts []string
	for _, e := range xmldoc.Elements(existing) {
		if !generated[e.Name] {
			parts = append(parts, string(kept(e.Text)))
		}
	}
	return generator.Fragment(strings.Join(parts, "\n"))
}

// kept strips the source indentation from extracted documentation lines.
func kept(s string) generator.Fragment {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimLeft(l, " \t")
	}
	return generator.Fragment(strings.Join(lines, "\n"))
}

// Apply applies non-overlapping edits to text, keeping its line endings.
func Apply(text string, edits []Edit) string {
	sep := "\n"
	if strings.Contains(text, "\r\n") {
		sep = "\r\n"
	}
	lines := buffer.NewDocument(text).Lines()

	sorted := append([]Edit(nil), edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })
	for _, e := range sorted {
		tail := append([]string(nil), lines[e.End:]...)
		lines = append(append(lines[:e.Start], e.Lines...), tail...)
	}
	return strings.Join(lines, sep)
}

// Result is the outcome of documenting one file.
type Result struct {
	Path   string
	Before string
	After  string
	Edits  []Edit
}

// UpdateFile plans edits for every target of file accepted by keep (nil keeps
// all) and applies them to the file's current content. Nothing is written.
func (u *DocUpdater) UpdateFile(file *extractor.File, keep func(Target) bool) (*Result, error) {
	src, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", file.Path, err)
	}
	res := &Result{Path: file.Path, Before: string(src)}
	doc := buffer.NewDocument(res.Before)
	for _, t := range u.Targets(file) {
		if keep != nil && !keep(t) {
			continue
		}
		if edit, ok := u.Plan(doc, t); ok {
			res.Edits = append(res.Edits, edit)
		}
	}
	res.After = Apply(res.Before, res.Edits)
	return res, nil
}

// Diff renders a unified diff between two versions of path.
func Diff(path, before, after string, context int) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.ReplaceAll(before, "\r", "")),
		B:        difflib.SplitLines(strings.ReplaceAll(after, "\r", "")),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  context,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	return text
}
