package generator

import (
	"strings"

	"aldoc/internal/extractor"
)

// Assemble joins a procedure's summary, parameter and return fragments into
// one block and numbers their placeholders 1, 2, ... in that order. Fragments
// kept from the source are copied as they are; placeholders they still carry
// from an earlier snippet expansion are renumbered in sequence with the rest.
// An empty ret means no return value. Assemble returns "" when summary is
// empty.
func Assemble(summary Fragment, params []Fragment, ret Fragment) Fragment {
	if summary == "" {
		return ""
	}
	idx := 0
	resolve := func(f Fragment) string {
		return string(f.renumber(&idx))
	}

	var b strings.Builder
	b.WriteString(resolve(summary))
	for _, p := range params {
		if p == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(resolve(p))
	}
	if ret != "" {
		b.WriteString("\n")
		b.WriteString(resolve(ret))
	}
	return Fragment(b.String())
}

// ProcedureBlock generates the complete documentation of a procedure: summary,
// one <param> per parameter in declaration order, then <returns> if the
// procedure has a return value. It returns "" when the procedure has no name.
func ProcedureBlock(proc *extractor.Procedure) Fragment {
	summary := ProcedureSummary(proc, Deferred)
	if summary == "" {
		return ""
	}
	params := make([]Fragment, 0, len(proc.Parameters))
	for _, p := range proc.Parameters {
		params = append(params, ParameterDoc(p, Deferred))
	}
	return Assemble(summary, params, ReturnDoc(proc.Return, Deferred))
}
