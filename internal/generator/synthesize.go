package generator

import (
	"strconv"
	"strings"

	"aldoc/internal/extractor"
)

// ObjectDoc builds the <summary> block for an object declaration, e.g.
//
//	/// <summary>
//	/// ${1:TableExtension MyExt (ID 50100) extends Record Customer.}
//	/// </summary>
//
// Pass Deferred as idx to leave the index for Assemble.
func ObjectDoc(obj *extractor.Object, idx int) Fragment {
	if obj == nil {
		return ""
	}
	var text strings.Builder
	text.WriteString(obj.Type.String())
	text.WriteString(" ")
	text.WriteString(obj.Name)
	if obj.ID != 0 {
		text.WriteString(" (ID " + strconv.Itoa(obj.ID) + ")")
	}
	switch obj.ExtensionKind {
	case extractor.ExtensionExtends:
		text.WriteString(" extends Record " + obj.ExtensionTarget)
	case extractor.ExtensionImplements:
		text.WriteString(" implements Interface " + obj.ExtensionTarget)
	}
	text.WriteString(".")
	return summary(idx, text.String())
}

// ProcedureSummary builds the <summary> block of a procedure. It returns an
// empty fragment when the procedure has no name yet.
func ProcedureSummary(proc *extractor.Procedure, idx int) Fragment {
	if proc == nil || proc.Name == "" {
		return ""
	}
	return summary(idx, proc.Name+".")
}

// ParameterDoc builds a single-line <param> tag. The name goes into the
// attribute unescaped, so it must not contain a double quote.
func ParameterDoc(param *extractor.Parameter, idx int) Fragment {
	if param == nil {
		return ""
	}
	var text strings.Builder
	if param.Temporary {
		text.WriteString("Temporary ")
	}
	if param.ByReference {
		text.WriteString("VAR ")
	}
	text.WriteString(param.Type)
	if param.Subtype != "" {
		text.WriteString(" " + param.Subtype)
	}
	text.WriteString(".")
	return Fragment(LinePrefix + `<param name="` + param.Name + `">` + placeholder(idx, text.String()) + "</param>")
}

// ReturnDoc builds a single-line <returns> tag.
func ReturnDoc(ret *extractor.Return, idx int) Fragment {
	if ret == nil {
		return ""
	}
	text := "Return value"
	if ret.Name != "" {
		text = "Return variable " + ret.Name
	}
	text += " of type " + ret.Type + "."
	return Fragment(LinePrefix + "<returns>" + placeholder(idx, text) + "</returns>")
}

func summary(idx int, text string) Fragment {
	return Fragment(LinePrefix + "<summary>\n" +
		LinePrefix + placeholder(idx, text) + "\n" +
		LinePrefix + "</summary>")
}
