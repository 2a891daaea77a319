package extractor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_ExtractFromFile(t *testing.T) {
	testFile := filepath.Join("testdata", "sample.al")

	ext := NewExtractor()
	file, err := ext.ExtractFromFile(testFile)
	require.NoError(t, err)

	require.Len(t, file.Objects, 3, "Should find the table extension, the codeunit and the interface")

	t.Run("Table Extension", func(t *testing.T) {
		obj := file.Objects[0]
		assert.Equal(t, ObjectTypeTableExtension, obj.Type)
		assert.Equal(t, 50100, obj.ID)
		assert.Equal(t, "Customer Ext", obj.Name)
		assert.Equal(t, ExtensionExtends, obj.ExtensionKind)
		assert.Equal(t, "Customer", obj.ExtensionTarget)
		assert.Equal(t, 3, obj.Line)
		assert.Equal(t, 3, obj.AnchorLine)

		require.Len(t, obj.Procedures, 1)
		proc := obj.Procedures[0]
		assert.Equal(t, "IsBlocked", proc.Name)
		assert.Empty(t, proc.Parameters)
		require.NotNil(t, proc.Return)
		assert.Equal(t, "", proc.Return.Name)
		assert.Equal(t, "Boolean", proc.Return.Type)
	})

	t.Run("Codeunit", func(t *testing.T) {
		obj := file.Objects[1]
		assert.Equal(t, ObjectTypeCodeunit, obj.Type)
		assert.Equal(t, ExtensionImplements, obj.ExtensionKind)
		assert.Equal(t, "ISales Helper, IDisposable", obj.ExtensionTarget)
		require.Len(t, obj.Procedures, 3, "Triggers are not procedures")

		post := obj.Procedures[0]
		assert.Equal(t, "Post", post.Name)
		assert.Equal(t, 17, post.Line)
		assert.Nil(t, post.Return)
		require.Len(t, post.Parameters, 1)
		assert.Equal(t, &Parameter{Name: "SalesHeader", Type: "Record", Subtype: `"Sales Header"`, ByReference: true}, post.Parameters[0])
	})

	t.Run("Attributes move the anchor", func(t *testing.T) {
		proc := file.Objects[1].Procedures[1]
		assert.Equal(t, "OnAfterInsertCustomer", proc.Name)
		assert.Equal(t, "local", proc.Access)
		assert.Equal(t, 22, proc.Line)
		assert.Equal(t, 21, proc.AnchorLine)
		assert.Equal(t, 22, proc.HeaderEnd)
		require.Len(t, proc.Parameters, 2)
		assert.Equal(t, "Rec", proc.Parameters[0].Name)
		assert.Equal(t, "Customer", proc.Parameters[0].Subtype)
		assert.Equal(t, "RunTrigger", proc.Parameters[1].Name)
		assert.Equal(t, "Boolean", proc.Parameters[1].Type)
	})

	t.Run("Multi-line header", func(t *testing.T) {
		proc := file.Objects[1].Procedures[2]
		assert.Equal(t, "CalcTotal", proc.Name)
		assert.Equal(t, "internal", proc.Access)
		assert.Equal(t, 26, proc.Line)
		assert.Equal(t, 29, proc.HeaderEnd)
		require.Len(t, proc.Parameters, 3)

		assert.Equal(t, &Parameter{Name: "TempLine", Type: "Record", Subtype: `"Sales Line"`, Temporary: true, ByReference: true}, proc.Parameters[0])
		assert.Equal(t, &Parameter{Name: "Factor", Type: "Decimal"}, proc.Parameters[1])
		assert.Equal(t, &Parameter{Name: "Codes", Type: "List", Subtype: "of [Code[20]]"}, proc.Parameters[2])

		require.NotNil(t, proc.Return)
		assert.Equal(t, "Total", proc.Return.Name)
		assert.Equal(t, "Decimal", proc.Return.Type)
	})

	t.Run("Interface", func(t *testing.T) {
		obj := file.Objects[2]
		assert.Equal(t, ObjectTypeInterface, obj.Type)
		assert.Equal(t, 0, obj.ID)
		assert.Equal(t, "ISales Helper", obj.Name)
		require.Len(t, obj.Procedures, 1)
		assert.Nil(t, obj.Procedures[0].Return)
	})

	t.Run("Procedures", func(t *testing.T) {
		assert.Len(t, file.Procedures(), 5)
	})
}

func TestExtractor_SkipLocals(t *testing.T) {
	src := "codeunit 50000 Foo\n{\n    local procedure A()\n    begin\n    end;\n\n    procedure B(X: Integer)\n    begin\n    end;\n}\n"
	ext := &Extractor{Locals: false}
	file := ext.ExtractFromSource("foo.al", src)

	require.Len(t, file.Objects, 1)
	require.Len(t, file.Objects[0].Procedures, 1)
	assert.Equal(t, "B", file.Objects[0].Procedures[0].Name)
	assert.Equal(t, 6, file.Objects[0].Procedures[0].Line)
}

func TestExtractor_CRLF(t *testing.T) {
	src := "table 50200 \"My Table\"\r\n{\r\n    procedure Get(No: Code[20]): Boolean\r\n    begin\r\n    end;\r\n}\r\n"
	file := NewExtractor().ExtractFromSource("t.al", src)

	require.Len(t, file.Objects, 1)
	assert.Equal(t, "My Table", file.Objects[0].Name)
	require.Len(t, file.Objects[0].Procedures, 1)
	proc := file.Objects[0].Procedures[0]
	assert.Equal(t, &Parameter{Name: "No", Type: "Code[20]"}, proc.Parameters[0])
	assert.Equal(t, "Boolean", proc.Return.Type)
}

func TestObjectType(t *testing.T) {
	typ, ok := ParseObjectType("tableextension")
	require.True(t, ok)
	assert.Equal(t, "TableExtension", typ.String())

	_, ok = ParseObjectType("widget")
	assert.False(t, ok)

	var kind ExtensionKind
	require.NoError(t, kind.UnmarshalText([]byte("Implements")))
	assert.Equal(t, ExtensionImplements, kind)
	assert.Error(t, kind.UnmarshalText([]byte("wraps")))
}
