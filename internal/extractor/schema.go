package extractor

import (
	"fmt"
	"strings"
)

// ObjectType identifies the kind of AL object a declaration introduces.
type ObjectType int

const (
	ObjectTypeUnknown ObjectType = iota
	ObjectTypeTable
	ObjectTypeTableExtension
	ObjectTypePage
	ObjectTypePageExtension
	ObjectTypeCodeunit
	ObjectTypeReport
	ObjectTypeReportExtension
	ObjectTypeQuery
	ObjectTypeXmlPort
	ObjectTypeEnum
	ObjectTypeEnumExtension
	ObjectTypeInterface
	ObjectTypeControlAddIn
	ObjectTypePermissionSet
	ObjectTypePermissionSetExtension
	ObjectTypeProfile
	ObjectTypeEntitlement
)

var objectTypeNames = map[ObjectType]string{
	ObjectTypeTable:                  "Table",
	ObjectTypeTableExtension:         "TableExtension",
	ObjectTypePage:                   "Page",
	ObjectTypePageExtension:          "PageExtension",
	ObjectTypeCodeunit:               "Codeunit",
	ObjectTypeReport:                 "Report",
	ObjectTypeReportExtension:        "ReportExtension",
	ObjectTypeQuery:                  "Query",
	ObjectTypeXmlPort:                "XmlPort",
	ObjectTypeEnum:                   "Enum",
	ObjectTypeEnumExtension:          "EnumExtension",
	ObjectTypeInterface:              "Interface",
	ObjectTypeControlAddIn:           "ControlAddIn",
	ObjectTypePermissionSet:          "PermissionSet",
	ObjectTypePermissionSetExtension: "PermissionSetExtension",
	ObjectTypeProfile:                "Profile",
	ObjectTypeEntitlement:            "Entitlement",
}

// String renders the type the way AL documentation spells it (e.g. "TableExtension").
func (t ObjectType) String() string {
	if name, ok := objectTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// ParseObjectType maps an AL keyword (any casing) to its ObjectType.
func ParseObjectType(s string) (ObjectType, bool) {
	s = strings.TrimSpace(s)
	for t, name := range objectTypeNames {
		if strings.EqualFold(name, s) {
			return t, true
		}
	}
	return ObjectTypeUnknown, false
}

func (t *ObjectType) UnmarshalText(text []byte) error {
	parsed, ok := ParseObjectType(string(text))
	if !ok {
		return fmt.Errorf("unknown object type %q", string(text))
	}
	*t = parsed
	return nil
}

func (t ObjectType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ExtensionKind classifies how an object relates to a base construct.
type ExtensionKind int

const (
	ExtensionNone ExtensionKind = iota
	ExtensionExtends
	ExtensionImplements
)

func (k ExtensionKind) String() string {
	switch k {
	case ExtensionExtends:
		return "extends"
	case ExtensionImplements:
		return "implements"
	default:
		return "none"
	}
}

func (k *ExtensionKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "none":
		*k = ExtensionNone
	case "extends", "extend":
		*k = ExtensionExtends
	case "implements", "implement":
		*k = ExtensionImplements
	default:
		return fmt.Errorf("unknown extension kind %q", string(text))
	}
	return nil
}

func (k ExtensionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Object describes an AL object declaration.
type Object struct {
	Type            ObjectType    `yaml:"type" validate:"required"`
	ID              int           `yaml:"id,omitempty" validate:"gte=0"` // 0 when the object carries no ID (interfaces, profiles)
	Name            string        `yaml:"name" validate:"required"`
	ExtensionKind   ExtensionKind `yaml:"extension,omitempty"`
	ExtensionTarget string        `yaml:"target,omitempty" validate:"required_unless=ExtensionKind 0"`
	Line            int           `yaml:"-"` // 0-based line of the declaration
	AnchorLine      int           `yaml:"-"` // first line of the attributes above the declaration, else Line
	Procedures      []*Procedure  `yaml:"procedures,omitempty" validate:"dive"`
}

// Procedure describes a procedure declaration. Parameters keep declaration order.
type Procedure struct {
	Name       string       `yaml:"name"`
	Access     string       `yaml:"access,omitempty" validate:"omitempty,oneof=local internal protected"`
	Parameters []*Parameter `yaml:"parameters,omitempty" validate:"dive"`
	Return     *Return      `yaml:"returns,omitempty"`
	Line       int          `yaml:"-"`
	AnchorLine int          `yaml:"-"`
	HeaderEnd  int          `yaml:"-"` // last line of the header, past Line when the parameter list wraps
}

// Parameter describes one procedure parameter.
type Parameter struct {
	Name        string `yaml:"name" validate:"required"`
	Type        string `yaml:"type" validate:"required"`
	Subtype     string `yaml:"subtype,omitempty"`
	Temporary   bool   `yaml:"temporary,omitempty"`
	ByReference bool   `yaml:"var,omitempty"`
}

// Return describes a procedure return value. Name is empty for unnamed returns.
type Return struct {
	Name string `yaml:"name,omitempty"`
	Type string `yaml:"type" validate:"required"`
}

// File holds everything extracted from one source file.
type File struct {
	Path    string
	Objects []*Object
}

// Procedures returns the procedures of every object in the file, in source order.
func (f *File) Procedures() []*Procedure {
	var procs []*Procedure
	for _, obj := range f.Objects {
		procs = append(procs, obj.Procedures...)
	}
	return procs
}
