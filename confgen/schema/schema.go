// Package schema holds the analyzed model of configuration structs and the
// closed set of errors that schema processing can produce.
package schema

import (
	"github.com/confgen-go/confgen/confgen/errors"
)

//
// Schema model
//

// Package is the analyzed form of one Go source file.
type Package struct {
	// Go package name of the processed file.
	Name string
	// Source filename the structs were read from.
	Filename string
	// Config structs in declaration order.
	Structs []*Struct
}

// Struct is one `confgen:config` annotated struct.
type Struct struct {
	Name     string
	NameSpan errors.Span
	Fields   []Field
	// Maximum nesting depth below this struct: 0 if all fields are leaves,
	// 1 if it embeds other config structs, and so on. Filled by the analyzer.
	ChildDepth uint
}

// Field is one named struct field together with its directives.
type Field struct {
	Name     string
	Span     errors.Span
	TypeName string
	TypeExpr string
	TypeSpan errors.Span
	Note     string
	Default  *DefaultValue
	// Set if the field's type is another config struct in the same package.
	NestedStruct string
}

// DefaultValue is a `confgen:default` directive before and after analysis.
type DefaultValue struct {
	// Raw expression text as written in the directive.
	Raw  string
	Span errors.Span
	// GoExpr is the expression that initializes the field in generated code.
	// Filled by the analyzer.
	GoExpr string
	// TomlValue is the rendering of the default for the TOML template. Empty
	// for pass-through expressions that have no literal TOML form.
	TomlValue string
}

func (self *Struct) Field(name string) *Field {
	for idx := range self.Fields {
		if self.Fields[idx].Name == name {
			return &self.Fields[idx]
		}
	}
	return nil
}

func (self *Package) Struct(name string) *Struct {
	for _, strct := range self.Structs {
		if strct.Name == name {
			return strct
		}
	}
	return nil
}

//
// Primitive type classification
//

// IsPrimitive reports whether a resolved type name is one of the leaf types
// that can carry a literal default.
func IsPrimitive(typeName string) bool {
	switch typeName {
	case "string", "bool",
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64":
		return true
	default:
		return false
	}
}

// IntBits returns the bit size and signedness used to range-check integer
// defaults for the given type name.
func IntBits(typeName string) (bits int, unsigned bool, ok bool) {
	switch typeName {
	case "int", "int64":
		return 64, false, true
	case "int8":
		return 8, false, true
	case "int16":
		return 16, false, true
	case "int32":
		return 32, false, true
	case "uint", "uint64":
		return 64, true, true
	case "uint8":
		return 8, true, true
	case "uint16":
		return 16, true, true
	case "uint32":
		return 32, true, true
	default:
		return 0, false, false
	}
}

// FloatBits returns the bit size used to range-check float defaults.
func FloatBits(typeName string) (bits int, ok bool) {
	switch typeName {
	case "float32":
		return 32, true
	case "float64":
		return 64, true
	default:
		return 0, false
	}
}
