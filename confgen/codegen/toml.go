package codegen

import (
	"fmt"
	"strings"

	"github.com/confgen-go/confgen/confgen/schema"
)

// Template renders the commented TOML template for one config struct. Keys
// are the Go field names, notes become comments above their key, and nested
// config structs become TOML tables after the plain keys.
func Template(strct *schema.Struct, pkg *schema.Package) string {
	var out strings.Builder

	out.WriteString(fmt.Sprintf("# Configuration template for '%s'\n", strct.Name))
	writeKeys(&out, strct)

	for idx := range strct.Fields {
		field := &strct.Fields[idx]
		if field.NestedStruct == "" {
			continue
		}

		out.WriteString("\n")
		if field.Note != "" {
			out.WriteString(fmt.Sprintf("# %s\n", field.Note))
		}
		out.WriteString(fmt.Sprintf("[%s]\n", field.Name))

		if child := pkg.Struct(field.NestedStruct); child != nil {
			writeKeys(&out, child)
		}
	}

	return out.String()
}

func writeKeys(out *strings.Builder, strct *schema.Struct) {
	for idx := range strct.Fields {
		field := &strct.Fields[idx]
		if field.NestedStruct != "" {
			continue
		}

		if field.Note != "" {
			out.WriteString(fmt.Sprintf("# %s\n", field.Note))
		}

		switch {
		case field.Default != nil && field.Default.TomlValue != "":
			out.WriteString(fmt.Sprintf("%s = %s\n", field.Name, field.Default.TomlValue))
		case field.Default != nil:
			// expression default, the concrete value is only known at runtime
			out.WriteString(fmt.Sprintf("# %s = %s\n", field.Name, field.Default.Raw))
		default:
			out.WriteString(fmt.Sprintf("%s = %s\n", field.Name, zeroValue(field.TypeName)))
		}
	}
}

func zeroValue(typeName string) string {
	switch typeName {
	case "string":
		return `""`
	case "bool":
		return "false"
	case "float32", "float64":
		return "0.0"
	default:
		return "0"
	}
}
