// Package codegen emits the Go companion file and the TOML templates for a
// package of analyzed config structs.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/confgen-go/confgen/confgen/schema"
)

const generatedHeader = "// Code generated by confgen. DO NOT EDIT."

type Generator struct {
	pkg *schema.Package
}

func NewGenerator(pkg *schema.Package) Generator {
	return Generator{pkg: pkg}
}

// Generate renders the Go companion source for the package: a constructor
// applying the defaults, a TOML loader and a template accessor per struct.
func (self Generator) Generate() []byte {
	var out strings.Builder

	out.WriteString(generatedHeader + "\n\n")
	out.WriteString(fmt.Sprintf("package %s\n\n", self.pkg.Name))

	if len(self.pkg.Structs) > 0 {
		out.WriteString("import (\n")
		out.WriteString("\t\"io\"\n\n")
		out.WriteString("\t\"github.com/BurntSushi/toml\"\n")
		out.WriteString(")\n\n")
	}

	for _, strct := range self.pkg.Structs {
		self.constructor(&out, strct)
		self.loader(&out, strct)
		self.template(&out, strct)
	}

	return []byte(out.String())
}

func (self Generator) constructor(out *strings.Builder, strct *schema.Struct) {
	out.WriteString(fmt.Sprintf("// New%s creates a %s with all configured defaults applied.\n", strct.Name, strct.Name))
	out.WriteString(fmt.Sprintf("func New%s() %s {\n", strct.Name, strct.Name))
	out.WriteString(fmt.Sprintf("\treturn %s{\n", strct.Name))

	for idx := range strct.Fields {
		field := &strct.Fields[idx]
		switch {
		case field.NestedStruct != "":
			out.WriteString(fmt.Sprintf("\t\t%s: New%s(),\n", field.Name, field.NestedStruct))
		case field.Default != nil:
			out.WriteString(fmt.Sprintf("\t\t%s: %s,\n", field.Name, field.Default.GoExpr))
		default:
			// zero value
		}
	}

	out.WriteString("\t}\n}\n\n")
}

func (self Generator) loader(out *strings.Builder, strct *schema.Struct) {
	out.WriteString(fmt.Sprintf("// Load%s decodes a TOML document over the defaults of %s.\n", strct.Name, strct.Name))
	out.WriteString(fmt.Sprintf("func Load%s(r io.Reader) (%s, error) {\n", strct.Name, strct.Name))
	out.WriteString(fmt.Sprintf("\tconfig := New%s()\n", strct.Name))
	out.WriteString("\tif _, err := toml.NewDecoder(r).Decode(&config); err != nil {\n")
	out.WriteString(fmt.Sprintf("\t\treturn %s{}, err\n", strct.Name))
	out.WriteString("\t}\n")
	out.WriteString("\treturn config, nil\n}\n\n")
}

func (self Generator) template(out *strings.Builder, strct *schema.Struct) {
	out.WriteString(fmt.Sprintf("// %sTemplate returns a commented TOML template for %s.\n", strct.Name, strct.Name))
	out.WriteString(fmt.Sprintf("func %sTemplate() string {\n", strct.Name))
	out.WriteString(fmt.Sprintf("\treturn %s\n", strconv.Quote(Template(strct, self.pkg))))
	out.WriteString("}\n\n")
}
