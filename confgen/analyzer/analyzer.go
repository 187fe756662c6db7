// Package analyzer validates the parsed schema: default value literals are
// checked against the declared field types and the nesting limit is enforced.
package analyzer

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/confgen-go/confgen/confgen/diagnostic"
	"github.com/confgen-go/confgen/confgen/errors"
	"github.com/confgen-go/confgen/confgen/schema"
)

// maximum child depth below a config struct: the top level may embed one
// level of nested structs and nothing deeper
const maxChildDepth = 1

type Analyzer struct {
	diagnostics []diagnostic.Diagnostic
	pkg         *schema.Package
}

func NewAnalyzer() Analyzer {
	return Analyzer{
		diagnostics: make([]diagnostic.Diagnostic, 0),
		pkg:         nil,
	}
}

// Analyze validates every struct of the package in place. Processing of a
// struct stops at its first error (the struct is dropped from the package),
// the remaining structs are still analyzed. All collected schema errors are
// returned alongside the soft diagnostics.
func (self *Analyzer) Analyze(pkg *schema.Package) ([]schema.Error, []diagnostic.Diagnostic) {
	self.pkg = pkg
	schemaErrors := make([]schema.Error, 0)

	self.resolveNesting()

	valid := make([]*schema.Struct, 0)
	for _, strct := range pkg.Structs {
		if err := self.analyzeStruct(strct); err != nil {
			schemaErrors = append(schemaErrors, err)
			continue
		}
		valid = append(valid, strct)
	}
	pkg.Structs = valid

	return schemaErrors, self.diagnostics
}

func (self *Analyzer) analyzeStruct(strct *schema.Struct) schema.Error {
	strct.ChildDepth = self.childDepth(strct, map[string]bool{strct.Name: true})
	if strct.ChildDepth > maxChildDepth {
		return schema.NewNestingLevelExceeded(strct.Name, strct.ChildDepth, strct.NameSpan)
	}

	for idx := range strct.Fields {
		if err := self.analyzeDefault(&strct.Fields[idx]); err != nil {
			return err
		}
	}

	return nil
}

// resolveNesting links fields whose type names another config struct of the
// same package. Selector types always refer to foreign packages and stay
// opaque.
func (self *Analyzer) resolveNesting() {
	for _, strct := range self.pkg.Structs {
		for idx := range strct.Fields {
			field := &strct.Fields[idx]
			if schema.IsPrimitive(field.TypeName) || field.TypeExpr != field.TypeName {
				continue
			}
			if self.pkg.Struct(field.TypeName) != nil {
				field.NestedStruct = field.TypeName
			}
		}
	}
}

// childDepth computes the maximum nesting depth below a struct. A cycle
// between config structs can never satisfy the two-level limit, so the walk
// reports it as exceeding instead of recursing forever.
func (self *Analyzer) childDepth(strct *schema.Struct, path map[string]bool) uint {
	var depth uint = 0
	for idx := range strct.Fields {
		field := &strct.Fields[idx]
		if field.NestedStruct == "" {
			continue
		}
		if path[field.NestedStruct] {
			return maxChildDepth + 1
		}

		child := self.pkg.Struct(field.NestedStruct)
		path[field.NestedStruct] = true
		fieldDepth := 1 + self.childDepth(child, path)
		delete(path, field.NestedStruct)

		if fieldDepth > depth {
			depth = fieldDepth
		}
	}
	return depth
}

func (self *Analyzer) hint(message string, notes []string, span errors.Span) {
	self.diagnostics = append(self.diagnostics, diagnostic.Diagnostic{
		Level:   diagnostic.DiagnosticLevelHint,
		Message: message,
		Notes:   notes,
		Span:    span,
	})
}

func (self *Analyzer) passThroughHint(field *schema.Field) {
	caser := cases.Title(language.AmericanEnglish)
	label := "expression"
	self.hint(
		fmt.Sprintf("%s default '%s' is passed through without validation", caser.String(label), field.Default.Raw),
		[]string{fmt.Sprintf("Make sure the expression evaluates to type '%s'", field.TypeExpr)},
		field.Default.Span,
	)
}
