// Package parser reads annotated Go source and produces the schema model.
// It is the only place that talks to the go/token position machinery: every
// position is converted into an errors.Span here and treated as opaque by
// everything downstream.
package parser

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"go/types"

	"github.com/confgen-go/confgen/confgen/diagnostic"
	"github.com/confgen-go/confgen/confgen/errors"
	"github.com/confgen-go/confgen/confgen/schema"
)

type Parser struct {
	Filename    string
	Diagnostics []diagnostic.Diagnostic
	fset        *token.FileSet
}

func NewParser(filename string) Parser {
	return Parser{
		Filename:    filename,
		Diagnostics: make([]diagnostic.Diagnostic, 0),
		fset:        token.NewFileSet(),
	}
}

// Parse scans the program for `confgen:config` structs. Schema errors are
// collected per struct: the first error aborts that struct but the remaining
// structs are still processed. The returned error is a host (go/parser)
// failure, not a schema error.
func (self *Parser) Parse(program string) (schema.Package, []schema.Error, error) {
	file, err := goparser.ParseFile(self.fset, self.Filename, program, goparser.ParseComments)
	if err != nil {
		return schema.Package{}, nil, err
	}

	pkg := schema.Package{
		Name:     file.Name.Name,
		Filename: self.Filename,
		Structs:  make([]*schema.Struct, 0),
	}
	schemaErrors := make([]schema.Error, 0)

	for _, decl := range file.Decls {
		genDecl, isGen := decl.(*ast.GenDecl)
		if !isGen || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, isType := spec.(*ast.TypeSpec)
			if !isType {
				continue
			}

			// the directive can sit on the `type` keyword or the spec itself
			doc := typeSpec.Doc
			if doc == nil {
				doc = genDecl.Doc
			}
			if !self.hasConfigDirective(doc) {
				continue
			}

			strct, err := self.strct(typeSpec)
			if err != nil {
				schemaErrors = append(schemaErrors, err)
				continue
			}

			pkg.Structs = append(pkg.Structs, strct)
		}
	}

	return pkg, schemaErrors, nil
}

func (self *Parser) strct(typeSpec *ast.TypeSpec) (*schema.Struct, schema.Error) {
	structType, isStruct := typeSpec.Type.(*ast.StructType)
	if !isStruct {
		return nil, schema.NewOnlySupportsStructs(self.span(typeSpec.Name.Pos(), typeSpec.Name.End()))
	}

	strct := schema.Struct{
		Name:     typeSpec.Name.Name,
		NameSpan: self.span(typeSpec.Name.Pos(), typeSpec.Name.End()),
		Fields:   make([]schema.Field, 0),
	}

	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			// embedded fields have no identifier of their own
			return nil, schema.NewFieldMustHaveName(self.span(field.Pos(), field.End()))
		}

		typeName, err := self.resolveTypeName(field.Type)
		if err != nil {
			return nil, err
		}

		options := self.fieldOptions(field)

		for _, name := range field.Names {
			strct.Fields = append(strct.Fields, schema.Field{
				Name:     name.Name,
				Span:     self.span(name.Pos(), name.End()),
				TypeName: typeName,
				TypeExpr: types.ExprString(field.Type),
				TypeSpan: self.span(field.Type.Pos(), field.Type.End()),
				Note:     options.note,
				Default:  options.defaultValue,
			})
		}
	}

	return &strct, nil
}

// resolveTypeName yields the last identifier of the field's type path, the
// same resolution the default value checks are keyed on.
func (self *Parser) resolveTypeName(expr ast.Expr) (string, schema.Error) {
	switch ty := expr.(type) {
	case *ast.Ident:
		return ty.Name, nil
	case *ast.SelectorExpr:
		if _, isIdent := ty.X.(*ast.Ident); !isIdent {
			return "", schema.NewCannotIdentifyTypePath(
				types.ExprString(expr),
				self.span(expr.Pos(), expr.End()),
			)
		}
		return ty.Sel.Name, nil
	default:
		// pointers, slices, maps, channels, funcs and inline structs cannot
		// carry a literal default
		return "", schema.NewUnsupportedTypeFormat(
			types.ExprString(expr),
			self.span(expr.Pos(), expr.End()),
		)
	}
}

// span converts a half-open go/token position range into an inclusive Span.
func (self *Parser) span(from token.Pos, to token.Pos) errors.Span {
	start := self.fset.Position(from)
	end := self.fset.Position(to)

	endColumn := end.Column
	endIndex := end.Offset
	if endColumn > 1 {
		endColumn--
		endIndex--
	}

	return errors.Span{
		Start: errors.Location{
			Line:   uint(start.Line),
			Column: uint(start.Column),
			Index:  uint(start.Offset),
		},
		End: errors.Location{
			Line:   uint(end.Line),
			Column: uint(endColumn),
			Index:  uint(endIndex),
		},
		Filename: self.Filename,
	}
}
