package analyzer

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/confgen-go/confgen/confgen/schema"
)

// analyzeDefault checks the field's default expression against the declared
// type and fills in the generated-code and TOML renderings. Fields without a
// default keep their zero value and are always valid.
func (self *Analyzer) analyzeDefault(field *schema.Field) schema.Error {
	if field.Default == nil {
		return nil
	}

	expr, err := goparser.ParseExpr(field.Default.Raw)
	if err != nil {
		return schema.NewCannotParsePathExpression(field.Default.Span)
	}

	return self.defaultExpr(field, expr, "")
}

func (self *Analyzer) defaultExpr(field *schema.Field, expr ast.Expr, sign string) schema.Error {
	switch ex := expr.(type) {
	case *ast.BasicLit:
		switch ex.Kind {
		case token.STRING:
			return self.stringLiteral(field, ex.Value)
		case token.INT:
			return self.intLiteral(field, sign+ex.Value)
		case token.FLOAT:
			return self.floatLiteral(field, sign+ex.Value)
		case token.CHAR:
			return schema.NewUnsupportedLiteralType("char", field.Default.Span)
		case token.IMAG:
			return schema.NewUnsupportedLiteralType("imaginary", field.Default.Span)
		default:
			return schema.NewUnsupportedLiteralType(ex.Kind.String(), field.Default.Span)
		}
	case *ast.UnaryExpr:
		// negative numeric literals parse as a unary expression
		if lit, isLit := ex.X.(*ast.BasicLit); isLit && (ex.Op == token.SUB || ex.Op == token.ADD) &&
			(lit.Kind == token.INT || lit.Kind == token.FLOAT) {
			litSign := ""
			if ex.Op == token.SUB {
				litSign = "-"
			}
			return self.defaultExpr(field, lit, litSign)
		}
		return self.passThrough(field)
	case *ast.Ident:
		switch ex.Name {
		case "true", "false":
			return self.boolLiteral(field, ex.Name)
		default:
			return self.pathExpr(field, ex.Name)
		}
	case *ast.SelectorExpr:
		if _, isIdent := ex.X.(*ast.Ident); !isIdent {
			return schema.NewCannotParsePathExpression(field.Default.Span)
		}
		return self.pathExpr(field, ex.Sel.Name)
	default:
		// calls, composite literals and the like are used as written
		return self.passThrough(field)
	}
}

func (self *Analyzer) stringLiteral(field *schema.Field, literal string) schema.Error {
	if field.TypeName != "string" {
		return schema.NewStringLiteralWrongType(field.TypeName, field.Default.Span)
	}

	value, err := strconv.Unquote(literal)
	if err != nil {
		return schema.NewParseError(literal, field.TypeName, err.Error(), field.Default.Span)
	}

	field.Default.GoExpr = literal
	field.Default.TomlValue = strconv.Quote(value)
	return nil
}

func (self *Analyzer) intLiteral(field *schema.Field, literal string) schema.Error {
	bits, unsigned, isInt := schema.IntBits(field.TypeName)
	if !isInt {
		return schema.NewIntegerLiteralWrongType(field.TypeName, field.Default.Span)
	}

	if unsigned {
		value, err := strconv.ParseUint(literal, 0, bits)
		if err != nil {
			return schema.NewParseError(literal, field.TypeName, numError(err), field.Default.Span)
		}
		field.Default.TomlValue = strconv.FormatUint(value, 10)
	} else {
		value, err := strconv.ParseInt(literal, 0, bits)
		if err != nil {
			return schema.NewParseError(literal, field.TypeName, numError(err), field.Default.Span)
		}
		field.Default.TomlValue = strconv.FormatInt(value, 10)
	}

	field.Default.GoExpr = literal
	return nil
}

func (self *Analyzer) floatLiteral(field *schema.Field, literal string) schema.Error {
	bits, isFloat := schema.FloatBits(field.TypeName)
	if !isFloat {
		return schema.NewFloatLiteralWrongType(field.TypeName, field.Default.Span)
	}

	value, err := strconv.ParseFloat(literal, bits)
	if err != nil {
		return schema.NewParseError(literal, field.TypeName, numError(err), field.Default.Span)
	}

	rendered := strconv.FormatFloat(value, 'f', -1, bits)
	if !strings.ContainsAny(rendered, ".eE") {
		// a TOML float always carries a fractional part
		rendered += ".0"
	}

	field.Default.GoExpr = literal
	field.Default.TomlValue = rendered
	return nil
}

func (self *Analyzer) boolLiteral(field *schema.Field, literal string) schema.Error {
	if field.TypeName != "bool" {
		return schema.NewBooleanLiteralWrongType(field.TypeName, field.Default.Span)
	}

	field.Default.GoExpr = literal
	field.Default.TomlValue = literal
	return nil
}

// pathExpr handles identifier and selector defaults. For string fields the
// identifier text itself becomes the value, everything else is used as
// written.
func (self *Analyzer) pathExpr(field *schema.Field, lastIdent string) schema.Error {
	if field.TypeName == "string" {
		field.Default.GoExpr = strconv.Quote(lastIdent)
		field.Default.TomlValue = strconv.Quote(lastIdent)
		return nil
	}
	return self.passThrough(field)
}

func (self *Analyzer) passThrough(field *schema.Field) schema.Error {
	field.Default.GoExpr = field.Default.Raw
	field.Default.TomlValue = ""
	self.passThroughHint(field)
	return nil
}

// numError unwraps the inner message of a strconv failure, e.g.
// "value out of range".
func numError(err error) string {
	if numErr, isNum := err.(*strconv.NumError); isNum {
		return numErr.Err.Error()
	}
	return err.Error()
}
