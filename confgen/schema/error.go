package schema

import (
	"fmt"

	"github.com/confgen-go/confgen/confgen/diagnostic"
	"github.com/confgen-go/confgen/confgen/errors"
)

//
// Error kinds
//

type ErrorKind uint8

const (
	UnsupportedLiteralTypeKind ErrorKind = iota
	CannotParsePathExpressionKind
	CannotIdentifyTypePathKind
	UnsupportedTypeFormatKind
	StringLiteralWrongTypeKind
	IntegerLiteralWrongTypeKind
	FloatLiteralWrongTypeKind
	BooleanLiteralWrongTypeKind
	ParseErrorKind
	FieldMustHaveNameKind
	OnlySupportsStructsKind
	NestingLevelExceededKind
)

func (self ErrorKind) String() string {
	switch self {
	case UnsupportedLiteralTypeKind:
		return "UnsupportedLiteralType"
	case CannotParsePathExpressionKind:
		return "CannotParsePathExpression"
	case CannotIdentifyTypePathKind:
		return "CannotIdentifyTypePath"
	case UnsupportedTypeFormatKind:
		return "UnsupportedTypeFormat"
	case StringLiteralWrongTypeKind:
		return "StringLiteralWrongType"
	case IntegerLiteralWrongTypeKind:
		return "IntegerLiteralWrongType"
	case FloatLiteralWrongTypeKind:
		return "FloatLiteralWrongType"
	case BooleanLiteralWrongTypeKind:
		return "BooleanLiteralWrongType"
	case ParseErrorKind:
		return "ParseError"
	case FieldMustHaveNameKind:
		return "FieldMustHaveName"
	case OnlySupportsStructsKind:
		return "OnlySupportsStructs"
	case NestingLevelExceededKind:
		return "NestingLevelExceeded"
	default:
		panic("A new error kind was added without updating this code")
	}
}

//
// Error
//

// Error is one schema processing failure. The set of implementations in this
// package is closed: every fallible operation of the processor returns a value
// of exactly one of the variants below, and every variant carries the span of
// the offending source text.
type Error interface {
	error
	Kind() ErrorKind
	Span() errors.Span
}

// ToDiagnostic converts a schema error into the diagnostic that is reported
// to the user, binding the stored span as the diagnostic's location. This is
// the only path from schema errors to the reporting side and it cannot fail.
// The error value is not meant to be reused afterwards.
func ToDiagnostic(err Error) diagnostic.Diagnostic {
	return diagnostic.Diagnostic{
		Level:   diagnostic.DiagnosticLevelError,
		Message: err.Error(),
		Notes:   make([]string, 0),
		Span:    err.Span(),
	}
}

//
// UnsupportedLiteralType
//

type UnsupportedLiteralType struct {
	LiteralType string
	span        errors.Span
}

func NewUnsupportedLiteralType(literalType string, span errors.Span) *UnsupportedLiteralType {
	return &UnsupportedLiteralType{LiteralType: literalType, span: span}
}

func (self *UnsupportedLiteralType) Error() string {
	return fmt.Sprintf("Unsupported literal type: %q", self.LiteralType)
}
func (self *UnsupportedLiteralType) Kind() ErrorKind   { return UnsupportedLiteralTypeKind }
func (self *UnsupportedLiteralType) Span() errors.Span { return self.span }

//
// CannotParsePathExpression
//

type CannotParsePathExpression struct {
	span errors.Span
}

func NewCannotParsePathExpression(span errors.Span) *CannotParsePathExpression {
	return &CannotParsePathExpression{span: span}
}

func (self *CannotParsePathExpression) Error() string {
	return "Cannot parse path expression"
}
func (self *CannotParsePathExpression) Kind() ErrorKind   { return CannotParsePathExpressionKind }
func (self *CannotParsePathExpression) Span() errors.Span { return self.span }

//
// CannotIdentifyTypePath
//

type CannotIdentifyTypePath struct {
	TypeExpr string
	span     errors.Span
}

func NewCannotIdentifyTypePath(typeExpr string, span errors.Span) *CannotIdentifyTypePath {
	return &CannotIdentifyTypePath{TypeExpr: typeExpr, span: span}
}

func (self *CannotIdentifyTypePath) Error() string {
	return fmt.Sprintf("Cannot identify type path '%s'", self.TypeExpr)
}
func (self *CannotIdentifyTypePath) Kind() ErrorKind   { return CannotIdentifyTypePathKind }
func (self *CannotIdentifyTypePath) Span() errors.Span { return self.span }

//
// UnsupportedTypeFormat
//

type UnsupportedTypeFormat struct {
	TypeExpr string
	span     errors.Span
}

func NewUnsupportedTypeFormat(typeExpr string, span errors.Span) *UnsupportedTypeFormat {
	return &UnsupportedTypeFormat{TypeExpr: typeExpr, span: span}
}

func (self *UnsupportedTypeFormat) Error() string {
	return fmt.Sprintf("Unsupported type format '%s'", self.TypeExpr)
}
func (self *UnsupportedTypeFormat) Kind() ErrorKind   { return UnsupportedTypeFormatKind }
func (self *UnsupportedTypeFormat) Span() errors.Span { return self.span }

//
// StringLiteralWrongType
//

type StringLiteralWrongType struct {
	TypeName string
	span     errors.Span
}

func NewStringLiteralWrongType(typeName string, span errors.Span) *StringLiteralWrongType {
	return &StringLiteralWrongType{TypeName: typeName, span: span}
}

func (self *StringLiteralWrongType) Error() string {
	return fmt.Sprintf("String literal cannot be used for type %s", self.TypeName)
}
func (self *StringLiteralWrongType) Kind() ErrorKind   { return StringLiteralWrongTypeKind }
func (self *StringLiteralWrongType) Span() errors.Span { return self.span }

//
// IntegerLiteralWrongType
//

type IntegerLiteralWrongType struct {
	TypeName string
	span     errors.Span
}

func NewIntegerLiteralWrongType(typeName string, span errors.Span) *IntegerLiteralWrongType {
	return &IntegerLiteralWrongType{TypeName: typeName, span: span}
}

func (self *IntegerLiteralWrongType) Error() string {
	return fmt.Sprintf("Integer literal cannot be used for type %s", self.TypeName)
}
func (self *IntegerLiteralWrongType) Kind() ErrorKind   { return IntegerLiteralWrongTypeKind }
func (self *IntegerLiteralWrongType) Span() errors.Span { return self.span }

//
// FloatLiteralWrongType
//

type FloatLiteralWrongType struct {
	TypeName string
	span     errors.Span
}

func NewFloatLiteralWrongType(typeName string, span errors.Span) *FloatLiteralWrongType {
	return &FloatLiteralWrongType{TypeName: typeName, span: span}
}

func (self *FloatLiteralWrongType) Error() string {
	return fmt.Sprintf("Float literal cannot be used for type %s", self.TypeName)
}
func (self *FloatLiteralWrongType) Kind() ErrorKind   { return FloatLiteralWrongTypeKind }
func (self *FloatLiteralWrongType) Span() errors.Span { return self.span }

//
// BooleanLiteralWrongType
//

type BooleanLiteralWrongType struct {
	TypeName string
	span     errors.Span
}

func NewBooleanLiteralWrongType(typeName string, span errors.Span) *BooleanLiteralWrongType {
	return &BooleanLiteralWrongType{TypeName: typeName, span: span}
}

func (self *BooleanLiteralWrongType) Error() string {
	return fmt.Sprintf("Boolean literal cannot be used for type %s", self.TypeName)
}
func (self *BooleanLiteralWrongType) Kind() ErrorKind   { return BooleanLiteralWrongTypeKind }
func (self *BooleanLiteralWrongType) Span() errors.Span { return self.span }

//
// ParseError
//

type ParseError struct {
	Value    string
	TypeName string
	ParseErr string
	span     errors.Span
}

func NewParseError(value string, typeName string, parseErr string, span errors.Span) *ParseError {
	return &ParseError{
		Value:    value,
		TypeName: typeName,
		ParseErr: parseErr,
		span:     span,
	}
}

func (self *ParseError) Error() string {
	return fmt.Sprintf("Cannot parse '%s' as type %s: %s", self.Value, self.TypeName, self.ParseErr)
}
func (self *ParseError) Kind() ErrorKind   { return ParseErrorKind }
func (self *ParseError) Span() errors.Span { return self.span }

//
// FieldMustHaveName
//

type FieldMustHaveName struct {
	span errors.Span
}

func NewFieldMustHaveName(span errors.Span) *FieldMustHaveName {
	return &FieldMustHaveName{span: span}
}

func (self *FieldMustHaveName) Error() string {
	return "Field must have a name"
}
func (self *FieldMustHaveName) Kind() ErrorKind   { return FieldMustHaveNameKind }
func (self *FieldMustHaveName) Span() errors.Span { return self.span }

//
// OnlySupportsStructs
//

type OnlySupportsStructs struct {
	span errors.Span
}

func NewOnlySupportsStructs(span errors.Span) *OnlySupportsStructs {
	return &OnlySupportsStructs{span: span}
}

func (self *OnlySupportsStructs) Error() string {
	return "The confgen:config directive only supports structs"
}
func (self *OnlySupportsStructs) Kind() ErrorKind   { return OnlySupportsStructsKind }
func (self *OnlySupportsStructs) Span() errors.Span { return self.span }

//
// NestingLevelExceeded
//

type NestingLevelExceeded struct {
	StructName string
	Depth      uint
	span       errors.Span
}

func NewNestingLevelExceeded(structName string, depth uint, span errors.Span) *NestingLevelExceeded {
	return &NestingLevelExceeded{StructName: structName, Depth: depth, span: span}
}

func (self *NestingLevelExceeded) Error() string {
	return fmt.Sprintf(
		"Configuration struct '%s' nesting depth %d exceeds allowed two levels (top level + one level of nested structs)",
		self.StructName,
		self.Depth,
	)
}
func (self *NestingLevelExceeded) Kind() ErrorKind   { return NestingLevelExceededKind }
func (self *NestingLevelExceeded) Span() errors.Span { return self.span }
