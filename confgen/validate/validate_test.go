package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/confgen-go/confgen/confgen/diagnostic"
	"github.com/confgen-go/confgen/confgen/schema"
)

func serverSchema() (*schema.Struct, schema.Package) {
	pkg := schema.Package{
		Name:     "demo",
		Filename: "config.go",
		Structs: []*schema.Struct{
			{
				Name: "Server",
				Fields: []schema.Field{
					{Name: "Host", TypeName: "string", TypeExpr: "string"},
					{
						Name:     "Port",
						TypeName: "uint16",
						TypeExpr: "uint16",
						Default:  &schema.DefaultValue{Raw: "8080", GoExpr: "8080", TomlValue: "8080"},
					},
					{Name: "Debug", TypeName: "bool", TypeExpr: "bool"},
					{Name: "Ratio", TypeName: "float64", TypeExpr: "float64"},
					{Name: "Limits", TypeName: "Limits", TypeExpr: "Limits", NestedStruct: "Limits"},
				},
			},
			{
				Name: "Limits",
				Fields: []schema.Field{
					{Name: "MaxConns", TypeName: "int32", TypeExpr: "int32"},
				},
			},
		},
	}
	return pkg.Structs[0], pkg
}

func validateDocument(document string) []diagnostic.Diagnostic {
	strct, pkg := serverSchema()
	validator := NewValidator("config.toml")
	return validator.Validate(document, strct, &pkg)
}

func errorsOnly(diagnostics []diagnostic.Diagnostic) []diagnostic.Diagnostic {
	out := make([]diagnostic.Diagnostic, 0)
	for _, item := range diagnostics {
		if item.Level == diagnostic.DiagnosticLevelError {
			out = append(out, item)
		}
	}
	return out
}

func TestValidDocument(t *testing.T) {
	diagnostics := validateDocument(`
Host = "127.0.0.1"
Port = 9090
Debug = true
Ratio = 0.5

[Limits]
MaxConns = 100
`)

	assert.Empty(t, errorsOnly(diagnostics))
}

func TestMissingKeyWithDefaultIsHinted(t *testing.T) {
	diagnostics := validateDocument(`
Host = "127.0.0.1"
Debug = true
Ratio = 0.5

[Limits]
MaxConns = 100
`)

	assert.Empty(t, errorsOnly(diagnostics))
	assert.Len(t, diagnostics, 1)
	assert.Equal(t, diagnostic.DiagnosticLevelHint, diagnostics[0].Level)
	assert.Contains(t, diagnostics[0].Message, "Key 'Port' is not set")
}

func TestMissingKeyWithoutDefaultIsSilent(t *testing.T) {
	diagnostics := validateDocument(`
Port = 9090

[Limits]
MaxConns = 100
`)

	// Host, Debug and Ratio have no default and are not reported
	assert.Empty(t, diagnostics)
}

func TestUnknownKeySuggestion(t *testing.T) {
	diagnostics := validateDocument(`
Hots = "127.0.0.1"
Port = 9090

[Limits]
MaxConns = 1
`)

	assert.Len(t, diagnostics, 1)
	assert.Equal(t, diagnostic.DiagnosticLevelWarning, diagnostics[0].Level)
	assert.Contains(t, diagnostics[0].Message, "Unknown key 'Hots'")
	assert.Contains(t, diagnostics[0].Notes[0], "A similar key exists: 'Host'")
}

func TestUnknownKeyWithoutSuggestion(t *testing.T) {
	diagnostics := validateDocument(`
CompletelyUnrelated = 1
Port = 9090

[Limits]
MaxConns = 1
`)

	assert.Len(t, diagnostics, 1)
	assert.Contains(t, diagnostics[0].Message, "Unknown key 'CompletelyUnrelated'")
	assert.Empty(t, diagnostics[0].Notes)
}

func TestTypeMismatch(t *testing.T) {
	diagnostics := validateDocument(`
Host = 42
Port = 9090

[Limits]
MaxConns = 1
`)

	errs := errorsOnly(diagnostics)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "Key 'Host' expects string but found integer")
	assert.Contains(t, errs[0].Notes[0], "The declared Go type is 'string'")
}

func TestIntegerWidensIntoFloat(t *testing.T) {
	diagnostics := validateDocument(`
Port = 9090
Ratio = 2

[Limits]
MaxConns = 1
`)

	assert.Empty(t, errorsOnly(diagnostics))
}

func TestFloatIntoIntegerIsAnError(t *testing.T) {
	diagnostics := validateDocument(`
Port = 90.5

[Limits]
MaxConns = 1
`)

	errs := errorsOnly(diagnostics)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "Key 'Port' expects integer but found float")
}

func TestNestedTableKeysUseDottedPath(t *testing.T) {
	diagnostics := validateDocument(`
Port = 9090

[Limits]
MaxConn = 1
`)

	assert.Len(t, diagnostics, 1)
	assert.Contains(t, diagnostics[0].Message, "Unknown key 'Limits.MaxConn'")
	assert.Contains(t, diagnostics[0].Notes[0], "A similar key exists: 'Limits.MaxConns'")
}

func TestNestedTypeMismatch(t *testing.T) {
	diagnostics := validateDocument(`
Port = 9090

[Limits]
MaxConns = "many"
`)

	errs := errorsOnly(diagnostics)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "Key 'Limits.MaxConns' expects integer but found string")
}

func TestScalarForNestedTable(t *testing.T) {
	diagnostics := validateDocument(`
Port = 9090
Limits = 5
`)

	errs := errorsOnly(diagnostics)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "Key 'Limits' expects a table but found integer")
}

func TestMissingNestedTableIsHinted(t *testing.T) {
	diagnostics := validateDocument(`
Port = 9090
`)

	assert.Len(t, diagnostics, 1)
	assert.Equal(t, diagnostic.DiagnosticLevelHint, diagnostics[0].Level)
	assert.Contains(t, diagnostics[0].Message, "Key 'Limits' is not set")
}

func TestSyntaxErrorAbortsValidation(t *testing.T) {
	diagnostics := validateDocument(`
Host = = "oops"
`)

	assert.Len(t, diagnostics, 1)
	assert.Equal(t, diagnostic.DiagnosticLevelError, diagnostics[0].Level)
	assert.Equal(t, "config.toml", diagnostics[0].Span.Filename)
	assert.NotZero(t, diagnostics[0].Span.Start.Line)
}
