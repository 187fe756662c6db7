package confgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/confgen-go/confgen/confgen/diagnostic"
)

const serverProgram = `package demo

//confgen:config
type Server struct {
	//confgen:default "0.0.0.0"
	//confgen:note "Address the server listens on"
	Host string

	//confgen:default 8080
	Port uint16

	Limits Limits
}

//confgen:config
type Limits struct {
	//confgen:default 100
	MaxConns int32
}
`

func TestAnalyzeValidProgram(t *testing.T) {
	pkg, diagnostics, err := Analyze(InputFile{
		ProgramText: serverProgram,
		Filename:    "config.go",
	})

	assert.NoError(t, err)
	assert.Empty(t, diagnostics)
	assert.Len(t, pkg.Structs, 2)
	assert.Equal(t, "Limits", pkg.Struct("Server").Field("Limits").NestedStruct)
}

func TestAnalyzeConvertsSchemaErrors(t *testing.T) {
	pkg, diagnostics, err := Analyze(InputFile{
		ProgramText: `package demo

//confgen:config
type Server struct {
	//confgen:default "oops"
	Port uint16
}
`,
		Filename: "config.go",
	})

	assert.NoError(t, err)
	assert.Empty(t, pkg.Structs)

	assert.Len(t, diagnostics, 1)
	assert.Equal(t, diagnostic.DiagnosticLevelError, diagnostics[0].Level)
	assert.Equal(t, "String literal cannot be used for type uint16", diagnostics[0].Message)
	assert.Equal(t, "config.go", diagnostics[0].Span.Filename)
	// the span points at the default expression
	assert.Equal(t, uint(5), diagnostics[0].Span.Start.Line)
}

func TestAnalyzeReturnsHostParseError(t *testing.T) {
	_, _, err := Analyze(InputFile{
		ProgramText: "package demo\n\nfunc broken( {}\n",
		Filename:    "config.go",
	})

	assert.Error(t, err)
}

func TestAnalyzeCollectsSoftDiagnostics(t *testing.T) {
	_, diagnostics, err := Analyze(InputFile{
		ProgramText: `package demo

//confgen:config
type Server struct {
	//confgen:defualt 8080
	Port uint16

	//confgen:default defaultTimeout()
	Timeout int64
}
`,
		Filename: "config.go",
	})

	assert.NoError(t, err)
	assert.Len(t, diagnostics, 2)
	// parser diagnostics come before analyzer diagnostics
	assert.Equal(t, diagnostic.DiagnosticLevelWarning, diagnostics[0].Level)
	assert.Contains(t, diagnostics[0].Message, "Unknown directive 'defualt'")
	assert.Equal(t, diagnostic.DiagnosticLevelHint, diagnostics[1].Level)
	assert.Contains(t, diagnostics[1].Message, "passed through without validation")
}

func TestGenerateEndToEnd(t *testing.T) {
	output, diagnostics, err := Generate(InputFile{
		ProgramText: serverProgram,
		Filename:    "config.go",
	})

	assert.NoError(t, err)
	assert.Empty(t, diagnostics)

	source := string(output.GoSource)
	assert.True(t, strings.HasPrefix(source, "// Code generated by confgen. DO NOT EDIT."))
	assert.Contains(t, source, "package demo\n")
	assert.Contains(t, source, "func NewServer() Server {")
	assert.Contains(t, source, "Host: \"0.0.0.0\",")
	assert.Contains(t, source, "Limits: NewLimits(),")
	assert.Contains(t, source, "func LoadServer(r io.Reader) (Server, error) {")

	assert.Len(t, output.Templates, 2)
	assert.Contains(t, output.Templates["Server"], "# Address the server listens on\nHost = \"0.0.0.0\"\n")
	assert.Contains(t, output.Templates["Server"], "[Limits]\nMaxConns = 100\n")
	assert.Contains(t, output.Templates["Limits"], "MaxConns = 100\n")
}

func TestGenerateSkipsDroppedStructs(t *testing.T) {
	output, diagnostics, err := Generate(InputFile{
		ProgramText: `package demo

//confgen:config
type Broken struct {
	//confgen:default "oops"
	Port uint16
}

//confgen:config
type Fine struct {
	//confgen:default true
	Debug bool
}
`,
		Filename: "config.go",
	})

	assert.NoError(t, err)
	assert.Len(t, diagnostics, 1)

	source := string(output.GoSource)
	assert.NotContains(t, source, "NewBroken")
	assert.Contains(t, source, "func NewFine() Fine {")
	assert.Contains(t, source, "Debug: true,")

	_, hasBroken := output.Templates["Broken"]
	assert.False(t, hasBroken)
	assert.Contains(t, output.Templates["Fine"], "Debug = true\n")
}
