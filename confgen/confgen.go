// Package confgen ties the frontend, the analyzer and the code generator
// together into the processing pipeline used by the CLI.
package confgen

import (
	"github.com/confgen-go/confgen/confgen/analyzer"
	"github.com/confgen-go/confgen/confgen/codegen"
	"github.com/confgen-go/confgen/confgen/diagnostic"
	"github.com/confgen-go/confgen/confgen/parser"
	"github.com/confgen-go/confgen/confgen/schema"
)

type InputFile struct {
	ProgramText string
	Filename    string
}

// Output is the result of one generation run.
type Output struct {
	// GoSource is the rendered companion file for the processed package.
	GoSource []byte
	// Templates maps each struct name to its commented TOML template.
	Templates map[string]string
}

// Analyze parses and validates the input file. Structs that produced a schema
// error are dropped from the package; every schema error is converted into an
// error-level diagnostic here, at the single conversion seam. The returned
// error is a host (go/parser) failure.
func Analyze(input InputFile) (schema.Package, []diagnostic.Diagnostic, error) {
	fileParser := parser.NewParser(input.Filename)
	pkg, schemaErrors, err := fileParser.Parse(input.ProgramText)
	if err != nil {
		return schema.Package{}, nil, err
	}

	diagnostics := make([]diagnostic.Diagnostic, 0)
	diagnostics = append(diagnostics, fileParser.Diagnostics...)

	fileAnalyzer := analyzer.NewAnalyzer()
	analyzerErrors, analyzerDiagnostics := fileAnalyzer.Analyze(&pkg)
	schemaErrors = append(schemaErrors, analyzerErrors...)
	diagnostics = append(diagnostics, analyzerDiagnostics...)

	for _, schemaErr := range schemaErrors {
		diagnostics = append(diagnostics, schema.ToDiagnostic(schemaErr))
	}

	return pkg, diagnostics, nil
}

// Generate runs Analyze and renders code and templates for every struct that
// survived analysis.
func Generate(input InputFile) (Output, []diagnostic.Diagnostic, error) {
	pkg, diagnostics, err := Analyze(input)
	if err != nil {
		return Output{}, nil, err
	}

	generator := codegen.NewGenerator(&pkg)
	templates := make(map[string]string)
	for _, strct := range pkg.Structs {
		templates[strct.Name] = codegen.Template(strct, &pkg)
	}

	return Output{
		GoSource:  generator.Generate(),
		Templates: templates,
	}, diagnostics, nil
}
