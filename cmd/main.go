package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/confgen-go/confgen/confgen"
	"github.com/confgen-go/confgen/confgen/diagnostic"
)

const programName = "confgen"
const version = "latest"

const generatedSuffix = "_confgen.go"

func fileValidator(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("Expected exactly one argument <file>")
	}
	return nil
}

func printDiagnostics(diagnostics []diagnostic.Diagnostic, program string) (foundError bool) {
	colored := term.IsTerminal(int(os.Stderr.Fd()))

	for _, item := range diagnostics {
		if item.Level == diagnostic.DiagnosticLevelError {
			foundError = true
		}

		if colored {
			fmt.Fprintln(os.Stderr, item.Display(program))
		} else {
			fmt.Fprintln(os.Stderr, item.String())
		}
	}

	return foundError
}

func generateFile(pathS string, toStdout bool) error {
	file, err := os.ReadFile(pathS)
	if err != nil {
		return err
	}

	output, diagnostics, err := confgen.Generate(confgen.InputFile{
		ProgramText: string(file),
		Filename:    pathS,
	})
	if err != nil {
		return err
	}

	foundError := printDiagnostics(diagnostics, string(file))
	if foundError {
		return errors.New("Encountered schema error(s)")
	}

	if toStdout {
		fmt.Println(string(output.GoSource))
		for name, template := range output.Templates {
			fmt.Printf("# === template: %s ===\n%s", name, template)
		}
		return nil
	}

	base := strings.TrimSuffix(pathS, ".go")
	genPath := base + generatedSuffix
	if err := os.WriteFile(genPath, output.GoSource, 0644); err != nil {
		return err
	}
	log.Printf("Wrote %s", genPath)

	for name, template := range output.Templates {
		templatePath := filepath.Join(filepath.Dir(pathS), strings.ToLower(name)+".template.toml")
		if err := os.WriteFile(templatePath, []byte(template), 0644); err != nil {
			return err
		}
		log.Printf("Wrote %s", templatePath)
	}

	return nil
}

func main() {
	// nolint:exhaustruct
	app := &cli.App{
		Name:     programName,
		Version:  version,
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "The confgen Authors",
				Email: "",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "gen",
				Usage:     "Generate constructors, loaders and TOML templates for a Go source file",
				ArgsUsage: "[file]",
				Args:      true,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "stdout",
						Usage:   "If set, the generated output is printed instead of written next to the input.",
						Aliases: []string{"s"},
					},
				},
				Before: fileValidator,
				Action: func(c *cli.Context) error {
					return generateFile(c.Args().Get(0), c.Bool("stdout"))
				},
			},
			checkCommand(),
			schemaCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
