package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"github.com/confgen-go/confgen/confgen"
	"github.com/confgen-go/confgen/confgen/validate"
)

// checkCommand validates a concrete TOML document against a config struct
// declared in a Go source file.
func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate a TOML document against a config struct",
		ArgsUsage: "[config.toml]",
		Args:      true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Usage:    "Go source file declaring the config structs",
				Aliases:  []string{"f"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "struct",
				Usage:   "Name of the config struct to validate against (default: the first one)",
				Aliases: []string{"t"},
			},
		},
		Before: fileValidator,
		Action: func(c *cli.Context) error {
			sourcePath := c.String("source")
			source, err := os.ReadFile(sourcePath)
			if err != nil {
				return err
			}

			pkg, diagnostics, err := confgen.Analyze(confgen.InputFile{
				ProgramText: string(source),
				Filename:    sourcePath,
			})
			if err != nil {
				return err
			}
			if printDiagnostics(diagnostics, string(source)) {
				return errors.New("Encountered schema error(s)")
			}

			structName := c.String("struct")
			if structName == "" {
				if len(pkg.Structs) == 0 {
					return fmt.Errorf("No config structs found in `%s`", sourcePath)
				}
				structName = pkg.Structs[0].Name
			}
			strct := pkg.Struct(structName)
			if strct == nil {
				return fmt.Errorf("No config struct `%s` found in `%s`", structName, sourcePath)
			}

			configPath := c.Args().Get(0)
			document, err := os.ReadFile(configPath)
			if err != nil {
				return err
			}

			validator := validate.NewValidator(configPath)
			results := validator.Validate(string(document), strct, &pkg)
			if printDiagnostics(results, string(document)) {
				return errors.New("Configuration file is invalid")
			}

			fmt.Printf("OK: `%s` matches '%s'\n", configPath, structName)
			return nil
		},
	}
}

// schemaCommand dumps the analyzed schema of a source file.
func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:      "schema",
		Usage:     "Analyze a Go source file and dump the resulting schema",
		ArgsUsage: "[file]",
		Args:      true,
		Before:    fileValidator,
		Action: func(c *cli.Context) error {
			pathS := c.Args().Get(0)
			file, err := os.ReadFile(pathS)
			if err != nil {
				return err
			}

			pkg, diagnostics, err := confgen.Analyze(confgen.InputFile{
				ProgramText: string(file),
				Filename:    pathS,
			})
			if err != nil {
				return err
			}

			foundError := printDiagnostics(diagnostics, string(file))
			fmt.Print(spew.Sdump(pkg))

			if foundError {
				return errors.New("Encountered schema error(s)")
			}
			return nil
		},
	}
}
