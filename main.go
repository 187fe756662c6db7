package main

import (
	"fmt"
	"os"

	"github.com/confgen-go/confgen/confgen"
	"github.com/confgen-go/confgen/confgen/diagnostic"
)

func main() {
	program, err := os.ReadFile(os.Args[1])
	if err != nil {
		panic(err.Error())
	}

	_, diagnostics, err := confgen.Analyze(confgen.InputFile{
		ProgramText: string(program),
		Filename:    os.Args[1],
	})
	if err != nil {
		panic(err.Error())
	}

	hasError := false
	for _, item := range diagnostics {
		fmt.Println(item.Display(string(program)))
		if item.Level == diagnostic.DiagnosticLevelError {
			hasError = true
		}
	}

	if hasError {
		fmt.Println("Analyzer detected errors")
		return
	}

	fmt.Println("Schema OK")
}
