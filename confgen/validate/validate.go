// Package validate checks a concrete TOML document against an analyzed
// config schema without compiling any generated code.
package validate

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/agnivade/levenshtein"

	"github.com/confgen-go/confgen/confgen/diagnostic"
	"github.com/confgen-go/confgen/confgen/errors"
	"github.com/confgen-go/confgen/confgen/schema"
)

// maximum edit distance for a "similar key" suggestion
const suggestionMaxDistance = 3

type Validator struct {
	filename    string
	diagnostics []diagnostic.Diagnostic
}

func NewValidator(filename string) Validator {
	return Validator{
		filename:    filename,
		diagnostics: make([]diagnostic.Diagnostic, 0),
	}
}

// Validate checks the TOML document against the given struct schema and
// reports everything it finds as diagnostics. A syntax error in the document
// aborts validation, everything else is collected.
func (self *Validator) Validate(document string, strct *schema.Struct, pkg *schema.Package) []diagnostic.Diagnostic {
	var values map[string]interface{}
	if _, err := toml.Decode(document, &values); err != nil {
		self.syntaxError(err)
		return self.diagnostics
	}

	self.table(values, strct, pkg, "")
	return self.diagnostics
}

func (self *Validator) table(values map[string]interface{}, strct *schema.Struct, pkg *schema.Package, keyPath string) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field := strct.Field(key)
		if field == nil {
			self.unknownKey(key, strct, keyPath)
			continue
		}
		self.value(key, values[key], field, pkg, keyPath)
	}

	for idx := range strct.Fields {
		field := &strct.Fields[idx]
		if _, present := values[field.Name]; present {
			continue
		}
		if field.Default != nil || field.NestedStruct != "" {
			self.report(
				diagnostic.DiagnosticLevelHint,
				fmt.Sprintf("Key '%s' is not set, the generated default applies", joinPath(keyPath, field.Name)),
				nil,
			)
		}
	}
}

func (self *Validator) value(key string, value interface{}, field *schema.Field, pkg *schema.Package, keyPath string) {
	if field.NestedStruct != "" {
		child, isTable := value.(map[string]interface{})
		if !isTable {
			self.report(
				diagnostic.DiagnosticLevelError,
				fmt.Sprintf("Key '%s' expects a table but found %s", joinPath(keyPath, key), tomlKind(value)),
				[]string{fmt.Sprintf("The declared Go type is '%s'", field.TypeExpr)},
			)
			return
		}
		if childStruct := pkg.Struct(field.NestedStruct); childStruct != nil {
			self.table(child, childStruct, pkg, joinPath(keyPath, key))
		}
		return
	}

	expected := declaredKind(field.TypeName)
	if expected == "" {
		// opaque foreign type, nothing to check against
		return
	}

	found := tomlKind(value)
	if found == expected {
		return
	}
	if expected == "float" && found == "integer" {
		// TOML integers widen into float fields
		return
	}

	self.report(
		diagnostic.DiagnosticLevelError,
		fmt.Sprintf("Key '%s' expects %s but found %s", joinPath(keyPath, key), expected, found),
		[]string{fmt.Sprintf("The declared Go type is '%s'", field.TypeExpr)},
	)
}

func (self *Validator) unknownKey(key string, strct *schema.Struct, keyPath string) {
	notes := make([]string, 0)

	closest := ""
	closestDistance := suggestionMaxDistance + 1
	for idx := range strct.Fields {
		distance := levenshtein.ComputeDistance(key, strct.Fields[idx].Name)
		if distance < closestDistance {
			closest = strct.Fields[idx].Name
			closestDistance = distance
		}
	}
	if closest != "" {
		notes = append(notes, fmt.Sprintf("A similar key exists: '%s'", joinPath(keyPath, closest)))
	}

	self.report(
		diagnostic.DiagnosticLevelWarning,
		fmt.Sprintf("Unknown key '%s'", joinPath(keyPath, key)),
		notes,
	)
}

func (self *Validator) syntaxError(err error) {
	span := errors.Span{Filename: self.filename}
	message := err.Error()

	if parseErr, isParse := err.(toml.ParseError); isParse {
		location := errors.Location{
			Line:   uint(parseErr.Position.Line),
			Column: uint(parseErr.Position.Col),
			Index:  uint(parseErr.Position.Start),
		}
		span = location.Until(location, self.filename)
		message = parseErr.Message
	}

	self.diagnostics = append(self.diagnostics, diagnostic.Diagnostic{
		Level:   diagnostic.DiagnosticLevelError,
		Message: message,
		Notes:   make([]string, 0),
		Span:    span,
	})
}

// report emits a diagnostic without a source span: the TOML decoder does not
// expose per-key positions, so only the filename is attached.
func (self *Validator) report(level diagnostic.DiagnosticLevel, message string, notes []string) {
	self.diagnostics = append(self.diagnostics, diagnostic.Diagnostic{
		Level:   level,
		Message: message,
		Notes:   notes,
		Span:    errors.Span{Filename: self.filename},
	})
}

func joinPath(keyPath string, key string) string {
	if keyPath == "" {
		return key
	}
	return keyPath + "." + key
}

func declaredKind(typeName string) string {
	switch typeName {
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64":
		return "integer"
	case "float32", "float64":
		return "float"
	default:
		return ""
	}
}

func tomlKind(value interface{}) string {
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int64:
		return "integer"
	case float64:
		return "float"
	case map[string]interface{}:
		return "a table"
	case []interface{}:
		return "an array"
	default:
		return fmt.Sprintf("%T", value)
	}
}
