package parser

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/confgen-go/confgen/confgen/diagnostic"
	"github.com/confgen-go/confgen/confgen/errors"
	"github.com/confgen-go/confgen/confgen/schema"
)

const directivePrefix = "//confgen:"

const (
	directiveConfig  = "config"
	directiveDefault = "default"
	directiveNote    = "note"
)

var knownFieldDirectives = []string{directiveDefault, directiveNote}

// maximum edit distance for a "similar directive" suggestion
const suggestionMaxDistance = 3

// fieldOptions is the per-field directive set: an optional default
// expression and an optional documentation note.
type fieldOptions struct {
	note         string
	defaultValue *schema.DefaultValue
}

func (self *Parser) hasConfigDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, comment := range doc.List {
		verb, _, _, isDirective := splitDirective(comment.Text)
		if isDirective && verb == directiveConfig {
			return true
		}
	}
	return false
}

func (self *Parser) fieldOptions(field *ast.Field) fieldOptions {
	options := fieldOptions{
		note:         "",
		defaultValue: nil,
	}

	if field.Doc == nil {
		return options
	}

	for _, comment := range field.Doc.List {
		verb, payload, payloadOffset, isDirective := splitDirective(comment.Text)
		if !isDirective {
			continue
		}

		payloadSpan := self.span(
			comment.Slash+token.Pos(payloadOffset),
			comment.Slash+token.Pos(payloadOffset+len(payload)),
		)
		directiveSpan := self.span(comment.Slash, comment.End())

		switch verb {
		case directiveDefault:
			if options.defaultValue != nil {
				self.warn(
					"Duplicate 'default' directive on this field",
					[]string{"The previous default is ignored"},
					directiveSpan,
				)
			}
			options.defaultValue = &schema.DefaultValue{
				Raw:  payload,
				Span: payloadSpan,
			}
		case directiveNote:
			note := payload
			if unquoted, err := strconv.Unquote(payload); err == nil {
				note = unquoted
			}
			options.note = note
		case directiveConfig:
			self.warn(
				"The 'config' directive has no effect on fields",
				nil,
				directiveSpan,
			)
		default:
			self.unknownDirective(verb, directiveSpan)
		}
	}

	return options
}

func (self *Parser) unknownDirective(verb string, span errors.Span) {
	notes := make([]string, 0)
	for _, known := range knownFieldDirectives {
		if levenshtein.ComputeDistance(verb, known) <= suggestionMaxDistance {
			notes = append(notes, fmt.Sprintf("A similar directive exists: '%s'", known))
			break
		}
	}
	self.warn(fmt.Sprintf("Unknown directive '%s'", verb), notes, span)
}

func (self *Parser) warn(message string, notes []string, span errors.Span) {
	self.Diagnostics = append(self.Diagnostics, diagnostic.Diagnostic{
		Level:   diagnostic.DiagnosticLevelWarning,
		Message: message,
		Notes:   notes,
		Span:    span,
	})
}

// splitDirective dissects one comment line of the form `//confgen:verb payload`.
// payloadOffset is the byte offset of the payload inside the comment text.
func splitDirective(text string) (verb string, payload string, payloadOffset int, isDirective bool) {
	if !strings.HasPrefix(text, directivePrefix) {
		return "", "", 0, false
	}

	rest := text[len(directivePrefix):]
	verbEnd := strings.IndexAny(rest, " \t")
	if verbEnd < 0 {
		return rest, "", len(text), true
	}

	verb = rest[:verbEnd]
	raw := rest[verbEnd:]
	trimmed := strings.TrimLeft(raw, " \t")
	payloadOffset = len(directivePrefix) + verbEnd + (len(raw) - len(trimmed))
	payload = strings.TrimRight(trimmed, " \t")

	return verb, payload, payloadOffset, true
}
