package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"mapshim/internal/ast"
)

// ErrorBuilder provides a fluent interface for creating errors with suggestions
type ErrorBuilder struct {
	err CompilerError
}

// NewError creates a new error builder
func NewError(code, message string, pos ast.Position) *ErrorBuilder {
	return &ErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewWarning creates a new warning builder
func NewWarning(code, message string, pos ast.Position) *ErrorBuilder {
	return &ErrorBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *ErrorBuilder) WithLength(length int) *ErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *ErrorBuilder) WithSuggestion(message string) *ErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *ErrorBuilder) WithReplacement(message, replacement string, pos ast.Position, length int) *ErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithTarget names the interposition target the error concerns
func (b *ErrorBuilder) WithTarget(target string) *ErrorBuilder {
	b.err.Target = target
	return b
}

// WithNote adds a note to the error
func (b *ErrorBuilder) WithNote(note string) *ErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *ErrorBuilder) WithHelp(help string) *ErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *ErrorBuilder) Build() CompilerError {
	return b.err
}

// FieldNotFound creates an error for unknown struct fields with suggestions
func FieldNotFound(structName, fieldName string, pos ast.Position, availableFields []string) CompilerError {
	builder := NewError(ErrorFieldNotFound, fmt.Sprintf("struct '%s' has no field '%s'", structName, fieldName), pos).
		WithLength(len(fieldName))

	if closest := ClosestName(fieldName, availableFields); closest != "" {
		builder = builder.WithReplacement(fmt.Sprintf("did you mean '%s'?", closest), closest, pos, len(fieldName))
	}

	if len(availableFields) > 0 {
		builder = builder.WithNote(fmt.Sprintf("available fields: %s", strings.Join(availableFields, ", ")))
	}

	return builder.Build()
}

// UndefinedType creates an error for type names that resolve to nothing
func UndefinedType(name string, pos ast.Position, candidates []string) CompilerError {
	builder := NewError(ErrorUndefinedType, fmt.Sprintf("undefined type '%s'", name), pos).
		WithLength(len(name))

	if closest := ClosestName(name, candidates); closest != "" {
		builder = builder.WithReplacement(fmt.Sprintf("did you mean '%s'?", closest), closest, pos, len(name))
	}

	return builder.Build()
}

// ClosestName returns the candidate with the smallest edit distance from name,
// or "" if every candidate would need a complete rewrite
func ClosestName(name string, candidates []string) string {
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	nameRunes := []rune(name)
	closestDistance := len(name)
	closest := ""

	for _, candidate := range sorted {
		distance := levenshtein.DistanceForStrings(
			nameRunes,
			[]rune(candidate),
			levenshtein.DefaultOptions,
		)

		if distance < closestDistance && distance < len(candidate) {
			closest = candidate
			closestDistance = distance
		}
	}

	return closest
}
