package errors

import (
	"fmt"

	"golang.org/x/xerrors"

	"mapshim/internal/ast"
)

// Reportable is implemented by errors that carry enough context for the reporter
type Reportable interface {
	error
	CompilerError() CompilerError
}

// UnsupportedTypeError is raised when a key or value type has no storage
// encoding inside a map wrapper
type UnsupportedTypeError struct {
	Type     string
	Reason   string
	Position ast.Position
}

var _ Reportable = &UnsupportedTypeError{}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type %s: %s", e.Type, e.Reason)
}

func (e *UnsupportedTypeError) CompilerError() CompilerError {
	return NewError(ErrorUnsupportedType, e.Error(), e.Position).
		WithLength(len(e.Type)).
		WithNote("supported map values are elementary types, enums, contracts, structs and arrays of these, and nested maps").
		Build()
}

// ResolutionError is raised when an interposition target does not resolve
// to a map-typed declaration
type ResolutionError struct {
	Target     string
	Message    string
	Suggestion string
	Position   ast.Position
}

var _ Reportable = &ResolutionError{}

func (e *ResolutionError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("cannot resolve target %s: %s (did you mean '%s'?)", e.Target, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("cannot resolve target %s: %s", e.Target, e.Message)
}

func (e *ResolutionError) CompilerError() CompilerError {
	builder := NewError(ErrorUnresolvedTarget, "cannot resolve target: "+e.Message, e.Position).
		WithTarget(e.Target)
	if e.Suggestion != "" {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", e.Suggestion))
	}
	return builder.
		WithHelp("a target names a state variable followed by struct fields or [] index levels, ending at a mapping").
		Build()
}

// NameCollisionExhausted is raised when no numeric suffix yields a free name
type NameCollisionExhausted struct {
	Name     string
	Attempts int
}

var _ Reportable = &NameCollisionExhausted{}

func (e *NameCollisionExhausted) Error() string {
	return fmt.Sprintf("no free identifier for %s after %d attempts", e.Name, e.Attempts)
}

func (e *NameCollisionExhausted) CompilerError() CompilerError {
	return NewError(ErrorNameCollisionExhausted, e.Error(), ast.Position{}).
		WithHelp("choose a different prefix for generated names").
		Build()
}

// ConsistencyError is raised when a rewrite would leave a dangling or
// mistyped reference to an interposed map
type ConsistencyError struct {
	Code     string
	Message  string
	Position ast.Position
	Length   int
}

var _ Reportable = &ConsistencyError{}

func (e *ConsistencyError) Error() string {
	return e.Message
}

func (e *ConsistencyError) CompilerError() CompilerError {
	code := e.Code
	if code == "" {
		code = ErrorConsistency
	}
	builder := NewError(code, e.Message, e.Position).WithLength(e.Length)
	if code == ErrorEscapingMapReference {
		builder = builder.WithNote("an interposed map can only be used through index expressions")
	}
	return builder.Build()
}

// AsCompilerError finds the first reportable error in the chain
func AsCompilerError(err error) (CompilerError, bool) {
	switch err := err.(type) {
	case CompilerError:
		return err, true
	case Reportable:
		return err.CompilerError(), true
	case xerrors.Wrapper:
		return AsCompilerError(err.Unwrap())
	default:
		return CompilerError{}, false
	}
}
