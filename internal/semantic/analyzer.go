package semantic

import (
	"fmt"

	"mapshim/internal/ast"
	"mapshim/internal/errors"
)

// Analyzer runs the front-end passes the interposer depends on: it indexes
// declarations, binds identifiers and resolves declared types
type Analyzer struct {
	registry *Registry
	binder   *Binder
	typer    *Typer
	errors   []errors.CompilerError
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		errors: make([]errors.CompilerError, 0),
	}
}

// Analyze processes every unit together, since contracts may inherit
// across files. Problems in code the interposer never touches are warnings.
func (a *Analyzer) Analyze(units []*ast.SourceUnit) []errors.CompilerError {
	a.errors = make([]errors.CompilerError, 0)

	a.registry = NewRegistry(units)
	for _, dup := range a.registry.duplicates {
		a.errors = append(a.errors, errors.NewError(
			errors.ErrorUndefinedContract,
			fmt.Sprintf("contract '%s' is declared more than once", dup.Name.Value),
			dup.Name.Pos,
		).WithLength(len(dup.Name.Value)).Build())
	}

	for _, c := range a.registry.Contracts() {
		for _, base := range c.Bases {
			if a.registry.Contract(base.Name) != nil {
				continue
			}
			builder := errors.NewWarning(
				errors.ErrorUndefinedContract,
				fmt.Sprintf("base contract '%s' of '%s' is not declared in the input", base.Name, c.Name.Value),
				base.Pos,
			).WithLength(len(base.Name))
			if closest := errors.ClosestName(base.Name, a.registry.ContractNames()); closest != "" {
				builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", closest))
			}
			a.errors = append(a.errors, builder.Build())
		}
	}

	a.binder = NewBinder(a.registry)
	a.binder.Bind(units)

	a.typer = NewTyper(a.registry, units)
	for _, err := range a.typer.Errors() {
		ce, ok := errors.AsCompilerError(err)
		if !ok {
			continue
		}
		ce.Level = errors.Warning
		a.errors = append(a.errors, ce)
	}

	return a.errors
}

// HasErrors reports whether the last run produced anything above warning level
func (a *Analyzer) HasErrors() bool {
	for _, e := range a.errors {
		if e.Level == errors.Error {
			return true
		}
	}
	return false
}

func (a *Analyzer) Registry() *Registry {
	return a.registry
}

func (a *Analyzer) Typer() *Typer {
	return a.typer
}

func (a *Analyzer) Binder() *Binder {
	return a.binder
}
