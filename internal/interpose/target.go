package interpose

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/xerrors"

	"mapshim/internal/ast"
	"mapshim/internal/errors"
	"mapshim/internal/maplib"
	"mapshim/internal/types"
)

// Target names a map to interpose: a state variable of a contract and a
// path from the variable's type to the map. Path steps are struct member
// names, or nil for one index level (a mapping value or array element).
type Target struct {
	Contract string
	Variable string
	Path     []*string
}

// Member returns a path step naming a struct member
func Member(name string) *string {
	return &name
}

// String renders the target the way ParseTarget reads it
func (t Target) String() string {
	var b strings.Builder
	b.WriteString(t.Contract)
	b.WriteString(".")
	b.WriteString(t.Variable)
	for _, step := range t.Path {
		if step == nil {
			b.WriteString("[]")
			continue
		}
		b.WriteString(".")
		b.WriteString(*step)
	}
	return b.String()
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// ParseTarget reads "Contract.variable" followed by ".member" and "[]"
// steps, e.g. "C.accounts[].allowance"
func ParseTarget(text string) (Target, error) {
	malformed := func(reason string) (Target, error) {
		return Target{}, &errors.ResolutionError{Target: text, Message: reason}
	}

	parts := strings.Split(text, ".")
	if len(parts) < 2 {
		return malformed("expected Contract.variable")
	}
	if !identifierPattern.MatchString(parts[0]) {
		return malformed(fmt.Sprintf("%q is not a contract name", parts[0]))
	}

	target := Target{Contract: parts[0]}
	for i, part := range parts[1:] {
		name := part
		levels := 0
		for strings.HasSuffix(name, "[]") {
			name = strings.TrimSuffix(name, "[]")
			levels++
		}
		switch {
		case i == 0:
			if !identifierPattern.MatchString(name) {
				return malformed(fmt.Sprintf("%q is not a variable name", name))
			}
			target.Variable = name
		case name != "":
			if !identifierPattern.MatchString(name) {
				return malformed(fmt.Sprintf("%q is not a member name", name))
			}
			target.Path = append(target.Path, Member(name))
		case levels == 0:
			return malformed("empty path step")
		}
		for ; levels > 0; levels-- {
			target.Path = append(target.Path, nil)
		}
	}
	return target, nil
}

// location is a resolved target: the declaration whose type holds the
// map, and how many index levels lie between that type and the map
type location struct {
	target   Target
	contract *ast.ContractDef
	root     *ast.VariableDecl
	decl     *ast.VariableDecl
	owner    *ast.StructDef // struct declaring decl, nil when decl is root
	steps    int
	mapping  *types.Mapping
	levels   int
	lib      *maplib.Library
}

func (ip *interposer) resolve(target Target) (*location, error) {
	fail := func(pos ast.Position, message, suggestion string) (*location, error) {
		return nil, &errors.ResolutionError{
			Target:     target.String(),
			Message:    message,
			Suggestion: suggestion,
			Position:   pos,
		}
	}
	registry := ip.analyzer.Registry()
	typer := ip.analyzer.Typer()

	contract := registry.Contract(target.Contract)
	if contract == nil {
		return fail(ast.Position{}, fmt.Sprintf("contract %s is not declared", target.Contract),
			errors.ClosestName(target.Contract, registry.ContractNames()))
	}
	root := registry.StateVariable(contract, target.Variable)
	if root == nil {
		return fail(contract.Name.Pos, fmt.Sprintf("%s has no state variable %s", target.Contract, target.Variable),
			errors.ClosestName(target.Variable, registry.StateVariableNames(contract)))
	}

	current := typer.DeclType(root)
	if current == nil {
		_, err := typer.Resolve(root.Type, registry.Owner(root))
		var unsupported *errors.UnsupportedTypeError
		if xerrors.As(err, &unsupported) {
			return nil, unsupported
		}
		return fail(root.Pos, fmt.Sprintf("the type of %s does not resolve", target.Variable), "")
	}

	loc := &location{target: target, contract: contract, root: root, decl: root}
	for _, step := range target.Path {
		if step == nil {
			switch t := current.(type) {
			case *types.Mapping:
				current = t.Value
			case *types.Array:
				current = t.Elem
			default:
				return fail(loc.decl.Pos, fmt.Sprintf("%s cannot be indexed", current), "")
			}
			loc.steps++
			continue
		}

		s, ok := current.(*types.Struct)
		if !ok {
			return fail(loc.decl.Pos, fmt.Sprintf("%s has no member %s", current, *step), "")
		}
		member := s.Def.FindMember(*step)
		if member == nil {
			return fail(loc.decl.Pos, fmt.Sprintf("%s has no member %s", current, *step),
				errors.ClosestName(*step, s.FieldNames()))
		}
		current = s.Field(*step)
		loc.decl = member
		loc.owner = s.Def
		loc.steps = 0
	}

	mapping, ok := current.(*types.Mapping)
	if !ok {
		return fail(loc.decl.Pos, fmt.Sprintf("resolves to %s, which is not a mapping", current), "")
	}
	keys, _ := types.MapLevels(mapping)
	loc.mapping = mapping
	loc.levels = len(keys)
	return loc, nil
}

// covers reports whether every map level of other is already wrapped by
// l, which is the case when other is one of l's nested mapping levels
func (l *location) covers(other *location) bool {
	d := other.steps - l.steps
	return l.decl == other.decl && d >= 0 && d < l.levels
}

// typeSlot finds the mapping type name of the location inside the
// declaration's type and returns a setter replacing it
func (l *location) typeSlot() (func(ast.TypeName), error) {
	set := func(tn ast.TypeName) { l.decl.Type = tn }
	current := l.decl.Type
	for i := 0; i < l.steps; i++ {
		switch t := current.(type) {
		case *ast.MappingTypeName:
			set = func(tn ast.TypeName) { t.Value = tn }
			current = t.Value
		case *ast.ArrayTypeName:
			set = func(tn ast.TypeName) { t.Base = tn }
			current = t.Base
		default:
			return nil, l.inconsistent(l.decl.Pos, "declared type of %s does not match its resolved type", l.target)
		}
	}
	if _, ok := current.(*ast.MappingTypeName); !ok {
		return nil, l.inconsistent(l.decl.Pos, "declared type of %s is not a mapping", l.target)
	}
	return set, nil
}

func (l *location) inconsistent(pos ast.Position, format string, args ...any) error {
	return &errors.ConsistencyError{Message: fmt.Sprintf(format, args...), Position: pos}
}
