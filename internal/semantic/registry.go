package semantic

import (
	"sort"
	"strings"

	"mapshim/internal/ast"
	"mapshim/internal/types"
)

// Registry indexes the declarations of a set of source units: contracts by
// name, file-level structs and enums, and the contract owning each member
type Registry struct {
	contracts map[string]*ast.ContractDef
	order     []*ast.ContractDef
	structs   map[string]*ast.StructDef
	enums     map[string]*ast.EnumDef
	owners    map[ast.Node]*ast.ContractDef
	linear    map[*ast.ContractDef][]*ast.ContractDef

	duplicates []*ast.ContractDef
}

var (
	_ types.Lookup         = &Registry{}
	_ types.ConstantLookup = &Registry{}
)

func NewRegistry(units []*ast.SourceUnit) *Registry {
	r := &Registry{
		contracts: make(map[string]*ast.ContractDef),
		structs:   make(map[string]*ast.StructDef),
		enums:     make(map[string]*ast.EnumDef),
		owners:    make(map[ast.Node]*ast.ContractDef),
		linear:    make(map[*ast.ContractDef][]*ast.ContractDef),
	}

	for _, unit := range units {
		for _, item := range unit.Items {
			switch d := item.(type) {
			case *ast.ContractDef:
				if _, exists := r.contracts[d.Name.Value]; exists {
					r.duplicates = append(r.duplicates, d)
					continue
				}
				r.contracts[d.Name.Value] = d
				r.order = append(r.order, d)
				for _, member := range d.Items {
					r.owners[member] = d
				}
			case *ast.StructDef:
				r.structs[d.Name.Value] = d
			case *ast.EnumDef:
				r.enums[d.Name.Value] = d
			}
		}
	}
	return r
}

// Contract returns the contract with the given name, or nil
func (r *Registry) Contract(name string) *ast.ContractDef {
	return r.contracts[name]
}

// Contracts returns every contract in declaration order
func (r *Registry) Contracts() []*ast.ContractDef {
	return r.order
}

// ContractNames returns the names of all contracts in declaration order
func (r *Registry) ContractNames() []string {
	names := make([]string, 0, len(r.order))
	for _, c := range r.order {
		names = append(names, c.Name.Value)
	}
	return names
}

// Owner returns the contract a member declaration belongs to, or nil for
// file-level declarations
func (r *Registry) Owner(node ast.Node) *ast.ContractDef {
	return r.owners[node]
}

// Linearize returns c followed by its bases in C3 order, most derived
// first. Bases listed later in an "is" list are more derived.
func (r *Registry) Linearize(c *ast.ContractDef) []*ast.ContractDef {
	if l, ok := r.linear[c]; ok {
		return l
	}
	// guards against inheritance cycles
	r.linear[c] = []*ast.ContractDef{c}

	var seqs [][]*ast.ContractDef
	var direct []*ast.ContractDef
	for i := len(c.Bases) - 1; i >= 0; i-- {
		base := r.contracts[c.Bases[i].Name]
		if base == nil || base == c {
			continue
		}
		seqs = append(seqs, append([]*ast.ContractDef(nil), r.Linearize(base)...))
		direct = append(direct, base)
	}
	seqs = append(seqs, direct)

	out := append([]*ast.ContractDef{c}, mergeLinearizations(seqs)...)
	r.linear[c] = out
	return out
}

// mergeLinearizations is the C3 merge. An inconsistent hierarchy falls
// back to taking the first remaining head.
func mergeLinearizations(seqs [][]*ast.ContractDef) []*ast.ContractDef {
	var out []*ast.ContractDef
	inTail := func(c *ast.ContractDef) bool {
		for _, seq := range seqs {
			for _, other := range seq[1:] {
				if other == c {
					return true
				}
			}
		}
		return false
	}

	for {
		live := seqs[:0]
		for _, seq := range seqs {
			if len(seq) > 0 {
				live = append(live, seq)
			}
		}
		seqs = live
		if len(seqs) == 0 {
			return out
		}

		next := seqs[0][0]
		for _, seq := range seqs {
			if !inTail(seq[0]) {
				next = seq[0]
				break
			}
		}
		out = append(out, next)
		for i, seq := range seqs {
			if seq[0] == next {
				seqs[i] = seq[1:]
			}
		}
	}
}

// LookupType resolves a struct, enum or contract name. Qualified names
// ("C.S") look inside C; plain names look in the scope's linearization,
// then at file level, then among contracts.
func (r *Registry) LookupType(path string, scope *ast.ContractDef) (ast.Node, *ast.ContractDef, bool) {
	if contractName, name, ok := strings.Cut(path, "."); ok {
		c := r.contracts[contractName]
		if c == nil {
			return nil, nil, false
		}
		return r.memberType(name, c)
	}

	if scope != nil {
		if decl, owner, ok := r.memberType(path, scope); ok {
			return decl, owner, true
		}
	}
	if s, ok := r.structs[path]; ok {
		return s, nil, true
	}
	if e, ok := r.enums[path]; ok {
		return e, nil, true
	}
	if c, ok := r.contracts[path]; ok {
		return c, nil, true
	}
	return nil, nil, false
}

func (r *Registry) memberType(name string, scope *ast.ContractDef) (ast.Node, *ast.ContractDef, bool) {
	for _, c := range r.Linearize(scope) {
		for _, item := range c.Items {
			switch d := item.(type) {
			case *ast.StructDef:
				if d.Name.Value == name {
					return d, c, true
				}
			case *ast.EnumDef:
				if d.Name.Value == name {
					return d, c, true
				}
			}
		}
	}
	return nil, nil, false
}

// LookupConstant finds an initialized constant state variable. Qualified
// names ("C.N") look inside C; plain names look in the scope's
// linearization.
func (r *Registry) LookupConstant(path string, scope *ast.ContractDef) (*ast.VariableDecl, *ast.ContractDef, bool) {
	if contractName, name, ok := strings.Cut(path, "."); ok {
		scope, path = r.contracts[contractName], name
	}
	if scope == nil {
		return nil, nil, false
	}
	for _, c := range r.Linearize(scope) {
		for _, item := range c.Items {
			if v, ok := item.(*ast.VariableDecl); ok && v.Name.Value == path {
				if !v.Constant || v.Value == nil {
					return nil, nil, false
				}
				return v, c, true
			}
		}
	}
	return nil, nil, false
}

// TypeCandidates lists the type names visible from scope, for suggestions
func (r *Registry) TypeCandidates(scope *ast.ContractDef) []string {
	seen := make(map[string]bool)
	if scope != nil {
		for _, c := range r.Linearize(scope) {
			for _, item := range c.Items {
				switch d := item.(type) {
				case *ast.StructDef:
					seen[d.Name.Value] = true
				case *ast.EnumDef:
					seen[d.Name.Value] = true
				}
			}
		}
	}
	for name := range r.structs {
		seen[name] = true
	}
	for name := range r.enums {
		seen[name] = true
	}
	for name := range r.contracts {
		seen[name] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StateVariable finds a state variable declared in c or inherited by it
func (r *Registry) StateVariable(c *ast.ContractDef, name string) *ast.VariableDecl {
	for _, base := range r.Linearize(c) {
		for _, item := range base.Items {
			if v, ok := item.(*ast.VariableDecl); ok && v.Name.Value == name {
				return v
			}
		}
	}
	return nil
}

// StateVariableNames lists the state variables visible in c
func (r *Registry) StateVariableNames(c *ast.ContractDef) []string {
	var names []string
	for _, base := range r.Linearize(c) {
		for _, item := range base.Items {
			if v, ok := item.(*ast.VariableDecl); ok {
				names = append(names, v.Name.Value)
			}
		}
	}
	return names
}

// Function finds a function visible in c by name. Overloads are not
// distinguished; the most derived declaration wins.
func (r *Registry) Function(c *ast.ContractDef, name string) *ast.FunctionDef {
	for _, base := range r.Linearize(c) {
		for _, item := range base.Items {
			if f, ok := item.(*ast.FunctionDef); ok && f.Kind == ast.FunctionKindFunction && f.Name.Value == name {
				return f
			}
		}
	}
	return nil
}
