package semantic

import (
	"sort"

	"mapshim/internal/ast"
)

type SymbolKind int

const (
	SymbolContract SymbolKind = iota
	SymbolStruct
	SymbolEnum
	SymbolEvent
	SymbolError
	SymbolModifier
	SymbolFunction
	SymbolStateVariable
	SymbolParameter
	SymbolVariable
	SymbolGlobal
)

var symbolKindNames = [...]string{
	SymbolContract:      "contract",
	SymbolStruct:        "struct",
	SymbolEnum:          "enum",
	SymbolEvent:         "event",
	SymbolError:         "error",
	SymbolModifier:      "modifier",
	SymbolFunction:      "function",
	SymbolStateVariable: "state variable",
	SymbolParameter:     "parameter",
	SymbolVariable:      "variable",
	SymbolGlobal:        "global",
}

func (k SymbolKind) String() string {
	if int(k) < len(symbolKindNames) {
		return symbolKindNames[k]
	}
	return "symbol"
}

type Symbol struct {
	Name     string
	Kind     SymbolKind
	Node     ast.Node // nil for globals
	Position ast.Position
}

type SymbolTable struct {
	symbols map[string]*Symbol
	parent  *SymbolTable
}

func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]*Symbol),
		parent:  parent,
	}
}

func (st *SymbolTable) Define(name string, kind SymbolKind, node ast.Node, pos ast.Position) *Symbol {
	symbol := &Symbol{
		Name:     name,
		Kind:     kind,
		Node:     node,
		Position: pos,
	}
	st.symbols[name] = symbol
	return symbol
}

func (st *SymbolTable) Lookup(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	if st.parent != nil {
		return st.parent.Lookup(name)
	}
	return nil
}

func (st *SymbolTable) LookupLocal(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	return nil
}

// Names returns every name visible from this scope, sorted
func (st *SymbolTable) Names() []string {
	seen := make(map[string]bool)
	for scope := st; scope != nil; scope = scope.parent {
		for name := range scope.symbols {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
