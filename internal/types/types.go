package types

import (
	"mapshim/internal/ast"
	"mapshim/internal/builtins"
)

// Type is the static type of a map key, map value or struct field. The
// variant is closed: Elementary, Array, Mapping, Struct, Enum and Contract.
type Type interface {
	// String returns the canonical signature
	String() string
	isType()
}

// Elementary covers bool, integers, address, fixed bytes, string and bytes
type Elementary struct {
	Kind builtins.BuiltinKind
	Name string // canonical spelling, e.g. "uint256", "address payable"
}

// Array is a fixed or dynamic array
type Array struct {
	Elem   Type
	Length string // "" for dynamic arrays
}

// Mapping is a (possibly nested) mapping
type Mapping struct {
	Key   Type
	Value Type
}

// Struct refers to a struct definition. Fields are filled in after the
// struct itself is registered so recursive structs resolve.
type Struct struct {
	Contract string // "" for file-level structs
	Name     string
	Def      *ast.StructDef
	Fields   []Field
}

type Field struct {
	Name string
	Type Type
}

type Enum struct {
	Contract string
	Name     string
	Def      *ast.EnumDef
}

// Contract refers to a contract, interface or library used as a type
type Contract struct {
	Name string
	Def  *ast.ContractDef
}

func (*Elementary) isType() {}
func (*Array) isType()      {}
func (*Mapping) isType()    {}
func (*Struct) isType()     {}
func (*Enum) isType()       {}
func (*Contract) isType()   {}

// QualifiedName returns "C.S" for contract-level structs and "S" otherwise
func (s *Struct) QualifiedName() string {
	return qualify(s.Contract, s.Name)
}

// Field returns the member type with the given name, or nil
func (s *Struct) Field(name string) Type {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	return nil
}

// FieldNames returns the member names in declaration order
func (s *Struct) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

func (e *Enum) QualifiedName() string {
	return qualify(e.Contract, e.Name)
}

func qualify(contract, name string) string {
	if contract == "" {
		return name
	}
	return contract + "." + name
}

// NewElementary builds an elementary type from a type name such as "uint"
// or "address payable"
func NewElementary(name string) *Elementary {
	if name == string(builtins.AddressPayable) {
		return &Elementary{Kind: builtins.AddressPayable, Name: name}
	}
	canonical := builtins.Canonical(name)
	kind, _ := builtins.Lookup(canonical)
	return &Elementary{Kind: kind, Name: canonical}
}

// MapLevels splits a nested mapping into its key types and the first
// non-mapping value type: mapping(K1 => mapping(K2 => V)) yields [K1, K2], V
func MapLevels(m *Mapping) ([]Type, Type) {
	var keys []Type
	var t Type = m
	for {
		mm, ok := t.(*Mapping)
		if !ok {
			return keys, t
		}
		keys = append(keys, mm.Key)
		t = mm.Value
	}
}
