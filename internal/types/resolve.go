package types

import (
	"golang.org/x/xerrors"

	"mapshim/internal/ast"
	"mapshim/internal/builtins"
	"mapshim/internal/errors"
)

// Lookup finds user-defined type declarations. scope is the contract the
// name appears in, or nil at file level. The returned owner is the contract
// declaring the type, or nil for file-level declarations.
type Lookup interface {
	LookupType(path string, scope *ast.ContractDef) (decl ast.Node, owner *ast.ContractDef, ok bool)
	TypeCandidates(scope *ast.ContractDef) []string
}

// Resolver converts type names into types. Struct types are memoized per
// definition, so every reference to a struct shares one *Struct.
type Resolver struct {
	lookup  Lookup
	structs map[*ast.StructDef]*Struct
}

func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{
		lookup:  lookup,
		structs: make(map[*ast.StructDef]*Struct),
	}
}

// Resolve converts a type name appearing in scope
func (r *Resolver) Resolve(tn ast.TypeName, scope *ast.ContractDef) (Type, error) {
	switch tn := tn.(type) {
	case *ast.ElementaryTypeName:
		if tn.Payable {
			return NewElementary(string(builtins.AddressPayable)), nil
		}
		if !builtins.IsBuiltinType(tn.Name) {
			return nil, errors.UndefinedType(tn.Name, tn.Pos, nil)
		}
		return NewElementary(tn.Name), nil

	case *ast.UserDefinedTypeName:
		decl, owner, ok := r.lookup.LookupType(tn.Path, scope)
		if !ok {
			return nil, errors.UndefinedType(tn.Path, tn.Pos, r.lookup.TypeCandidates(scope))
		}
		return r.declType(decl, owner)

	case *ast.ArrayTypeName:
		elem, err := r.Resolve(tn.Base, scope)
		if err != nil {
			return nil, err
		}
		length := ""
		if tn.Length != nil {
			if length, err = r.arrayLength(tn, scope); err != nil {
				return nil, err
			}
		}
		return &Array{Elem: elem, Length: length}, nil

	case *ast.MappingTypeName:
		key, err := r.Resolve(tn.Key, scope)
		if err != nil {
			return nil, err
		}
		value, err := r.Resolve(tn.Value, scope)
		if err != nil {
			return nil, err
		}
		return &Mapping{Key: key, Value: value}, nil

	default:
		return nil, xerrors.Errorf("unsupported type name %T", tn)
	}
}

// StructType returns the memoized type of a struct definition
func (r *Resolver) StructType(def *ast.StructDef, owner *ast.ContractDef) (*Struct, error) {
	if s, ok := r.structs[def]; ok {
		return s, nil
	}

	s := &Struct{Name: def.Name.Value, Def: def}
	if owner != nil {
		s.Contract = owner.Name.Value
	}
	r.structs[def] = s

	for _, m := range def.Members {
		ft, err := r.Resolve(m.Type, owner)
		if err != nil {
			delete(r.structs, def)
			return nil, xerrors.Errorf("struct %s member %s: %w", s.QualifiedName(), m.Name.Value, err)
		}
		s.Fields = append(s.Fields, Field{Name: m.Name.Value, Type: ft})
	}
	return s, nil
}

func (r *Resolver) declType(decl ast.Node, owner *ast.ContractDef) (Type, error) {
	switch decl := decl.(type) {
	case *ast.StructDef:
		return r.StructType(decl, owner)
	case *ast.EnumDef:
		e := &Enum{Name: decl.Name.Value, Def: decl}
		if owner != nil {
			e.Contract = owner.Name.Value
		}
		return e, nil
	case *ast.ContractDef:
		return &Contract{Name: decl.Name.Value, Def: decl}, nil
	default:
		return nil, xerrors.Errorf("%s does not name a type", decl.NodeType())
	}
}
