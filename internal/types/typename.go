package types

import (
	"mapshim/internal/ast"
	"mapshim/internal/builtins"
)

// ToTypeName builds a fresh type name node spelling t. Structs and enums
// are qualified with their contract so the name resolves from file level.
func ToTypeName(t Type) ast.TypeName {
	switch t := t.(type) {
	case *Elementary:
		if t.Kind == builtins.AddressPayable {
			return &ast.ElementaryTypeName{Name: "address", Payable: true}
		}
		return &ast.ElementaryTypeName{Name: t.Name}
	case *Array:
		arr := &ast.ArrayTypeName{Base: ToTypeName(t.Elem)}
		if t.Length != "" {
			arr.Length = &ast.Literal{Kind: ast.LiteralNumber, Value: t.Length}
		}
		return arr
	case *Mapping:
		return &ast.MappingTypeName{Key: ToTypeName(t.Key), Value: ToTypeName(t.Value)}
	case *Struct:
		return &ast.UserDefinedTypeName{Path: t.QualifiedName()}
	case *Enum:
		return &ast.UserDefinedTypeName{Path: t.QualifiedName()}
	case *Contract:
		return &ast.UserDefinedTypeName{Path: t.Name}
	default:
		panic("unreachable")
	}
}
