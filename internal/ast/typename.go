package ast

// ElementaryTypeName represents built-in types
// Example: "uint", "uint256", "address payable", "bytes32", "string"
type ElementaryTypeName struct {
	Pos      Position
	EndPos   Position
	Name     string
	Payable  bool
	metadata *Metadata
}

// UserDefinedTypeName represents struct, enum and contract types by (possibly qualified) name
// Example: "Account", "Token.Account"
type UserDefinedTypeName struct {
	Pos      Position
	EndPos   Position
	Path     string
	metadata *Metadata
}

// ArrayTypeName represents fixed and dynamic arrays
// Example: "uint[]", "bytes32[4]"
type ArrayTypeName struct {
	Pos      Position
	EndPos   Position
	Base     TypeName
	Length   Expr // nil for dynamic arrays
	metadata *Metadata
}

// MappingTypeName represents mapping types
// Example: "mapping(address => uint)", "mapping(uint => mapping(uint => bool))"
type MappingTypeName struct {
	Pos      Position
	EndPos   Position
	Key      TypeName
	Value    TypeName
	metadata *Metadata
}
