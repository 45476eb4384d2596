package stdlib

import (
	"sort"

	"mapshim/internal/builtins"
)

// ModuleDefinition defines a global namespace such as msg or abi
type ModuleDefinition struct {
	Name      string                        // Namespace name (e.g., "msg", "block")
	Members   map[string]*TypeRef           // Value members (e.g., msg.sender)
	Functions map[string]FunctionDefinition // Callable members (e.g., abi.encode)
}

// FunctionDefinition defines a global function signature
type FunctionDefinition struct {
	Name       string                // Function name (e.g., "keccak256", "require")
	Parameters []ParameterDefinition // Function parameters
	ReturnType *TypeRef              // Return type (nil if void or polymorphic)
	Variadic   bool                  // Accepts any number of arguments (abi.encode)
}

// ParameterDefinition defines a function parameter
type ParameterDefinition struct {
	Name string   // Parameter name
	Type *TypeRef // Parameter type
}

// TypeRef names an elementary type
type TypeRef struct {
	Name string // Elementary type name (e.g., "address", "uint256")
}

func NewTypeRef(name string) *TypeRef {
	return &TypeRef{Name: builtins.Canonical(name)}
}

// Built-in type references using actual builtins.BuiltinKind constants
func AddressType() *TypeRef {
	return &TypeRef{Name: string(builtins.Address)}
}

func AddressPayableType() *TypeRef {
	return &TypeRef{Name: string(builtins.AddressPayable)}
}

func BoolType() *TypeRef {
	return &TypeRef{Name: string(builtins.Bool)}
}

func Uint256Type() *TypeRef {
	return NewTypeRef("uint256")
}

func Bytes32Type() *TypeRef {
	return NewTypeRef("bytes32")
}

func Bytes4Type() *TypeRef {
	return NewTypeRef("bytes4")
}

func BytesType() *TypeRef {
	return &TypeRef{Name: string(builtins.Bytes)}
}

func StringType() *TypeRef {
	return &TypeRef{Name: string(builtins.String)}
}

// Helper function for creating function definitions
func NewFunction(name string, returnType *TypeRef, params ...ParameterDefinition) FunctionDefinition {
	return FunctionDefinition{
		Name:       name,
		Parameters: params,
		ReturnType: returnType,
	}
}

func NewVariadicFunction(name string, returnType *TypeRef) FunctionDefinition {
	return FunctionDefinition{
		Name:       name,
		ReturnType: returnType,
		Variadic:   true,
	}
}

// Helper function for creating parameters
func NewParam(name string, typeRef *TypeRef) ParameterDefinition {
	return ParameterDefinition{Name: name, Type: typeRef}
}

// GetGlobalModules returns the namespaces every contract can reference
func GetGlobalModules() map[string]*ModuleDefinition {
	return map[string]*ModuleDefinition{
		"msg": {
			Name: "msg",
			Members: map[string]*TypeRef{
				"sender": AddressType(),
				"value":  Uint256Type(),
				"data":   BytesType(),
				"sig":    Bytes4Type(),
			},
		},
		"block": {
			Name: "block",
			Members: map[string]*TypeRef{
				"basefee":    Uint256Type(),
				"chainid":    Uint256Type(),
				"coinbase":   AddressPayableType(),
				"difficulty": Uint256Type(),
				"gaslimit":   Uint256Type(),
				"number":     Uint256Type(),
				"prevrandao": Uint256Type(),
				"timestamp":  Uint256Type(),
			},
		},
		"tx": {
			Name: "tx",
			Members: map[string]*TypeRef{
				"gasprice": Uint256Type(),
				"origin":   AddressType(),
			},
		},
		"abi": {
			Name: "abi",
			Functions: map[string]FunctionDefinition{
				"encode":              NewVariadicFunction("encode", BytesType()),
				"encodePacked":        NewVariadicFunction("encodePacked", BytesType()),
				"encodeWithSelector":  NewVariadicFunction("encodeWithSelector", BytesType()),
				"encodeWithSignature": NewVariadicFunction("encodeWithSignature", BytesType()),
				"encodeCall":          NewVariadicFunction("encodeCall", BytesType()),
				"decode":              NewVariadicFunction("decode", nil),
			},
		},
	}
}

// GetGlobalFunctions returns the free functions of the global namespace
func GetGlobalFunctions() map[string]FunctionDefinition {
	return map[string]FunctionDefinition{
		"require": NewVariadicFunction("require", nil),
		"assert":  NewFunction("assert", nil, NewParam("condition", BoolType())),
		"revert":  NewVariadicFunction("revert", nil),
		"keccak256": NewFunction("keccak256", Bytes32Type(),
			NewParam("data", BytesType())),
		"sha256": NewFunction("sha256", Bytes32Type(),
			NewParam("data", BytesType())),
		"ripemd160": NewFunction("ripemd160", NewTypeRef("bytes20"),
			NewParam("data", BytesType())),
		"ecrecover": NewFunction("ecrecover", AddressType(),
			NewParam("hash", Bytes32Type()),
			NewParam("v", NewTypeRef("uint8")),
			NewParam("r", Bytes32Type()),
			NewParam("s", Bytes32Type())),
		"addmod": NewFunction("addmod", Uint256Type(),
			NewParam("x", Uint256Type()),
			NewParam("y", Uint256Type()),
			NewParam("k", Uint256Type())),
		"mulmod": NewFunction("mulmod", Uint256Type(),
			NewParam("x", Uint256Type()),
			NewParam("y", Uint256Type()),
			NewParam("k", Uint256Type())),
		"gasleft":   NewFunction("gasleft", Uint256Type()),
		"blockhash": NewFunction("blockhash", Bytes32Type(), NewParam("blockNumber", Uint256Type())),
		"selfdestruct": NewFunction("selfdestruct", nil,
			NewParam("recipient", AddressPayableType())),
		"payable": NewFunction("payable", AddressPayableType(),
			NewParam("account", AddressType())),
		"type": NewVariadicFunction("type", nil),
	}
}

// GetGlobalValues returns global names that denote values rather than namespaces
func GetGlobalValues() map[string]*TypeRef {
	return map[string]*TypeRef{
		"now":   Uint256Type(),
		"this":  nil, // typed by the enclosing contract
		"super": nil,
	}
}

// IsGlobal checks if a name is predeclared by the language
func IsGlobal(name string) bool {
	if _, ok := GetGlobalModules()[name]; ok {
		return true
	}
	if _, ok := GetGlobalFunctions()[name]; ok {
		return true
	}
	_, ok := GetGlobalValues()[name]
	return ok
}

// GlobalNames returns every predeclared name in sorted order
func GlobalNames() []string {
	var names []string
	for name := range GetGlobalModules() {
		names = append(names, name)
	}
	for name := range GetGlobalFunctions() {
		names = append(names, name)
	}
	for name := range GetGlobalValues() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetModuleDefinition returns the definition for a global namespace
func GetModuleDefinition(name string) *ModuleDefinition {
	return GetGlobalModules()[name]
}
