package ast

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Ident represents any declared name: contracts, structs, functions, variables
// Example: "Token", "balances", "transfer"
type Ident struct {
	Pos      Position
	EndPos   Position
	Value    string
	metadata *Metadata
}

// SourceUnit represents one Solidity source file
// Example: "pragma solidity ^0.8.0; contract C { ... }"
type SourceUnit struct {
	Pos      Position
	EndPos   Position
	Path     string
	Items    []SourceUnitItem
	metadata *Metadata
}

// PragmaDirective keeps the pragma text verbatim
// Example: "pragma solidity ^0.8.0;"
type PragmaDirective struct {
	Pos      Position
	EndPos   Position
	Text     string // everything between "pragma" and ";"
	metadata *Metadata
}

// ImportDirective keeps the import text verbatim
// Example: "import \"./Lib.sol\";"
type ImportDirective struct {
	Pos      Position
	EndPos   Position
	Text     string
	metadata *Metadata
}

type ContractKind int

const (
	ContractKindContract ContractKind = iota
	ContractKindAbstract
	ContractKindInterface
	ContractKindLibrary
)

func (k ContractKind) String() string {
	switch k {
	case ContractKindAbstract:
		return "abstract contract"
	case ContractKindInterface:
		return "interface"
	case ContractKindLibrary:
		return "library"
	default:
		return "contract"
	}
}

// ContractDef represents contracts, interfaces and libraries
// Example: "contract Token is Ownable { mapping(address => uint) balances; }"
type ContractDef struct {
	Pos      Position
	EndPos   Position
	Kind     ContractKind
	Name     Ident
	Bases    []*InheritanceSpecifier
	Items    []ContractItem
	metadata *Metadata
}

// InheritanceSpecifier represents one entry of an "is" list
// Example: "Ownable", "ERC20(\"Token\", \"TKN\")"
type InheritanceSpecifier struct {
	Pos      Position
	EndPos   Position
	Name     string
	Args     []Expr
	HasArgs  bool
	metadata *Metadata
}

// StructDef represents struct declarations
// Example: "struct Account { uint balance; mapping(address => uint) allowance; }"
type StructDef struct {
	Pos      Position
	EndPos   Position
	Name     Ident
	Members  []*VariableDecl
	metadata *Metadata
}

// EnumDef represents enum declarations
// Example: "enum State { Open, Closed }"
type EnumDef struct {
	Pos      Position
	EndPos   Position
	Name     Ident
	Values   []Ident
	metadata *Metadata
}

// EventDef represents event declarations
// Example: "event Transfer(address indexed from, address indexed to, uint value);"
type EventDef struct {
	Pos       Position
	EndPos    Position
	Name      Ident
	Params    []*VariableDecl
	Anonymous bool
	metadata  *Metadata
}

// ErrorDef represents custom error declarations
// Example: "error Unauthorized(address caller);"
type ErrorDef struct {
	Pos      Position
	EndPos   Position
	Name     Ident
	Params   []*VariableDecl
	metadata *Metadata
}

// UsingForDirective represents "using L for T;"
type UsingForDirective struct {
	Pos      Position
	EndPos   Position
	Library  string
	Type     TypeName // nil for "*"
	metadata *Metadata
}

// ModifierDef represents modifier declarations
// Example: "modifier onlyOwner() { require(msg.sender == owner); _; }"
type ModifierDef struct {
	Pos      Position
	EndPos   Position
	Name     Ident
	Params   []*VariableDecl
	Virtual  bool
	Override bool
	Body     *Block
	metadata *Metadata
}

type FunctionKind int

const (
	FunctionKindFunction FunctionKind = iota
	FunctionKindConstructor
	FunctionKindFallback
	FunctionKindReceive
)

// FunctionDef represents functions, constructors, fallback and receive functions
// Example: "function balanceOf(address a) public view returns (uint) { return balances[a]; }"
type FunctionDef struct {
	Pos        Position
	EndPos     Position
	Kind       FunctionKind
	Name       Ident
	Params     []*VariableDecl
	Returns    []*VariableDecl
	Visibility string // "", "public", "private", "internal", "external"
	Mutability string // "", "pure", "view", "payable"
	Virtual    bool
	Override   bool
	Modifiers  []*ModifierInvocation
	Body       *Block // nil for declarations without implementation
	metadata   *Metadata
}

// ModifierInvocation represents a modifier or base constructor call in a function header
// Example: "onlyOwner", "Base(1)"
type ModifierInvocation struct {
	Pos      Position
	EndPos   Position
	Name     string
	Args     []Expr
	HasArgs  bool
	metadata *Metadata
}

type VarKind int

const (
	VarKindState VarKind = iota
	VarKindMember
	VarKindParam
	VarKindReturn
	VarKindLocal
	VarKindEventParam
)

// VariableDecl represents every variable declaration: state variables, struct
// members, parameters, return variables and locals
// Example: "mapping(address => uint) public balances", "uint amount", "S storage s"
type VariableDecl struct {
	Pos        Position
	EndPos     Position
	Kind       VarKind
	Type       TypeName
	Name       Ident // empty Value for unnamed parameters
	Visibility string
	Constant   bool
	Immutable  bool
	Override   bool
	Indexed    bool
	Location   string // "", "storage", "memory", "calldata"
	Value      Expr   // state variable initializer
	metadata   *Metadata
}

// FindStruct returns the struct declared directly in the contract, or nil
func (c *ContractDef) FindStruct(name string) *StructDef {
	for _, item := range c.Items {
		if s, ok := item.(*StructDef); ok && s.Name.Value == name {
			return s
		}
	}
	return nil
}

// FindMember returns the member declaration with the given name, or nil
func (s *StructDef) FindMember(name string) *VariableDecl {
	for _, m := range s.Members {
		if m.Name.Value == name {
			return m
		}
	}
	return nil
}

// Contracts returns the contract definitions of the unit in declaration order
func (u *SourceUnit) Contracts() []*ContractDef {
	var out []*ContractDef
	for _, item := range u.Items {
		if c, ok := item.(*ContractDef); ok {
			out = append(out, c)
		}
	}
	return out
}
