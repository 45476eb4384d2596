package ast

// Identifier represents a name used in an expression. Decl is filled by the
// binder with the declaration the name resolves to.
// Example: "balances", "msg", "owner"
type Identifier struct {
	Pos      Position
	EndPos   Position
	Name     string
	Decl     Node
	metadata *Metadata
}

type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralHexString
	LiteralBool
)

// Literal keeps the literal text exactly as written
// Example: "42", "1 ether", "0xff", "\"hi\"", "hex\"00ff\"", "true"
type Literal struct {
	Pos      Position
	EndPos   Position
	Kind     LiteralKind
	Value    string
	Unit     string // sub-denomination such as "ether" or "days"
	metadata *Metadata
}

// IndexExpr represents array and mapping indexing
// Example: "balances[owner]", "z[a][b]"
type IndexExpr struct {
	Pos      Position
	EndPos   Position
	Target   Expr
	Index    Expr // nil in type expressions such as "uint[]"
	metadata *Metadata
}

// MemberAccessExpr represents member access
// Example: "s.balances", "msg.sender", "arr.length"
type MemberAccessExpr struct {
	Pos      Position
	EndPos   Position
	Target   Expr
	Member   string
	metadata *Metadata
}

// NamedArg is a "name: value" pair used by call options and named arguments
type NamedArg struct {
	Name  string
	Value Expr
}

// CallExpr represents calls, type conversions and struct constructors
// Example: "f(a, b)", "uint8(x)", "S({a: 1})", "to.call{value: 1}(\"\")"
type CallExpr struct {
	Pos      Position
	EndPos   Position
	Callee   Expr
	Options  []NamedArg
	Args     []Expr
	ArgNames []string // non-nil for "f({a: 1, b: 2})"
	metadata *Metadata
}

// BinaryExpr represents binary operations
// Example: "a + b", "x[0] == 1"
type BinaryExpr struct {
	Pos      Position
	EndPos   Position
	Op       string
	Left     Expr
	Right    Expr
	metadata *Metadata
}

// UnaryExpr represents prefix and postfix unary operations including delete
// Example: "!ok", "-a", "x[k]++", "--x[k]", "delete x[k]"
type UnaryExpr struct {
	Pos      Position
	EndPos   Position
	Op       string
	Value    Expr
	Postfix  bool
	metadata *Metadata
}

// AssignExpr represents plain and compound assignments
// Example: "x[k] = 1", "x[k] += v"
type AssignExpr struct {
	Pos      Position
	EndPos   Position
	Target   Expr
	Operator AssignOperator
	Value    Expr
	metadata *Metadata
}

// ConditionalExpr represents the ternary operator
// Example: "ok ? a : b"
type ConditionalExpr struct {
	Pos      Position
	EndPos   Position
	Cond     Expr
	Then     Expr
	Else     Expr
	metadata *Metadata
}

// TupleExpr represents tuples; nil elements are omitted components
// Example: "(a, b)", "(, b)"
type TupleExpr struct {
	Pos      Position
	EndPos   Position
	Elements []Expr
	metadata *Metadata
}

// ParenExpr represents parenthesized expressions
// Example: "(a + b)"
type ParenExpr struct {
	Pos      Position
	EndPos   Position
	Value    Expr
	metadata *Metadata
}

// ArrayLiteralExpr represents inline arrays
// Example: "[1, 2, 3]"
type ArrayLiteralExpr struct {
	Pos      Position
	EndPos   Position
	Elements []Expr
	metadata *Metadata
}

// NewExpr represents contract creation and dynamic memory array allocation
// Example: "new Token()", "new uint[](n)"
type NewExpr struct {
	Pos      Position
	EndPos   Position
	Type     TypeName
	metadata *Metadata
}

// ElementaryTypeExpr is an elementary type name in expression position
// Example: the "uint8" in "uint8(x)", "address" in "address(this)"
type ElementaryTypeExpr struct {
	Pos      Position
	EndPos   Position
	Type     *ElementaryTypeName
	metadata *Metadata
}

// Unparen strips any number of enclosing parentheses
func Unparen(e Expr) Expr {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}
		e = p.Value
	}
}
