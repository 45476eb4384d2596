package ast

// Block represents a braced statement list, optionally unchecked
// Example: "{ x[k] = 1; }", "unchecked { counter++; }"
type Block struct {
	Pos       Position
	EndPos    Position
	Stmts     []Stmt
	Unchecked bool
	metadata  *Metadata
}

// VarDeclStmt represents local variable declarations, including tuple declarations
// Example: "uint a = x[0];", "(uint a, , bool ok) = f();"
type VarDeclStmt struct {
	Pos      Position
	EndPos   Position
	Decls    []*VariableDecl // nil entries are skipped tuple components
	Tuple    bool
	Value    Expr // nil if uninitialized
	metadata *Metadata
}

// ExprStmt represents expression statements
// Example: "x[k]++;"
type ExprStmt struct {
	Pos      Position
	EndPos   Position
	Expr     Expr
	metadata *Metadata
}

// IfStmt represents if statements with an optional else branch
type IfStmt struct {
	Pos      Position
	EndPos   Position
	Cond     Expr
	Then     Stmt
	Else     Stmt // nil if absent
	metadata *Metadata
}

// ForStmt represents for loops; every header part is optional
type ForStmt struct {
	Pos      Position
	EndPos   Position
	Init     Stmt
	Cond     Expr
	Post     Expr
	Body     Stmt
	metadata *Metadata
}

// WhileStmt represents while loops
type WhileStmt struct {
	Pos      Position
	EndPos   Position
	Cond     Expr
	Body     Stmt
	metadata *Metadata
}

// DoWhileStmt represents do-while loops
type DoWhileStmt struct {
	Pos      Position
	EndPos   Position
	Body     Stmt
	Cond     Expr
	metadata *Metadata
}

// ReturnStmt represents return statements
// Example: "return x[k];", "return;"
type ReturnStmt struct {
	Pos      Position
	EndPos   Position
	Value    Expr // nil if plain `return;`
	metadata *Metadata
}

// EmitStmt represents event emission
// Example: "emit Transfer(from, to, amount);"
type EmitStmt struct {
	Pos      Position
	EndPos   Position
	Call     Expr
	metadata *Metadata
}

// RevertStmt represents reverts with a custom error
// Example: "revert Unauthorized(msg.sender);"
type RevertStmt struct {
	Pos      Position
	EndPos   Position
	Call     Expr
	metadata *Metadata
}

type BreakStmt struct {
	Pos      Position
	EndPos   Position
	metadata *Metadata
}

type ContinueStmt struct {
	Pos      Position
	EndPos   Position
	metadata *Metadata
}

// PlaceholderStmt is the "_;" statement of modifier bodies
type PlaceholderStmt struct {
	Pos      Position
	EndPos   Position
	metadata *Metadata
}
