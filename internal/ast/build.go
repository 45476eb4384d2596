package ast

// Constructors for generated code. Generated nodes carry no source
// position; they receive IDs when attached to a tracked tree.

func NewIdentifier(name string) *Identifier {
	return &Identifier{Name: name}
}

// NewBoundIdentifier returns an identifier already resolved to decl
func NewBoundIdentifier(name string, decl Node) *Identifier {
	return &Identifier{Name: name, Decl: decl}
}

func NewNumber(value string) *Literal {
	return &Literal{Kind: LiteralNumber, Value: value}
}

func NewMember(target Expr, member string) *MemberAccessExpr {
	return &MemberAccessExpr{Target: target, Member: member}
}

func NewIndex(target, index Expr) *IndexExpr {
	return &IndexExpr{Target: target, Index: index}
}

func NewCall(callee Expr, args ...Expr) *CallExpr {
	return &CallExpr{Callee: callee, Args: args}
}

// NewMemberCall builds "scope.fn(args)", e.g. a call into a library
func NewMemberCall(scope, fn string, args ...Expr) *CallExpr {
	return NewCall(NewMember(NewIdentifier(scope), fn), args...)
}

func NewBinary(op string, left, right Expr) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right}
}

func NewAssign(target Expr, value Expr) *AssignExpr {
	return &AssignExpr{Target: target, Operator: ASSIGN, Value: value}
}

func NewTuple(elements ...Expr) *TupleExpr {
	return &TupleExpr{Elements: elements}
}

// NewParam declares a function parameter. An empty location is omitted.
func NewParam(typ TypeName, location, name string) *VariableDecl {
	return &VariableDecl{Kind: VarKindParam, Type: typ, Location: location, Name: Ident{Value: name}}
}

// NewReturnParam declares an unnamed return variable
func NewReturnParam(typ TypeName, location string) *VariableDecl {
	return &VariableDecl{Kind: VarKindReturn, Type: typ, Location: location}
}

func NewLocal(typ TypeName, location, name string) *VariableDecl {
	return &VariableDecl{Kind: VarKindLocal, Type: typ, Location: location, Name: Ident{Value: name}}
}

func NewBlock(stmts ...Stmt) *Block {
	return &Block{Stmts: stmts}
}

func NewExprStmt(e Expr) *ExprStmt {
	return &ExprStmt{Expr: e}
}

func NewReturn(value Expr) *ReturnStmt {
	return &ReturnStmt{Value: value}
}

func NewVarDeclStmt(decl *VariableDecl, value Expr) *VarDeclStmt {
	return &VarDeclStmt{Decls: []*VariableDecl{decl}, Value: value}
}
