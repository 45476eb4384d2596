package ast

// Children returns the direct child nodes of n in source order
func Children(node Node) []Node {
	var out []Node
	add := func(children ...Node) {
		for _, c := range children {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	addExprs := func(exprs []Expr) {
		for _, e := range exprs {
			if e != nil {
				out = append(out, e)
			}
		}
	}
	addVars := func(vars []*VariableDecl) {
		for _, v := range vars {
			if v != nil {
				out = append(out, v)
			}
		}
	}

	switch n := node.(type) {
	case *SourceUnit:
		for _, item := range n.Items {
			add(item)
		}
	case *ContractDef:
		add(&n.Name)
		for _, b := range n.Bases {
			add(b)
		}
		for _, item := range n.Items {
			add(item)
		}
	case *InheritanceSpecifier:
		addExprs(n.Args)
	case *StructDef:
		add(&n.Name)
		addVars(n.Members)
	case *EnumDef:
		add(&n.Name)
		for i := range n.Values {
			add(&n.Values[i])
		}
	case *EventDef:
		add(&n.Name)
		addVars(n.Params)
	case *ErrorDef:
		add(&n.Name)
		addVars(n.Params)
	case *UsingForDirective:
		if n.Type != nil {
			add(n.Type)
		}
	case *ModifierDef:
		add(&n.Name)
		addVars(n.Params)
		if n.Body != nil {
			add(n.Body)
		}
	case *FunctionDef:
		add(&n.Name)
		addVars(n.Params)
		addVars(n.Returns)
		for _, m := range n.Modifiers {
			add(m)
		}
		if n.Body != nil {
			add(n.Body)
		}
	case *ModifierInvocation:
		addExprs(n.Args)
	case *VariableDecl:
		if n.Type != nil {
			add(n.Type)
		}
		add(&n.Name)
		if n.Value != nil {
			add(n.Value)
		}

	case *ArrayTypeName:
		add(n.Base)
		if n.Length != nil {
			add(n.Length)
		}
	case *MappingTypeName:
		add(n.Key, n.Value)

	case *Block:
		for _, s := range n.Stmts {
			add(s)
		}
	case *VarDeclStmt:
		addVars(n.Decls)
		if n.Value != nil {
			add(n.Value)
		}
	case *ExprStmt:
		add(n.Expr)
	case *IfStmt:
		add(n.Cond, n.Then)
		if n.Else != nil {
			add(n.Else)
		}
	case *ForStmt:
		if n.Init != nil {
			add(n.Init)
		}
		if n.Cond != nil {
			add(n.Cond)
		}
		if n.Post != nil {
			add(n.Post)
		}
		add(n.Body)
	case *WhileStmt:
		add(n.Cond, n.Body)
	case *DoWhileStmt:
		add(n.Body, n.Cond)
	case *ReturnStmt:
		if n.Value != nil {
			add(n.Value)
		}
	case *EmitStmt:
		add(n.Call)
	case *RevertStmt:
		add(n.Call)

	case *IndexExpr:
		add(n.Target)
		if n.Index != nil {
			add(n.Index)
		}
	case *MemberAccessExpr:
		add(n.Target)
	case *CallExpr:
		add(n.Callee)
		for _, o := range n.Options {
			add(o.Value)
		}
		addExprs(n.Args)
	case *BinaryExpr:
		add(n.Left, n.Right)
	case *UnaryExpr:
		add(n.Value)
	case *AssignExpr:
		add(n.Target, n.Value)
	case *ConditionalExpr:
		add(n.Cond, n.Then, n.Else)
	case *TupleExpr:
		addExprs(n.Elements)
	case *ParenExpr:
		add(n.Value)
	case *ArrayLiteralExpr:
		addExprs(n.Elements)
	case *NewExpr:
		add(n.Type)
	case *ElementaryTypeExpr:
		if n.Type != nil {
			add(n.Type)
		}
	}
	return out
}

// Inspect traverses the tree depth-first, calling f for every node. Children
// of a node are skipped when f returns false.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, c := range Children(node) {
		Inspect(c, f)
	}
}
