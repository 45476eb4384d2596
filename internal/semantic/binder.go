package semantic

import (
	"mapshim/internal/ast"
	"mapshim/internal/stdlib"
)

// Binder resolves every identifier in expression position to its
// declaration and stores it in Identifier.Decl. Names that resolve to
// Solidity globals or to nothing keep a nil Decl.
type Binder struct {
	registry   *Registry
	global     *SymbolTable
	unresolved []*ast.Identifier
}

func NewBinder(registry *Registry) *Binder {
	return &Binder{registry: registry}
}

// Unresolved returns the identifiers no scope declares
func (b *Binder) Unresolved() []*ast.Identifier {
	return b.unresolved
}

func (b *Binder) Bind(units []*ast.SourceUnit) {
	b.global = NewSymbolTable(nil)
	for _, name := range stdlib.GlobalNames() {
		b.global.Define(name, SymbolGlobal, nil, ast.Position{})
	}
	for _, unit := range units {
		for _, item := range unit.Items {
			switch d := item.(type) {
			case *ast.ContractDef:
				b.global.Define(d.Name.Value, SymbolContract, d, d.Pos)
			case *ast.StructDef:
				b.global.Define(d.Name.Value, SymbolStruct, d, d.Pos)
			case *ast.EnumDef:
				b.global.Define(d.Name.Value, SymbolEnum, d, d.Pos)
			case *ast.ErrorDef:
				b.global.Define(d.Name.Value, SymbolError, d, d.Pos)
			}
		}
	}

	for _, unit := range units {
		for _, c := range unit.Contracts() {
			b.bindContract(c)
		}
	}
}

func (b *Binder) bindContract(c *ast.ContractDef) {
	scope := NewSymbolTable(b.global)

	// bases first so derived declarations shadow inherited ones
	chain := b.registry.Linearize(c)
	if len(chain) == 0 || chain[0] != c {
		chain = []*ast.ContractDef{c}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, item := range chain[i].Items {
			defineMember(scope, item)
		}
	}

	for _, base := range c.Bases {
		b.bindExprs(base.Args, scope)
	}

	for _, item := range c.Items {
		switch d := item.(type) {
		case *ast.VariableDecl:
			b.bindTypeName(d.Type, scope)
			if d.Value != nil {
				b.bindExpr(d.Value, scope)
			}
		case *ast.FunctionDef:
			b.bindFunction(d, scope)
		case *ast.ModifierDef:
			fnScope := NewSymbolTable(scope)
			b.defineParams(fnScope, d.Params)
			if d.Body != nil {
				b.bindBlock(d.Body, fnScope)
			}
		}
	}
}

func defineMember(scope *SymbolTable, item ast.ContractItem) {
	switch d := item.(type) {
	case *ast.VariableDecl:
		scope.Define(d.Name.Value, SymbolStateVariable, d, d.Pos)
	case *ast.FunctionDef:
		if d.Kind == ast.FunctionKindFunction {
			scope.Define(d.Name.Value, SymbolFunction, d, d.Pos)
		}
	case *ast.ModifierDef:
		scope.Define(d.Name.Value, SymbolModifier, d, d.Pos)
	case *ast.EventDef:
		scope.Define(d.Name.Value, SymbolEvent, d, d.Pos)
	case *ast.ErrorDef:
		scope.Define(d.Name.Value, SymbolError, d, d.Pos)
	case *ast.StructDef:
		scope.Define(d.Name.Value, SymbolStruct, d, d.Pos)
	case *ast.EnumDef:
		scope.Define(d.Name.Value, SymbolEnum, d, d.Pos)
	}
}

func (b *Binder) bindFunction(f *ast.FunctionDef, contractScope *SymbolTable) {
	scope := NewSymbolTable(contractScope)
	b.defineParams(scope, f.Params)
	b.defineParams(scope, f.Returns)

	for _, m := range f.Modifiers {
		b.bindExprs(m.Args, scope)
	}
	if f.Body != nil {
		b.bindBlock(f.Body, scope)
	}
}

func (b *Binder) defineParams(scope *SymbolTable, params []*ast.VariableDecl) {
	for _, p := range params {
		b.bindTypeName(p.Type, scope)
		if p.Name.Value != "" {
			scope.Define(p.Name.Value, SymbolParameter, p, p.Pos)
		}
	}
}

func (b *Binder) bindBlock(block *ast.Block, parent *SymbolTable) {
	scope := NewSymbolTable(parent)
	for _, stmt := range block.Stmts {
		b.bindStmt(stmt, scope)
	}
}

func (b *Binder) bindStmt(stmt ast.Stmt, scope *SymbolTable) {
	switch s := stmt.(type) {
	case *ast.Block:
		b.bindBlock(s, scope)
	case *ast.VarDeclStmt:
		if s.Value != nil {
			b.bindExpr(s.Value, scope)
		}
		for _, d := range s.Decls {
			if d == nil {
				continue
			}
			b.bindTypeName(d.Type, scope)
			scope.Define(d.Name.Value, SymbolVariable, d, d.Pos)
		}
	case *ast.ExprStmt:
		b.bindExpr(s.Expr, scope)
	case *ast.IfStmt:
		b.bindExpr(s.Cond, scope)
		b.bindNested(s.Then, scope)
		if s.Else != nil {
			b.bindNested(s.Else, scope)
		}
	case *ast.ForStmt:
		loop := NewSymbolTable(scope)
		if s.Init != nil {
			b.bindStmt(s.Init, loop)
		}
		if s.Cond != nil {
			b.bindExpr(s.Cond, loop)
		}
		if s.Post != nil {
			b.bindExpr(s.Post, loop)
		}
		b.bindNested(s.Body, loop)
	case *ast.WhileStmt:
		b.bindExpr(s.Cond, scope)
		b.bindNested(s.Body, scope)
	case *ast.DoWhileStmt:
		b.bindNested(s.Body, scope)
		b.bindExpr(s.Cond, scope)
	case *ast.ReturnStmt:
		if s.Value != nil {
			b.bindExpr(s.Value, scope)
		}
	case *ast.EmitStmt:
		b.bindExpr(s.Call, scope)
	case *ast.RevertStmt:
		b.bindExpr(s.Call, scope)
	}
}

// bindNested binds a branch or loop body, which opens its own scope even
// when it is a single statement
func (b *Binder) bindNested(stmt ast.Stmt, scope *SymbolTable) {
	b.bindStmt(stmt, NewSymbolTable(scope))
}

func (b *Binder) bindExprs(exprs []ast.Expr, scope *SymbolTable) {
	for _, e := range exprs {
		if e != nil {
			b.bindExpr(e, scope)
		}
	}
}

func (b *Binder) bindExpr(expr ast.Expr, scope *SymbolTable) {
	switch e := expr.(type) {
	case *ast.Identifier:
		sym := scope.Lookup(e.Name)
		if sym == nil {
			b.unresolved = append(b.unresolved, e)
			return
		}
		e.Decl = sym.Node
	case *ast.MemberAccessExpr:
		// members resolve against the target's type, not the scope
		b.bindExpr(e.Target, scope)
	case *ast.IndexExpr:
		b.bindExpr(e.Target, scope)
		if e.Index != nil {
			b.bindExpr(e.Index, scope)
		}
	case *ast.CallExpr:
		b.bindExpr(e.Callee, scope)
		for _, o := range e.Options {
			b.bindExpr(o.Value, scope)
		}
		b.bindExprs(e.Args, scope)
	case *ast.BinaryExpr:
		b.bindExpr(e.Left, scope)
		b.bindExpr(e.Right, scope)
	case *ast.UnaryExpr:
		b.bindExpr(e.Value, scope)
	case *ast.AssignExpr:
		b.bindExpr(e.Target, scope)
		b.bindExpr(e.Value, scope)
	case *ast.ConditionalExpr:
		b.bindExpr(e.Cond, scope)
		b.bindExpr(e.Then, scope)
		b.bindExpr(e.Else, scope)
	case *ast.TupleExpr:
		b.bindExprs(e.Elements, scope)
	case *ast.ParenExpr:
		b.bindExpr(e.Value, scope)
	case *ast.ArrayLiteralExpr:
		b.bindExprs(e.Elements, scope)
	case *ast.NewExpr:
		b.bindTypeName(e.Type, scope)
	}
}

// bindTypeName binds identifiers in array length expressions
func (b *Binder) bindTypeName(tn ast.TypeName, scope *SymbolTable) {
	switch t := tn.(type) {
	case *ast.ArrayTypeName:
		b.bindTypeName(t.Base, scope)
		if t.Length != nil {
			b.bindExpr(t.Length, scope)
		}
	case *ast.MappingTypeName:
		b.bindTypeName(t.Key, scope)
		b.bindTypeName(t.Value, scope)
	}
}
