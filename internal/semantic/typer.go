package semantic

import (
	"golang.org/x/xerrors"

	"mapshim/internal/ast"
	"mapshim/internal/builtins"
	"mapshim/internal/stdlib"
	"mapshim/internal/types"
)

// Typer records the declared type of every variable and computes the
// static type of expressions the interposer needs to classify. Declared
// types are resolved once, up front, so later rewrites of type names do not
// change what a declaration means.
type Typer struct {
	registry *Registry
	resolver *types.Resolver
	decls    map[*ast.VariableDecl]types.Type
	errs     []error
}

func NewTyper(registry *Registry, units []*ast.SourceUnit) *Typer {
	t := &Typer{
		registry: registry,
		resolver: types.NewResolver(registry),
		decls:    make(map[*ast.VariableDecl]types.Type),
	}
	for _, unit := range units {
		for _, item := range unit.Items {
			switch d := item.(type) {
			case *ast.ContractDef:
				t.declareAll(d, d)
			case *ast.StructDef:
				t.declareAll(d, nil)
			case *ast.ErrorDef:
				t.declareAll(d, nil)
			}
		}
	}
	return t
}

// Errors returns the type names that failed to resolve
func (t *Typer) Errors() []error {
	return t.errs
}

func (t *Typer) declareAll(root ast.Node, scope *ast.ContractDef) {
	ast.Inspect(root, func(n ast.Node) bool {
		v, ok := n.(*ast.VariableDecl)
		if !ok || v.Type == nil {
			return true
		}
		typ, err := t.resolver.Resolve(v.Type, scope)
		if err != nil {
			t.errs = append(t.errs, xerrors.Errorf("declaration of %s: %w", v.Name.Value, err))
			return true
		}
		t.decls[v] = typ
		return true
	})
}

// DeclType returns the declared type of v, or nil when it did not resolve
func (t *Typer) DeclType(v *ast.VariableDecl) types.Type {
	return t.decls[v]
}

// StructType returns the type of a struct definition
func (t *Typer) StructType(def *ast.StructDef) (*types.Struct, error) {
	return t.resolver.StructType(def, t.registry.Owner(def))
}

// Resolve converts a type name appearing in scope
func (t *Typer) Resolve(tn ast.TypeName, scope *ast.ContractDef) (types.Type, error) {
	return t.resolver.Resolve(tn, scope)
}

// TypeOf returns the static type of e, or nil when it is not known
func (t *Typer) TypeOf(e ast.Expr) types.Type {
	switch e := e.(type) {
	case *ast.Identifier:
		switch d := e.Decl.(type) {
		case *ast.VariableDecl:
			return t.decls[d]
		case *ast.ContractDef:
			return &types.Contract{Name: d.Name.Value, Def: d}
		}
		if e.Decl == nil {
			if ref, ok := stdlib.GetGlobalValues()[e.Name]; ok && ref != nil {
				return types.NewElementary(ref.Name)
			}
		}
		return nil

	case *ast.MemberAccessExpr:
		if id, ok := e.Target.(*ast.Identifier); ok && id.Decl == nil {
			if module := stdlib.GetModuleDefinition(id.Name); module != nil {
				if ref, ok := module.Members[e.Member]; ok {
					return types.NewElementary(ref.Name)
				}
				return nil
			}
		}
		switch target := t.TypeOf(e.Target).(type) {
		case *types.Struct:
			return target.Field(e.Member)
		case *types.Array:
			if e.Member == "length" {
				return types.NewElementary("uint256")
			}
		case *types.Elementary:
			if e.Member == "length" || e.Member == "balance" {
				return types.NewElementary("uint256")
			}
		}
		return nil

	case *ast.IndexExpr:
		if e.Index == nil {
			return nil
		}
		switch target := t.TypeOf(e.Target).(type) {
		case *types.Mapping:
			return target.Value
		case *types.Array:
			return target.Elem
		case *types.Elementary:
			if target.Kind == builtins.Bytes || target.Kind == builtins.FixedBytes {
				return types.NewElementary("bytes1")
			}
		}
		return nil

	case *ast.CallExpr:
		return t.callType(e)

	case *ast.ParenExpr:
		return t.TypeOf(e.Value)

	case *ast.ConditionalExpr:
		if typ := t.TypeOf(e.Then); typ != nil {
			return typ
		}
		return t.TypeOf(e.Else)

	case *ast.AssignExpr:
		return t.TypeOf(e.Target)

	case *ast.UnaryExpr:
		switch e.Op {
		case "!":
			return types.NewElementary("bool")
		case "delete":
			return nil
		default:
			return t.TypeOf(e.Value)
		}

	case *ast.BinaryExpr:
		switch e.Op {
		case "==", "!=", "<", "<=", ">", ">=", "&&", "||":
			return types.NewElementary("bool")
		case "<<", ">>", "**":
			return t.TypeOf(e.Left)
		}
		if typ := t.TypeOf(e.Left); typ != nil {
			return typ
		}
		return t.TypeOf(e.Right)

	case *ast.Literal:
		switch e.Kind {
		case ast.LiteralBool:
			return types.NewElementary("bool")
		case ast.LiteralString:
			return types.NewElementary("string")
		case ast.LiteralHexString:
			return types.NewElementary("bytes")
		}
		return nil
	}
	return nil
}

func (t *Typer) callType(call *ast.CallExpr) types.Type {
	switch callee := ast.Unparen(call.Callee).(type) {
	case *ast.ElementaryTypeExpr:
		if callee.Type.Payable {
			return types.NewElementary("address payable")
		}
		return types.NewElementary(callee.Type.Name)

	case *ast.Identifier:
		switch d := callee.Decl.(type) {
		case *ast.FunctionDef:
			return t.singleReturn(d)
		case *ast.StructDef:
			s, err := t.StructType(d)
			if err != nil {
				return nil
			}
			return s
		case *ast.ContractDef:
			return &types.Contract{Name: d.Name.Value, Def: d}
		case *ast.EnumDef:
			return nil
		}
		if callee.Decl == nil {
			if fn, ok := stdlib.GetGlobalFunctions()[callee.Name]; ok && fn.ReturnType != nil {
				return types.NewElementary(fn.ReturnType.Name)
			}
		}
		return nil

	case *ast.MemberAccessExpr:
		if id, ok := callee.Target.(*ast.Identifier); ok && id.Decl == nil {
			if module := stdlib.GetModuleDefinition(id.Name); module != nil {
				if fn, ok := module.Functions[callee.Member]; ok && fn.ReturnType != nil {
					return types.NewElementary(fn.ReturnType.Name)
				}
				return nil
			}
		}
		// external call on a contract-typed value
		if c, ok := t.TypeOf(callee.Target).(*types.Contract); ok && c.Def != nil {
			if fn := t.registry.Function(c.Def, callee.Member); fn != nil {
				return t.singleReturn(fn)
			}
		}
		// struct constructor qualified by its contract, C.S(...)
		if id, ok := callee.Target.(*ast.Identifier); ok {
			if c, ok := id.Decl.(*ast.ContractDef); ok {
				if def := c.FindStruct(callee.Member); def != nil {
					if s, err := t.StructType(def); err == nil {
						return s
					}
				}
			}
		}
		return nil
	}
	return nil
}

func (t *Typer) singleReturn(fn *ast.FunctionDef) types.Type {
	if len(fn.Returns) != 1 {
		return nil
	}
	return t.decls[fn.Returns[0]]
}
