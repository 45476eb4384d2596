package interpose

import (
	"fmt"

	"mapshim/internal/ast"
	"mapshim/internal/errors"
	"mapshim/internal/naming"
	"mapshim/internal/types"
)

// regenerateGetters replaces the compiler getter of every public state
// variable whose storage type changes: located variables, and variables
// whose type holds a struct with a located member
func (ip *interposer) regenerateGetters() error {
	owners := make(map[*ast.StructDef]bool)
	for _, loc := range ip.locations {
		if loc.owner != nil {
			owners[loc.owner] = true
		}
	}

	for _, c := range ip.analyzer.Registry().Contracts() {
		for _, item := range c.Items {
			v, ok := item.(*ast.VariableDecl)
			if !ok || v.Visibility != "public" {
				continue
			}
			typ := ip.analyzer.Typer().DeclType(v)
			if _, located := ip.roots[v]; !located && !reaches(typ, owners, make(map[*types.Struct]bool)) {
				continue
			}
			if err := ip.regenerateGetter(c, v, typ); err != nil {
				return err
			}
		}
	}
	return nil
}

func reaches(t types.Type, owners map[*ast.StructDef]bool, visited map[*types.Struct]bool) bool {
	switch t := t.(type) {
	case *types.Mapping:
		return reaches(t.Value, owners, visited)
	case *types.Array:
		return reaches(t.Elem, owners, visited)
	case *types.Struct:
		if owners[t.Def] {
			return true
		}
		if visited[t] {
			return false
		}
		visited[t] = true
		for _, f := range t.Fields {
			if reaches(f.Type, owners, visited) {
				return true
			}
		}
	}
	return false
}

// regenerateGetter renames v, makes it internal and adds an external view
// function with v's name taking one parameter per mapping level and array
// dimension, as the compiler getter does
func (ip *interposer) regenerateGetter(c *ast.ContractDef, v *ast.VariableDecl, typ types.Type) error {
	name := v.Name.Value
	renamed, err := ip.ctx.Naming.FreshName(naming.KindVar, name)
	if err != nil {
		return err
	}
	scope := ip.ctx.Naming.Scope()

	fn := &ast.FunctionDef{
		Pos:        v.Pos,
		EndPos:     v.EndPos,
		Name:       ast.Ident{Value: name},
		Visibility: "external",
		Mutability: "view",
		Override:   v.Override,
	}

	var access ast.Expr = ast.NewBoundIdentifier(renamed, v)
	for {
		var seed, location string
		var indexType ast.TypeName
		switch t := typ.(type) {
		case *types.Mapping:
			seed, indexType, typ = "key", types.ToTypeName(t.Key), t.Value
			if types.IsDynamicBytes(t.Key) {
				location = "calldata"
			}
		case *types.Array:
			seed, indexType, typ = "index", &ast.ElementaryTypeName{Name: "uint256"}, t.Elem
		}
		if seed == "" {
			break
		}
		paramName, err := scope.Name(naming.KindArg, seed)
		if err != nil {
			return err
		}
		param := ast.NewParam(indexType, location, paramName)
		fn.Params = append(fn.Params, param)
		access = ast.NewIndex(access, ast.NewBoundIdentifier(paramName, param))
	}

	if s, ok := typ.(*types.Struct); ok {
		tmp, err := scope.Name(naming.KindTmp, "value")
		if err != nil {
			return err
		}
		local := ast.NewLocal(types.ToTypeName(s), "storage", tmp)
		var values []ast.Expr
		for _, f := range s.Fields {
			if _, ok := f.Type.(*types.Array); ok || types.ContainsMapping(f.Type) {
				continue
			}
			fn.Returns = append(fn.Returns, ast.NewReturnParam(types.ToTypeName(f.Type), returnLocation(f.Type)))
			values = append(values, ast.NewMember(ast.NewBoundIdentifier(tmp, local), f.Name))
		}
		if len(values) == 0 {
			return &errors.ConsistencyError{
				Message:  fmt.Sprintf("public getter of %s would return nothing", name),
				Position: v.Pos,
				Length:   span(v),
			}
		}
		result := values[0]
		if len(values) > 1 {
			result = ast.NewTuple(values...)
		}
		fn.Body = ast.NewBlock(ast.NewVarDeclStmt(local, access), ast.NewReturn(result))
	} else {
		fn.Returns = []*ast.VariableDecl{ast.NewReturnParam(types.ToTypeName(typ), returnLocation(typ))}
		fn.Body = ast.NewBlock(ast.NewReturn(access))
	}

	c.Items = append(c.Items, fn)
	ip.ctx.Track(fn, c)
	if err := ip.block(fn.Body); err != nil {
		return err
	}

	v.Name.Value = renamed
	v.Visibility = "internal"
	v.Override = false
	for _, unit := range ip.units {
		ast.Inspect(unit, func(n ast.Node) bool {
			if id, ok := n.(*ast.Identifier); ok && id.Decl == v {
				id.Name = renamed
			}
			return true
		})
	}
	log.Debugf("regenerated getter %s.%s over %s", c.Name.Value, name, renamed)
	return nil
}

func returnLocation(t types.Type) string {
	if types.IsValueType(t) {
		return ""
	}
	return "memory"
}
