package interpose

import (
	"fmt"

	"mapshim/internal/ast"
	"mapshim/internal/errors"
	"mapshim/internal/maplib"
	"mapshim/internal/naming"
	"mapshim/internal/types"
)

// accessSite is an expression reaching a located map: a base naming the
// declaration followed by the index expressions applied to it, innermost
// first. The first loc.steps indices are native; the next loc.levels
// address the map levels; any further indices apply to the value.
type accessSite struct {
	loc   *location
	base  ast.Expr
	chain []*ast.IndexExpr
}

// depth is the number of map levels the site indexes, negative when it
// stops before reaching the map
func (s *accessSite) depth() int {
	return len(s.chain) - s.loc.steps
}

func (s *accessSite) outer() ast.Expr {
	if len(s.chain) == 0 {
		return s.base
	}
	return s.chain[len(s.chain)-1]
}

// terminal builds the call applying an operation to the last map level
type terminal func(lib *maplib.Library, prefix, key ast.Expr) (*ast.CallExpr, error)

// site matches e against the located declarations. Matching reads the
// original tree, so it happens before any child of e is rewritten.
func (ip *interposer) site(e ast.Expr) *accessSite {
	switch e.(type) {
	case *ast.IndexExpr, *ast.Identifier, *ast.MemberAccessExpr:
	default:
		return nil
	}

	var chain []*ast.IndexExpr
	base := e
	for {
		ix, ok := base.(*ast.IndexExpr)
		if !ok || ix.Index == nil {
			break
		}
		chain = append(chain, ix)
		base = ix.Target
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	var loc *location
	switch b := base.(type) {
	case *ast.Identifier:
		if v, ok := b.Decl.(*ast.VariableDecl); ok {
			loc = ip.roots[v]
		}
	case *ast.MemberAccessExpr:
		if byOwner, ok := ip.members[b.Member]; ok {
			if s, ok := ip.analyzer.Typer().TypeOf(b.Target).(*types.Struct); ok {
				loc = byOwner[s.Def]
			}
		}
	}
	if loc == nil {
		return nil
	}
	return &accessSite{loc: loc, base: base, chain: chain}
}

// terminalSite returns the site when e addresses exactly one stored value
func (ip *interposer) terminalSite(e ast.Expr) *accessSite {
	s := ip.site(e)
	if s == nil || s.depth() != s.loc.levels {
		return nil
	}
	return s
}

func (ip *interposer) escape(s *accessSite) error {
	e := s.outer()
	message := fmt.Sprintf("map %s is used without an index", s.loc.target)
	if d := s.depth(); d > 0 {
		message = fmt.Sprintf("map %s is used with %d of its %d indices", s.loc.target, d, s.loc.levels)
	} else if d < 0 {
		message = fmt.Sprintf("a value holding map %s is used as a whole", s.loc.target)
	}
	return &errors.ConsistencyError{
		Code:     errors.ErrorEscapingMapReference,
		Message:  message,
		Position: e.NodePos(),
		Length:   span(e),
	}
}

func span(n ast.Node) int {
	if l := n.NodeEndPos().Offset - n.NodePos().Offset; l > 0 {
		return l
	}
	return 0
}

// access rewrites a site into a chain of library calls. The last level
// uses last when it is given and the site ends there; every other level
// reads through get. Index expressions are rewritten in textual order and
// each appears exactly once in the result.
func (ip *interposer) access(s *accessSite, last terminal) (ast.Expr, error) {
	d := s.depth()
	if d < 0 || d < s.loc.levels {
		return nil, ip.escape(s)
	}
	if err := ip.prepareBase(s); err != nil {
		return nil, err
	}

	var current ast.Expr = s.base
	for _, ix := range s.chain[:s.loc.steps] {
		index, err := ip.expr(ix.Index)
		if err != nil {
			return nil, err
		}
		ix.Index = index
		current = ix
	}

	levels := s.loc.lib.Levels()
	for i, lib := range levels {
		ix := s.chain[s.loc.steps+i]
		if err := ip.mark(ix); err != nil {
			return nil, err
		}
		key, err := ip.expr(ix.Index)
		if err != nil {
			return nil, err
		}

		var call *ast.CallExpr
		if i == len(levels)-1 && last != nil && d == s.loc.levels {
			call, err = last(lib, current, key)
			if err != nil {
				return nil, err
			}
		} else {
			call = lib.Call(maplib.GetFn, current, key)
		}
		call.Pos, call.EndPos = ix.Pos, ix.EndPos
		current = call
	}

	for _, ix := range s.chain[s.loc.steps+len(levels):] {
		index, err := ip.expr(ix.Index)
		if err != nil {
			return nil, err
		}
		ix.Target, ix.Index = current, index
		current = ix
	}
	ip.sites++
	return current, nil
}

// native rewrites the parts of a site that stops before its map, which is
// only valid as the target of a member access such as length or push
func (ip *interposer) native(s *accessSite) (ast.Expr, error) {
	if err := ip.prepareBase(s); err != nil {
		return nil, err
	}
	for _, ix := range s.chain {
		index, err := ip.expr(ix.Index)
		if err != nil {
			return nil, err
		}
		ix.Index = index
	}
	return s.outer(), nil
}

func (ip *interposer) prepareBase(s *accessSite) error {
	switch b := s.base.(type) {
	case *ast.Identifier:
		ip.consumed[b] = true
	case *ast.MemberAccessExpr:
		target, err := ip.expr(b.Target)
		if err != nil {
			return err
		}
		b.Target = target
	}
	return nil
}

// mark records that the map access at ix has been rewritten
func (ip *interposer) mark(ix *ast.IndexExpr) error {
	id := uint(ast.ID(ix))
	if id == 0 {
		return nil
	}
	if ip.rewritten.Test(id) {
		return &errors.ConsistencyError{
			Message:  "map access rewritten twice",
			Position: ix.Pos,
			Length:   span(ix),
		}
	}
	ip.rewritten.Set(id)
	return nil
}

// adopt gives a replacement node the place of the node it replaces
func (ip *interposer) adopt(replacement, original ast.Node) {
	if replacement == original {
		return
	}
	var parent ast.NodeID
	if meta := original.GetMetadata(); meta != nil {
		parent = meta.ParentID
	}
	ast.AssignGeneratedMetadata(ip.ctx.Tracker, replacement, parent)
}

func (ip *interposer) expr(e ast.Expr) (ast.Expr, error) {
	if e == nil {
		return nil, nil
	}
	if s := ip.site(e); s != nil {
		replacement, err := ip.access(s, nil)
		if err != nil {
			return nil, err
		}
		ip.adopt(replacement, e)
		return replacement, nil
	}

	var err error
	switch e := e.(type) {
	case *ast.MemberAccessExpr:
		if s := ip.site(e.Target); s != nil && s.depth() < 0 {
			e.Target, err = ip.native(s)
			return e, err
		}
		e.Target, err = ip.expr(e.Target)
		return e, err

	case *ast.IndexExpr:
		if e.Target, err = ip.expr(e.Target); err != nil {
			return nil, err
		}
		e.Index, err = ip.expr(e.Index)
		return e, err

	case *ast.AssignExpr:
		return ip.assign(e)

	case *ast.UnaryExpr:
		return ip.unary(e)

	case *ast.CallExpr:
		if e.Callee, err = ip.expr(e.Callee); err != nil {
			return nil, err
		}
		for i := range e.Options {
			if e.Options[i].Value, err = ip.expr(e.Options[i].Value); err != nil {
				return nil, err
			}
		}
		return e, ip.exprs(e.Args)

	case *ast.BinaryExpr:
		if e.Left, err = ip.expr(e.Left); err != nil {
			return nil, err
		}
		e.Right, err = ip.expr(e.Right)
		return e, err

	case *ast.ConditionalExpr:
		if e.Cond, err = ip.expr(e.Cond); err != nil {
			return nil, err
		}
		if e.Then, err = ip.expr(e.Then); err != nil {
			return nil, err
		}
		e.Else, err = ip.expr(e.Else)
		return e, err

	case *ast.TupleExpr:
		return e, ip.exprs(e.Elements)

	case *ast.ParenExpr:
		e.Value, err = ip.expr(e.Value)
		return e, err

	case *ast.ArrayLiteralExpr:
		return e, ip.exprs(e.Elements)
	}
	return e, nil
}

func (ip *interposer) exprs(exprs []ast.Expr) error {
	for i, e := range exprs {
		rewritten, err := ip.expr(e)
		if err != nil {
			return err
		}
		exprs[i] = rewritten
	}
	return nil
}

func (ip *interposer) assign(e *ast.AssignExpr) (ast.Expr, error) {
	if tuple, ok := e.Target.(*ast.TupleExpr); ok {
		if s, element := ip.tupleSite(tuple); s != nil {
			// statements are split before they get here
			return nil, tupleError(s, element, "tuple assignment to map %s is only interposed as a statement")
		}
	}

	s := ip.terminalSite(e.Target)
	if s == nil {
		var err error
		if e.Target, err = ip.expr(e.Target); err != nil {
			return nil, err
		}
		e.Value, err = ip.expr(e.Value)
		return e, err
	}

	replacement, err := ip.access(s, func(lib *maplib.Library, prefix, key ast.Expr) (*ast.CallExpr, error) {
		value, err := ip.expr(e.Value)
		if err != nil {
			return nil, err
		}
		if e.Operator == ast.ASSIGN {
			if !lib.HasSet() {
				return nil, &errors.ConsistencyError{
					Message:  fmt.Sprintf("values of map %s hold mappings and cannot be assigned", s.loc.target),
					Position: e.Pos,
					Length:   span(e),
				}
			}
			return lib.Call(maplib.SetFn, prefix, key, value), nil
		}
		helper, err := lib.Compound(ip.ctx, e.Operator.BinaryOp(), ip.unchecked)
		if err != nil {
			return nil, positioned(err, e)
		}
		return lib.Call(helper, prefix, key, value), nil
	})
	if err != nil {
		return nil, err
	}
	ip.adopt(replacement, e)
	return replacement, nil
}

func (ip *interposer) unary(e *ast.UnaryExpr) (ast.Expr, error) {
	s := ip.terminalSite(e.Value)
	if s == nil || (e.Op != "++" && e.Op != "--" && e.Op != "delete") {
		var err error
		e.Value, err = ip.expr(e.Value)
		return e, err
	}

	replacement, err := ip.access(s, func(lib *maplib.Library, prefix, key ast.Expr) (*ast.CallExpr, error) {
		if e.Op == "delete" {
			return lib.Call(maplib.ResetFn, prefix, key), nil
		}
		helper, err := lib.Step(ip.ctx, e.Op, e.Postfix, ip.unchecked)
		if err != nil {
			return nil, positioned(err, e)
		}
		return lib.Call(helper, prefix, key), nil
	})
	if err != nil {
		return nil, err
	}
	ip.adopt(replacement, e)
	return replacement, nil
}

// tupleSite finds a component of a tuple, nested tuples included, that
// stores into an interposed map
func (ip *interposer) tupleSite(tuple *ast.TupleExpr) (*accessSite, ast.Expr) {
	for _, element := range tuple.Elements {
		switch e := element.(type) {
		case nil:
		case *ast.TupleExpr:
			if s, inner := ip.tupleSite(e); s != nil {
				return s, inner
			}
		default:
			if s := ip.terminalSite(e); s != nil {
				return s, e
			}
		}
	}
	return nil, nil
}

func tupleError(s *accessSite, at ast.Expr, format string) error {
	return &errors.ConsistencyError{
		Message:  fmt.Sprintf(format, s.loc.target),
		Position: at.NodePos(),
		Length:   span(at),
	}
}

// splitTuple rewrites the statement (a, x[k]) = e, where a component
// stores into an interposed map, into a declaration of one local per
// component initialized from e, then one assignment per component from
// last to first. Components must be value types. It returns nil for any
// other statement.
func (ip *interposer) splitTuple(stmt ast.Stmt) ([]ast.Stmt, error) {
	es, ok := stmt.(*ast.ExprStmt)
	if !ok || ip.locals == nil {
		return nil, nil
	}
	assign, ok := es.Expr.(*ast.AssignExpr)
	if !ok || assign.Operator != ast.ASSIGN {
		return nil, nil
	}
	tuple, ok := assign.Target.(*ast.TupleExpr)
	if !ok {
		return nil, nil
	}
	site, _ := ip.tupleSite(tuple)
	if site == nil {
		return nil, nil
	}

	decls := make([]*ast.VariableDecl, len(tuple.Elements))
	for i, element := range tuple.Elements {
		if element == nil {
			continue
		}
		if nested, ok := element.(*ast.TupleExpr); ok {
			return nil, tupleError(site, nested, "nested tuple assignment to map %s cannot be interposed")
		}
		t := ip.componentType(element)
		if t == nil || !types.IsValueType(t) {
			return nil, tupleError(site, element,
				fmt.Sprintf("tuple assignment to map %%s cannot be interposed: component %d is not a value type", i))
		}
		name, err := ip.locals.Name(naming.KindTmp, "elem")
		if err != nil {
			return nil, err
		}
		decls[i] = ast.NewLocal(types.ToTypeName(t), "", name)
	}

	value, err := ip.expr(assign.Value)
	if err != nil {
		return nil, err
	}
	out := []ast.Stmt{&ast.VarDeclStmt{Decls: decls, Tuple: true, Value: value}}
	for i := len(tuple.Elements) - 1; i >= 0; i-- {
		if decls[i] == nil {
			continue
		}
		component := ast.NewAssign(tuple.Elements[i], ast.NewBoundIdentifier(decls[i].Name.Value, decls[i]))
		component.Pos, component.EndPos = tuple.Elements[i].NodePos(), tuple.Elements[i].NodeEndPos()
		rewritten, err := ip.assign(component)
		if err != nil {
			return nil, err
		}
		out = append(out, ast.NewExprStmt(rewritten))
	}
	for _, n := range out {
		ip.adopt(n, stmt)
	}
	return out, nil
}

// componentType is the type a tuple component stores
func (ip *interposer) componentType(e ast.Expr) types.Type {
	if s := ip.terminalSite(e); s != nil {
		levels := s.loc.lib.Levels()
		return levels[len(levels)-1].Value
	}
	return ip.analyzer.Typer().TypeOf(e)
}

// positioned fills in the position of a consistency error raised without one
func positioned(err error, at ast.Node) error {
	if ce, ok := err.(*errors.ConsistencyError); ok && ce.Position == (ast.Position{}) {
		ce.Position = at.NodePos()
		ce.Length = span(at)
	}
	return err
}

func (ip *interposer) stmt(s ast.Stmt) error {
	var err error
	switch s := s.(type) {
	case *ast.Block:
		return ip.block(s)
	case *ast.VarDeclStmt:
		s.Value, err = ip.expr(s.Value)
	case *ast.ExprStmt:
		s.Expr, err = ip.expr(s.Expr)
	case *ast.IfStmt:
		if s.Cond, err = ip.expr(s.Cond); err != nil {
			return err
		}
		if err = ip.stmt(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			err = ip.stmt(s.Else)
		}
	case *ast.ForStmt:
		if s.Init != nil {
			if err = ip.stmt(s.Init); err != nil {
				return err
			}
		}
		if s.Cond, err = ip.expr(s.Cond); err != nil {
			return err
		}
		if s.Post, err = ip.expr(s.Post); err != nil {
			return err
		}
		err = ip.stmt(s.Body)
	case *ast.WhileStmt:
		if s.Cond, err = ip.expr(s.Cond); err != nil {
			return err
		}
		err = ip.stmt(s.Body)
	case *ast.DoWhileStmt:
		if err = ip.stmt(s.Body); err != nil {
			return err
		}
		s.Cond, err = ip.expr(s.Cond)
	case *ast.ReturnStmt:
		s.Value, err = ip.expr(s.Value)
	case *ast.EmitStmt:
		s.Call, err = ip.expr(s.Call)
	case *ast.RevertStmt:
		s.Call, err = ip.expr(s.Call)
	}
	return err
}

func (ip *interposer) block(b *ast.Block) error {
	if b == nil {
		return nil
	}
	outer := ip.unchecked
	ip.unchecked = ip.unchecked || b.Unchecked
	defer func() { ip.unchecked = outer }()

	for i := 0; i < len(b.Stmts); i++ {
		split, err := ip.splitTuple(b.Stmts[i])
		if err != nil {
			return err
		}
		if split != nil {
			b.Stmts = append(b.Stmts[:i], append(split, b.Stmts[i+1:]...)...)
			i += len(split) - 1
			continue
		}
		if err := ip.stmt(b.Stmts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (ip *interposer) contract(c *ast.ContractDef) error {
	for _, base := range c.Bases {
		if err := ip.exprs(base.Args); err != nil {
			return err
		}
	}
	for _, item := range c.Items {
		var err error
		switch d := item.(type) {
		case *ast.VariableDecl:
			d.Value, err = ip.expr(d.Value)
		case *ast.FunctionDef:
			for _, m := range d.Modifiers {
				if err = ip.exprs(m.Args); err != nil {
					return err
				}
			}
			ip.locals = ip.ctx.Naming.Scope()
			err = ip.block(d.Body)
		case *ast.ModifierDef:
			ip.locals = ip.ctx.Naming.Scope()
			err = ip.block(d.Body)
		}
		ip.locals = nil
		if err != nil {
			return err
		}
	}
	return nil
}
