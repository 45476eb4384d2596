package maplib

import (
	"mapshim/internal/ast"
	"mapshim/internal/builtins"
	"mapshim/internal/instrument"
	"mapshim/internal/naming"
	"mapshim/internal/types"
)

var compoundNames = map[string]string{
	"+":  "addAssign",
	"-":  "subAssign",
	"*":  "mulAssign",
	"/":  "divAssign",
	"%":  "modAssign",
	"|":  "orAssign",
	"&":  "andAssign",
	"^":  "xorAssign",
	"<<": "shlAssign",
	">>": "shrAssign",
}

// Compound returns the seed of the helper performing "slot op= val" and yielding the
// new value, adding it to the library on first use. Key and operand are
// parameters, so each is evaluated exactly once by the caller.
func (l *Library) Compound(ctx *instrument.Context, op string, unchecked bool) (string, error) {
	base, ok := compoundNames[op]
	if !ok || !l.ReturnsValue() {
		return "", operatorError(l, op+"=")
	}
	return l.helper(ctx, base, unchecked, func(f *frame) ([]*ast.VariableDecl, []ast.Stmt, error) {
		val, err := f.scope.Name(naming.KindArg, "val")
		if err != nil {
			return nil, nil, err
		}
		operandType := types.ToTypeName(l.Value)
		if op == "<<" || op == ">>" {
			operandType = &ast.ElementaryTypeName{Name: "uint256"}
		}
		next := ast.NewBinary(op, ast.NewCall(ast.NewIdentifier(l.Member(GetFn)), f.args()...), ast.NewIdentifier(val))
		return []*ast.VariableDecl{ast.NewParam(operandType, "", val)},
			[]ast.Stmt{ast.NewReturn(ast.NewCall(ast.NewIdentifier(l.Member(SetFn)), f.args(next)...))},
			nil
	})
}

// Step returns the seed of the helper for ++ or --. Postfix helpers yield the value
// before the step, prefix helpers the value after it.
func (l *Library) Step(ctx *instrument.Context, op string, postfix bool, unchecked bool) (string, error) {
	var base, binary string
	switch op {
	case "++":
		base, binary = "Inc", "+"
	case "--":
		base, binary = "Dec", "-"
	default:
		return "", operatorError(l, op)
	}
	if !l.ReturnsValue() || !isInteger(l.Value) {
		return "", operatorError(l, op)
	}
	if postfix {
		base = "post" + base
	} else {
		base = "pre" + base
	}

	return l.helper(ctx, base, unchecked, func(f *frame) ([]*ast.VariableDecl, []ast.Stmt, error) {
		read := ast.NewCall(ast.NewIdentifier(l.Member(GetFn)), f.args()...)
		if !postfix {
			next := ast.NewBinary(binary, read, ast.NewNumber("1"))
			return nil, []ast.Stmt{ast.NewReturn(ast.NewCall(ast.NewIdentifier(l.Member(SetFn)), f.args(next)...))}, nil
		}

		old, err := f.scope.Name(naming.KindTmp, "old")
		if err != nil {
			return nil, nil, err
		}
		next := ast.NewBinary(binary, ast.NewIdentifier(old), ast.NewNumber("1"))
		return nil, []ast.Stmt{
			ast.NewVarDeclStmt(ast.NewLocal(types.ToTypeName(l.Value), "", old), read),
			ast.NewExprStmt(ast.NewCall(ast.NewIdentifier(l.Member(SetFn)), f.args(next)...)),
			ast.NewReturn(ast.NewIdentifier(old)),
		}, nil
	})
}

// Helpers lists the seeds of the operator helpers added so far, in order
// of first use
func (l *Library) Helpers() []string {
	return l.helpers
}

type helperBody func(f *frame) (extra []*ast.VariableDecl, stmts []ast.Stmt, err error)

func (l *Library) helper(ctx *instrument.Context, base string, unchecked bool, body helperBody) (string, error) {
	name := base
	unchecked = unchecked && ctx.CheckedArithmetic()
	if unchecked {
		name += "Unchecked"
	}
	if _, ok := l.members[name]; ok {
		return name, nil
	}

	f, err := l.newFrame(ctx)
	if err != nil {
		return "", err
	}
	extra, stmts, err := body(f)
	if err != nil {
		return "", err
	}
	member, err := l.allocate(name)
	if err != nil {
		return "", err
	}
	block := ast.NewBlock(stmts...)
	if unchecked {
		block = ast.NewBlock(&ast.Block{Stmts: stmts, Unchecked: true})
	}
	fn := &ast.FunctionDef{
		Name:       ast.Ident{Value: member},
		Params:     append(f.params, extra...),
		Returns:    []*ast.VariableDecl{l.returnParam()},
		Visibility: "internal",
		Body:       block,
	}

	l.Decl.Items = append(l.Decl.Items, fn)
	ctx.Track(fn, l.Decl)
	l.helpers = append(l.helpers, name)
	ctx.Log.Debugf("added %s to %s", member, l.Name)
	return name, nil
}

func isInteger(t types.Type) bool {
	e, ok := t.(*types.Elementary)
	return ok && (e.Kind == builtins.Int || e.Kind == builtins.Uint)
}
