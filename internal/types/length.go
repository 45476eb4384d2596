package types

import (
	"fmt"
	"math/big"
	"strings"

	"mapshim/internal/ast"
	"mapshim/internal/errors"
)

// ConstantLookup finds constant state variables, so array lengths written
// with them fold to integers. path is "N" or "C.N".
type ConstantLookup interface {
	LookupConstant(path string, scope *ast.ContractDef) (decl *ast.VariableDecl, owner *ast.ContractDef, ok bool)
}

// widest length the evaluator accepts, in bits
const maxLengthBits = 256

// arrayLength folds the length of tn to a decimal integer, so uint[N],
// uint[0x3] and uint[3] share a signature and generated code never refers
// to a constant out of its scope
func (r *Resolver) arrayLength(tn *ast.ArrayTypeName, scope *ast.ContractDef) (string, error) {
	fail := func(at ast.Node, reason string) error {
		return &errors.UnsupportedTypeError{
			Type:     tn.String(),
			Reason:   reason,
			Position: at.NodePos(),
		}
	}

	visiting := make(map[*ast.VariableDecl]bool)
	var eval func(e ast.Expr, scope *ast.ContractDef) (*big.Int, error)
	eval = func(e ast.Expr, scope *ast.ContractDef) (*big.Int, error) {
		switch e := e.(type) {
		case *ast.Literal:
			if e.Kind != ast.LiteralNumber || e.Unit != "" {
				break
			}
			n, ok := new(big.Int).SetString(strings.ReplaceAll(e.Value, "_", ""), 0)
			if !ok {
				break
			}
			return n, nil

		case *ast.ParenExpr:
			return eval(e.Value, scope)

		case *ast.Identifier, *ast.MemberAccessExpr:
			path := constantPath(e)
			constants, ok := r.lookup.(ConstantLookup)
			if path == "" || !ok {
				break
			}
			decl, owner, ok := constants.LookupConstant(path, scope)
			if !ok {
				return nil, fail(e, fmt.Sprintf("%s is not a constant", path))
			}
			if visiting[decl] {
				return nil, fail(e, fmt.Sprintf("constant %s depends on itself", path))
			}
			visiting[decl] = true
			defer delete(visiting, decl)
			return eval(decl.Value, owner)

		case *ast.BinaryExpr:
			left, err := eval(e.Left, scope)
			if err != nil {
				return nil, err
			}
			right, err := eval(e.Right, scope)
			if err != nil {
				return nil, err
			}
			n, ok := foldBinary(e.Op, left, right)
			if !ok {
				return nil, fail(e, fmt.Sprintf("%s cannot be folded to a length", e))
			}
			return n, nil
		}
		return nil, fail(e, "array length is not a constant integer expression")
	}

	n, err := eval(tn.Length, scope)
	if err != nil {
		return "", err
	}
	if n.Sign() <= 0 || n.BitLen() > maxLengthBits {
		return "", fail(tn.Length, fmt.Sprintf("array length %s is out of range", n))
	}
	return n.String(), nil
}

func constantPath(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.MemberAccessExpr:
		if id, ok := e.Target.(*ast.Identifier); ok {
			return id.Name + "." + e.Member
		}
	}
	return ""
}

func foldBinary(op string, l, r *big.Int) (*big.Int, bool) {
	n := new(big.Int)
	switch op {
	case "+":
		n.Add(l, r)
	case "-":
		n.Sub(l, r)
	case "*":
		n.Mul(l, r)
	case "/", "%":
		if r.Sign() == 0 {
			return nil, false
		}
		if op == "/" {
			n.Quo(l, r)
		} else {
			n.Rem(l, r)
		}
	case "**":
		if r.Sign() < 0 || r.BitLen() > 16 {
			return nil, false
		}
		n.Exp(l, r, nil)
	case "<<", ">>":
		if r.Sign() < 0 || !r.IsInt64() || r.Int64() > maxLengthBits {
			return nil, false
		}
		if op == "<<" {
			n.Lsh(l, uint(r.Int64()))
		} else {
			n.Rsh(l, uint(r.Int64()))
		}
	case "&":
		n.And(l, r)
	case "|":
		n.Or(l, r)
	case "^":
		n.Xor(l, r)
	default:
		return nil, false
	}
	return n, n.BitLen() <= maxLengthBits
}
