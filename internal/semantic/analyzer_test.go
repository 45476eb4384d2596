package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapshim/internal/ast"
	"mapshim/internal/errors"
	"mapshim/internal/parser"
	"mapshim/internal/types"
)

func analyze(t *testing.T, sources ...string) ([]*ast.SourceUnit, *Analyzer, []errors.CompilerError) {
	t.Helper()

	var units []*ast.SourceUnit
	for _, source := range sources {
		unit, parseErrors, scanErrors := parser.ParseSource("test.sol", source)
		require.Empty(t, parseErrors, "Should have no parse errors")
		require.Empty(t, scanErrors, "Should have no scan errors")
		units = append(units, unit)
	}

	analyzer := NewAnalyzer()
	errs := analyzer.Analyze(units)
	return units, analyzer, errs
}

// findIdentifiers returns every identifier with the given name, in source order
func findIdentifiers(node ast.Node, name string) []*ast.Identifier {
	var out []*ast.Identifier
	ast.Inspect(node, func(n ast.Node) bool {
		if id, ok := n.(*ast.Identifier); ok && id.Name == name {
			out = append(out, id)
		}
		return true
	})
	return out
}

func findExpr[T ast.Expr](node ast.Node, match func(T) bool) T {
	var found T
	done := false
	ast.Inspect(node, func(n ast.Node) bool {
		if done {
			return false
		}
		if e, ok := n.(T); ok && match(e) {
			found = e
			done = true
			return false
		}
		return true
	})
	return found
}

func TestBindingScopes(t *testing.T) {
	source := `contract C {
    mapping(uint => uint) x;
    uint public a;

    function f(uint a) public {
        x[a] = 1;
        {
            uint x = 2;
            x += a;
        }
        x[0] = this.a();
    }
}`
	units, analyzer, errs := analyze(t, source)
	assert.Empty(t, errs)

	c := units[0].Contracts()[0]
	stateX := analyzer.Registry().StateVariable(c, "x")
	require.NotNil(t, stateX)

	xs := findIdentifiers(c, "x")
	require.Len(t, xs, 3)
	assert.Same(t, stateX, xs[0].Decl)
	local, ok := xs[1].Decl.(*ast.VariableDecl)
	require.True(t, ok)
	assert.Equal(t, ast.VarKindLocal, local.Kind, "block local shadows the state variable")
	assert.Same(t, stateX, xs[2].Decl, "shadowing ends with the block")

	for _, a := range findIdentifiers(c, "a") {
		decl := a.Decl.(*ast.VariableDecl)
		assert.Equal(t, ast.VarKindParam, decl.Kind, "parameter shadows the state variable")
	}

	this := findIdentifiers(c, "this")
	require.Len(t, this, 1)
	assert.Nil(t, this[0].Decl)
	assert.Empty(t, analyzer.Binder().Unresolved())
}

func TestLocalBoundAfterInitializer(t *testing.T) {
	source := `contract C {
    uint y;
    function f() public {
        uint y = y + 1;
        y;
    }
}`
	units, analyzer, _ := analyze(t, source)
	c := units[0].Contracts()[0]

	ys := findIdentifiers(c, "y")
	require.Len(t, ys, 2)
	assert.Same(t, analyzer.Registry().StateVariable(c, "y"), ys[0].Decl)
	assert.Equal(t, ast.VarKindLocal, ys[1].Decl.(*ast.VariableDecl).Kind)
}

func TestInheritance(t *testing.T) {
	source := `contract A {
    struct S { uint v; }
    mapping(uint => S) m;
}
contract B is A {
    function f() public view returns (uint) { return m[1].v; }
}`
	units, analyzer, errs := analyze(t, source)
	assert.Empty(t, errs)

	contracts := units[0].Contracts()
	a, b := contracts[0], contracts[1]
	reg := analyzer.Registry()

	assert.Equal(t, []*ast.ContractDef{b, a}, reg.Linearize(b))
	assert.Same(t, reg.StateVariable(a, "m"), reg.StateVariable(b, "m"))
	assert.Equal(t, []string{"m"}, reg.StateVariableNames(b))

	m := findIdentifiers(b, "m")
	require.Len(t, m, 1)
	assert.Same(t, reg.StateVariable(a, "m"), m[0].Decl)

	decl, owner, ok := reg.LookupType("S", b)
	require.True(t, ok)
	assert.Same(t, a, owner)
	assert.IsType(t, &ast.StructDef{}, decl)

	_, _, ok = reg.LookupType("B.S", nil)
	assert.True(t, ok, "qualified lookup walks the named contract's bases")
	_, _, ok = reg.LookupType("Missing.S", nil)
	assert.False(t, ok)
}

func TestLinearizationOrder(t *testing.T) {
	source := `contract A { uint v; }
contract B is A { }
contract C is A { uint v2; }
contract D is B, C { }`
	units, analyzer, _ := analyze(t, source)

	var names []string
	for _, c := range analyzer.Registry().Linearize(units[0].Contracts()[3]) {
		names = append(names, c.Name.Value)
	}
	assert.Equal(t, []string{"D", "C", "B", "A"}, names)
}

func TestTypeOf(t *testing.T) {
	source := `contract Token {
    function balanceOf(address a) external view returns (uint) { return 0; }
}
contract C {
    struct S { mapping(uint => bool) flags; uint[] items; }
    mapping(uint => mapping(address => S)) nested;
    S single;
    Token token;

    function f(uint k) public {
        nested[k][msg.sender].flags[1];
        single.items.length;
        token.balanceOf(msg.sender);
        uint8(k);
        keccak256("");
        k > 1;
    }
}`
	units, analyzer, errs := analyze(t, source)
	assert.Empty(t, errs)
	typer := analyzer.Typer()
	c := units[0].Contracts()[1]

	body := c.Items[len(c.Items)-1].(*ast.FunctionDef).Body
	exprOf := func(i int) ast.Expr { return body.Stmts[i].(*ast.ExprStmt).Expr }

	flags := exprOf(0).(*ast.IndexExpr)
	assert.Equal(t, "bool", typer.TypeOf(flags).String())
	assert.Equal(t, "mapping(uint256 => bool)", typer.TypeOf(flags.Target).String())

	structAccess := flags.Target.(*ast.MemberAccessExpr).Target
	assert.Equal(t, "struct C.S", typer.TypeOf(structAccess).String())
	assert.Equal(t, "address", typer.TypeOf(structAccess.(*ast.IndexExpr).Index).String())

	assert.Equal(t, "uint256", typer.TypeOf(exprOf(1)).String())
	assert.Equal(t, "uint256", typer.TypeOf(exprOf(2)).String())
	assert.Equal(t, "uint8", typer.TypeOf(exprOf(3)).String())
	assert.Equal(t, "bytes32", typer.TypeOf(exprOf(4)).String())
	assert.Equal(t, "bool", typer.TypeOf(exprOf(5)).String())

	nested := analyzer.Registry().StateVariable(c, "nested")
	m, ok := typer.DeclType(nested).(*types.Mapping)
	require.True(t, ok)
	keys, value := types.MapLevels(m)
	assert.Len(t, keys, 2)
	assert.Equal(t, "struct C.S", value.String())
}

func TestDeclaredTypesSurviveRewrite(t *testing.T) {
	source := `contract C { mapping(uint => bool) m; }`
	units, analyzer, _ := analyze(t, source)

	m := analyzer.Registry().StateVariable(units[0].Contracts()[0], "m")
	m.Type = &ast.UserDefinedTypeName{Path: "Wrapper.S"}

	assert.Equal(t, "mapping(uint256 => bool)", analyzer.Typer().DeclType(m).String())
}

func TestUndeclaredNamesAreWarnings(t *testing.T) {
	source := `contract C is Ownabel {
    mapping(uint => Acount) accounts;
    struct Account { uint balance; }
    function f() public { missing(1); }
}
contract Ownable { }`
	units, analyzer, errs := analyze(t, source)

	require.Len(t, errs, 2)
	assert.False(t, analyzer.HasErrors())

	assert.Equal(t, errors.ErrorUndefinedContract, errs[0].Code)
	assert.Equal(t, errors.Warning, errs[0].Level)
	require.Len(t, errs[0].Suggestions, 1)
	assert.Contains(t, errs[0].Suggestions[0].Message, "Ownable")

	assert.Equal(t, errors.ErrorUndefinedType, errs[1].Code)
	require.Len(t, errs[1].Suggestions, 1)
	assert.Contains(t, errs[1].Suggestions[0].Message, "Account")

	unresolved := analyzer.Binder().Unresolved()
	require.Len(t, unresolved, 1)
	assert.Equal(t, "missing", unresolved[0].Name)

	accounts := analyzer.Registry().StateVariable(units[0].Contracts()[0], "accounts")
	assert.Nil(t, analyzer.Typer().DeclType(accounts))
}

func TestDuplicateContract(t *testing.T) {
	_, analyzer, errs := analyze(t, `contract C { }`, `contract C { uint x; }`)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "declared more than once")
	assert.True(t, analyzer.HasErrors())
	assert.Len(t, analyzer.Registry().Contracts(), 1)
}

func TestForLoopScope(t *testing.T) {
	source := `contract C {
    uint i;
    function f() public {
        for (uint i = 0; i < 3; i++) { i; }
        i;
    }
}`
	units, analyzer, _ := analyze(t, source)
	c := units[0].Contracts()[0]

	is := findIdentifiers(c, "i")
	require.Len(t, is, 4)
	for _, id := range is[:3] {
		assert.Equal(t, ast.VarKindLocal, id.Decl.(*ast.VariableDecl).Kind)
	}
	assert.Same(t, analyzer.Registry().StateVariable(c, "i"), is[3].Decl)

	call := findExpr(c, func(u *ast.UnaryExpr) bool { return u.Op == "++" })
	require.NotNil(t, call)
	assert.True(t, call.Postfix)
}
