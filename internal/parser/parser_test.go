package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapshim/internal/ast"
)

func parseOK(t *testing.T, src string) *ast.SourceUnit {
	t.Helper()
	unit, parseErrs, scanErrs := ParseSource("test.sol", src)
	require.Empty(t, scanErrs)
	require.Empty(t, parseErrs)
	require.NotNil(t, unit)
	return unit
}

func TestParseContractRoundTrip(t *testing.T) {
	src := `pragma solidity ^0.8.0;

contract C {
    struct S {
        mapping(uint => uint) x;
        uint y;
    }
    mapping(uint => mapping(address => bool)) public x;
    S internal s;
    function f(uint k) public returns (uint) {
        x[k][msg.sender] = true;
        s.x[k] += 1;
        return s.x[k];
    }
}
`
	unit := parseOK(t, src)
	assert.Equal(t, src, unit.String())
}

func TestParseSourceUnitItems(t *testing.T) {
	src := `pragma solidity >=0.7.0 <0.9.0;
import "./Lib.sol";
struct Top { uint a; }
enum Color { Red, Green }
error Denied(address who);
abstract contract A {}
interface I { function g() external view returns (uint); }
library L {}
`
	unit := parseOK(t, src)
	require.Len(t, unit.Items, 8)

	pragma := unit.Items[0].(*ast.PragmaDirective)
	assert.Equal(t, "solidity >=0.7.0 <0.9.0", pragma.Text)
	imp := unit.Items[1].(*ast.ImportDirective)
	assert.Equal(t, `"./Lib.sol"`, imp.Text)
	assert.IsType(t, &ast.StructDef{}, unit.Items[2])
	assert.Equal(t, 2, len(unit.Items[3].(*ast.EnumDef).Values))
	assert.Equal(t, "Denied", unit.Items[4].(*ast.ErrorDef).Name.Value)

	contracts := unit.Contracts()
	require.Len(t, contracts, 3)
	assert.Equal(t, ast.ContractKindAbstract, contracts[0].Kind)
	assert.Equal(t, ast.ContractKindInterface, contracts[1].Kind)
	assert.Equal(t, ast.ContractKindLibrary, contracts[2].Kind)

	fn := contracts[1].Items[0].(*ast.FunctionDef)
	assert.Nil(t, fn.Body)
	assert.Equal(t, "external", fn.Visibility)
	assert.Equal(t, "view", fn.Mutability)
	require.Len(t, fn.Returns, 1)
}

func TestParseContractMembers(t *testing.T) {
	src := `contract Token is Ownable, ERC20("T", "TKN") {
    using SafeMath for uint256;
    uint256 public constant CAP = 1000;
    address immutable owner;
    event Transfer(address indexed from, address indexed to, uint value);
    modifier onlyOwner() { require(msg.sender == owner); _; }
    constructor(uint x) ERC20("T", "TKN") payable {}
    receive() external payable {}
    fallback() external {}
    function balanceOf(address a) public view virtual override returns (uint) { return 0; }
}`
	unit := parseOK(t, src)
	c := unit.Contracts()[0]

	require.Len(t, c.Bases, 2)
	assert.False(t, c.Bases[0].HasArgs)
	assert.True(t, c.Bases[1].HasArgs)
	require.Len(t, c.Items, 9)

	using := c.Items[0].(*ast.UsingForDirective)
	assert.Equal(t, "SafeMath", using.Library)

	capDecl := c.Items[1].(*ast.VariableDecl)
	assert.True(t, capDecl.Constant)
	assert.Equal(t, "public", capDecl.Visibility)
	assert.Equal(t, "1000", capDecl.Value.String())

	assert.True(t, c.Items[2].(*ast.VariableDecl).Immutable)

	event := c.Items[3].(*ast.EventDef)
	require.Len(t, event.Params, 3)
	assert.True(t, event.Params[0].Indexed)
	assert.False(t, event.Params[2].Indexed)

	mod := c.Items[4].(*ast.ModifierDef)
	require.Len(t, mod.Body.Stmts, 2)
	assert.IsType(t, &ast.PlaceholderStmt{}, mod.Body.Stmts[1])

	ctor := c.Items[5].(*ast.FunctionDef)
	assert.Equal(t, ast.FunctionKindConstructor, ctor.Kind)
	assert.Equal(t, "payable", ctor.Mutability)
	require.Len(t, ctor.Modifiers, 1)
	assert.True(t, ctor.Modifiers[0].HasArgs)

	assert.Equal(t, ast.FunctionKindReceive, c.Items[6].(*ast.FunctionDef).Kind)
	assert.Equal(t, ast.FunctionKindFallback, c.Items[7].(*ast.FunctionDef).Kind)

	fn := c.Items[8].(*ast.FunctionDef)
	assert.True(t, fn.Virtual)
	assert.True(t, fn.Override)
}

func TestParseStatements(t *testing.T) {
	src := `contract C {
    mapping(uint => uint) x;
    function f(uint[] memory ks) public returns (uint total) {
        uint[] memory tmp = new uint[](2);
        (uint a, , bool ok) = g();
        (a, total) = (total, a);
        x[a] = 1;
        if (ok) { total++; } else total--;
        for (uint i = 0; i < ks.length; i++) { total += x[ks[i]]; }
        while (total > 10) { total /= 2; }
        do { total++; } while (total < 3);
        unchecked { x[0]--; }
        emit Done(total);
        if (total == 0) revert Empty();
        return total;
    }
}`
	unit := parseOK(t, src)
	fn := unit.Contracts()[0].Items[1].(*ast.FunctionDef)
	stmts := fn.Body.Stmts
	require.Len(t, stmts, 12)

	assert.IsType(t, &ast.VarDeclStmt{}, stmts[0])
	tuple := stmts[1].(*ast.VarDeclStmt)
	assert.True(t, tuple.Tuple)
	require.Len(t, tuple.Decls, 3)
	assert.Nil(t, tuple.Decls[1])
	assert.Equal(t, "g()", tuple.Value.String())

	assert.IsType(t, &ast.ExprStmt{}, stmts[2])
	assert.IsType(t, &ast.ExprStmt{}, stmts[3])
	ifStmt := stmts[4].(*ast.IfStmt)
	assert.IsType(t, &ast.ExprStmt{}, ifStmt.Else)

	forStmt := stmts[5].(*ast.ForStmt)
	assert.IsType(t, &ast.VarDeclStmt{}, forStmt.Init)
	assert.Equal(t, "i++", forStmt.Post.String())

	assert.IsType(t, &ast.WhileStmt{}, stmts[6])
	assert.IsType(t, &ast.DoWhileStmt{}, stmts[7])
	assert.True(t, stmts[8].(*ast.Block).Unchecked)
	assert.IsType(t, &ast.EmitStmt{}, stmts[9])
	assert.IsType(t, &ast.RevertStmt{}, stmts[10].(*ast.IfStmt).Then)
	assert.IsType(t, &ast.ReturnStmt{}, stmts[11])
}

func TestParseStatementPrinting(t *testing.T) {
	src := `contract C {
    function f() public {
        for (uint i = 0; i < 3; i++) {
            x[i] = i;
        }
        unchecked {
            x[0]--;
        }
        (uint a, , bool b) = g();
        do {
            a++;
        } while (b);
    }
}
`
	unit := parseOK(t, src)
	assert.Equal(t, src, unit.String())
}

func TestParseErrorRecovery(t *testing.T) {
	src := `contract C {
    function f() public {
        x[0] = 1
        x[1] = 2;
    }
    uint y;
}`
	unit, parseErrs, _ := ParseSource("test.sol", src)

	require.NotEmpty(t, parseErrs)
	assert.Contains(t, parseErrs[0].Message, "expected ';'")
	assert.Equal(t, 4, parseErrs[0].Position.Line)
	require.NotNil(t, unit)
	require.Len(t, unit.Contracts(), 1)
}

func TestParseAssignsMetadata(t *testing.T) {
	tracker := ast.NewNodeTracker()

	a, _, _ := ParseSourceWithTracker("a.sol", "contract A { uint x; }", tracker)
	b, _, _ := ParseSourceWithTracker("b.sol", "contract B { uint y; }", tracker)

	seen := map[ast.NodeID]bool{}
	for _, unit := range []*ast.SourceUnit{a, b} {
		ast.Inspect(unit, func(n ast.Node) bool {
			id := ast.ID(n)
			assert.NotZero(t, id, "node %s has no id", n.NodeType())
			assert.False(t, seen[id], "id %d assigned twice", id)
			seen[id] = true
			return true
		})
	}

	decl := b.Contracts()[0].Items[0]
	require.NotNil(t, decl.GetMetadata())
	assert.Equal(t, "uint y;", decl.GetMetadata().SourceText)
	assert.Equal(t, "b.sol", decl.NodePos().Filename)
}
