package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapshim/internal/ast"
)

func prepareParser(expr string) *Parser {
	scanner := NewScanner(expr)
	tokens := scanner.ScanTokens()

	return NewParser("test_dummy", tokens)
}

func parseExprString(t *testing.T, src string) ast.Expr {
	t.Helper()
	parser := prepareParser(src)
	expr := parser.parseExpr()
	require.Empty(t, parser.Errors(), "parsing %q", src)
	require.True(t, parser.isAtEnd(), "trailing tokens after %q", src)
	return expr
}

func TestParseExpressionRoundTrip(t *testing.T) {
	cases := []string{
		"a + b * c",
		"x[0] = a = 2",
		"z[w[0] = w[1] + 3][int8(uint8(w[2]))] = 42",
		"x[0]++",
		"--x[0]",
		"delete s.x[k]",
		"ok ? a : b",
		"(a, , b)",
		"a.call{value: 1}(\"\")",
		"S({a: 1, b: 2})",
		"new uint[](3)",
		"address(this).balance",
		"payable(msg.sender).transfer(1 ether)",
		"x[k] <<= 2",
		"!(a && b) || c",
		"[1, 2, 3]",
		"type(uint).max",
	}

	for _, src := range cases {
		expr := parseExprString(t, src)
		assert.Equal(t, src, expr.String())
	}
}

func TestParsePrecedence(t *testing.T) {
	expr := parseExprString(t, "a + b * c")

	bin, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok, "expected BinaryExpr, got %T", expr)
	assert.Equal(t, "+", bin.Op)
	right, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", right.Op)

	// comparison binds looser than shifts and bitwise and
	expr = parseExprString(t, "a & b == c << 1")
	cmp, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "==", cmp.Op)
}

func TestParseExponentIsRightAssociative(t *testing.T) {
	expr := parseExprString(t, "2 ** 3 ** 2")

	bin := expr.(*ast.BinaryExpr)
	assert.Equal(t, "2", bin.Left.String())
	_, ok := bin.Right.(*ast.BinaryExpr)
	assert.True(t, ok, "expected right operand to be 3 ** 2")
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	expr := parseExprString(t, "x[1] = a = 2")

	outer, ok := expr.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, ast.ASSIGN, outer.Operator)
	inner, ok := outer.Value.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "a", inner.Target.String())
}

func TestParseCompoundAssignment(t *testing.T) {
	expr := parseExprString(t, "x[0] += v")

	assign := expr.(*ast.AssignExpr)
	assert.Equal(t, ast.PLUS_ASSIGN, assign.Operator)
	_, ok := assign.Target.(*ast.IndexExpr)
	assert.True(t, ok)
}

func TestParseUnaryForms(t *testing.T) {
	post := parseExprString(t, "x[0]--").(*ast.UnaryExpr)
	assert.True(t, post.Postfix)
	assert.Equal(t, "--", post.Op)

	pre := parseExprString(t, "++x[0]").(*ast.UnaryExpr)
	assert.False(t, pre.Postfix)
	assert.Equal(t, "++", pre.Op)

	del := parseExprString(t, "delete x[0]").(*ast.UnaryExpr)
	assert.Equal(t, "delete", del.Op)
}

func TestParseCallOptionsAndNamedArgs(t *testing.T) {
	call := parseExprString(t, `to.call{value: v, gas: 5000}("")`).(*ast.CallExpr)
	require.Len(t, call.Options, 2)
	assert.Equal(t, "value", call.Options[0].Name)
	assert.Equal(t, "gas", call.Options[1].Name)
	assert.Nil(t, call.ArgNames)

	named := parseExprString(t, "S({a: 1, b: x[0]})").(*ast.CallExpr)
	assert.Equal(t, []string{"a", "b"}, named.ArgNames)
	require.Len(t, named.Args, 2)
	assert.Equal(t, "x[0]", named.Args[1].String())
}

func TestParseNumberUnits(t *testing.T) {
	lit := parseExprString(t, "2 days").(*ast.Literal)
	assert.Equal(t, "2", lit.Value)
	assert.Equal(t, "days", lit.Unit)
}

func TestParseTupleHoles(t *testing.T) {
	tuple := parseExprString(t, "(, b)").(*ast.TupleExpr)
	require.Len(t, tuple.Elements, 2)
	assert.Nil(t, tuple.Elements[0])

	paren := parseExprString(t, "(a)")
	_, ok := paren.(*ast.ParenExpr)
	assert.True(t, ok)
}

func TestParseExpressionError(t *testing.T) {
	parser := prepareParser("a + ;")
	parser.parseExpr()

	require.NotEmpty(t, parser.Errors())
	assert.Contains(t, parser.Errors()[0].Message, "unexpected token in expression")
}
