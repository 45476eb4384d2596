package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ident(name string) *Identifier {
	return &Identifier{Name: name}
}

func num(v string) *Literal {
	return &Literal{Kind: LiteralNumber, Value: v}
}

func TestExpressionString(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expr
		expected string
	}{
		{
			name:     "index",
			expr:     &IndexExpr{Target: &IndexExpr{Target: ident("z"), Index: ident("a")}, Index: num("1")},
			expected: "z[a][1]",
		},
		{
			name:     "member access",
			expr:     &MemberAccessExpr{Target: ident("msg"), Member: "sender"},
			expected: "msg.sender",
		},
		{
			name: "compound assignment",
			expr: &AssignExpr{
				Target:   &IndexExpr{Target: ident("x"), Index: num("0")},
				Operator: PLUS_ASSIGN,
				Value:    num("2"),
			},
			expected: "x[0] += 2",
		},
		{
			name:     "postfix increment",
			expr:     &UnaryExpr{Op: "++", Value: ident("i"), Postfix: true},
			expected: "i++",
		},
		{
			name:     "delete",
			expr:     &UnaryExpr{Op: "delete", Value: &IndexExpr{Target: ident("m"), Index: ident("k")}},
			expected: "delete m[k]",
		},
		{
			name:     "literal with unit",
			expr:     &Literal{Kind: LiteralNumber, Value: "1", Unit: "ether"},
			expected: "1 ether",
		},
		{
			name: "call with options",
			expr: &CallExpr{
				Callee:  &MemberAccessExpr{Target: ident("to"), Member: "call"},
				Options: []NamedArg{{Name: "value", Value: num("1")}},
				Args:    []Expr{&Literal{Kind: LiteralString, Value: `""`}},
			},
			expected: `to.call{value: 1}("")`,
		},
		{
			name: "named arguments",
			expr: &CallExpr{
				Callee:   ident("S"),
				Args:     []Expr{num("1"), num("2")},
				ArgNames: []string{"a", "b"},
			},
			expected: "S({a: 1, b: 2})",
		},
		{
			name:     "tuple with hole",
			expr:     &TupleExpr{Elements: []Expr{nil, ident("b")}},
			expected: "(, b)",
		},
		{
			name: "conversion",
			expr: &CallExpr{
				Callee: &ElementaryTypeExpr{Type: &ElementaryTypeName{Name: "int8"}},
				Args:   []Expr{ident("v")},
			},
			expected: "int8(v)",
		},
		{
			name: "conditional in parens",
			expr: &ParenExpr{Value: &ConditionalExpr{
				Cond: ident("ok"),
				Then: num("1"),
				Else: num("2"),
			}},
			expected: "(ok ? 1 : 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.expr.String())
		})
	}
}

func TestTypeNameString(t *testing.T) {
	mapping := &MappingTypeName{
		Key: &ElementaryTypeName{Name: "address"},
		Value: &MappingTypeName{
			Key:   &ElementaryTypeName{Name: "uint256"},
			Value: &ArrayTypeName{Base: &UserDefinedTypeName{Path: "C.S"}, Length: num("3")},
		},
	}
	assert.Equal(t, "mapping(address => mapping(uint256 => C.S[3]))", mapping.String())

	payable := &ElementaryTypeName{Name: "address", Payable: true}
	assert.Equal(t, "address payable", payable.String())

	dynamic := &ArrayTypeName{Base: &ElementaryTypeName{Name: "bytes32"}}
	assert.Equal(t, "bytes32[]", dynamic.String())
}

func TestVariableDeclString(t *testing.T) {
	v := &VariableDecl{
		Kind:       VarKindState,
		Type:       &ElementaryTypeName{Name: "uint256"},
		Name:       Ident{Value: "total"},
		Visibility: "public",
		Constant:   true,
		Value:      num("10"),
	}
	assert.Equal(t, "uint256 public constant total = 10", v.String())

	param := &VariableDecl{
		Kind:     VarKindParam,
		Type:     &ElementaryTypeName{Name: "string"},
		Name:     Ident{Value: "key"},
		Location: "memory",
	}
	assert.Equal(t, "string memory key", param.String())
}

func TestContractString(t *testing.T) {
	contract := &ContractDef{
		Kind: ContractKindContract,
		Name: Ident{Value: "Token"},
		Bases: []*InheritanceSpecifier{
			{Name: "Ownable"},
		},
		Items: []ContractItem{
			&VariableDecl{
				Kind: VarKindState,
				Type: &MappingTypeName{
					Key:   &ElementaryTypeName{Name: "address"},
					Value: &ElementaryTypeName{Name: "uint"},
				},
				Name: Ident{Value: "balances"},
			},
			&FunctionDef{
				Kind:       FunctionKindFunction,
				Name:       Ident{Value: "get"},
				Params:     []*VariableDecl{{Kind: VarKindParam, Type: &ElementaryTypeName{Name: "address"}, Name: Ident{Value: "a"}}},
				Returns:    []*VariableDecl{{Kind: VarKindReturn, Type: &ElementaryTypeName{Name: "uint"}}},
				Visibility: "public",
				Mutability: "view",
				Body: &Block{Stmts: []Stmt{
					&ReturnStmt{Value: &IndexExpr{Target: ident("balances"), Index: ident("a")}},
				}},
			},
		},
	}

	result := contract.String()

	assert.Contains(t, result, "contract Token is Ownable {")
	assert.Contains(t, result, "\n    mapping(address => uint) balances;")
	assert.Contains(t, result, "\n    function get(address a) public view returns (uint) {")
	assert.Contains(t, result, "\n        return balances[a];")
}

func TestEmptyBlockString(t *testing.T) {
	fn := &FunctionDef{
		Kind:       FunctionKindConstructor,
		Visibility: "",
		Body:       &Block{},
	}
	assert.Equal(t, "constructor() {}", fn.String())

	decl := &FunctionDef{
		Kind:       FunctionKindFunction,
		Name:       Ident{Value: "f"},
		Visibility: "external",
	}
	assert.Equal(t, "function f() external;", decl.String())
}

func TestUncheckedBlockString(t *testing.T) {
	block := &Block{
		Unchecked: true,
		Stmts: []Stmt{
			&ExprStmt{Expr: &UnaryExpr{Op: "++", Value: ident("i"), Postfix: true}},
		},
	}
	result := block.String()
	assert.Contains(t, result, "unchecked {")
	assert.Contains(t, result, "i++;")
}

func TestAssignOperator(t *testing.T) {
	assert.Equal(t, "+", PLUS_ASSIGN.BinaryOp())
	assert.Equal(t, "<<", SHL_ASSIGN.BinaryOp())
	assert.Equal(t, "", ASSIGN.BinaryOp())
	assert.Equal(t, SAR_ASSIGN, AssignOperatorFromText(">>="))
	assert.Equal(t, ILLEGAL_ASSIGN, AssignOperatorFromText("=>"))
}
