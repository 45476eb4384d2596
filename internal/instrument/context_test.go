package instrument

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapshim/internal/ast"
	"mapshim/internal/parser"
)

func parseUnit(t *testing.T, source string) *ast.SourceUnit {
	t.Helper()
	unit, parseErrors, _ := parser.ParseSource("test.sol", source)
	require.Empty(t, parseErrors)
	return unit
}

func TestVersionFromPragma(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"pragma solidity ^0.8.19; contract C {}", "v0.8.19"},
		{"pragma solidity >=0.7.0 <0.9.0; contract C {}", "v0.7.0"},
		{"pragma abicoder v2; pragma solidity 0.6; contract C {}", "v0.6.0"},
		{"contract C {}", DefaultVersion},
	}
	for _, c := range cases {
		ctx, err := New([]*ast.SourceUnit{parseUnit(t, c.source)})
		require.NoError(t, err, c.source)
		assert.Equal(t, c.want, ctx.Version(), c.source)
	}
}

func TestCheckedArithmetic(t *testing.T) {
	old, err := New(nil, WithVersion("0.7.6"))
	require.NoError(t, err)
	assert.False(t, old.CheckedArithmetic())
	assert.True(t, old.AtLeast("0.7"))

	current, err := New(nil, WithVersion("v0.8.19"))
	require.NoError(t, err)
	assert.True(t, current.CheckedArithmetic())

	_, err = New(nil, WithVersion("latest"))
	assert.Error(t, err)
}

func TestAuxUnit(t *testing.T) {
	unit := parseUnit(t, "pragma solidity ^0.8.0;\n\ncontract C {}")
	ctx, err := New([]*ast.SourceUnit{unit}, WithAuxPath("aux.sol"))
	require.NoError(t, err)

	assert.Equal(t, "aux.sol", ctx.Aux.Path)
	assert.Equal(t, "pragma solidity ^0.8.0;\n", ctx.Aux.String())

	lib := &ast.ContractDef{Kind: ast.ContractKindLibrary, Name: ast.Ident{Value: "L"}}
	ctx.Emit(lib)
	assert.Equal(t, "pragma solidity ^0.8.0;\n\nlibrary L {}\n", ctx.Aux.String())
	assert.NotZero(t, ast.ID(lib))
	assert.True(t, lib.GetMetadata().Generated)
}

func TestUnitsShareOneIDSpace(t *testing.T) {
	first := parseUnit(t, "contract A {}")
	second := parseUnit(t, "contract B {}")
	require.Equal(t, ast.ID(first), ast.ID(second))

	ctx, err := New([]*ast.SourceUnit{first, second})
	require.NoError(t, err)

	assert.NotEqual(t, ast.ID(first), ast.ID(second))
	assert.NotEqual(t, ast.ID(ctx.Aux), ast.ID(first))
}

func TestCache(t *testing.T) {
	ctx, err := New(nil)
	require.NoError(t, err)
	cache := ctx.Cache()

	assert.True(t, cache.Store("b", 1))
	assert.True(t, cache.Store("a", 2))
	assert.False(t, cache.Store("b", 3))

	entry, ok := cache.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, 1, entry)
	assert.Equal(t, []string{"b", "a"}, cache.Keys())
	assert.Equal(t, 2, cache.Len())
}

func TestContextsAreIndependent(t *testing.T) {
	t.Parallel()

	for i := 0; i < 2; i++ {
		t.Run("run", func(t *testing.T) {
			t.Parallel()
			ctx, err := New([]*ast.SourceUnit{parseUnit(t, "contract C { mapping(uint => uint) x; }")})
			require.NoError(t, err)
			name, err := ctx.Naming.FreshName("lib", "x")
			require.NoError(t, err)
			assert.Equal(t, "__mapshim_lib_x", name)
		})
	}
}
