package maplib

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kr/pretty"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"mapshim/internal/ast"
	"mapshim/internal/errors"
	"mapshim/internal/instrument"
	"mapshim/internal/parser"
	"mapshim/internal/types"
)

const librarySource = `pragma solidity ^0.8.19;

contract C {
    mapping(uint => bool) flags;
}`

func newContext(t *testing.T, source string, opts ...instrument.Option) *instrument.Context {
	t.Helper()
	unit, parseErrors, _ := parser.ParseSource("test.sol", source)
	require.Empty(t, parseErrors)
	ctx, err := instrument.New([]*ast.SourceUnit{unit}, append([]instrument.Option{instrument.WithPrefix("m_")}, opts...)...)
	require.NoError(t, err)
	return ctx
}

func elementary(name string) types.Type {
	return types.NewElementary(name)
}

func TestLibraryText(t *testing.T) {
	ctx := newContext(t, librarySource)

	lib, err := Obtain(ctx, elementary("uint256"), elementary("bool"))
	require.NoError(t, err)

	expected := `library m_lib_mapping_uint256_to_bool {
    struct S {
        mapping(uint256 => bool) innerM;
    }
    function get(S storage m_arg_m, uint256 m_arg_key) internal view returns (bool) {
        return m_arg_m.innerM[m_arg_key];
    }
    function set(S storage m_arg_m, uint256 m_arg_key, bool m_arg_val) internal returns (bool) {
        m_arg_m.innerM[m_arg_key] = m_arg_val;
        return m_arg_m.innerM[m_arg_key];
    }
    function reset(S storage m_arg_m, uint256 m_arg_key) internal {
        delete m_arg_m.innerM[m_arg_key];
    }
}`
	assert.Equal(t, expected, lib.Decl.String())
	assert.Equal(t, types.Direct, lib.Strategy)
	assert.Equal(t, "m_lib_mapping_uint256_to_bool.S", lib.StructType().String())
}

func TestObtainIsIdempotent(t *testing.T) {
	ctx := newContext(t, librarySource)

	first, err := Obtain(ctx, elementary("uint"), elementary("bool"))
	require.NoError(t, err)
	second, err := Obtain(ctx, elementary("uint256"), elementary("bool"))
	require.NoError(t, err)

	assert.Same(t, first, second, "aliases share one library")
	assert.Equal(t, 1, ctx.Cache().Len())
	// pragma plus one library
	assert.Len(t, ctx.Aux.Items, 2)
	assert.Same(t, first.Decl, ctx.Aux.Items[1])
}

func TestNestedLevels(t *testing.T) {
	ctx := newContext(t, librarySource)

	array := &types.Array{Elem: elementary("uint256")}
	outer, err := Obtain(ctx, elementary("address"), &types.Mapping{Key: elementary("uint256"), Value: array})
	require.NoError(t, err)
	inner, err := Obtain(ctx, elementary("uint256"), array)
	require.NoError(t, err)

	assert.Same(t, inner, outer.Inner)
	assert.Equal(t, types.ReferenceOnly, outer.Strategy)
	assert.Equal(t, types.ArrayWrapped, inner.Strategy)
	assert.False(t, outer.HasSet())
	assert.True(t, inner.HasSet())

	var names []string
	for _, lib := range outer.Levels() {
		names = append(names, lib.Name)
	}
	want := []string{
		"m_lib_mapping_address_to_mapping_uint256_to_uint256_arr",
		"m_lib_mapping_uint256_to_uint256_arr",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("levels mismatch (-want +got):\n%s", diff)
	}

	// inner levels are emitted first
	require.Len(t, ctx.Aux.Items, 3)
	assert.Same(t, inner.Decl, ctx.Aux.Items[1])
	assert.Same(t, outer.Decl, ctx.Aux.Items[2])

	text := outer.Decl.String()
	assert.Contains(t, text, "mapping(address => m_lib_mapping_uint256_to_uint256_arr.S) innerM;")
	assert.Contains(t, text, "internal view returns (m_lib_mapping_uint256_to_uint256_arr.S storage)")
	assert.NotContains(t, text, "function set(")

	text = inner.Decl.String()
	assert.Contains(t, text, "uint256[] memory m_arg_val) internal returns (uint256[] storage)")
}

func TestStringKeysAreMemory(t *testing.T) {
	ctx := newContext(t, librarySource)

	lib, err := Obtain(ctx, elementary("string"), elementary("bytes"))
	require.NoError(t, err)

	text := lib.Decl.String()
	assert.Contains(t, text, "function get(S storage m_arg_m, string memory m_arg_key) internal view returns (bytes storage)")
	assert.Contains(t, text, "bytes memory m_arg_val")
	assert.False(t, lib.ReturnsValue())
}

func TestUnsupportedTypes(t *testing.T) {
	ctx := newContext(t, librarySource)

	_, err := Obtain(ctx, elementary("uint256"), elementary("fixed128x18"))
	var unsupported *errors.UnsupportedTypeError
	require.True(t, xerrors.As(err, &unsupported))
	assert.Equal(t, "fixed128x18", unsupported.Type)

	_, err = Obtain(ctx, &types.Array{Elem: elementary("uint256")}, elementary("bool"))
	require.True(t, xerrors.As(err, &unsupported))

	assert.Equal(t, 0, ctx.Cache().Len())
	assert.Len(t, ctx.Aux.Items, 1, "nothing is emitted for a failed request")
}

func TestMembersAvoidFileLevelNames(t *testing.T) {
	source := `struct S { uint a; }
contract get { }`
	ctx := newContext(t, source)

	value := &types.Struct{Name: "S", Fields: []types.Field{{Name: "a", Type: elementary("uint256")}}}
	lib, err := Obtain(ctx, elementary("uint256"), value)
	require.NoError(t, err)

	text := lib.Decl.String()
	assert.Contains(t, text, "struct S_1 {\n        mapping(uint256 => S) innerM;\n    }")
	assert.Contains(t, text, "function get_1(S_1 storage m_arg_m, uint256 m_arg_key)")
	assert.Contains(t, text, "function set(S_1 storage m_arg_m, uint256 m_arg_key, S memory m_arg_val)")
	assert.Contains(t, text, "function reset(S_1 storage m_arg_m, uint256 m_arg_key)")
	assert.NotContains(t, text, "struct S {")
	assert.Equal(t, lib.Name+".S_1", lib.StructType().String())

	assert.Equal(t, lib.Name+".get_1(x, 1)", lib.Call(GetFn, ast.NewIdentifier("x"), ast.NewNumber("1")).String())
}

func TestNameAvoidsInput(t *testing.T) {
	source := `contract m_lib_mapping_uint256_to_bool { }`
	ctx := newContext(t, source)

	lib, err := Obtain(ctx, elementary("uint256"), elementary("bool"))
	require.NoError(t, err)
	assert.Equal(t, "m_lib_mapping_uint256_to_bool_1", lib.Name)
}

func TestStepHelpers(t *testing.T) {
	ctx := newContext(t, librarySource)

	lib, err := Obtain(ctx, elementary("uint256"), elementary("uint8"))
	require.NoError(t, err)

	name, err := lib.Step(ctx, "++", true, false)
	require.NoError(t, err)
	assert.Equal(t, "postInc", name)

	again, err := lib.Step(ctx, "++", true, false)
	require.NoError(t, err)
	assert.Equal(t, name, again)

	name, err = lib.Step(ctx, "--", false, true)
	require.NoError(t, err)
	assert.Equal(t, "preDecUnchecked", name)

	assert.Equal(t, []string{"postInc", "preDecUnchecked"}, lib.Helpers())

	text := lib.Decl.String()
	assert.Contains(t, text, "function postInc(S storage m_arg_m, uint256 m_arg_key) internal returns (uint8) {")
	assert.Contains(t, text, "uint8 m_tmp_old = get(m_arg_m, m_arg_key);")
	assert.Contains(t, text, "set(m_arg_m, m_arg_key, m_tmp_old + 1);")
	assert.Contains(t, text, "return m_tmp_old;")
	assert.Contains(t, text, "unchecked {")
	assert.Contains(t, text, "return set(m_arg_m, m_arg_key, get(m_arg_m, m_arg_key) - 1);")
}

func TestCompoundHelpers(t *testing.T) {
	ctx := newContext(t, librarySource)

	lib, err := Obtain(ctx, elementary("address"), elementary("uint128"))
	require.NoError(t, err)

	name, err := lib.Compound(ctx, "+", false)
	require.NoError(t, err)
	assert.Equal(t, "addAssign", name)

	name, err = lib.Compound(ctx, "<<", true)
	require.NoError(t, err)
	assert.Equal(t, "shlAssignUnchecked", name)

	text := lib.Decl.String()
	assert.Contains(t, text, "function addAssign(S storage m_arg_m, address m_arg_key, uint128 m_arg_val) internal returns (uint128) {")
	assert.Contains(t, text, "return set(m_arg_m, m_arg_key, get(m_arg_m, m_arg_key) + m_arg_val);")
	assert.Contains(t, text, "address m_arg_key, uint256 m_arg_val) internal returns (uint128)")

	_, err = lib.Compound(ctx, "**", false)
	assert.Error(t, err)
}

func TestUncheckedBeforeCheckedArithmetic(t *testing.T) {
	ctx := newContext(t, librarySource, instrument.WithVersion("0.7.6"))

	lib, err := Obtain(ctx, elementary("uint256"), elementary("uint256"))
	require.NoError(t, err)

	name, err := lib.Compound(ctx, "-", true)
	require.NoError(t, err)
	assert.Equal(t, "subAssign", name)
	assert.NotContains(t, lib.Decl.String(), "unchecked")
}

func TestOperatorsNeedValueTypes(t *testing.T) {
	ctx := newContext(t, librarySource)

	lib, err := Obtain(ctx, elementary("uint256"), elementary("string"))
	require.NoError(t, err)

	_, err = lib.Compound(ctx, "+", false)
	var consistency *errors.ConsistencyError
	assert.True(t, xerrors.As(err, &consistency))

	_, err = lib.Step(ctx, "++", true, false)
	assert.True(t, xerrors.As(err, &consistency))

	flags, err := Obtain(ctx, elementary("uint256"), elementary("bool"))
	require.NoError(t, err)
	_, err = flags.Step(ctx, "++", false, false)
	assert.Error(t, err, "bool cannot be incremented")
}

var typePool = []types.Type{
	types.NewElementary("uint"),
	types.NewElementary("int8"),
	types.NewElementary("address"),
	types.NewElementary("bytes32"),
	types.NewElementary("string"),
	&types.Array{Elem: types.NewElementary("uint16"), Length: "4"},
	&types.Mapping{Key: types.NewElementary("uint"), Value: types.NewElementary("bool")},
}

func TestGenerationIsDeterministic(t *testing.T) {
	properties := gopter.NewProperties(nil)

	run := func(t *testing.T, requests []int) (*instrument.Context, string) {
		ctx := newContext(t, librarySource)
		for _, i := range requests {
			key := typePool[i%3]
			value := typePool[i]
			if _, err := Obtain(ctx, key, value); err != nil {
				return ctx, err.Error()
			}
		}
		return ctx, ctx.Aux.String()
	}

	properties.Property("equal requests print equal libraries", prop.ForAll(
		func(requests []int) bool {
			first, a := run(t, requests)
			second, b := run(t, requests)
			if diff := pretty.Diff(first.Cache().Keys(), second.Cache().Keys()); len(diff) > 0 {
				t.Log(diff)
				return false
			}
			return a == b
		},
		gen.SliceOf(gen.IntRange(0, len(typePool)-1)),
	))

	properties.Property("one library per signature", prop.ForAll(
		func(requests []int) bool {
			ctx, _ := run(t, requests)
			return ctx.Cache().Len() == len(ctx.Aux.Items)-1
		},
		gen.SliceOf(gen.IntRange(0, len(typePool)-1)),
	))

	properties.TestingRun(t)
}
