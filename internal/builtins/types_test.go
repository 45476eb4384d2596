package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		kind BuiltinKind
		ok   bool
	}{
		{"uint", Uint, true},
		{"uint8", Uint, true},
		{"uint256", Uint, true},
		{"uint7", "", false},
		{"int128", Int, true},
		{"bytes1", FixedBytes, true},
		{"bytes32", FixedBytes, true},
		{"bytes33", "", false},
		{"byte", FixedBytes, true},
		{"bytes", Bytes, true},
		{"string", String, true},
		{"address", Address, true},
		{"bool", Bool, true},
		{"fixed", Fixed, true},
		{"fixed128x18", Fixed, true},
		{"ufixed64x10", Ufixed, true},
		{"fixed7x1", "", false},
		{"Token", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := Lookup(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "uint256", Canonical("uint"))
	assert.Equal(t, "int256", Canonical("int"))
	assert.Equal(t, "bytes1", Canonical("byte"))
	assert.Equal(t, "uint8", Canonical("uint8"))
	assert.Equal(t, "address", Canonical("address"))
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsIntegerType("uint64"))
	assert.False(t, IsIntegerType("bytes8"))
	assert.True(t, IsFixedPoint("ufixed"))
	assert.False(t, IsFixedPoint("uint"))
	assert.True(t, IsValueType("bytes4"))
	assert.False(t, IsValueType("bytes"))
	assert.False(t, IsValueType("string"))
}
