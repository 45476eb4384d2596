package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetGlobalModules(t *testing.T) {
	modules := GetGlobalModules()

	// Verify core namespaces exist
	assert.NotNil(t, modules["msg"], "msg namespace should exist")
	assert.NotNil(t, modules["block"], "block namespace should exist")
	assert.NotNil(t, modules["abi"], "abi namespace should exist")

	msg := modules["msg"]
	assert.Equal(t, "msg", msg.Name)
	assert.Equal(t, "address", msg.Members["sender"].Name)
	assert.Equal(t, "uint256", msg.Members["value"].Name)
	assert.Empty(t, msg.Functions, "msg should not export functions")

	abi := modules["abi"]
	encode := abi.Functions["encode"]
	assert.True(t, encode.Variadic)
	assert.Equal(t, "bytes", encode.ReturnType.Name)
	assert.Nil(t, abi.Functions["decode"].ReturnType)
}

func TestGetGlobalFunctions(t *testing.T) {
	functions := GetGlobalFunctions()

	keccak := functions["keccak256"]
	assert.Equal(t, "bytes32", keccak.ReturnType.Name)
	assert.Len(t, keccak.Parameters, 1)

	ecrecover := functions["ecrecover"]
	assert.Len(t, ecrecover.Parameters, 4)
	assert.Equal(t, "uint8", ecrecover.Parameters[1].Type.Name)

	assert.Nil(t, functions["require"].ReturnType)
}

func TestIsGlobal(t *testing.T) {
	assert.True(t, IsGlobal("msg"))
	assert.True(t, IsGlobal("keccak256"))
	assert.True(t, IsGlobal("this"))
	assert.False(t, IsGlobal("balances"))
	assert.Nil(t, GetModuleDefinition("unknown"))
}

func TestGlobalNamesSorted(t *testing.T) {
	names := GlobalNames()

	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "abi")
	assert.Contains(t, names, "selfdestruct")
}
