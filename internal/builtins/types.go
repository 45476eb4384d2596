package builtins

import (
	"fmt"
	"strconv"
	"strings"
)

// BuiltinKind classifies the elementary Solidity types
type BuiltinKind string

const (
	Bool           BuiltinKind = "bool"
	Address        BuiltinKind = "address"
	AddressPayable BuiltinKind = "address payable"
	Uint           BuiltinKind = "uint"
	Int            BuiltinKind = "int"
	FixedBytes     BuiltinKind = "bytesN"
	String         BuiltinKind = "string"
	Bytes          BuiltinKind = "bytes"
	Fixed          BuiltinKind = "fixed"
	Ufixed         BuiltinKind = "ufixed"
)

// aliases maps shorthand type names to their canonical spelling
var aliases = map[string]string{
	"uint":   "uint256",
	"int":    "int256",
	"byte":   "bytes1",
	"fixed":  "fixed128x18",
	"ufixed": "ufixed128x18",
}

// BuiltinTypes contains every elementary type name with a fixed spelling
var BuiltinTypes = map[string]BuiltinKind{
	"bool":    Bool,
	"address": Address,
	"string":  String,
	"bytes":   Bytes,
	"byte":    FixedBytes,
	"uint":    Uint,
	"int":     Int,
	"fixed":   Fixed,
	"ufixed":  Ufixed,
}

func init() {
	for bits := 8; bits <= 256; bits += 8 {
		BuiltinTypes[fmt.Sprintf("uint%d", bits)] = Uint
		BuiltinTypes[fmt.Sprintf("int%d", bits)] = Int
	}
	for n := 1; n <= 32; n++ {
		BuiltinTypes[fmt.Sprintf("bytes%d", n)] = FixedBytes
	}
}

// Lookup returns the kind of an elementary type name
func Lookup(name string) (BuiltinKind, bool) {
	if kind, ok := BuiltinTypes[name]; ok {
		return kind, true
	}
	if rest, ok := strings.CutPrefix(name, "ufixed"); ok && validFixedSuffix(rest) {
		return Ufixed, true
	}
	if rest, ok := strings.CutPrefix(name, "fixed"); ok && validFixedSuffix(rest) {
		return Fixed, true
	}
	return "", false
}

// IsBuiltinType checks if a type name is an elementary type
func IsBuiltinType(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Canonical returns the canonical spelling of an elementary type name
func Canonical(name string) string {
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}

// IsIntegerType checks if a type is a signed or unsigned integer type
func IsIntegerType(name string) bool {
	kind, ok := Lookup(name)
	return ok && (kind == Uint || kind == Int)
}

// IsFixedPoint reports whether the name denotes a fixed-point type
func IsFixedPoint(name string) bool {
	kind, ok := Lookup(name)
	return ok && (kind == Fixed || kind == Ufixed)
}

// IsValueType reports whether values of this elementary type are copied
// rather than referenced
func IsValueType(name string) bool {
	kind, ok := Lookup(name)
	if !ok {
		return false
	}
	return kind != String && kind != Bytes
}

// validFixedSuffix accepts the "MxN" part of fixedMxN
func validFixedSuffix(s string) bool {
	m, n, ok := strings.Cut(s, "x")
	if !ok {
		return false
	}
	bits, err := strconv.Atoi(m)
	if err != nil || bits < 8 || bits > 256 || bits%8 != 0 {
		return false
	}
	decimals, err := strconv.Atoi(n)
	return err == nil && decimals >= 0 && decimals <= 80
}
