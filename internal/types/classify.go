package types

import (
	"mapshim/internal/builtins"
	"mapshim/internal/errors"
)

// Strategy is how a map value is stored and handed out by a wrapper library
type Strategy int

const (
	// Direct values are read by value or storage pointer and written with set
	Direct Strategy = iota
	// ArrayWrapped values are arrays; set copies the array, get hands out a
	// storage pointer for length, index, push and pop
	ArrayWrapped
	// ReferenceOnly values transitively contain a mapping and are never copied
	ReferenceOnly
)

func (s Strategy) String() string {
	switch s {
	case Direct:
		return "direct"
	case ArrayWrapped:
		return "arrayWrapped"
	case ReferenceOnly:
		return "referenceOnly"
	default:
		return "unknown"
	}
}

// StorageStrategy classifies a map value type
func StorageStrategy(v Type) (Strategy, error) {
	if err := checkSupported(v, map[*Struct]bool{}); err != nil {
		return Direct, err
	}
	if ContainsMapping(v) {
		return ReferenceOnly, nil
	}
	if _, ok := v.(*Array); ok {
		return ArrayWrapped, nil
	}
	return Direct, nil
}

// CheckKey rejects key types that have no mapping key encoding
func CheckKey(k Type) error {
	switch k := k.(type) {
	case *Elementary:
		if builtins.IsFixedPoint(k.Name) {
			return unsupported(k, "fixed-point types have no storage encoding")
		}
		return nil
	case *Enum, *Contract:
		return nil
	default:
		return unsupported(k, "mapping keys must be elementary types, enums or contracts")
	}
}

// IsValueType reports whether values of t are copied on assignment. The
// wrapper returns value types by value and everything else as a storage
// pointer.
func IsValueType(t Type) bool {
	switch t := t.(type) {
	case *Elementary:
		return builtins.IsValueType(t.Name) || t.Kind == builtins.AddressPayable
	case *Enum, *Contract:
		return true
	default:
		return false
	}
}

// IsDynamicBytes reports string and bytes, which need a data location
// even though they are elementary
func IsDynamicBytes(t Type) bool {
	e, ok := t.(*Elementary)
	return ok && (e.Kind == builtins.String || e.Kind == builtins.Bytes)
}

// ContainsMapping reports whether t is or transitively contains a mapping
func ContainsMapping(t Type) bool {
	return containsMapping(t, map[*Struct]bool{})
}

func containsMapping(t Type, visited map[*Struct]bool) bool {
	switch t := t.(type) {
	case *Mapping:
		return true
	case *Array:
		return containsMapping(t.Elem, visited)
	case *Struct:
		if visited[t] {
			return false
		}
		visited[t] = true
		for _, f := range t.Fields {
			if containsMapping(f.Type, visited) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func checkSupported(t Type, visited map[*Struct]bool) error {
	switch t := t.(type) {
	case *Elementary:
		if builtins.IsFixedPoint(t.Name) {
			return unsupported(t, "fixed-point types have no storage encoding")
		}
		return nil
	case *Array:
		return checkSupported(t.Elem, visited)
	case *Mapping:
		if err := CheckKey(t.Key); err != nil {
			return err
		}
		return checkSupported(t.Value, visited)
	case *Struct:
		if visited[t] {
			return nil
		}
		visited[t] = true
		for _, f := range t.Fields {
			if err := checkSupported(f.Type, visited); err != nil {
				return err
			}
		}
		return nil
	case *Enum, *Contract:
		return nil
	default:
		return unsupported(t, "unknown type")
	}
}

func unsupported(t Type, reason string) error {
	return &errors.UnsupportedTypeError{Type: t.String(), Reason: reason}
}
