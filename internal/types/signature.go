package types

import "strings"

func (e *Elementary) String() string {
	return e.Name
}

func (a *Array) String() string {
	return a.Elem.String() + "[" + a.Length + "]"
}

func (m *Mapping) String() string {
	return "mapping(" + m.Key.String() + " => " + m.Value.String() + ")"
}

func (s *Struct) String() string {
	return "struct " + s.QualifiedName()
}

func (e *Enum) String() string {
	return "enum " + e.QualifiedName()
}

func (c *Contract) String() string {
	return "contract " + c.Name
}

// CanonicalSignature returns the canonical type string. Structurally equal
// types always produce the same signature, however they were spelled.
func CanonicalSignature(t Type) string {
	return t.String()
}

// Mangle renders a type as an identifier fragment for generated names
func Mangle(t Type) string {
	switch t := t.(type) {
	case *Elementary:
		return strings.ReplaceAll(t.Name, " ", "_")
	case *Array:
		return Mangle(t.Elem) + "_arr" + mangleLength(t.Length)
	case *Mapping:
		return "mapping_" + Mangle(t.Key) + "_to_" + Mangle(t.Value)
	case *Struct:
		return strings.ReplaceAll(t.QualifiedName(), ".", "_")
	case *Enum:
		return strings.ReplaceAll(t.QualifiedName(), ".", "_")
	case *Contract:
		return t.Name
	default:
		panic("unreachable")
	}
}

// mangleLength keeps only identifier characters of a fixed array length
func mangleLength(length string) string {
	var b strings.Builder
	for _, r := range length {
		if r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
