package errors

// Error codes for mapshim
// These codes are used in error messages and documentation
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: Name resolution errors
// E0100-E0199: Parser errors
// E0200-E0299: Type system errors
// E0400-E0499: Interposition errors
// E0900-E0999: Tooling errors

const (
	// E0001: Type name does not resolve to a struct, enum or contract
	ErrorUndefinedType = "E0001"

	// E0002: Contract named by a target or inheritance list does not exist
	ErrorUndefinedContract = "E0002"

	// E0003: Target variable does not exist in its contract
	ErrorUndefinedVariable = "E0003"

	// E0005: Struct field access errors
	ErrorFieldNotFound = "E0005"

	// E0100: Unexpected token
	ErrorUnexpectedToken = "E0100"

	// E0101: Malformed token (unterminated string, stray character)
	ErrorInvalidToken = "E0101"

	// E0200: No storage encoding exists for the type
	ErrorUnsupportedType = "E0200"

	// E0201: Map key type is not a value type, string or bytes
	ErrorInvalidMapKey = "E0201"

	// E0400: Field path does not resolve to a map-typed declaration
	ErrorUnresolvedTarget = "E0400"

	// E0401: Rewritten tree would contain a dangling or mismatched reference
	ErrorConsistency = "E0401"

	// E0402: Whole map used where it cannot be interposed
	ErrorEscapingMapReference = "E0402"

	// E0900: Naming resolver ran out of suffixes
	ErrorNameCollisionExhausted = "E0900"

	// E0901: Invalid configuration file or flag
	ErrorInvalidConfig = "E0901"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUndefinedType:
		return "Type name is not declared"
	case ErrorUndefinedContract:
		return "Contract is not declared"
	case ErrorUndefinedVariable:
		return "Variable is not declared in the contract"
	case ErrorFieldNotFound:
		return "Struct field does not exist"
	case ErrorUnexpectedToken:
		return "Parser found an unexpected token"
	case ErrorInvalidToken:
		return "Source contains a malformed token"
	case ErrorUnsupportedType:
		return "Type has no storage encoding inside a map wrapper"
	case ErrorInvalidMapKey:
		return "Map keys must be value types, string or bytes"
	case ErrorUnresolvedTarget:
		return "Interposition target does not resolve to a map"
	case ErrorConsistency:
		return "Interposition would produce an inconsistent tree"
	case ErrorEscapingMapReference:
		return "Interposed map is referenced without indexing"
	case ErrorNameCollisionExhausted:
		return "No free identifier left for a generated symbol"
	case ErrorInvalidConfig:
		return "Configuration is invalid"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Name Resolution"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0200" && code < "E0300":
		return "Type System"
	case code >= "E0400" && code < "E0500":
		return "Interposition"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	default:
		return "Unknown"
	}
}
