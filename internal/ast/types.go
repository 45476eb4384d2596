package ast

type NodeType int

const (
	// Special / error
	ILLEGAL NodeType = iota

	// Units and declarations
	SOURCE_UNIT
	PRAGMA
	IMPORT
	IDENT
	CONTRACT
	INHERITANCE_SPECIFIER
	STRUCT
	ENUM
	EVENT
	ERROR
	USING_FOR
	MODIFIER
	FUNCTION
	MODIFIER_INVOCATION
	VARIABLE_DECL

	// Types
	ELEMENTARY_TYPE
	USER_DEFINED_TYPE
	ARRAY_TYPE
	MAPPING_TYPE

	// Statements
	BLOCK
	VAR_DECL_STMT
	EXPR_STMT
	IF_STMT
	FOR_STMT
	WHILE_STMT
	DO_WHILE_STMT
	RETURN_STMT
	EMIT_STMT
	REVERT_STMT
	BREAK_STMT
	CONTINUE_STMT
	PLACEHOLDER_STMT

	// Expressions
	IDENTIFIER
	LITERAL
	INDEX_EXPR
	MEMBER_ACCESS_EXPR
	CALL_EXPR
	BINARY_EXPR
	UNARY_EXPR
	ASSIGN_EXPR
	CONDITIONAL_EXPR
	TUPLE_EXPR
	PAREN_EXPR
	ARRAY_LITERAL_EXPR
	NEW_EXPR
	ELEMENTARY_TYPE_EXPR
)

var nodeTypeNames = [...]string{
	ILLEGAL:               "ILLEGAL",
	SOURCE_UNIT:           "SOURCE_UNIT",
	PRAGMA:                "PRAGMA",
	IMPORT:                "IMPORT",
	IDENT:                 "IDENT",
	CONTRACT:              "CONTRACT",
	INHERITANCE_SPECIFIER: "INHERITANCE_SPECIFIER",
	STRUCT:                "STRUCT",
	ENUM:                  "ENUM",
	EVENT:                 "EVENT",
	ERROR:                 "ERROR",
	USING_FOR:             "USING_FOR",
	MODIFIER:              "MODIFIER",
	FUNCTION:              "FUNCTION",
	MODIFIER_INVOCATION:   "MODIFIER_INVOCATION",
	VARIABLE_DECL:         "VARIABLE_DECL",
	ELEMENTARY_TYPE:       "ELEMENTARY_TYPE",
	USER_DEFINED_TYPE:     "USER_DEFINED_TYPE",
	ARRAY_TYPE:            "ARRAY_TYPE",
	MAPPING_TYPE:          "MAPPING_TYPE",
	BLOCK:                 "BLOCK",
	VAR_DECL_STMT:         "VAR_DECL_STMT",
	EXPR_STMT:             "EXPR_STMT",
	IF_STMT:               "IF_STMT",
	FOR_STMT:              "FOR_STMT",
	WHILE_STMT:            "WHILE_STMT",
	DO_WHILE_STMT:         "DO_WHILE_STMT",
	RETURN_STMT:           "RETURN_STMT",
	EMIT_STMT:             "EMIT_STMT",
	REVERT_STMT:           "REVERT_STMT",
	BREAK_STMT:            "BREAK_STMT",
	CONTINUE_STMT:         "CONTINUE_STMT",
	PLACEHOLDER_STMT:      "PLACEHOLDER_STMT",
	IDENTIFIER:            "IDENTIFIER",
	LITERAL:               "LITERAL",
	INDEX_EXPR:            "INDEX_EXPR",
	MEMBER_ACCESS_EXPR:    "MEMBER_ACCESS_EXPR",
	CALL_EXPR:             "CALL_EXPR",
	BINARY_EXPR:           "BINARY_EXPR",
	UNARY_EXPR:            "UNARY_EXPR",
	ASSIGN_EXPR:           "ASSIGN_EXPR",
	CONDITIONAL_EXPR:      "CONDITIONAL_EXPR",
	TUPLE_EXPR:            "TUPLE_EXPR",
	PAREN_EXPR:            "PAREN_EXPR",
	ARRAY_LITERAL_EXPR:    "ARRAY_LITERAL_EXPR",
	NEW_EXPR:              "NEW_EXPR",
	ELEMENTARY_TYPE_EXPR:  "ELEMENTARY_TYPE_EXPR",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return "NodeType(?)"
	}
	return nodeTypeNames[t]
}
