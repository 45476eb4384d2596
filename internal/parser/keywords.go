package parser

var KEYWORDS = map[string]TokenType{
	"pragma":      PRAGMA,
	"import":      IMPORT,
	"abstract":    ABSTRACT,
	"contract":    CONTRACT,
	"interface":   INTERFACE,
	"library":     LIBRARY,
	"is":          IS,
	"struct":      STRUCT,
	"enum":        ENUM,
	"event":       EVENT,
	"modifier":    MODIFIER,
	"function":    FUNCTION,
	"constructor": CONSTRUCTOR,
	"fallback":    FALLBACK,
	"receive":     RECEIVE,
	"returns":     RETURNS,
	"return":      RETURN,
	"mapping":     MAPPING,
	"using":       USING,
	"for":         FOR,
	"if":          IF,
	"else":        ELSE,
	"while":       WHILE,
	"do":          DO,
	"break":       BREAK,
	"continue":    CONTINUE,
	"emit":        EMIT,
	"new":         NEW,
	"delete":      DELETE,
	"true":        TRUE,
	"false":       FALSE,
	"unchecked":   UNCHECKED,
	"public":      PUBLIC,
	"private":     PRIVATE,
	"internal":    INTERNAL,
	"external":    EXTERNAL,
	"pure":        PURE,
	"view":        VIEW,
	"payable":     PAYABLE,
	"constant":    CONSTANT,
	"immutable":   IMMUTABLE,
	"virtual":     VIRTUAL,
	"override":    OVERRIDE,
	"memory":      MEMORY,
	"storage":     STORAGE,
	"calldata":    CALLDATA,
	"indexed":     INDEXED,
	"anonymous":   ANONYMOUS,
}

// symbols maps operator and punctuation lexemes to their token types
var symbols = map[string]TokenType{
	"+":   PLUS,
	"++":  INCREMENT,
	"-":   MINUS,
	"--":  DECREMENT,
	"*":   STAR,
	"**":  STAR_STAR,
	"/":   SLASH,
	"%":   PERCENT,
	"!":   BANG,
	"!=":  BANG_EQUAL,
	"=":   EQUAL,
	"==":  EQUAL_EQUAL,
	"=>":  ARROW,
	"<":   LESS,
	"<=":  LESS_EQUAL,
	"<<":  LESS_LESS,
	">":   GREATER,
	">=":  GREATER_EQUAL,
	">>":  GREATER_GREATER,
	"&&":  AND,
	"&":   AMPERSAND,
	"||":  OR,
	"|":   PIPE,
	"^":   CARET,
	"~":   TILDE,
	"?":   QUESTION,
	"+=":  PLUS_EQUAL,
	"-=":  MINUS_EQUAL,
	"*=":  STAR_EQUAL,
	"/=":  SLASH_EQUAL,
	"%=":  PERCENT_EQUAL,
	"|=":  PIPE_EQUAL,
	"&=":  AMPERSAND_EQUAL,
	"^=":  CARET_EQUAL,
	"<<=": LESS_LESS_EQUAL,
	">>=": GREATER_GREATER_EQUAL,
	",":   COMMA,
	".":   DOT,
	";":   SEMICOLON,
	":":   COLON,
	"(":   LEFT_PAREN,
	")":   RIGHT_PAREN,
	"{":   LEFT_BRACE,
	"}":   RIGHT_BRACE,
	"[":   LEFT_BRACKET,
	"]":   RIGHT_BRACKET,
}

// units are the literal sub-denominations accepted after a number
var units = map[string]bool{
	"wei":     true,
	"gwei":    true,
	"ether":   true,
	"seconds": true,
	"minutes": true,
	"hours":   true,
	"days":    true,
	"weeks":   true,
}
