package ast

type AssignOperator int

const (
	// Special / error
	ILLEGAL_ASSIGN AssignOperator = iota
	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	PIPE_ASSIGN
	AMPERSAND_ASSIGN
	CARET_ASSIGN
	SHL_ASSIGN
	SAR_ASSIGN
)

var assignOperatorText = map[AssignOperator]string{
	ASSIGN:           "=",
	PLUS_ASSIGN:      "+=",
	MINUS_ASSIGN:     "-=",
	STAR_ASSIGN:      "*=",
	SLASH_ASSIGN:     "/=",
	PERCENT_ASSIGN:   "%=",
	PIPE_ASSIGN:      "|=",
	AMPERSAND_ASSIGN: "&=",
	CARET_ASSIGN:     "^=",
	SHL_ASSIGN:       "<<=",
	SAR_ASSIGN:       ">>=",
}

func (op AssignOperator) String() string {
	if text, ok := assignOperatorText[op]; ok {
		return text
	}
	return "ILLEGAL_ASSIGN"
}

// BinaryOp returns the binary operator a compound assignment applies,
// or "" for plain assignment
func (op AssignOperator) BinaryOp() string {
	if op == ASSIGN || op == ILLEGAL_ASSIGN {
		return ""
	}
	text := op.String()
	return text[:len(text)-1]
}

// AssignOperatorFromText maps operator text such as "+=" to its AssignOperator
func AssignOperatorFromText(text string) AssignOperator {
	for op, t := range assignOperatorText {
		if t == text {
			return op
		}
	}
	return ILLEGAL_ASSIGN
}
