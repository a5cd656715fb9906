package parser

import "strconv"

type TokenKind int

const (
	TokNumber TokenKind = iota
	TokIdent
	TokAssign
	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokPrint
	TokInput
	TokWhile
	TokIf
	TokElse
	TokLParen
	TokRParen
	TokLess
	TokGreater
	TokEqual
	TokNotEqual
	TokEnd
	TokInvalid
)

var tokenKindNames = [...]string{
	TokNumber:   "Number",
	TokIdent:    "Identifier",
	TokAssign:   "Assign",
	TokPlus:     "Plus",
	TokMinus:    "Minus",
	TokStar:     "Star",
	TokSlash:    "Slash",
	TokPrint:    "Print",
	TokInput:    "Input",
	TokWhile:    "While",
	TokIf:       "If",
	TokElse:     "Else",
	TokLParen:   "LeftParen",
	TokRParen:   "RightParen",
	TokLess:     "LessThan",
	TokGreater:  "GreaterThan",
	TokEqual:    "Equal",
	TokNotEqual: "NotEqual",
	TokEnd:      "End",
	TokInvalid:  "Invalid",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Token is one lexical unit. Pos is the byte offset of the lexeme in the
// source line.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Pos    int
}

func (t Token) String() string {
	if t.Kind == TokEnd {
		return "end of line"
	}
	return strconv.Quote(t.Lexeme)
}

var keywords = map[string]TokenKind{
	"PRINT": TokPrint,
	"INPUT": TokInput,
	"WHILE": TokWhile,
	"IF":    TokIf,
	"ELSE":  TokElse,
}
