package parser

import "unicode/utf8"

// Tokenize splits one source line into tokens. It never fails: characters
// outside the language become TokInvalid and scanning continues. The
// result always ends with a TokEnd token.
func Tokenize(line string) []Token {
	toks := make([]Token, 0, len(line)/2+1)
	for i := 0; i < len(line); {
		ch := line[i]
		if isSpace(ch) {
			i++
			continue
		}
		if isDigit(ch) {
			j := i + 1
			for j < len(line) && isDigit(line[j]) {
				j++
			}
			toks = append(toks, Token{Kind: TokNumber, Lexeme: line[i:j], Pos: i})
			i = j
			continue
		}
		if isLetter(ch) {
			j := i + 1
			for j < len(line) && (isLetter(line[j]) || isDigit(line[j])) {
				j++
			}
			word := line[i:j]
			kind, ok := keywords[word]
			if !ok {
				kind = TokIdent
			}
			toks = append(toks, Token{Kind: kind, Lexeme: word, Pos: i})
			i = j
			continue
		}
		if i+1 < len(line) {
			switch line[i : i+2] {
			case "==":
				toks = append(toks, Token{Kind: TokEqual, Lexeme: "==", Pos: i})
				i += 2
				continue
			case "!=":
				toks = append(toks, Token{Kind: TokNotEqual, Lexeme: "!=", Pos: i})
				i += 2
				continue
			}
		}
		kind := TokInvalid
		switch ch {
		case '+':
			kind = TokPlus
		case '-':
			kind = TokMinus
		case '*':
			kind = TokStar
		case '/':
			kind = TokSlash
		case '=':
			kind = TokAssign
		case '<':
			kind = TokLess
		case '>':
			kind = TokGreater
		case '(':
			kind = TokLParen
		case ')':
			kind = TokRParen
		}
		size := 1
		if ch >= utf8.RuneSelf {
			_, size = utf8.DecodeRuneInString(line[i:])
		}
		toks = append(toks, Token{Kind: kind, Lexeme: line[i : i+size], Pos: i})
		i += size
	}
	toks = append(toks, Token{Kind: TokEnd, Pos: len(line)})
	return toks
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
