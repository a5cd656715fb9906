package parser

import (
	"strconv"

	"github.com/gosuda/tinybasic/ast"
)

const maxNesting = 256

// ParseLine tokenizes and parses one source line.
func ParseLine(line string) (ast.Statement, error) {
	return Parse(Tokenize(line))
}

// Parse builds one statement from the front of toks. Tokens after a
// complete statement are ignored, so "PRINT 1 2" prints 1; Rest reports
// them. On any mismatch it returns a nil statement and a *SyntaxError.
func Parse(toks []Token) (ast.Statement, error) {
	stmt, _, err := parse(toks)
	return stmt, err
}

// Rest parses toks like Parse and also returns the tokens the statement
// did not consume, without the final End token.
func Rest(toks []Token) (ast.Statement, []Token, error) {
	return parse(toks)
}

func parse(toks []Token) (ast.Statement, []Token, error) {
	p := &stmtParser{tokens: toks}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, nil, err
	}
	var rest []Token
	for p.peek().Kind != TokEnd {
		rest = append(rest, p.next())
	}
	return stmt, rest, nil
}

type stmtParser struct {
	tokens []Token
	pos    int
	depth  int
}

func (p *stmtParser) peek() Token {
	if p.pos >= len(p.tokens) {
		end := 0
		if n := len(p.tokens); n > 0 {
			end = p.tokens[n-1].Pos
		}
		return Token{Kind: TokEnd, Pos: end}
	}
	return p.tokens[p.pos]
}

func (p *stmtParser) next() Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *stmtParser) errorf(expected string) *SyntaxError {
	t := p.peek()
	return &SyntaxError{Pos: t.Pos, Found: t, Expected: expected}
}

func (p *stmtParser) enter() error {
	p.depth++
	if p.depth > maxNesting {
		return p.errorf("")
	}
	return nil
}

func (p *stmtParser) leave() {
	p.depth--
}

func (p *stmtParser) parseStatement() (ast.Statement, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.peek().Kind {
	case TokPrint:
		p.next()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.PrintStmt{Expr: e}, nil
	case TokInput:
		p.next()
		if p.peek().Kind != TokIdent {
			return nil, p.errorf("variable name")
		}
		return ast.InputStmt{Name: p.next().Lexeme}, nil
	case TokWhile:
		p.next()
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		body, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		return ast.WhileStmt{Cond: cond, Body: body}, nil
	case TokIf:
		p.next()
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		then, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmt := ast.IfStmt{Cond: cond, Then: then}
		if p.peek().Kind == TokElse {
			p.next()
			els, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			stmt.Else = els
		}
		return stmt, nil
	case TokIdent:
		name := p.next().Lexeme
		if p.peek().Kind != TokAssign {
			return nil, p.errorf("=")
		}
		p.next()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.AssignStmt{Name: name, Expr: e}, nil
	default:
		return nil, p.errorf("statement")
	}
}

func (p *stmtParser) parseExpression() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := expressionOp(p.peek().Kind)
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func (p *stmtParser) parseTerm() (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.peek().Kind {
		case TokStar:
			op = ast.OpMul
		case TokSlash:
			op = ast.OpDiv
		default:
			return left, nil
		}
		p.next()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func (p *stmtParser) parseFactor() (ast.Expr, error) {
	switch p.peek().Kind {
	case TokNumber:
		t := p.peek()
		v, err := strconv.ParseInt(t.Lexeme, 10, 64)
		if err != nil {
			return nil, p.errorf("integer in range")
		}
		p.next()
		return ast.NumberLit{Value: v}, nil
	case TokIdent:
		return ast.VarRef{Name: p.next().Lexeme}, nil
	case TokLParen:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		p.next()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.peek().Kind != TokRParen {
			return nil, p.errorf(")")
		}
		p.next()
		return e, nil
	default:
		return nil, p.errorf("number, variable or (")
	}
}

func expressionOp(k TokenKind) (ast.BinaryOp, bool) {
	switch k {
	case TokPlus:
		return ast.OpAdd, true
	case TokMinus:
		return ast.OpSub, true
	case TokLess:
		return ast.OpLt, true
	case TokGreater:
		return ast.OpGt, true
	case TokEqual:
		return ast.OpEq, true
	case TokNotEqual:
		return ast.OpNe, true
	default:
		return 0, false
	}
}
