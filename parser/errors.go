package parser

import "fmt"

// SyntaxError reports the first position where a line stops matching the
// statement grammar. No partial tree is returned alongside it.
type SyntaxError struct {
	Pos      int
	Found    Token
	Expected string
}

func (e *SyntaxError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("syntax error at column %d: unexpected %s", e.Pos+1, e.Found)
	}
	return fmt.Sprintf("syntax error at column %d: expected %s, found %s", e.Pos+1, e.Expected, e.Found)
}
