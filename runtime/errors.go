package bruntime

import (
	"errors"
	"fmt"

	"github.com/gosuda/tinybasic/ast"
)

var (
	ErrDivisionByZero     = errors.New("division by zero")
	ErrInvalidInputFormat = errors.New("invalid input format")
	ErrNoInput            = errors.New("no input available")
	ErrSessionBusy        = errors.New("session is busy")
	ErrOutputLimit        = errors.New("output limit reached")
)

// RuntimeError is a fault raised while evaluating Node. Mutations made
// before the fault stay applied.
type RuntimeError struct {
	Node ast.Node
	Err  error
}

func (e *RuntimeError) Error() string {
	if e.Node == nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", ast.Format(e.Node), e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func fault(n ast.Node, err error) error {
	var re *RuntimeError
	if errors.As(err, &re) {
		return err
	}
	return &RuntimeError{Node: n, Err: err}
}
