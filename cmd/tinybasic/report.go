package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosuda/tinybasic/parser"
)

const (
	banner      = "BASIC Interpreter"
	bannerHint  = "Enter EXIT to quit."
	promptText  = "> "
	exitCommand = "EXIT"
)

// describeError turns an Exec failure into the one-line diagnostic shown
// to the user.
func describeError(err error) string {
	var se *parser.SyntaxError
	switch {
	case errors.As(err, &se):
		return fmt.Sprintf("Syntax error! (%v)", se)
	case errors.Is(err, context.Canceled):
		return "Interrupted."
	default:
		return fmt.Sprintf("Runtime error: %v", err)
	}
}
