package tinybasic

import (
	"context"
	"os"

	"github.com/gosuda/tinybasic/ast"
	"github.com/gosuda/tinybasic/parser"
	bruntime "github.com/gosuda/tinybasic/runtime"
)

// Tokenize splits one source line into tokens ending with an End token.
func Tokenize(line string) []parser.Token {
	return parser.Tokenize(line)
}

// Parse builds one statement from toks, or returns a *parser.SyntaxError.
func Parse(toks []parser.Token) (ast.Statement, error) {
	return parser.Parse(toks)
}

// Evaluate runs node against env with a VM built from opts and returns
// the node's integer result. PRINT output and INPUT prompts go to
// os.Stdout unless opts carry WithOutputHook.
func Evaluate(ctx context.Context, node ast.Node, env *bruntime.Env, opts ...bruntime.Option) (int64, error) {
	opts = append([]bruntime.Option{bruntime.WithOutputHook(bruntime.WriterHook(os.Stdout))}, opts...)
	return bruntime.New(opts...).Eval(ctx, node, env)
}

// NewSession returns a session owning a fresh environment.
func NewSession(opts ...bruntime.Option) *bruntime.Session {
	return bruntime.NewSession(opts...)
}
