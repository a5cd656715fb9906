package main

import (
	"fmt"
	"os"

	"git.sr.ht/~sircmpwn/getopt"
	"gopkg.in/yaml.v3"

	"github.com/gosuda/tinybasic/ast"
	"github.com/gosuda/tinybasic/parser"
)

func main() {
	opts, optind, err := getopt.Getopts(os.Args, "yh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug_ast: %v\n", err)
		os.Exit(2)
	}
	asYAML := false
	for _, opt := range opts {
		switch opt.Option {
		case 'y':
			asYAML = true
		case 'h':
			fmt.Println("usage: debug_ast [-y] line...")
			return
		}
	}
	lines := os.Args[optind:]
	if len(lines) == 0 {
		fmt.Fprintln(os.Stderr, "usage: debug_ast [-y] line...")
		os.Exit(2)
	}

	status := 0
	for i, line := range lines {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("line=%q\n", line)
		toks := parser.Tokenize(line)
		for _, tok := range toks {
			fmt.Printf("  tok %3d %-9s %s\n", tok.Pos, tok.Kind, tok)
		}
		st, rest, err := parser.Rest(toks)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			status = 1
			continue
		}
		for _, tok := range rest {
			fmt.Printf("  ignored %s at column %d\n", tok, tok.Pos+1)
		}
		if !asYAML {
			fmt.Printf("ast: %s\n", ast.Format(st))
			continue
		}
		out, err := yaml.Marshal(ast.Describe(st))
		if err != nil {
			fmt.Fprintf(os.Stderr, "debug_ast: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
	}
	os.Exit(status)
}
