package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	bruntime "github.com/gosuda/tinybasic/runtime"
)

const usage = `usage: tinybasic [-p] [-q] [-n] [-f script] [-i inputs] [-h]

  -p          plain line mode even on a terminal
  -q          do not print the banner
  -n          disable colored diagnostics
  -f script   run the statements of a file, then exit
  -i a,b,c    answers queued for INPUT statements
  -h          show this help
`

func parseArgs(args []string) (appConfig, error) {
	cfg := appConfig{}
	opts, optind, err := getopt.Getopts(args, "pqnf:i:h")
	if err != nil {
		return cfg, err
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'p':
			cfg.plain = true
		case 'q':
			cfg.quiet = true
		case 'n':
			cfg.noColor = true
		case 'f':
			cfg.script = opt.Value
		case 'i':
			for _, v := range strings.Split(opt.Value, ",") {
				cfg.inputs = append(cfg.inputs, strings.TrimSpace(v))
			}
		case 'h':
			return cfg, errHelp
		}
	}
	if optind < len(args) {
		return cfg, fmt.Errorf("unexpected argument %q", args[optind])
	}
	return cfg, nil
}

var errHelp = errors.New("help requested")

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func main() {
	cfg, err := parseArgs(os.Args)
	if errors.Is(err, errHelp) {
		fmt.Print(usage)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "tinybasic: %v\n%s", err, usage)
		os.Exit(2)
	}
	if !isTerminal(os.Stdout) {
		cfg.noColor = true
	}

	if cfg.script != "" {
		failed, err := runScript(cfg, os.Stdin, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tinybasic: %v\n", err)
			os.Exit(1)
		}
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	if cfg.plain || !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		if err := runPlain(cfg, os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "tinybasic: %v\n", err)
			os.Exit(1)
		}
		return
	}

	s := bruntime.NewSession(bruntime.WithQueuedInput(cfg.inputs...))
	p := tea.NewProgram(newModel(cfg, s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui: %v\n", err)
		os.Exit(1)
	}
}
