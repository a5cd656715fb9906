package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

type scriptLine struct {
	number int
	text   string
}

// loadScript reads the statements of a script file. Blank lines and lines
// starting with # are skipped; line numbers are kept for diagnostics.
func loadScript(path string) ([]scriptLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readScript(f)
}

func readScript(r io.Reader) ([]scriptLine, error) {
	var lines []scriptLine
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, scriptLine{number: n, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// runScript executes every statement of cfg.script in one session.
// Failures are reported with their location and do not stop the run,
// matching the interactive loop. An EXIT line ends the script early.
func runScript(cfg appConfig, in io.Reader, out io.Writer) (int, error) {
	lines, err := loadScript(cfg.script)
	if err != nil {
		return 0, fmt.Errorf("load script: %w", err)
	}
	c := newConsole(cfg, in, out)
	s := c.newSession(cfg)
	failed := 0
	for _, l := range lines {
		if l.text == exitCommand {
			break
		}
		if err := execInterruptible(s, l.text); err != nil {
			failed++
			c.report(fmt.Sprintf("%s:%d: ", cfg.script, l.number), err)
		}
	}
	return failed, nil
}
