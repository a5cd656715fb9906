package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	bruntime "github.com/gosuda/tinybasic/runtime"
)

type console struct {
	out    io.Writer
	reader *bufio.Reader
	errc   *color.Color
}

func newConsole(cfg appConfig, in io.Reader, out io.Writer) *console {
	c := &console{
		out:    out,
		reader: bufio.NewReader(in),
		errc:   color.New(color.FgRed),
	}
	if cfg.noColor {
		c.errc.DisableColor()
	}
	return c
}

// readLine returns the next line without its terminator. io.EOF is only
// returned when nothing was read.
func (c *console) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *console) newSession(cfg appConfig) *bruntime.Session {
	return bruntime.NewSession(
		bruntime.WithQueuedInput(cfg.inputs...),
		bruntime.WithOutputHook(bruntime.WriterHook(c.out)),
		bruntime.WithInputProvider(func(bruntime.InputRequest) (string, error) {
			line, err := c.readLine()
			if errors.Is(err, io.EOF) {
				return "", bruntime.ErrNoInput
			}
			return line, err
		}),
	)
}

func (c *console) report(prefix string, err error) {
	c.errc.Fprintln(c.out, prefix+describeError(err))
}

// execInterruptible runs one line; an interrupt signal cancels the line
// instead of killing the process.
func execInterruptible(s *bruntime.Session, line string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	_, err := s.Exec(ctx, line)
	return err
}

func runPlain(cfg appConfig, in io.Reader, out io.Writer) error {
	c := newConsole(cfg, in, out)
	s := c.newSession(cfg)
	if !cfg.quiet {
		fmt.Fprintln(out, banner)
		fmt.Fprintln(out, bannerHint)
	}
	for {
		fmt.Fprint(out, promptText)
		line, err := c.readLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if line == exitCommand {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := execInterruptible(s, line); err != nil {
			c.report("", err)
		}
	}
}
