package bruntime

import (
	"context"

	"github.com/tevino/abool/v2"

	"github.com/gosuda/tinybasic/ast"
	"github.com/gosuda/tinybasic/parser"
)

// Session pairs one VM with the Env it owns. Lines are executed one at a
// time; a second Exec while one is running fails with ErrSessionBusy
// instead of interleaving against the same Env.
type Session struct {
	vm   *VM
	env  *Env
	busy *abool.AtomicBool
}

type Result struct {
	Value   int64
	Outputs []Output
	Stmt    ast.Statement
}

// LineResult is the outcome of one line run through RunLines. Err is nil
// on success and otherwise a *parser.SyntaxError or *RuntimeError.
type LineResult struct {
	Line   int
	Source string
	Result Result
	Err    error
}

func NewSession(opts ...Option) *Session {
	return &Session{
		vm:   New(opts...),
		env:  NewEnv(),
		busy: abool.New(),
	}
}

func (s *Session) VM() *VM {
	return s.vm
}

func (s *Session) Env() *Env {
	return s.env
}

func (s *Session) Busy() bool {
	return s.busy.IsSet()
}

// Reset clears variables and queued input.
func (s *Session) Reset() error {
	if !s.busy.SetToIf(false, true) {
		return ErrSessionBusy
	}
	defer s.busy.UnSet()
	s.env.Reset()
	s.vm.queue.Clear()
	s.vm.TakeOutputs()
	return nil
}

// Exec tokenizes, parses and evaluates one line. A syntax error leaves
// the Env untouched and is returned as *parser.SyntaxError; runtime
// faults come back as *RuntimeError. Either way the session remains
// usable for the next line.
func (s *Session) Exec(ctx context.Context, line string) (Result, error) {
	if !s.busy.SetToIf(false, true) {
		return Result{}, ErrSessionBusy
	}
	defer s.busy.UnSet()
	s.vm.resetOutputCount()
	return s.exec(ctx, line)
}

func (s *Session) exec(ctx context.Context, line string) (Result, error) {
	stmt, err := parser.ParseLine(line)
	if err != nil {
		return Result{}, err
	}
	v, err := s.vm.Eval(ctx, stmt, s.env)
	res := Result{Value: v, Outputs: s.vm.TakeOutputs(), Stmt: stmt}
	if err != nil {
		res.Value = 0
		return res, err
	}
	return res, nil
}

// ExecInputs is Exec with answers queued for this call only. Answers the
// line does not consume are dropped afterwards.
func (s *Session) ExecInputs(ctx context.Context, line string, inputs []string) (Result, error) {
	if !s.busy.SetToIf(false, true) {
		return Result{}, ErrSessionBusy
	}
	defer s.busy.UnSet()
	s.vm.resetOutputCount()
	s.vm.queue.Push(inputs...)
	defer s.vm.queue.Clear()
	return s.exec(ctx, line)
}

// RunLines executes lines in order. Per-line syntax and runtime errors
// are recorded in the results and do not stop the batch; only context
// cancellation does.
func (s *Session) RunLines(ctx context.Context, lines []string) ([]LineResult, error) {
	if !s.busy.SetToIf(false, true) {
		return nil, ErrSessionBusy
	}
	defer s.busy.UnSet()
	s.vm.resetOutputCount()
	return s.runLines(ctx, lines)
}

// RunLinesInputs is RunLines with answers queued for the batch only.
func (s *Session) RunLinesInputs(ctx context.Context, lines, inputs []string) ([]LineResult, error) {
	if !s.busy.SetToIf(false, true) {
		return nil, ErrSessionBusy
	}
	defer s.busy.UnSet()
	s.vm.resetOutputCount()
	s.vm.queue.Push(inputs...)
	defer s.vm.queue.Clear()
	return s.runLines(ctx, lines)
}

// Snapshot copies the current variables.
func (s *Session) Snapshot() (map[string]int64, error) {
	if !s.busy.SetToIf(false, true) {
		return nil, ErrSessionBusy
	}
	defer s.busy.UnSet()
	return s.env.Snapshot(), nil
}

func (s *Session) runLines(ctx context.Context, lines []string) ([]LineResult, error) {
	results := make([]LineResult, 0, len(lines))
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := s.exec(ctx, line)
		results = append(results, LineResult{Line: i + 1, Source: line, Result: res, Err: err})
	}
	return results, nil
}
