package tinybasic

import (
	"context"
	"errors"
	"slices"

	"github.com/gosuda/tinybasic/parser"
	bruntime "github.com/gosuda/tinybasic/runtime"
)

const (
	KindSyntax  = "syntax"
	KindRuntime = "runtime"
	KindTimeout = "timeout"
)

// LineReport is the serialisable outcome of one executed line.
type LineReport struct {
	Line    int               `json:"line"`
	Source  string            `json:"source"`
	Value   int64             `json:"value"`
	Outputs []bruntime.Output `json:"outputs"`
	Error   string            `json:"error,omitempty"`
	Kind    string            `json:"kind,omitempty"`
}

// ErrorKind classifies an Exec failure as syntax, runtime or timeout.
func ErrorKind(err error) string {
	var se *parser.SyntaxError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &se):
		return KindSyntax
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return KindTimeout
	default:
		return KindRuntime
	}
}

// Report converts RunLines results to their serialisable form.
func Report(results []bruntime.LineResult) []LineReport {
	out := make([]LineReport, 0, len(results))
	for _, r := range results {
		rep := LineReport{
			Line:    r.Line,
			Source:  r.Source,
			Value:   r.Result.Value,
			Outputs: r.Result.Outputs,
		}
		if rep.Outputs == nil {
			rep.Outputs = []bruntime.Output{}
		}
		if r.Err != nil {
			rep.Error = r.Err.Error()
			rep.Kind = ErrorKind(r.Err)
		}
		out = append(out, rep)
	}
	return out
}

// RunBatch executes lines in a fresh session with inputs queued for
// INPUT statements.
func RunBatch(ctx context.Context, lines, inputs []string, opts ...bruntime.Option) ([]LineReport, error) {
	opts = append(slices.Clip(opts), bruntime.WithQueuedInput(inputs...))
	s := bruntime.NewSession(opts...)
	results, err := s.RunLines(ctx, lines)
	return Report(results), err
}
