package bruntime

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gosuda/tinybasic/ast"
)

type Output struct {
	Text    string `json:"text"`
	NewLine bool   `json:"newline"`
}

type OutputHook func(Output)

// WriterHook writes outputs to w, ending PRINT lines with a newline.
func WriterHook(w io.Writer) OutputHook {
	return func(out Output) {
		if out.NewLine {
			fmt.Fprintln(w, out.Text)
		} else {
			fmt.Fprint(w, out.Text)
		}
	}
}

// VM evaluates syntax trees against an Env. Output produced by PRINT and
// INPUT prompts goes to the output hook and is also collected until the
// next TakeOutputs call.
type VM struct {
	outputHook    OutputHook
	inputProvider InputProvider
	queue         *InputQueue
	promptFormat  string
	echoQueued    bool
	outputs       []Output
	outputLimit   int
	emitted       int
}

type Option func(*VM)

func WithOutputHook(h OutputHook) Option {
	return func(vm *VM) { vm.outputHook = h }
}

func WithInputProvider(p InputProvider) Option {
	return func(vm *VM) { vm.inputProvider = p }
}

// WithQueuedInput pre-loads answers for INPUT statements. Queued answers
// are echoed to the output like typed ones would be.
func WithQueuedInput(values ...string) Option {
	return func(vm *VM) {
		vm.queue.Push(values...)
		vm.echoQueued = true
	}
}

// WithPromptFormat sets the INPUT prompt. The first %s is replaced by the
// variable name; a format without one is printed as is. An empty format
// disables the prompt.
func WithPromptFormat(format string) Option {
	return func(vm *VM) { vm.promptFormat = format }
}

// WithOutputLimit caps the outputs a VM may produce. Once n outputs have
// been emitted, the next PRINT, prompt or echo fails with ErrOutputLimit.
// A Session restarts the count for every Exec or RunLines call. n <= 0
// means no limit.
func WithOutputLimit(n int) Option {
	return func(vm *VM) { vm.outputLimit = n }
}

func New(opts ...Option) *VM {
	vm := &VM{
		queue:        NewInputQueue(),
		promptFormat: DefaultPromptFormat,
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

func (vm *VM) SetOutputHook(h OutputHook) {
	vm.outputHook = h
}

func (vm *VM) SetInputProvider(p InputProvider) {
	vm.inputProvider = p
}

func (vm *VM) EnqueueInput(values ...string) {
	vm.queue.Push(values...)
}

func (vm *VM) QueuedInputs() int {
	return vm.queue.Len()
}

// TakeOutputs returns the outputs collected since the previous call.
func (vm *VM) TakeOutputs() []Output {
	out := vm.outputs
	vm.outputs = nil
	return out
}

func (vm *VM) resetOutputCount() {
	vm.emitted = 0
}

func (vm *VM) emitOutput(out Output) error {
	if vm.outputLimit > 0 && vm.emitted >= vm.outputLimit {
		return fmt.Errorf("%w of %d", ErrOutputLimit, vm.outputLimit)
	}
	vm.emitted++
	vm.outputs = append(vm.outputs, out)
	if vm.outputHook != nil {
		vm.outputHook(out)
	}
	return nil
}

// Eval evaluates n against env. The context is checked before each
// statement and each loop iteration; WHILE has no iteration bound, so
// cancelling ctx is the only way to stop a loop whose condition never
// becomes zero.
func (vm *VM) Eval(ctx context.Context, n ast.Node, env *Env) (int64, error) {
	switch x := n.(type) {
	case ast.Expr:
		return vm.evalExpr(x, env)
	case ast.Statement:
		return vm.execStatement(ctx, x, env)
	default:
		return 0, fault(n, fmt.Errorf("unsupported node %T", n))
	}
}

func (vm *VM) execStatement(ctx context.Context, s ast.Statement, env *Env) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fault(s, err)
	}
	switch st := s.(type) {
	case ast.AssignStmt:
		v, err := vm.evalExpr(st.Expr, env)
		if err != nil {
			return 0, err
		}
		env.Set(st.Name, v)
		return v, nil
	case ast.PrintStmt:
		v, err := vm.evalExpr(st.Expr, env)
		if err != nil {
			return 0, err
		}
		if err := vm.emitOutput(Output{Text: strconv.FormatInt(v, 10), NewLine: true}); err != nil {
			return 0, fault(st, err)
		}
		return v, nil
	case ast.InputStmt:
		return vm.execInput(st, env)
	case ast.IfStmt:
		cond, err := vm.evalExpr(st.Cond, env)
		if err != nil {
			return 0, err
		}
		if cond != 0 {
			return vm.execStatement(ctx, st.Then, env)
		}
		if st.Else != nil {
			return vm.execStatement(ctx, st.Else, env)
		}
		return 0, nil
	case ast.WhileStmt:
		var last int64
		for {
			if err := ctx.Err(); err != nil {
				return 0, fault(st, err)
			}
			cond, err := vm.evalExpr(st.Cond, env)
			if err != nil {
				return 0, err
			}
			if cond == 0 {
				return last, nil
			}
			last, err = vm.execStatement(ctx, st.Body, env)
			if err != nil {
				return 0, err
			}
		}
	default:
		return 0, fault(s, fmt.Errorf("unsupported statement %T", s))
	}
}

func (vm *VM) execInput(st ast.InputStmt, env *Env) (int64, error) {
	req := InputRequest{Name: st.Name}
	if vm.promptFormat != "" {
		req.Prompt = strings.Replace(vm.promptFormat, "%s", st.Name, 1)
		if err := vm.emitOutput(Output{Text: req.Prompt, NewLine: false}); err != nil {
			return 0, fault(st, err)
		}
	}
	raw, err := vm.resolveInput(req)
	if err != nil {
		return 0, fault(st, err)
	}
	v, ok := parseIntInput(raw)
	if !ok {
		return 0, fault(st, fmt.Errorf("%w: %q", ErrInvalidInputFormat, raw))
	}
	env.Set(st.Name, v)
	return v, nil
}

func (vm *VM) evalExpr(e ast.Expr, env *Env) (int64, error) {
	switch ex := e.(type) {
	case ast.NumberLit:
		return ex.Value, nil
	case ast.VarRef:
		return env.Get(ex.Name), nil
	case ast.BinaryExpr:
		left, err := vm.evalExpr(ex.Left, env)
		if err != nil {
			return 0, err
		}
		right, err := vm.evalExpr(ex.Right, env)
		if err != nil {
			return 0, err
		}
		v, err := evalBinary(ex.Op, left, right)
		if err != nil {
			return 0, fault(ex, err)
		}
		return v, nil
	default:
		return 0, fault(e, fmt.Errorf("unsupported expression %T", e))
	}
}

func evalBinary(op ast.BinaryOp, left, right int64) (int64, error) {
	switch op {
	case ast.OpAdd:
		return left + right, nil
	case ast.OpSub:
		return left - right, nil
	case ast.OpMul:
		return left * right, nil
	case ast.OpDiv:
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		return left / right, nil
	case ast.OpLt:
		return boolInt(left < right), nil
	case ast.OpGt:
		return boolInt(left > right), nil
	case ast.OpEq:
		return boolInt(left == right), nil
	case ast.OpNe:
		return boolInt(left != right), nil
	default:
		return 0, fmt.Errorf("unsupported binary operator %s", op)
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
