package bruntime

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gosuda/tinybasic/ast"
	"github.com/gosuda/tinybasic/parser"
)

func num(v int64) ast.NumberLit { return ast.NumberLit{Value: v} }

func bin(op ast.BinaryOp, l, r ast.Expr) ast.BinaryExpr {
	return ast.BinaryExpr{Op: op, Left: l, Right: r}
}

func evalLine(t *testing.T, vm *VM, env *Env, line string) (int64, error) {
	t.Helper()
	stmt, err := parser.ParseLine(line)
	if err != nil {
		t.Fatalf("parse %q failed: %v", line, err)
	}
	return vm.Eval(context.Background(), stmt, env)
}

func TestNumberLiteralIgnoresEnv(t *testing.T) {
	vm := New()
	env := NewEnv()
	env.Set("x", 9)
	for _, n := range []int64{0, 1, -5, 42, math.MaxInt64, math.MinInt64} {
		v, err := vm.Eval(context.Background(), num(n), env)
		if err != nil || v != n {
			t.Fatalf("literal %d evaluated to %d (%v)", n, v, err)
		}
	}
	if env.Len() != 1 {
		t.Fatalf("literal evaluation touched env: %v", env.Snapshot())
	}
}

func TestArithmeticAndComparisons(t *testing.T) {
	vm := New()
	env := NewEnv()
	operands := []int64{-7, -1, 0, 1, 3, 10}
	for _, a := range operands {
		for _, b := range operands {
			checks := []struct {
				op   ast.BinaryOp
				want int64
				skip bool
			}{
				{ast.OpAdd, a + b, false},
				{ast.OpSub, a - b, false},
				{ast.OpMul, a * b, false},
				{ast.OpDiv, 0, b == 0},
				{ast.OpLt, boolInt(a < b), false},
				{ast.OpGt, boolInt(a > b), false},
				{ast.OpEq, boolInt(a == b), false},
				{ast.OpNe, boolInt(a != b), false},
			}
			if b != 0 {
				checks[3].want = a / b
			}
			for _, c := range checks {
				if c.skip {
					continue
				}
				got, err := vm.Eval(context.Background(), bin(c.op, num(a), num(b)), env)
				if err != nil {
					t.Fatalf("%d %s %d failed: %v", a, c.op, b, err)
				}
				if got != c.want {
					t.Fatalf("%d %s %d = %d, want %d", a, c.op, b, got, c.want)
				}
				if c.op.IsComparison() && got != 0 && got != 1 {
					t.Fatalf("comparison produced %d", got)
				}
			}
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	vm := New()
	env := NewEnv()
	env.Set("x", 1)
	_, err := evalLine(t, vm, env, "x = 4 / (x - 1)")
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
	var re *RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
	if _, ok := re.Node.(ast.BinaryExpr); !ok {
		t.Fatalf("fault should point at the division, got %T", re.Node)
	}
	if got := env.Get("x"); got != 1 {
		t.Fatalf("env changed after fault: x=%d", got)
	}
	if len(vm.TakeOutputs()) != 0 {
		t.Fatalf("faulting statement produced output")
	}
}

func TestVariableReadCreatesZeroEntry(t *testing.T) {
	vm := New()
	env := NewEnv()
	v, err := vm.Eval(context.Background(), ast.VarRef{Name: "ghost"}, env)
	if err != nil || v != 0 {
		t.Fatalf("unset read = %d (%v)", v, err)
	}
	if got, ok := env.Lookup("ghost"); !ok || got != 0 {
		t.Fatalf("read did not record zero entry")
	}
	again, _ := vm.Eval(context.Background(), ast.VarRef{Name: "ghost"}, env)
	if again != v {
		t.Fatalf("second read differs: %d vs %d", again, v)
	}
}

func TestAssignmentReturnsStoredValue(t *testing.T) {
	vm := New()
	env := NewEnv()
	env.Set("a", 6)
	v, err := evalLine(t, vm, env, "b = a * 7")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if v != 42 || env.Get("b") != 42 {
		t.Fatalf("assign returned %d, stored %d", v, env.Get("b"))
	}
}

func TestPrintEmitsLine(t *testing.T) {
	var hooked []Output
	vm := New(WithOutputHook(func(o Output) { hooked = append(hooked, o) }))
	env := NewEnv()
	v, err := evalLine(t, vm, env, "PRINT 2 + 3 * 4")
	if err != nil || v != 14 {
		t.Fatalf("print returned %d (%v)", v, err)
	}
	out := vm.TakeOutputs()
	if len(out) != 1 || out[0].Text != "14" || !out[0].NewLine {
		t.Fatalf("unexpected outputs: %+v", out)
	}
	if len(hooked) != 1 || hooked[0] != out[0] {
		t.Fatalf("hook did not see output: %+v", hooked)
	}
	if len(vm.TakeOutputs()) != 0 {
		t.Fatalf("TakeOutputs should drain")
	}
}

func TestIfBranches(t *testing.T) {
	vm := New()
	env := NewEnv()
	if _, err := evalLine(t, vm, env, "IF 1 PRINT 7 ELSE PRINT 8"); err != nil {
		t.Fatalf("if failed: %v", err)
	}
	if _, err := evalLine(t, vm, env, "IF 0 PRINT 7 ELSE PRINT 8"); err != nil {
		t.Fatalf("if failed: %v", err)
	}
	out := vm.TakeOutputs()
	if len(out) != 2 || out[0].Text != "7" || out[1].Text != "8" {
		t.Fatalf("unexpected outputs: %+v", out)
	}
	v, err := evalLine(t, vm, env, "IF 0 x = 5")
	if err != nil || v != 0 {
		t.Fatalf("if without else = %d (%v)", v, err)
	}
	if _, ok := env.Lookup("x"); ok {
		t.Fatalf("untaken branch mutated env")
	}
	v, _ = evalLine(t, vm, env, "IF 0 - 3 x = 5")
	if v != 5 || env.Get("x") != 5 {
		t.Fatalf("negative condition should be truthy")
	}
}

func TestWhileLoop(t *testing.T) {
	vm := New()
	env := NewEnv()
	env.Set("y", 0)
	v, err := evalLine(t, vm, env, "WHILE y < 3 y = y + 1")
	if err != nil {
		t.Fatalf("while failed: %v", err)
	}
	if v != 3 || env.Get("y") != 3 {
		t.Fatalf("while returned %d, y=%d", v, env.Get("y"))
	}
	v, err = evalLine(t, vm, env, "WHILE 0 PRINT 1")
	if err != nil || v != 0 {
		t.Fatalf("false while = %d (%v)", v, err)
	}
	if len(vm.TakeOutputs()) != 0 {
		t.Fatalf("body of false loop ran")
	}
}

func TestNestedControlStatements(t *testing.T) {
	vm := New()
	env := NewEnv()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	stmt, err := parser.ParseLine("WHILE i < 6 IF (i / 2) * 2 != i WHILE i < 6 i = i + 2 ELSE i = i + 1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	v, err := vm.Eval(ctx, stmt, env)
	if err != nil {
		t.Fatalf("nested loop failed: %v", err)
	}
	// 0 -> 1 via ELSE, then the inner loop walks 1, 3, 5, 7
	if env.Get("i") != 7 || v != 7 {
		t.Fatalf("unexpected i=%d result=%d", env.Get("i"), v)
	}
}

func TestWhileCancellation(t *testing.T) {
	vm := New()
	env := NewEnv()
	stmt, err := parser.ParseLine("WHILE 1 n = n + 1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = vm.Eval(ctx, stmt, env)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if env.Get("n") <= 0 {
		t.Fatalf("loop never ran before cancellation")
	}
}

func TestEvalRejectsNilNode(t *testing.T) {
	_, err := New().Eval(context.Background(), nil, NewEnv())
	var re *RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected runtime error, got %v", err)
	}
}

func TestOutputLimitStopsRunawayPrint(t *testing.T) {
	vm := New(WithOutputLimit(3))
	env := NewEnv()
	_, err := evalLine(t, vm, env, "WHILE 1 PRINT 1")
	if !errors.Is(err, ErrOutputLimit) {
		t.Fatalf("expected output limit, got %v", err)
	}
	var re *RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("limit should surface as a runtime fault: %v", err)
	}
	if out := vm.TakeOutputs(); len(out) != 3 {
		t.Fatalf("collected %d outputs, want 3", len(out))
	}
}

func TestOutputLimitCountsPromptsAndEchoes(t *testing.T) {
	vm := New(WithOutputLimit(3), WithQueuedInput("1", "2"))
	env := NewEnv()
	if _, err := evalLine(t, vm, env, "INPUT a"); err != nil {
		t.Fatalf("first input: %v", err)
	}
	if _, err := evalLine(t, vm, env, "INPUT b"); !errors.Is(err, ErrOutputLimit) {
		t.Fatalf("expected output limit on echo, got %v", err)
	}
	if _, ok := env.Lookup("b"); ok {
		t.Fatalf("b should not be assigned")
	}
}

func TestWriterHook(t *testing.T) {
	var b strings.Builder
	vm := New(WithOutputHook(WriterHook(&b)), WithQueuedInput("4"))
	env := NewEnv()
	if _, err := evalLine(t, vm, env, "INPUT n"); err != nil {
		t.Fatalf("input: %v", err)
	}
	if _, err := evalLine(t, vm, env, "PRINT n * 2"); err != nil {
		t.Fatalf("print: %v", err)
	}
	if got := b.String(); got != "Enter value for n: 4\n8\n" {
		t.Fatalf("written %q", got)
	}
}
