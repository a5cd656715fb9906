package bruntime

import (
	"testing"

	"github.com/gosuda/tinybasic/ast"
	"github.com/gosuda/tinybasic/parser"
)

func mustStmt(t *testing.T, line string) ast.Statement {
	t.Helper()
	stmt, err := parser.ParseLine(line)
	if err != nil {
		t.Fatalf("parse %q failed: %v", line, err)
	}
	return stmt
}

func TestEnvGetOrDefault(t *testing.T) {
	env := NewEnv()
	if _, ok := env.Lookup("a"); ok {
		t.Fatalf("fresh env should be empty")
	}
	if env.Get("a") != 0 {
		t.Fatalf("missing variable should read as 0")
	}
	if env.Len() != 1 {
		t.Fatalf("Get should record the zero entry")
	}
	env.Set("b", -4)
	env.Set("a", 2)
	if env.Get("a") != 2 || env.Get("b") != -4 {
		t.Fatalf("unexpected values: %v", env.Snapshot())
	}
	names := env.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestEnvSnapshotIsCopy(t *testing.T) {
	env := NewEnv()
	env.Set("x", 1)
	snap := env.Snapshot()
	snap["x"] = 100
	if env.Get("x") != 1 {
		t.Fatalf("snapshot aliases env")
	}
	env.Reset()
	if env.Len() != 0 {
		t.Fatalf("reset left %d entries", env.Len())
	}
}
