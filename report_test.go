package tinybasic_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gosuda/tinybasic"
	bruntime "github.com/gosuda/tinybasic/runtime"
)

func TestRunBatchReports(t *testing.T) {
	reports, err := tinybasic.RunBatch(context.Background(),
		[]string{"INPUT n", "PRINT n < 3", "x = (1", "PRINT n / 0"},
		[]string{"2"})
	if err != nil {
		t.Fatalf("run batch: %v", err)
	}
	if len(reports) != 4 {
		t.Fatalf("reports = %+v", reports)
	}
	first := reports[0]
	if first.Line != 1 || first.Value != 2 || first.Kind != "" {
		t.Fatalf("first = %+v", first)
	}
	if len(first.Outputs) != 2 || first.Outputs[0].Text != "Enter value for n: " || first.Outputs[1].Text != "2" {
		t.Fatalf("first outputs = %+v", first.Outputs)
	}
	if reports[1].Outputs[0].Text != "1" {
		t.Fatalf("second = %+v", reports[1])
	}
	if reports[2].Kind != tinybasic.KindSyntax || reports[2].Outputs == nil {
		t.Fatalf("third = %+v", reports[2])
	}
	if reports[3].Kind != tinybasic.KindRuntime || reports[3].Error == "" {
		t.Fatalf("fourth = %+v", reports[3])
	}
}

func TestRunBatchTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	reports, err := tinybasic.RunBatch(ctx, []string{"WHILE 1 < 2 i = i + 1", "PRINT i"}, nil)
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
	if len(reports) != 1 || reports[0].Kind != tinybasic.KindTimeout {
		t.Fatalf("reports = %+v", reports)
	}
}

func TestRunBatchLeavesCallerOptionsAlone(t *testing.T) {
	opts := make([]bruntime.Option, 1, 2)
	opts[0] = bruntime.WithPromptFormat("")
	if _, err := tinybasic.RunBatch(context.Background(), []string{"INPUT a"}, []string{"1"}, opts...); err != nil {
		t.Fatalf("run batch: %v", err)
	}
	if spare := opts[:2]; spare[1] != nil {
		t.Fatalf("RunBatch wrote into the caller's option slice")
	}
}

func TestRunBatchOutputLimit(t *testing.T) {
	reports, err := tinybasic.RunBatch(context.Background(),
		[]string{"WHILE 1 PRINT 1", "PRINT 2"}, nil, bruntime.WithOutputLimit(5))
	if err != nil {
		t.Fatalf("run batch: %v", err)
	}
	if len(reports[0].Outputs) != 5 || reports[0].Kind != tinybasic.KindRuntime {
		t.Fatalf("first = %d outputs, kind %q", len(reports[0].Outputs), reports[0].Kind)
	}
	if !strings.Contains(reports[1].Error, "output limit") {
		t.Fatalf("second = %+v", reports[1])
	}
}
