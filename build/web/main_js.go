//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"syscall/js"
	"time"

	"github.com/gosuda/tinybasic"
	bruntime "github.com/gosuda/tinybasic/runtime"
)

type runResult struct {
	Results []tinybasic.LineReport `json:"results"`
	Error   string                 `json:"error,omitempty"`
}

type inputRequestPayload struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

const abortSentinel = "__TINYBASIC_ABORT__"

const (
	runTimeout = 5 * time.Second
	maxOutputs = 10000
)

// inputPrompt asks the page for an answer once queued inputs run out.
// The page exposes tinybasicInputNext(payloadJSON) returning a string.
func inputPrompt(req bruntime.InputRequest) (string, error) {
	fn := js.Global().Get("tinybasicInputNext")
	if fn.Type() != js.TypeFunction {
		return "", bruntime.ErrNoInput
	}
	b, _ := json.Marshal(inputRequestPayload{Name: req.Name, Prompt: req.Prompt})
	v := fn.Invoke(string(b))
	if v.IsUndefined() || v.IsNull() {
		return "", bruntime.ErrNoInput
	}
	out := strings.TrimSpace(v.String())
	if out == abortSentinel {
		return "", fmt.Errorf("input aborted for %s: %w", req.Name, bruntime.ErrNoInput)
	}
	return out, nil
}

func encode(result runResult) any {
	b, _ := json.Marshal(result)
	return string(b)
}

func runLines(this js.Value, args []js.Value) any {
	result := runResult{Results: []tinybasic.LineReport{}}
	if len(args) < 1 {
		result.Error = "tinybasicRun requires lines JSON array"
		return encode(result)
	}

	var lines []string
	if err := json.Unmarshal([]byte(args[0].String()), &lines); err != nil {
		result.Error = fmt.Sprintf("invalid lines json: %v", err)
		return encode(result)
	}
	if len(lines) == 0 {
		result.Error = "no lines provided"
		return encode(result)
	}

	var queued []string
	if len(args) > 1 {
		if raw := strings.TrimSpace(args[1].String()); raw != "" {
			if err := json.Unmarshal([]byte(raw), &queued); err != nil {
				result.Error = fmt.Sprintf("invalid inputs json: %v", err)
				return encode(result)
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	reports, err := tinybasic.RunBatch(ctx, lines, queued,
		bruntime.WithInputProvider(inputPrompt),
		bruntime.WithOutputLimit(maxOutputs))
	result.Results = reports
	if err != nil {
		result.Error = fmt.Sprintf("run: %v", err)
	}
	return encode(result)
}

func main() {
	js.Global().Set("tinybasicRun", js.FuncOf(runLines))
	select {}
}
