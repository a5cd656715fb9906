package mobile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gosuda/tinybasic"
	bruntime "github.com/gosuda/tinybasic/runtime"
)

// RunTimeout bounds a whole batch so a runaway WHILE cannot hang the host app.
var RunTimeout = 5 * time.Second

// MaxOutputs caps the outputs of a whole batch.
var MaxOutputs = 10000

type runResult struct {
	Results []tinybasic.LineReport `json:"results"`
	Error   string                 `json:"error,omitempty"`
}

func encode(result runResult) string {
	b, _ := json.Marshal(result)
	return string(b)
}

// Run executes a batch of lines in a fresh session and returns JSON.
// linesJSON format: ["x = 1","PRINT x + 1"]
// inputsJSON format: ["1","2", ...]; answers consumed by INPUT in order.
func Run(linesJSON, inputsJSON string) string {
	result := runResult{Results: []tinybasic.LineReport{}}

	var lines []string
	if err := json.Unmarshal([]byte(linesJSON), &lines); err != nil {
		result.Error = fmt.Sprintf("invalid lines json: %v", err)
		return encode(result)
	}
	if len(lines) == 0 {
		result.Error = "no lines provided"
		return encode(result)
	}

	var queued []string
	if strings.TrimSpace(inputsJSON) != "" {
		if err := json.Unmarshal([]byte(inputsJSON), &queued); err != nil {
			result.Error = fmt.Sprintf("invalid inputs json: %v", err)
			return encode(result)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), RunTimeout)
	defer cancel()
	reports, err := tinybasic.RunBatch(ctx, lines, queued, bruntime.WithOutputLimit(MaxOutputs))
	result.Results = reports
	if err != nil {
		result.Error = fmt.Sprintf("run: %v", err)
	}
	return encode(result)
}
