package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	bruntime "github.com/gosuda/tinybasic/runtime"
)

// runEval executes one line on a goroutine, streaming outputs and input
// prompts back to the UI through events. The channel is closed once the
// line has finished.
func runEval(ctx context.Context, s *bruntime.Session, line string, events chan<- tea.Msg) {
	defer close(events)
	vm := s.VM()
	vm.SetOutputHook(func(out bruntime.Output) {
		events <- evalOutputMsg{out: out}
	})
	vm.SetInputProvider(func(req bruntime.InputRequest) (string, error) {
		resp := make(chan evalInputResp, 1)
		events <- evalPromptMsg{req: req, resp: resp}
		select {
		case r := <-resp:
			return r.value, r.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})
	_, err := s.Exec(ctx, line)
	vm.SetOutputHook(nil)
	vm.SetInputProvider(nil)
	events <- evalDoneMsg{err: err}
}
