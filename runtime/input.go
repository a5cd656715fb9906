package bruntime

import (
	"strconv"
	"strings"

	"github.com/edwingeng/deque"
	"golang.org/x/text/width"
)

type InputRequest struct {
	Name   string
	Prompt string
}

// InputProvider blocks until one line of input is available for req.
// Returning ErrNoInput (or any error) aborts the INPUT statement.
type InputProvider func(req InputRequest) (string, error)

const DefaultPromptFormat = "Enter value for %s: "

// InputQueue holds pre-supplied answers for INPUT statements, consumed
// front to back before the provider is asked.
type InputQueue struct {
	q deque.Deque
}

func NewInputQueue(values ...string) *InputQueue {
	iq := &InputQueue{q: deque.NewDeque()}
	iq.Push(values...)
	return iq
}

func (iq *InputQueue) Push(values ...string) {
	for _, v := range values {
		iq.q.PushBack(v)
	}
}

func (iq *InputQueue) Pop() (string, bool) {
	if iq.q.Empty() {
		return "", false
	}
	return iq.q.PopFront().(string), true
}

func (iq *InputQueue) Len() int {
	return iq.q.Len()
}

func (iq *InputQueue) Clear() {
	for !iq.q.Empty() {
		iq.q.PopFront()
	}
}

// parseIntInput accepts an optionally signed decimal integer surrounded
// by spaces. Full-width digits and signs typed through an IME are folded
// to ASCII first.
func parseIntInput(raw string) (int64, bool) {
	raw = strings.TrimSpace(width.Fold.String(raw))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (vm *VM) resolveInput(req InputRequest) (string, error) {
	if vm.queue != nil {
		if v, ok := vm.queue.Pop(); ok {
			if err := vm.maybeEchoInput(v); err != nil {
				return "", err
			}
			return v, nil
		}
	}
	if vm.inputProvider == nil {
		return "", ErrNoInput
	}
	return vm.inputProvider(req)
}

func (vm *VM) maybeEchoInput(text string) error {
	if !vm.echoQueued {
		return nil
	}
	return vm.emitOutput(Output{Text: text, NewLine: true})
}
