package bruntime

import "sort"

// Env is the variable store of one session. Reading a missing name
// yields 0 and records the zero entry, so a variable exists from its
// first mention on. Env is not safe for concurrent use.
type Env struct {
	vars map[string]int64
}

func NewEnv() *Env {
	return &Env{vars: map[string]int64{}}
}

// Get returns the value of name, creating a zero entry when absent.
func (e *Env) Get(name string) int64 {
	v, ok := e.vars[name]
	if !ok {
		e.vars[name] = 0
	}
	return v
}

// Lookup reads name without creating it.
func (e *Env) Lookup(name string) (int64, bool) {
	v, ok := e.vars[name]
	return v, ok
}

func (e *Env) Set(name string, v int64) {
	e.vars[name] = v
}

func (e *Env) Len() int {
	return len(e.vars)
}

func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (e *Env) Snapshot() map[string]int64 {
	cp := make(map[string]int64, len(e.vars))
	for k, v := range e.vars {
		cp[k] = v
	}
	return cp
}

func (e *Env) Reset() {
	clear(e.vars)
}
