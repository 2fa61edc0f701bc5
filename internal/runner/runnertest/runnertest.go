// Package runnertest provides a recording Runner for tests.
package runnertest

import (
	"context"
	"errors"
	"sync"

	"github.com/gorewood/hatch/internal/runner"
)

// Call is one recorded invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Recorder records calls instead of spawning processes. Fail maps a
// command name to the exit code it should report.
type Recorder struct {
	mu    sync.Mutex
	Calls []Call
	Fail  map[string]int
	// OnRun, when set, runs for every call (e.g. to create files the real
	// command would have produced).
	OnRun func(call Call)
}

// Run implements runner.Runner.
func (r *Recorder) Run(_ context.Context, dir, name string, args ...string) runner.Result {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}

	r.mu.Lock()
	r.Calls = append(r.Calls, call)
	r.mu.Unlock()

	if r.OnRun != nil {
		r.OnRun(call)
	}

	res := runner.Result{Command: runner.CommandLine(name, args...)}
	if code, ok := r.Fail[name]; ok {
		res.ExitCode = code
		res.Err = errors.New("exit status")
	}
	return res
}

// Names returns the command names in call order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		names = append(names, c.Name)
	}
	return names
}

// LookPath returns a runner.LookPathFunc that finds only the given names.
func LookPath(available ...string) runner.LookPathFunc {
	set := make(map[string]bool, len(available))
	for _, name := range available {
		set[name] = true
	}
	return func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
}
