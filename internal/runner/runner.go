// Package runner executes child processes synchronously with their output
// streamed to the user.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gorewood/hatch/internal/logging"
	"github.com/gorewood/hatch/internal/output"
)

// Result is the outcome of one child process.
type Result struct {
	Command  string `json:"command"`
	ExitCode int    `json:"exit_code"`
	Err      error  `json:"-"`
}

// Success reports whether the process started and exited zero.
func (r Result) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// AsError converts a failed result into an *output.ExitError.
// Returns nil for a successful result.
func (r Result) AsError() error {
	if r.Success() {
		return nil
	}
	var execErr *exec.Error
	if errors.As(r.Err, &execErr) {
		return output.NewSystemErrorWithCause(
			fmt.Sprintf("%s not found: ensure it is installed and in PATH", execErr.Name), r.Err)
	}
	return output.NewSystemErrorWithCause(
		fmt.Sprintf("command failed: %s (exit code %d)", r.Command, r.ExitCode), r.Err)
}

// Runner runs a command in dir and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) Result
}

// LookPathFunc resolves an executable name on PATH.
type LookPathFunc func(name string) (string, error)

// Exec runs real processes. Standard streams are connected to the
// configured writers, normally the user's terminal.
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Env    []string // appended to the current environment
	logger zerolog.Logger
}

// NewExec returns an Exec that inherits the terminal's streams.
func NewExec(logger zerolog.Logger) *Exec {
	return &Exec{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		logger: logger,
	}
}

// Run implements Runner. It never returns a Go error; failures to start
// and non-zero exits are both reported through the Result.
func (e *Exec) Run(ctx context.Context, dir, name string, args ...string) Result {
	logging.LogCommand(e.logger, dir, name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}

	res := Result{Command: CommandLine(name, args...)}
	err := cmd.Run()
	if err == nil {
		return res
	}

	res.Err = err
	res.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	}
	e.logger.Debug().Str("command", res.Command).Int("exit_code", res.ExitCode).Err(err).Msg("command failed")
	return res
}

// CommandLine renders a command for messages: "git commit -m 'Init project'".
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\"'") {
			arg = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}
