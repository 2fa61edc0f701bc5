package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"github.com/gorewood/hatch/internal/output"
	"github.com/gorewood/hatch/internal/runner"
)

// DefaultCommitMessage is the message of the first commit in a new project.
const DefaultCommitMessage = "Init project"

// Run executes a git command in the current directory and returns its
// trimmed stdout.
func Run(args ...string) (string, error) {
	return RunContext(context.Background(), "", args...)
}

// RunContext executes a git command in dir and returns its trimmed stdout.
// Returns an *output.ExitError on failure.
func RunContext(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}

		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Version returns the output of "git --version".
func Version() (string, error) {
	return Run("--version")
}

// IsRepo checks whether dir is inside a git repository.
func IsRepo(dir string) bool {
	_, err := RunContext(context.Background(), dir, "rev-parse", "--git-dir")
	return err == nil
}

// HEAD returns the full SHA of the HEAD commit in dir.
func HEAD(dir string) (string, error) {
	sha, err := RunContext(context.Background(), dir, "rev-parse", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get HEAD", err)
	}
	return sha, nil
}

// CommitCount returns the number of commits reachable from HEAD in dir.
func CommitCount(dir string) (int, error) {
	out, err := RunContext(context.Background(), dir, "rev-list", "--count", "HEAD")
	if err != nil {
		return 0, output.NewSystemErrorWithCause("failed to count commits", err)
	}
	n, err := strconv.Atoi(out)
	if err != nil {
		return 0, output.NewSystemErrorWithCause("unexpected rev-list output: "+out, err)
	}
	return n, nil
}

// TrackedFiles lists the files recorded in HEAD, relative to dir, using
// forward slashes.
func TrackedFiles(dir string) ([]string, error) {
	out, err := RunContext(context.Background(), dir, "ls-tree", "-r", "--name-only", "HEAD")
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to list tracked files", err)
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// InitRepo creates a repository in dir, stages everything and records one
// commit. Each command streams through r; the first failure stops the
// sequence and is returned as an *output.ExitError.
func InitRepo(ctx context.Context, r runner.Runner, dir, message string) error {
	if message == "" {
		message = DefaultCommitMessage
	}
	steps := [][]string{
		{"init"},
		{"add", "."},
		{"commit", "-m", message},
	}
	for _, args := range steps {
		if err := r.Run(ctx, dir, "git", args...).AsError(); err != nil {
			return err
		}
	}
	return nil
}
