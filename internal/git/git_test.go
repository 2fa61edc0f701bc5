package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/gorewood/hatch/internal/logging"
	"github.com/gorewood/hatch/internal/output"
	"github.com/gorewood/hatch/internal/runner"
	"github.com/gorewood/hatch/internal/runner/runnertest"
)

// requireGit skips the test when git is not installed.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// setIdentity gives commits an author without touching global config.
func setIdentity(t *testing.T) {
	t.Helper()
	t.Setenv("GIT_AUTHOR_NAME", "Test User")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@test.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test User")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@test.com")
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
}

func TestRun(t *testing.T) {
	requireGit(t)

	tests := []struct {
		name     string
		args     []string
		wantErr  bool
		wantCode int
	}{
		{name: "git version succeeds", args: []string{"version"}},
		{
			name:     "invalid git command",
			args:     []string{"invalid-command-that-does-not-exist"},
			wantErr:  true,
			wantCode: output.ExitSystemError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Run(tt.args...)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Run() unexpected error: %v", err)
				}
				if out == "" {
					t.Error("Run() expected non-empty output")
				}
				return
			}
			var exitErr *output.ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("Run() error should be *output.ExitError, got %T", err)
			}
			if exitErr.Code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", exitErr.Code, tt.wantCode)
			}
		})
	}
}

func TestIsRepo_NotARepo(t *testing.T) {
	requireGit(t)
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(t.TempDir()))

	if IsRepo(t.TempDir()) {
		t.Error("IsRepo() = true for a fresh temp dir")
	}
}

func TestInitRepo_Real(t *testing.T) {
	requireGit(t)
	setIdentity(t)

	dir := t.TempDir()
	files := map[string]string{
		"README.md":                        "# demo\n",
		".gitignore":                       "node_modules/\n",
		filepath.Join("src", "index.js"):   "console.log(\"demo\")\n",
		filepath.Join("node_modules", "x"): "ignored\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	exe := runner.NewExec(logging.Nop())
	exe.Stdin = nil
	exe.Stdout = nil
	exe.Stderr = nil
	if err := InitRepo(context.Background(), exe, dir, ""); err != nil {
		t.Fatalf("InitRepo() error = %v", err)
	}

	if !IsRepo(dir) {
		t.Fatal("IsRepo() = false after InitRepo")
	}
	count, err := CommitCount(dir)
	if err != nil || count != 1 {
		t.Errorf("CommitCount() = %d, %v; want 1", count, err)
	}
	if _, err := HEAD(dir); err != nil {
		t.Errorf("HEAD() error = %v", err)
	}

	tracked, err := TrackedFiles(dir)
	if err != nil {
		t.Fatalf("TrackedFiles() error = %v", err)
	}
	sort.Strings(tracked)
	want := []string{".gitignore", "README.md", "src/index.js"}
	if !reflect.DeepEqual(tracked, want) {
		t.Errorf("TrackedFiles() = %v, want %v", tracked, want)
	}

	msg, err := RunContext(context.Background(), dir, "log", "-1", "--format=%s")
	if err != nil || msg != DefaultCommitMessage {
		t.Errorf("commit message = %q, %v; want %q", msg, err, DefaultCommitMessage)
	}
}

func TestInitRepo_Sequence(t *testing.T) {
	rec := &runnertest.Recorder{}
	if err := InitRepo(context.Background(), rec, "/tmp/app", "first"); err != nil {
		t.Fatalf("InitRepo() error = %v", err)
	}

	want := []runnertest.Call{
		{Dir: "/tmp/app", Name: "git", Args: []string{"init"}},
		{Dir: "/tmp/app", Name: "git", Args: []string{"add", "."}},
		{Dir: "/tmp/app", Name: "git", Args: []string{"commit", "-m", "first"}},
	}
	if !reflect.DeepEqual(rec.Calls, want) {
		t.Errorf("calls = %+v, want %+v", rec.Calls, want)
	}
}

func TestInitRepo_StopsOnFailure(t *testing.T) {
	rec := &runnertest.Recorder{Fail: map[string]int{"git": 128}}

	err := InitRepo(context.Background(), rec, "/tmp/app", "")
	if err == nil {
		t.Fatal("InitRepo() expected error")
	}
	if output.GetExitCode(err) != output.ExitSystemError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitSystemError)
	}
	if len(rec.Calls) != 1 {
		t.Errorf("ran %d commands after failure, want 1", len(rec.Calls))
	}
}
