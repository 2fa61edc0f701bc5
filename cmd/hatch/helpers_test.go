package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// runInDir runs testFunc with the working directory set to dir.
func runInDir(t *testing.T, dir string, testFunc func()) {
	t.Helper()
	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working dir: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	defer func() {
		if err := os.Chdir(oldDir); err != nil {
			t.Errorf("failed to restore dir: %v", err)
		}
	}()
	testFunc()
}

// runGitOutput runs a git command and returns stdout.
func runGitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}
	return string(out)
}

// isolate points config and templates at empty temp locations and returns
// a fresh working directory.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HATCH_CONFIG_HOME", t.TempDir())
	t.Setenv("HATCH_TEMPLATES_DIR", filepath.Join(t.TempDir(), "none"))
	t.Setenv("HATCH_AUTHOR", "Test Author")
	t.Setenv("HATCH_HOMEPAGE", "https://example.com/start")
	return t.TempDir()
}

// execute runs the root command in dir with empty stdin and no log file.
func execute(t *testing.T, dir string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	runInDir(t, dir, func() {
		cmd := newRootCmd()
		cmd.SetOut(&outBuf)
		cmd.SetErr(&errBuf)
		cmd.SetIn(strings.NewReader(""))
		cmd.SetArgs(append([]string{"--log-file="}, args...))
		err = cmd.Execute()
	})
	return outBuf.String(), errBuf.String(), err
}
