package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/hatch/internal/config"
	"github.com/gorewood/hatch/internal/logging"
	"github.com/gorewood/hatch/internal/postprocess"
	"github.com/gorewood/hatch/internal/project"
	"github.com/gorewood/hatch/internal/runner/runnertest"
	"github.com/gorewood/hatch/internal/templates"
)

// --- Test helpers ---

func makeTestDeps(t *testing.T, rec *runnertest.Recorder) Deps {
	t.Helper()
	catalog, err := templates.NewCatalog(templates.BuiltinLayer())
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	managers, err := postprocess.Managers([]string{"yarn", "npm"})
	if err != nil {
		t.Fatalf("resolving managers: %v", err)
	}
	return Deps{
		Env: project.Env{
			WorkDir: t.TempDir(),
			Catalog: catalog,
			Config:  &config.Config{Author: "Test Author"},
		},
		NewInitializer: func() *project.Initializer {
			return &project.Initializer{
				Runner:   rec,
				LookPath: runnertest.LookPath("npm"),
				Managers: managers,
				Logger:   logging.Nop(),
			}
		},
	}
}

// --- List templates handler tests ---

func TestHandleListTemplates(t *testing.T) {
	deps := makeTestDeps(t, &runnertest.Recorder{})
	handler := handleListTemplates(deps)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ListTemplatesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Count != 2 {
		t.Fatalf("Count = %d, want 2", out.Count)
	}
	if out.Templates[0].Name != "basic" {
		t.Errorf("first template = %q, want %q", out.Templates[0].Name, "basic")
	}
	if out.Templates[0].Source != templates.SourceBuiltin {
		t.Errorf("Source = %q, want %q", out.Templates[0].Source, templates.SourceBuiltin)
	}
	if out.Templates[0].Vars["license"] != "MIT" {
		t.Errorf("Vars[license] = %q, want %q", out.Templates[0].Vars["license"], "MIT")
	}
}

// --- Create project handler tests ---

func TestHandleCreateProject(t *testing.T) {
	rec := &runnertest.Recorder{}
	deps := makeTestDeps(t, rec)
	handler := handleCreateProject(deps)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, CreateProjectInput{
		Template: "basic",
		Name:     "agent_app",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := filepath.Join(deps.Env.WorkDir, "agent_app")
	if out.Path != want {
		t.Errorf("Path = %q, want %q", out.Path, want)
	}
	if out.Manager != "npm" {
		t.Errorf("Manager = %q, want %q", out.Manager, "npm")
	}
	if _, err := os.Stat(filepath.Join(want, "package.json")); err != nil {
		t.Errorf("package.json not written: %v", err)
	}
	if got := len(rec.Calls); got != 4 {
		t.Errorf("subprocess calls = %d, want 4 (npm + 3 git)", got)
	}
}

func TestHandleCreateProject_RelativeDirAndDryRun(t *testing.T) {
	rec := &runnertest.Recorder{}
	deps := makeTestDeps(t, rec)
	handler := handleCreateProject(deps)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, CreateProjectInput{
		Template: "static",
		Name:     "site",
		Dir:      "nested",
		DryRun:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(deps.Env.WorkDir, "nested", "site"); out.Path != want {
		t.Errorf("Path = %q, want %q", out.Path, want)
	}
	if !out.DryRun {
		t.Error("DryRun = false, want true")
	}
	if len(rec.Calls) != 0 {
		t.Errorf("dry run spawned %d subprocesses", len(rec.Calls))
	}
	if _, err := os.Stat(out.Path); !os.IsNotExist(err) {
		t.Errorf("dry run created %s", out.Path)
	}
}

func TestHandleCreateProject_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input CreateProjectInput
	}{
		{name: "missing name", input: CreateProjectInput{Template: "basic"}},
		{name: "missing template", input: CreateProjectInput{Name: "demo"}},
		{name: "unknown template", input: CreateProjectInput{Template: "nope", Name: "demo"}},
		{name: "invalid name", input: CreateProjectInput{Template: "basic", Name: "my app"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := makeTestDeps(t, &runnertest.Recorder{})
			handler := handleCreateProject(deps)

			_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestHandleCreateProject_Exists(t *testing.T) {
	rec := &runnertest.Recorder{}
	deps := makeTestDeps(t, rec)
	if err := os.Mkdir(filepath.Join(deps.Env.WorkDir, "taken"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, _, err := handleCreateProject(deps)(context.Background(), &mcp.CallToolRequest{}, CreateProjectInput{
		Template: "basic",
		Name:     "taken",
	})
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	if len(rec.Calls) != 0 {
		t.Errorf("subprocess calls = %d, want 0", len(rec.Calls))
	}
}

func TestNewServer(t *testing.T) {
	server := NewServer("test", makeTestDeps(t, &runnertest.Recorder{}))
	if server == nil {
		t.Fatal("NewServer returned nil")
	}
}
