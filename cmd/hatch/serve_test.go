package main

import "testing"

// TestNewServeCmd verifies the serve command wires up correctly.
func TestNewServeCmd(t *testing.T) {
	cmd := newServeCmd(&app{})

	if cmd.Use != "serve" {
		t.Errorf("Use = %q, want %q", cmd.Use, "serve")
	}
	if cmd.RunE == nil {
		t.Error("RunE is nil")
	}
}

func TestServeDeps(t *testing.T) {
	a := testApp(t, "npm")
	deps := serveDeps(a)

	in := deps.NewInitializer()
	if in.Printer != nil {
		t.Error("MCP initializer must not print to stdout")
	}
	if len(in.Managers) != 1 || in.Managers[0].Name != "npm" {
		t.Errorf("Managers = %+v, want [npm]", in.Managers)
	}
	if deps.Env.WorkDir != a.env.WorkDir {
		t.Errorf("WorkDir = %q, want %q", deps.Env.WorkDir, a.env.WorkDir)
	}
}
