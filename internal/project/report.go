package project

import (
	"github.com/gorewood/hatch/internal/output"
)

// Step status values.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
	StatusDryRun  = "dry_run"
)

// Step names, in pipeline order.
const (
	StepCreateDir = "create_dir"
	StepCopy      = "copy"
	StepInstall   = "install"
	StepGit       = "git"
)

// StepResult tracks the result of a single pipeline step.
type StepResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "skipped", "failed", "dry_run"
	Message string `json:"message,omitempty"`
}

// Report summarizes a Create call.
type Report struct {
	ProjectName  string       `json:"project_name"`
	TemplateName string       `json:"template_name"`
	TargetPath   string       `json:"target_path"`
	Files        []string     `json:"files"`
	Dirs         []string     `json:"dirs"`
	Manager      string       `json:"package_manager,omitempty"`
	DryRun       bool         `json:"dry_run,omitempty"`
	Steps        []StepResult `json:"steps"`
}

// Step returns the named step, or nil when it was never reached.
func (r *Report) Step(name string) *StepResult {
	for i := range r.Steps {
		if r.Steps[i].Name == name {
			return &r.Steps[i]
		}
	}
	return nil
}

// Succeeded reports whether the named step completed with "ok" status.
func (r *Report) Succeeded(name string) bool {
	s := r.Step(name)
	return s != nil && s.Status == StatusOK
}

func (r *Report) add(printer *output.Printer, step StepResult) {
	r.Steps = append(r.Steps, step)
	if printer != nil {
		printer.Step(step.Status, step.Name, step.Message)
	}
}
