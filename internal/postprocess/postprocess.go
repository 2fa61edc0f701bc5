// Package postprocess runs the steps that follow a template copy, which
// today means installing dependencies for package-managed projects.
package postprocess

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gorewood/hatch/internal/logging"
	"github.com/gorewood/hatch/internal/output"
	"github.com/gorewood/hatch/internal/runner"
)

// MarkerFile marks a project whose dependencies are installed after copying.
const MarkerFile = "package.json"

// ErrNoManager is returned when no candidate package manager is on PATH.
var ErrNoManager = errors.New("no supported package manager found")

// Manager is a package manager and its non-interactive install command.
type Manager struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
}

// Command renders the install command line.
func (m Manager) Command() string {
	return runner.CommandLine(m.Name, m.Args...)
}

// KnownManagers maps supported manager names to their install commands.
var KnownManagers = map[string]Manager{
	"yarn": {Name: "yarn", Args: []string{"install", "--non-interactive"}},
	"npm":  {Name: "npm", Args: []string{"i", "--save", "--no-audit", "--save-exact", "--loglevel", "error"}},
	"pnpm": {Name: "pnpm", Args: []string{"install", "--reporter", "append-only"}},
}

// DefaultPreference is the manager order used when none is configured.
var DefaultPreference = []string{"yarn", "npm"}

// Managers resolves manager names into Managers, rejecting unknown names.
func Managers(names []string) ([]Manager, error) {
	out := make([]Manager, 0, len(names))
	for _, name := range names {
		m, ok := KnownManagers[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("unknown package manager %q (supported: npm, pnpm, yarn)", name)
		}
		out = append(out, m)
	}
	return out, nil
}

// Kind tells what a project needs after copying.
type Kind string

// Plan kinds.
const (
	PlainCopy    Kind = "plain_copy"
	NeedsInstall Kind = "needs_install"
)

// Plan is the result of inspecting a freshly copied project.
type Plan struct {
	Kind       Kind      `json:"kind"`
	Marker     string    `json:"marker,omitempty"`
	Candidates []Manager `json:"candidates,omitempty"`
}

// Detect inspects dir for the marker file.
func Detect(dir string, candidates []Manager) Plan {
	info, err := os.Stat(filepath.Join(dir, MarkerFile))
	if err != nil || info.IsDir() {
		return Plan{Kind: PlainCopy}
	}
	return Plan{Kind: NeedsInstall, Marker: MarkerFile, Candidates: candidates}
}

// Resolve picks the first candidate that is installed. Later candidates
// are only used when the earlier ones are absent.
func Resolve(plan Plan, lookPath runner.LookPathFunc) (Manager, error) {
	for _, m := range plan.Candidates {
		if _, err := lookPath(m.Name); err == nil {
			return m, nil
		}
	}
	names := make([]string, 0, len(plan.Candidates))
	for _, m := range plan.Candidates {
		names = append(names, m.Name)
	}
	return Manager{}, fmt.Errorf("%w (tried: %s)", ErrNoManager, strings.Join(names, ", "))
}

// Outcome describes what Run did.
type Outcome struct {
	Plan      Plan           `json:"plan"`
	Manager   *Manager       `json:"manager,omitempty"`
	Installed bool           `json:"installed"`
	Result    *runner.Result `json:"result,omitempty"`
}

// Processor runs post-processing for a project directory.
type Processor struct {
	runner     runner.Runner
	lookPath   runner.LookPathFunc
	candidates []Manager
	logger     zerolog.Logger
}

// New returns a Processor that tries candidates in order.
func New(r runner.Runner, lookPath runner.LookPathFunc, candidates []Manager, logger zerolog.Logger) *Processor {
	return &Processor{runner: r, lookPath: lookPath, candidates: candidates, logger: logger}
}

// Plan inspects dir without running anything.
func (p *Processor) Plan(dir string) Plan {
	return Detect(dir, p.candidates)
}

// Run installs dependencies in dir when the project needs it. A plain
// project succeeds without spawning anything. Failures are returned as
// *output.ExitError values.
func (p *Processor) Run(ctx context.Context, dir string) (Outcome, error) {
	done := logging.LogOperationStart(p.logger, "postprocess")
	defer done()

	out := Outcome{Plan: p.Plan(dir)}
	if out.Plan.Kind == PlainCopy {
		p.logger.Debug().Str("dir", dir).Msg("no marker file, nothing to install")
		return out, nil
	}

	manager, err := Resolve(out.Plan, p.lookPath)
	if err != nil {
		return out, output.NewSystemErrorWithCause("no yarn or npm found, cannot run installation", err)
	}
	out.Manager = &manager

	p.logger.Info().Str("manager", manager.Name).Str("dir", dir).Msg("installing dependencies")
	res := p.runner.Run(ctx, dir, manager.Name, manager.Args...)
	out.Result = &res
	if err := res.AsError(); err != nil {
		return out, err
	}

	out.Installed = true
	return out, nil
}
