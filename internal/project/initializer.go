package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/gorewood/hatch/internal/git"
	"github.com/gorewood/hatch/internal/logging"
	"github.com/gorewood/hatch/internal/output"
	"github.com/gorewood/hatch/internal/postprocess"
	"github.com/gorewood/hatch/internal/render"
	"github.com/gorewood/hatch/internal/runner"
	"github.com/gorewood/hatch/internal/scaffold"
	"github.com/gorewood/hatch/internal/templates"
)

// CreateFlags adjusts which pipeline steps run.
type CreateFlags struct {
	SkipInstall bool
	SkipGit     bool
	DryRun      bool
}

// Initializer runs the project creation pipeline.
type Initializer struct {
	Runner        runner.Runner
	LookPath      runner.LookPathFunc
	Managers      []postprocess.Manager
	CommitMessage string
	Printer       *output.Printer // nil disables step output
	Logger        zerolog.Logger
	Now           func() time.Time
}

// Create creates opts.TargetPath from tmpl. An existing destination is a
// conflict and nothing is written or spawned. Failures after the directory
// is created leave it in place.
func (in *Initializer) Create(ctx context.Context, opts Options, tmpl *templates.Template, flags CreateFlags) (*Report, error) {
	done := logging.LogOperationStart(in.Logger, "create")
	defer done()

	if err := ValidateProjectName(opts.ProjectName); err != nil {
		return nil, err
	}
	if err := checkTargetFree(opts); err != nil {
		return nil, err
	}

	report := &Report{
		ProjectName:  opts.ProjectName,
		TemplateName: opts.TemplateName,
		TargetPath:   opts.TargetPath,
		DryRun:       flags.DryRun,
	}
	copier := scaffold.New(render.New(tmpl.Delimiters()), in.Logger)
	vars := render.Vars(opts.ProjectName, tmpl.Name, opts.Author, opts.Homepage, in.year(), tmpl.Manifest.Vars)

	if flags.DryRun {
		return in.plan(copier, tmpl, flags, report)
	}

	if err := os.Mkdir(opts.TargetPath, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, existsError(opts)
		}
		return nil, output.NewSystemErrorWithCause("failed to create project directory", err)
	}
	report.add(in.Printer, StepResult{Name: StepCreateDir, Status: StatusOK, Message: opts.TargetPath})

	in.Logger.Debug().Str("template", tmpl.Name).Str("dest", opts.TargetPath).Msg("copying template")
	copied, err := copier.Copy(tmpl.FS, opts.TargetPath, vars)
	report.Files, report.Dirs = copied.Files, copied.Dirs
	if err != nil {
		report.add(in.Printer, StepResult{Name: StepCopy, Status: StatusFailed, Message: err.Error()})
		return report, output.NewSystemErrorWithCause("failed to copy template", err)
	}
	report.add(in.Printer, StepResult{Name: StepCopy, Status: StatusOK, Message: fmt.Sprintf("%d files", len(copied.Files))})

	if err := in.install(ctx, opts, flags, report); err != nil {
		return report, err
	}
	if err := in.initGit(ctx, opts, flags, report); err != nil {
		return report, err
	}
	return report, nil
}

func (in *Initializer) install(ctx context.Context, opts Options, flags CreateFlags, report *Report) error {
	if flags.SkipInstall {
		report.add(in.Printer, StepResult{Name: StepInstall, Status: StatusSkipped, Message: "disabled via --skip-install"})
		return nil
	}

	processor := postprocess.New(in.Runner, in.LookPath, in.Managers, in.Logger)
	outcome, err := processor.Run(ctx, opts.TargetPath)
	if outcome.Manager != nil {
		report.Manager = outcome.Manager.Name
	}
	if err != nil {
		report.add(in.Printer, StepResult{Name: StepInstall, Status: StatusFailed, Message: err.Error()})
		return err
	}
	if outcome.Plan.Kind == postprocess.PlainCopy {
		report.add(in.Printer, StepResult{Name: StepInstall, Status: StatusSkipped, Message: "no " + postprocess.MarkerFile})
		return nil
	}
	report.add(in.Printer, StepResult{Name: StepInstall, Status: StatusOK, Message: outcome.Manager.Command()})
	return nil
}

func (in *Initializer) initGit(ctx context.Context, opts Options, flags CreateFlags, report *Report) error {
	if flags.SkipGit {
		report.add(in.Printer, StepResult{Name: StepGit, Status: StatusSkipped, Message: "disabled via --skip-git"})
		return nil
	}

	in.Logger.Debug().Str("dir", opts.TargetPath).Msg("initializing git repository")
	if err := git.InitRepo(ctx, in.Runner, opts.TargetPath, in.CommitMessage); err != nil {
		report.add(in.Printer, StepResult{Name: StepGit, Status: StatusFailed, Message: err.Error()})
		return err
	}
	report.add(in.Printer, StepResult{Name: StepGit, Status: StatusOK, Message: "initial commit recorded"})
	return nil
}

// plan fills the report without touching the filesystem.
func (in *Initializer) plan(copier *scaffold.Copier, tmpl *templates.Template, flags CreateFlags, report *Report) (*Report, error) {
	planned, err := copier.Plan(tmpl.FS)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read template", err)
	}
	report.Files, report.Dirs = planned.Files, planned.Dirs

	report.add(in.Printer, StepResult{Name: StepCreateDir, Status: StatusDryRun, Message: "would create " + report.TargetPath})
	report.add(in.Printer, StepResult{Name: StepCopy, Status: StatusDryRun, Message: fmt.Sprintf("would write %d files", len(planned.Files))})

	switch {
	case flags.SkipInstall:
		report.add(in.Printer, StepResult{Name: StepInstall, Status: StatusSkipped, Message: "disabled via --skip-install"})
	case !containsFile(planned.Files, postprocess.MarkerFile):
		report.add(in.Printer, StepResult{Name: StepInstall, Status: StatusSkipped, Message: "no " + postprocess.MarkerFile})
	default:
		plan := postprocess.Plan{Kind: postprocess.NeedsInstall, Marker: postprocess.MarkerFile, Candidates: in.Managers}
		msg := "no package manager available"
		if manager, err := postprocess.Resolve(plan, in.LookPath); err == nil {
			report.Manager = manager.Name
			msg = "would run " + manager.Command()
		}
		report.add(in.Printer, StepResult{Name: StepInstall, Status: StatusDryRun, Message: msg})
	}

	if flags.SkipGit {
		report.add(in.Printer, StepResult{Name: StepGit, Status: StatusSkipped, Message: "disabled via --skip-git"})
	} else {
		report.add(in.Printer, StepResult{Name: StepGit, Status: StatusDryRun, Message: "would init and commit"})
	}
	return report, nil
}

func (in *Initializer) year() string {
	now := time.Now
	if in.Now != nil {
		now = in.Now
	}
	return strconv.Itoa(now().Year())
}

func checkTargetFree(opts Options) error {
	_, err := os.Lstat(opts.TargetPath)
	if err == nil {
		return existsError(opts)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return output.NewSystemErrorWithCause("failed to check project directory", err)
	}
	return nil
}

func existsError(opts Options) error {
	return output.NewConflictError(fmt.Sprintf("Folder %s exists. Delete or use another name.", opts.ProjectName))
}

func containsFile(files []string, name string) bool {
	for _, f := range files {
		if f == name {
			return true
		}
	}
	return false
}
