package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gorewood/hatch/internal/config"
	"github.com/gorewood/hatch/internal/logging"
	"github.com/gorewood/hatch/internal/output"
	"github.com/gorewood/hatch/internal/project"
	"github.com/gorewood/hatch/internal/runner"
	"github.com/gorewood/hatch/internal/templates"
)

// app holds the persistent flags and the context loaded once before any
// command runs.
type app struct {
	json         bool
	color        string
	verbose      int
	logFile      string
	templatesDir string
	configFile   string

	env      project.Env
	printer  *output.Printer
	logger   zerolog.Logger
	closeLog func() error

	// configErr is kept for doctor, which reports it instead of failing.
	configErr error
}

// setup configures logging and loads the config and template catalog.
func (a *app) setup(cmd *cobra.Command) error {
	a.json = isJSONMode(cmd)
	out := cmd.OutOrStdout()
	a.printer = output.NewPrinter(out, a.json, output.ResolveColorMode(a.color, output.IsTTY(out))).
		WithStderr(cmd.ErrOrStderr())

	a.closeLog = logging.Setup(a.verbose, cmd.ErrOrStderr(), a.logFile)
	a.logger = logging.Get("cli")

	workDir, err := os.Getwd()
	if err != nil {
		return a.fail(output.NewSystemErrorWithCause("failed to determine working directory", err))
	}
	a.env.WorkDir = workDir

	path := a.configFile
	if path == "" {
		path = config.File()
	}
	cfg, err := config.Load(path)
	if err != nil {
		a.configErr = err
		if cmd.Name() != "doctor" {
			return a.fail(output.NewUserError(err.Error()))
		}
		cfg = &config.Config{}
	}
	a.env.Config = cfg

	dir := a.templatesDir
	if dir == "" {
		dir = cfg.TemplatesDir
	}
	catalog, err := templates.Load(dir)
	if err != nil {
		return a.fail(output.NewUserError(fmt.Sprintf("loading templates: %v", err)))
	}
	a.env.Catalog = catalog

	a.logger.Debug().
		Str("work_dir", workDir).
		Str("config", cfg.Source).
		Str("templates_dir", dir).
		Strs("templates", catalog.Names()).
		Msg("startup context loaded")
	return nil
}

// close releases the log file opened by setup. Safe to call when setup
// never ran.
func (a *app) close() error {
	if a.closeLog == nil {
		return nil
	}
	closeLog := a.closeLog
	a.closeLog = nil
	return closeLog()
}

// fail prints err through the printer and returns it.
func (a *app) fail(err error) error {
	a.printer.Error(err)
	return err
}

// initializer builds an Initializer that streams subprocess output to the
// terminal. stdout is the structured channel in JSON mode, so child output
// goes to stderr instead.
func (a *app) initializer(stdin io.Reader, stdout, stderr io.Writer, printer *output.Printer) *project.Initializer {
	r := runner.NewExec(logging.Get("runner"))
	r.Stdin = stdin
	r.Stdout = stdout
	r.Stderr = stderr

	return &project.Initializer{
		Runner:        r,
		LookPath:      exec.LookPath,
		Managers:      a.env.Config.Managers(),
		CommitMessage: a.env.Config.CommitMessage,
		Printer:       printer,
		Logger:        logging.Get("project"),
	}
}
