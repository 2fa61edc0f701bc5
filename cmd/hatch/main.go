// Package main provides the entry point for the hatch CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/hatch/internal/logging"
	"github.com/gorewood/hatch/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{}
	defer func() { _ = a.close() }()

	err := fang.Execute(ctx, newRootCmdFor(a), fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the hatch CLI. Without a
// subcommand it runs the create flow.
func newRootCmd() *cobra.Command {
	return newRootCmdFor(&app{})
}

// newRootCmdFor builds the root command around a, so the caller can
// release what setup opened once the command returns.
func newRootCmdFor(a *app) *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "hatch",
		Short: "Create a new project from a template",
		Long: `Hatch - Create a new project from a template.

Hatch asks which template to use and what to call the project, then:
  - Copies the template into ./<name>, filling in {{projectName}} and friends
  - Renames gitignore to .gitignore
  - Installs dependencies with yarn (or npm) when package.json is present
  - Initializes a git repository with an initial commit

Questions answered by flags are not asked. When stdin is not a terminal
both --template and --name are required.

Examples:
  hatch                                  # Ask everything
  hatch --template basic --name my_app   # No questions
  hatch -t static -n site --skip-git     # Copy only, no repository
  hatch --dry-run -t basic -n demo       # Show what would happen`,
		Version:       buildVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreate(cmd, a, flags)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.setup(cmd)
	}

	cmd.PersistentFlags().BoolVar(&a.json, "json", false, "Output in JSON format")
	cmd.PersistentFlags().StringVar(&a.color, "color", "auto", "Color output: auto, always, never")
	cmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", logging.FilePath(), "Append logs to this file (empty disables)")
	cmd.PersistentFlags().StringVar(&a.templatesDir, "templates-dir", "", "Directory of local templates (default from config)")
	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default $HATCH_CONFIG_HOME/config.toml)")
	addCreateFlags(cmd, flags)

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd, a)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command, a *app) {
	addGroupedCommand(cmd, newTemplatesCmd(a), "core")
	addGroupedCommand(cmd, newServeCmd(a), "agent")
	addGroupedCommand(cmd, newDoctorCmd(a), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
