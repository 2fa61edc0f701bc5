package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/hatch/internal/output"
	"github.com/gorewood/hatch/internal/project"
	"github.com/gorewood/hatch/internal/prompt"
)

// createFlags holds the command-line flags for the create flow.
type createFlags struct {
	template    string
	name        string
	skipInstall bool
	skipGit     bool
	dryRun      bool
}

func addCreateFlags(cmd *cobra.Command, flags *createFlags) {
	cmd.Flags().StringVarP(&flags.template, "template", "t", "", "Template to generate (skips the question)")
	cmd.Flags().StringVarP(&flags.name, "name", "n", "", "Project name (skips the question)")
	cmd.Flags().BoolVar(&flags.skipInstall, "skip-install", false, "Do not install dependencies")
	cmd.Flags().BoolVar(&flags.skipGit, "skip-git", false, "Do not initialize a git repository")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show what would be created without writing anything")
}

// runCreate asks for whatever the flags left out and creates the project.
func runCreate(cmd *cobra.Command, a *app, flags *createFlags) error {
	interactive := !a.json && output.IsInteractive(cmd.InOrStdin())

	answers, err := prompt.Ask(prompt.Terminal{}, prompt.Questions{
		Templates:    a.env.Catalog.Names(),
		Template:     flags.template,
		Name:         flags.name,
		ValidateName: project.ValidateProjectName,
		Interactive:  interactive,
	})
	if err != nil {
		return a.fail(err)
	}

	opts, tmpl, err := project.NewOptions(a.env, answers.Template, answers.Name)
	if err != nil {
		return a.fail(err)
	}
	a.logger.Info().
		Str("template", opts.TemplateName).
		Str("project", opts.ProjectName).
		Str("target", opts.TargetPath).
		Msg("creating project")

	childOut := cmd.OutOrStdout()
	if a.json {
		childOut = cmd.ErrOrStderr()
	}
	in := a.initializer(cmd.InOrStdin(), childOut, cmd.ErrOrStderr(), a.printer)

	report, err := in.Create(cmd.Context(), opts, tmpl, project.CreateFlags{
		SkipInstall: flags.skipInstall,
		SkipGit:     flags.skipGit,
		DryRun:      flags.dryRun,
	})
	if err != nil {
		return a.fail(err)
	}
	return project.PrintSummary(a.printer, opts, report)
}
