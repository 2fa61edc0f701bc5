package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/hatch/internal/templates"
)

// templateListing is one template in the JSON listing.
type templateListing struct {
	Name        string            `json:"name"`
	Source      string            `json:"source"`
	Path        string            `json:"path"`
	Description string            `json:"description,omitempty"`
	Overrides   string            `json:"overrides,omitempty"`
	Vars        map[string]string `json:"vars,omitempty"`
}

// newTemplatesCmd creates the templates command.
func newTemplatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List available project templates",
		Long: `List the templates hatch can generate.

Built-in templates ship inside the binary. Local templates are read from
--templates-dir, the templates_dir config key, or $XDG_DATA_HOME/hatch/templates.
A local template shadows a built-in one of the same name.

Each template is a directory; an optional <name>.yaml beside it sets a
description, extra placeholder values and custom delimiters.

Examples:
  hatch templates          # Table of templates
  hatch templates --json   # Machine-readable listing`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTemplates(a)
		},
	}
}

func runTemplates(a *app) error {
	all := a.env.Catalog.All()

	if a.printer.IsJSON() {
		listing := make([]templateListing, 0, len(all))
		for _, tmpl := range all {
			listing = append(listing, templateListing{
				Name:        tmpl.Name,
				Source:      tmpl.Source,
				Path:        tmpl.Path,
				Description: tmpl.Description(),
				Overrides:   tmpl.Overrides,
				Vars:        tmpl.Manifest.Vars,
			})
		}
		return a.printer.Success(map[string]any{
			"count":     len(listing),
			"templates": listing,
		})
	}

	rows := make([][]string, 0, len(all))
	for _, tmpl := range all {
		rows = append(rows, []string{tmpl.Name, sourceLabel(tmpl), tmpl.Description()})
	}
	a.printer.Table([]string{"NAME", "SOURCE", "DESCRIPTION"}, rows)
	return nil
}

// sourceLabel returns the source, noting what a local template shadows.
func sourceLabel(tmpl *templates.Template) string {
	if tmpl.Overrides != "" {
		return tmpl.Source + " (overrides " + tmpl.Overrides + ")"
	}
	return tmpl.Source
}
