package project

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/gorewood/hatch/internal/config"
	"github.com/gorewood/hatch/internal/output"
	"github.com/gorewood/hatch/internal/templates"
)

// InvalidNameMessage is shown when a project name fails validation.
const InvalidNameMessage = "Project name may only include letters, numbers, underscores and hyphens."

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateProjectName reports whether name is usable as a project
// directory: one or more ASCII letters, digits, underscores or hyphens.
func ValidateProjectName(name string) error {
	if !namePattern.MatchString(name) {
		return output.NewUserError(InvalidNameMessage)
	}
	return nil
}

// Env is the read-only context captured once at startup.
type Env struct {
	WorkDir string
	Catalog *templates.Catalog
	Config  *config.Config
}

// Options describes one project to create. It is built once from flags and
// prompt answers and passed by value.
type Options struct {
	ProjectName  string `json:"project_name"`
	TemplateName string `json:"template_name"`
	TemplatePath string `json:"template_path"`
	TargetPath   string `json:"target_path"`
	Author       string `json:"author"`
	Homepage     string `json:"homepage"`
}

// NewOptions resolves templateName in the catalog and builds the Options
// for creating projectName under env.WorkDir.
func NewOptions(env Env, templateName, projectName string) (Options, *templates.Template, error) {
	if err := ValidateProjectName(projectName); err != nil {
		return Options{}, nil, err
	}
	tmpl, err := env.Catalog.Get(templateName)
	if err != nil {
		return Options{}, nil, output.NewUserError(fmt.Sprintf("unknown template %q (available: %v)", templateName, env.Catalog.Names()))
	}

	opts := Options{
		ProjectName:  projectName,
		TemplateName: tmpl.Name,
		TemplatePath: tmpl.Path,
		TargetPath:   filepath.Join(env.WorkDir, projectName),
	}
	if env.Config != nil {
		opts.Author = env.Config.Author
		opts.Homepage = env.Config.Homepage
	}
	return opts, tmpl, nil
}
