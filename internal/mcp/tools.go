package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/hatch/internal/project"
)

// --- List templates tool ---

// ListTemplatesInput is the input for the list_templates tool (no parameters needed).
type ListTemplatesInput struct{}

// TemplateInfo describes one template.
type TemplateInfo struct {
	Name        string            `json:"name"                  jsonschema:"template name, used as the template argument of create_project"`
	Source      string            `json:"source"                jsonschema:"built-in or local"`
	Description string            `json:"description,omitempty" jsonschema:"what the template generates"`
	Vars        map[string]string `json:"vars,omitempty"        jsonschema:"default values for template-specific placeholders"`
}

// ListTemplatesOutput is the output for the list_templates tool.
type ListTemplatesOutput struct {
	Count     int            `json:"count"     jsonschema:"number of templates"`
	Templates []TemplateInfo `json:"templates" jsonschema:"available templates sorted by name"`
}

func handleListTemplates(deps Deps) mcp.ToolHandlerFor[ListTemplatesInput, ListTemplatesOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListTemplatesInput) (*mcp.CallToolResult, ListTemplatesOutput, error) {
		all := deps.Env.Catalog.All()
		out := ListTemplatesOutput{
			Count:     len(all),
			Templates: make([]TemplateInfo, 0, len(all)),
		}
		for _, tmpl := range all {
			out.Templates = append(out.Templates, TemplateInfo{
				Name:        tmpl.Name,
				Source:      tmpl.Source,
				Description: tmpl.Description(),
				Vars:        tmpl.Manifest.Vars,
			})
		}
		return nil, out, nil
	}
}

// --- Create project tool ---

// CreateProjectInput is the input for the create_project tool.
type CreateProjectInput struct {
	Template    string `json:"template"               jsonschema:"template name from list_templates"`
	Name        string `json:"name"                   jsonschema:"project name: letters, numbers, underscores and hyphens only"`
	Dir         string `json:"dir,omitempty"          jsonschema:"parent directory for the project (default: server working directory)"`
	SkipInstall bool   `json:"skip_install,omitempty" jsonschema:"do not install dependencies"`
	SkipGit     bool   `json:"skip_git,omitempty"     jsonschema:"do not initialize a git repository"`
	DryRun      bool   `json:"dry_run,omitempty"      jsonschema:"report what would happen without writing anything"`
}

// CreateProjectOutput is the output for the create_project tool.
type CreateProjectOutput struct {
	Path    string               `json:"path"                      jsonschema:"absolute path of the project directory"`
	Files   []string             `json:"files"                     jsonschema:"files written, relative to path"`
	Manager string               `json:"package_manager,omitempty" jsonschema:"package manager used for installation"`
	DryRun  bool                 `json:"dry_run,omitempty"         jsonschema:"true when nothing was written"`
	Steps   []project.StepResult `json:"steps"                     jsonschema:"pipeline steps with status ok, skipped, failed or dry_run"`
}

func handleCreateProject(deps Deps) mcp.ToolHandlerFor[CreateProjectInput, CreateProjectOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateProjectInput) (*mcp.CallToolResult, CreateProjectOutput, error) {
		if input.Template == "" || input.Name == "" {
			return nil, CreateProjectOutput{}, fmt.Errorf("template and name are required")
		}

		env := deps.Env
		if input.Dir != "" {
			dir := input.Dir
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(env.WorkDir, dir)
			}
			env.WorkDir = dir
		}

		opts, tmpl, err := project.NewOptions(env, input.Template, input.Name)
		if err != nil {
			return nil, CreateProjectOutput{}, err
		}

		flags := project.CreateFlags{
			SkipInstall: input.SkipInstall,
			SkipGit:     input.SkipGit,
			DryRun:      input.DryRun,
		}
		report, err := deps.NewInitializer().Create(ctx, opts, tmpl, flags)
		if err != nil {
			return nil, CreateProjectOutput{}, err
		}

		return nil, CreateProjectOutput{
			Path:    report.TargetPath,
			Files:   report.Files,
			Manager: report.Manager,
			DryRun:  report.DryRun,
			Steps:   report.Steps,
		}, nil
	}
}
