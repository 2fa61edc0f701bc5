package project

import (
	"fmt"
	"strings"

	"github.com/gorewood/hatch/internal/output"
	"github.com/gorewood/hatch/internal/postprocess"
)

// PrintSummary prints the completion box with next steps and the author
// sign-off. JSON mode prints the report instead.
func PrintSummary(printer *output.Printer, opts Options, report *Report) error {
	if printer.IsJSON() {
		return printer.WriteJSON(report)
	}

	styles := printer.Styles()
	if report.DryRun {
		printer.Println()
		printer.Print("%s %s\n", styles.Bold.Render("Dry run: would create"), styles.Dim.Render(report.TargetPath))
		printer.KeyValue("Template", report.TemplateName)
		if report.Manager != "" {
			printer.KeyValue("Package manager", report.Manager)
		}
		for _, f := range report.Files {
			printer.Print("    %s\n", f)
		}
		return nil
	}

	var b strings.Builder
	b.WriteString("Move to project directory:\n\n")
	fmt.Fprintf(&b, "  %s\n", styles.Accent.Render("$ cd "+opts.ProjectName))
	if opts.Homepage != "" {
		b.WriteString("\nFollow this document to start:\n\n")
		fmt.Fprintf(&b, "  %s", styles.Key.Render(opts.Homepage))
	}
	printer.Box(fmt.Sprintf("Created %s from %s", opts.ProjectName, opts.TemplateName), strings.TrimRight(b.String(), "\n"))

	if opts.Author != "" {
		printer.Print("%s\n", styles.Success.Render("Happy Hacking! From "+opts.Author))
	}
	if step := report.Step(StepInstall); step != nil && step.Status == StatusSkipped && containsFile(report.Files, postprocess.MarkerFile) {
		printer.Warn("dependencies were not installed; run your package manager in %s", opts.ProjectName)
	}
	return nil
}
