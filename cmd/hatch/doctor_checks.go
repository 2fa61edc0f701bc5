package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/gorewood/hatch/internal/git"
	"github.com/gorewood/hatch/internal/postprocess"
)

type lookPathFunc func(name string) (string, error)

var defaultLookPath lookPathFunc = exec.LookPath

// runToolChecks checks git and every known package manager.
func runToolChecks(a *app, lookPath lookPathFunc) []checkResult {
	checks := make([]checkResult, 0, 4)
	checks = append(checks, checkGit(lookPath))
	checks = append(checks, checkManagers(a, lookPath)...)
	return checks
}

// checkGit checks that git is installed.
func checkGit(lookPath lookPathFunc) checkResult {
	if _, err := lookPath("git"); err != nil {
		return checkResult{
			Name:    "git",
			Status:  checkFail,
			Message: "not found in PATH",
			Hint:    "Install git or use --skip-git",
		}
	}
	msg := "installed"
	if v, err := git.Version(); err == nil {
		msg = v
	}
	return checkResult{Name: "git", Status: checkPass, Message: msg}
}

// checkManagers reports each configured package manager. Missing managers
// are warnings unless none at all is available. An unusable configuration
// falls back to the default preference.
func checkManagers(a *app, lookPath lookPathFunc) []checkResult {
	managers := a.env.Config.Managers()
	if len(managers) == 0 {
		managers, _ = postprocess.Managers(postprocess.DefaultPreference)
	}
	checks := make([]checkResult, 0, len(managers))
	available := 0
	for _, m := range managers {
		if path, err := lookPath(m.Name); err == nil {
			available++
			checks = append(checks, checkResult{Name: m.Name, Status: checkPass, Message: path})
			continue
		}
		checks = append(checks, checkResult{Name: m.Name, Status: checkWarn, Message: "not found in PATH"})
	}

	if len(managers) > 0 && available == 0 {
		checks = append(checks, checkResult{
			Name:    "package manager",
			Status:  checkFail,
			Message: fmt.Sprintf("none of the configured managers is installed; templates with %s cannot be installed", postprocess.MarkerFile),
			Hint:    "Install one of them or use --skip-install",
		})
	}
	return checks
}

// runSetupChecks checks the config file and the templates directory.
func runSetupChecks(a *app) []checkResult {
	return []checkResult{
		checkConfig(a),
		checkTemplatesDir(a),
		checkTemplates(a),
	}
}

// checkConfig reports which config file was read.
func checkConfig(a *app) checkResult {
	if a.configErr != nil {
		return checkResult{
			Name:    "config",
			Status:  checkFail,
			Message: a.configErr.Error(),
			Hint:    "Fix the config file or remove it to use defaults",
		}
	}
	if a.env.Config.Source == "" {
		return checkResult{Name: "config", Status: checkPass, Message: "no config file, using defaults"}
	}
	return checkResult{Name: "config", Status: checkPass, Message: a.env.Config.Source}
}

// checkTemplatesDir checks the local templates directory.
func checkTemplatesDir(a *app) checkResult {
	dir := a.templatesDir
	if dir == "" {
		dir = a.env.Config.TemplatesDir
	}
	if dir == "" {
		return checkResult{Name: "templates dir", Status: checkPass, Message: "not configured, built-in templates only"}
	}
	info, err := os.Stat(dir)
	if err != nil {
		return checkResult{
			Name:    "templates dir",
			Status:  checkWarn,
			Message: dir + " not found, built-in templates only",
			Hint:    "Create it to add local templates",
		}
	}
	if !info.IsDir() {
		return checkResult{Name: "templates dir", Status: checkFail, Message: dir + " is not a directory"}
	}
	return checkResult{Name: "templates dir", Status: checkPass, Message: dir}
}

// checkTemplates reports how many templates are available.
func checkTemplates(a *app) checkResult {
	names := a.env.Catalog.Names()
	if len(names) == 0 {
		return checkResult{Name: "templates", Status: checkFail, Message: "no templates available"}
	}
	return checkResult{Name: "templates", Status: checkPass, Message: fmt.Sprintf("%d available %v", len(names), names)}
}
