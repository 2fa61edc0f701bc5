// Package render substitutes named placeholders in template text.
//
// A placeholder is the left delimiter, optional spaces, an identifier,
// optional spaces and the right delimiter:
//
//	{{projectName}}
//	{{ projectName }}
//
// Placeholders whose name has no value are left exactly as written, so
// templates may carry delimiters meant for other tools.
package render

import (
	"regexp"
	"strings"
)

// Default placeholder delimiters.
const (
	DefaultLeft  = "{{"
	DefaultRight = "}}"
)

// Well-known variable names supplied when a project is created.
const (
	VarProjectName  = "projectName"
	VarTemplateName = "templateName"
	VarAuthor       = "author"
	VarHomepage     = "homepage"
	VarYear         = "year"
)

// Renderer replaces placeholders delimited by a fixed pair of strings.
type Renderer struct {
	pattern *regexp.Regexp
}

var defaultRenderer = New(DefaultLeft, DefaultRight)

// New returns a Renderer for the given delimiters. Empty delimiters fall
// back to the defaults.
func New(left, right string) *Renderer {
	if left == "" {
		left = DefaultLeft
	}
	if right == "" {
		right = DefaultRight
	}
	expr := regexp.QuoteMeta(left) + `\s*([A-Za-z_][A-Za-z0-9_]*)\s*` + regexp.QuoteMeta(right)
	return &Renderer{pattern: regexp.MustCompile(expr)}
}

// Render substitutes placeholders using the default delimiters.
func Render(text string, vars map[string]string) string {
	return defaultRenderer.Render(text, vars)
}

// Render returns text with every known placeholder replaced by its value.
func (r *Renderer) Render(text string, vars map[string]string) string {
	if len(vars) == 0 || !r.pattern.MatchString(text) {
		return text
	}
	return r.pattern.ReplaceAllStringFunc(text, func(token string) string {
		name := r.pattern.FindStringSubmatch(token)[1]
		if val, ok := vars[name]; ok {
			return val
		}
		return token
	})
}

// Names returns the distinct placeholder names used in text, in order of
// first appearance.
func (r *Renderer) Names(text string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, match := range r.pattern.FindAllStringSubmatch(text, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}
	return names
}

// Vars builds the variable map for a new project. Extra values are added
// first so they can never shadow the built-in names.
func Vars(projectName, templateName, author, homepage, year string, extra map[string]string) map[string]string {
	vars := make(map[string]string, len(extra)+5)
	for k, v := range extra {
		vars[k] = v
	}
	vars[VarProjectName] = projectName
	vars[VarTemplateName] = templateName
	vars[VarAuthor] = author
	vars[VarHomepage] = homepage
	vars[VarYear] = strings.TrimSpace(year)
	return vars
}
