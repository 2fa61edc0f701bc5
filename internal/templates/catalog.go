// Package templates discovers project templates.
//
// A template is a directory whose name is the template identifier. An
// optional manifest sits next to it as <name>.yaml:
//
//	templates/
//	  basic/          copied verbatim (after rendering)
//	  basic.yaml      description, default vars, delimiters
//
// Built-in templates are embedded in the binary. A local templates
// directory may add templates or shadow built-ins of the same name.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed all:builtin
var builtinFS embed.FS

// Template sources.
const (
	SourceBuiltin = "built-in"
	SourceLocal   = "local"
)

// ErrNotFound is returned when a template name is not in the catalog.
var ErrNotFound = errors.New("template not found")

// Manifest is the optional metadata stored beside a template directory.
type Manifest struct {
	Description string            `yaml:"description" json:"description,omitempty"`
	Vars        map[string]string `yaml:"vars"        json:"vars,omitempty"`
	Delimiters  []string          `yaml:"delimiters"  json:"delimiters,omitempty"`
}

// Template is a read-only directory tree used as a copy source.
type Template struct {
	Name      string
	Source    string
	Path      string // display location: directory on disk or builtin/<name>
	FS        fs.FS  // rooted at the template directory
	Manifest  Manifest
	Overrides string // source this template shadows, if any
}

// Description returns the manifest description.
func (t *Template) Description() string {
	return t.Manifest.Description
}

// Delimiters returns the placeholder delimiters, empty when the manifest
// does not set them.
func (t *Template) Delimiters() (left, right string) {
	if len(t.Manifest.Delimiters) == 2 {
		return t.Manifest.Delimiters[0], t.Manifest.Delimiters[1]
	}
	return "", ""
}

// Layer is one root of template directories.
type Layer struct {
	Source string
	FS     fs.FS
	Base   string // display prefix for Template.Path
}

// Catalog is the set of templates available to this invocation. It is
// built once at startup and not modified afterwards.
type Catalog struct {
	byName map[string]*Template
	names  []string
}

// BuiltinLayer returns the layer of templates embedded in the binary.
func BuiltinLayer() Layer {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("embedded templates: %v", err))
	}
	return Layer{Source: SourceBuiltin, FS: sub, Base: "builtin"}
}

// Load builds the catalog from the built-in templates plus localDir.
// An empty or missing localDir yields only the built-ins.
func Load(localDir string) (*Catalog, error) {
	layers := []Layer{BuiltinLayer()}
	if localDir != "" {
		info, err := os.Stat(localDir)
		switch {
		case err == nil && info.IsDir():
			layers = append(layers, Layer{Source: SourceLocal, FS: os.DirFS(localDir), Base: localDir})
		case err == nil:
			return nil, fmt.Errorf("templates dir %s is not a directory", localDir)
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("reading templates dir %s: %w", localDir, err)
		}
	}
	return NewCatalog(layers...)
}

// NewCatalog builds a catalog from layers in increasing priority: a
// template in a later layer shadows one of the same name in an earlier one.
func NewCatalog(layers ...Layer) (*Catalog, error) {
	cat := &Catalog{byName: make(map[string]*Template)}
	for _, layer := range layers {
		found, err := scanLayer(layer)
		if err != nil {
			return nil, err
		}
		for _, tmpl := range found {
			if prev, ok := cat.byName[tmpl.Name]; ok {
				tmpl.Overrides = prev.Source
			}
			cat.byName[tmpl.Name] = tmpl
		}
	}

	for name := range cat.byName {
		cat.names = append(cat.names, name)
	}
	sort.Strings(cat.names)
	return cat, nil
}

// Names returns the sorted template identifiers.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// All returns the templates sorted by name.
func (c *Catalog) All() []*Template {
	out := make([]*Template, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.byName[name])
	}
	return out
}

// Get returns the named template or ErrNotFound.
func (c *Catalog) Get(name string) (*Template, error) {
	tmpl, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return tmpl, nil
}

// scanLayer lists the template directories at the root of a layer.
func scanLayer(layer Layer) ([]*Template, error) {
	entries, err := fs.ReadDir(layer.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("listing %s templates: %w", layer.Source, err)
	}

	var found []*Template
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		sub, err := fs.Sub(layer.FS, name)
		if err != nil {
			return nil, fmt.Errorf("opening template %s: %w", name, err)
		}
		manifest, err := readManifest(layer.FS, name+".yaml")
		if err != nil {
			return nil, err
		}
		found = append(found, &Template{
			Name:     name,
			Source:   layer.Source,
			Path:     path.Join(layer.Base, name),
			FS:       sub,
			Manifest: manifest,
		})
	}
	return found, nil
}

// readManifest parses a manifest file; a missing file is an empty manifest.
func readManifest(fsys fs.FS, name string) (Manifest, error) {
	var manifest Manifest
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return manifest, nil
	}
	if err != nil {
		return manifest, fmt.Errorf("reading manifest %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return manifest, fmt.Errorf("invalid manifest %s: %w", name, err)
	}
	if n := len(manifest.Delimiters); n != 0 && n != 2 {
		return manifest, fmt.Errorf("invalid manifest %s: delimiters needs exactly 2 entries, got %d", name, n)
	}
	return manifest, nil
}
