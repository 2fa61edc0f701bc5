// Package scaffold copies a template tree into a project directory,
// rendering placeholders in every file on the way.
package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/gorewood/hatch/internal/render"
)

// Templates store the git ignore file without its leading dot; it is the
// only file renamed on copy.
const (
	IgnoreFileSource = "gitignore"
	IgnoreFileDest   = ".gitignore"
)

// Result lists what a copy produced, as slash-separated paths relative to
// the destination root, in creation order.
type Result struct {
	Files []string `json:"files"`
	Dirs  []string `json:"dirs"`
}

// Copier renders and writes template trees.
type Copier struct {
	renderer *render.Renderer
	logger   zerolog.Logger
}

// New returns a Copier. A nil renderer uses the default delimiters.
func New(renderer *render.Renderer, logger zerolog.Logger) *Copier {
	if renderer == nil {
		renderer = render.New(render.DefaultLeft, render.DefaultRight)
	}
	return &Copier{renderer: renderer, logger: logger}
}

// DestName maps a template file name to the name written in the project.
func DestName(name string) string {
	if name == IgnoreFileSource {
		return IgnoreFileDest
	}
	return name
}

// Copy walks src and mirrors it under dest, which must already exist.
// Directories are created before their children; each file is rendered
// with vars and written exactly once. An existing file at a destination
// path is an error, never overwritten.
func (c *Copier) Copy(src fs.FS, dest string, vars map[string]string) (Result, error) {
	return c.walk(src, func(rel string, entry fs.DirEntry) error {
		target := filepath.Join(dest, filepath.FromSlash(rel))
		if entry.IsDir() {
			if err := os.Mkdir(target, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", rel, err)
			}
			return nil
		}
		return c.writeFile(src, rel, entry, target, vars)
	})
}

// Plan reports what Copy would produce without writing anything.
func (c *Copier) Plan(src fs.FS) (Result, error) {
	return c.walk(src, func(string, fs.DirEntry) error { return nil })
}

// walk visits every regular file and directory below the root of src in
// lexical order, handing visit the destination-relative path.
func (c *Copier) walk(src fs.FS, visit func(rel string, entry fs.DirEntry) error) (Result, error) {
	var res Result
	err := fs.WalkDir(src, ".", func(srcPath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("reading template %s: %w", srcPath, err)
		}
		if srcPath == "." {
			return nil
		}

		rel := srcPath
		if !entry.IsDir() {
			rel = path.Join(path.Dir(srcPath), DestName(entry.Name()))
		}

		switch {
		case entry.IsDir():
			if err := visit(rel, entry); err != nil {
				return err
			}
			res.Dirs = append(res.Dirs, rel)
		case entry.Type().IsRegular():
			if err := visit(rel, entry); err != nil {
				return err
			}
			res.Files = append(res.Files, rel)
		default:
			c.logger.Debug().Str("path", srcPath).Str("type", entry.Type().String()).Msg("skipping non-regular template entry")
		}
		return nil
	})
	return res, err
}

func (c *Copier) writeFile(src fs.FS, rel string, entry fs.DirEntry, target string, vars map[string]string) error {
	data, err := fs.ReadFile(src, srcPathFor(rel, entry))
	if err != nil {
		return fmt.Errorf("reading template file %s: %w", rel, err)
	}
	rendered := c.renderer.Render(string(data), vars)

	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode(entry))
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("writing %s: file already exists", rel)
		}
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	if _, err := file.WriteString(rendered); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", rel, err)
	}

	c.logger.Trace().Str("file", rel).Int("bytes", len(rendered)).Msg("wrote file")
	return nil
}

// srcPathFor undoes the ignore-file rename to find the source path.
func srcPathFor(rel string, entry fs.DirEntry) string {
	return path.Join(path.Dir(rel), entry.Name())
}

// fileMode keeps the executable bit of template files.
func fileMode(entry fs.DirEntry) fs.FileMode {
	info, err := entry.Info()
	if err == nil && info.Mode().Perm()&0o111 != 0 {
		return 0o755
	}
	return 0o644
}
