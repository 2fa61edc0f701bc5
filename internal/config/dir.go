// Package config loads hatch settings and resolves its directories.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names hatch's directories under the XDG base directories.
const AppName = "hatch"

// Dir returns the hatch configuration directory.
//
// Resolution:
//   - $HATCH_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/hatch, or the platform default from xdg
func Dir() string {
	if dir := os.Getenv("HATCH_CONFIG_HOME"); dir != "" {
		return dir
	}
	if env := os.Getenv("XDG_CONFIG_HOME"); env != "" {
		return filepath.Join(env, AppName)
	}
	return filepath.Join(xdg.ConfigHome, AppName)
}

// File returns the path of the user config file.
func File() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultTemplatesDir returns where user templates live when no
// templates_dir is configured.
func DefaultTemplatesDir() string {
	if env := os.Getenv("XDG_DATA_HOME"); env != "" {
		return filepath.Join(env, AppName, "templates")
	}
	return filepath.Join(xdg.DataHome, AppName, "templates")
}
