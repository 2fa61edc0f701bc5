package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gorewood/hatch/internal/postprocess"
)

// EnvPrefix prefixes environment overrides, e.g. HATCH_AUTHOR.
const EnvPrefix = "HATCH_"

// Config holds the per-installation settings. Author and homepage are
// fixed for every project created by this installation.
type Config struct {
	Author          string   `koanf:"author"           json:"author"`
	Homepage        string   `koanf:"homepage"         json:"homepage"`
	TemplatesDir    string   `koanf:"templates_dir"    json:"templates_dir"`
	PackageManagers []string `koanf:"package_managers" json:"package_managers"`
	CommitMessage   string   `koanf:"commit_message"   json:"commit_message"`

	// Source is the config file that was read, empty when none existed.
	Source string `koanf:"-" json:"source,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		"author":           "The Hatch Authors",
		"homepage":         "https://github.com/gorewood/hatch/blob/main/README.md",
		"templates_dir":    DefaultTemplatesDir(),
		"package_managers": strings.Join(postprocess.DefaultPreference, ","),
		"commit_message":   "Init project",
	}
}

// Load layers built-in defaults, the TOML file at path (skipped when it
// does not exist) and HATCH_* environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	source := ""
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config from %s: %w", path, err)
			}
			source = path
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	if len(c.PackageManagers) == 0 {
		return errors.New("config: package_managers must list at least one manager")
	}
	if _, err := postprocess.Managers(c.PackageManagers); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Managers returns the configured package managers in preference order.
func (c *Config) Managers() []postprocess.Manager {
	managers, err := postprocess.Managers(c.PackageManagers)
	if err != nil {
		return nil
	}
	return managers
}
