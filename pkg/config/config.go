// Package config loads tame settings from an optional tame.toml at the
// workspace root.
//
// Settings resolve in three layers: built-in defaults, then the file, then
// command-line flags (applied by the caller after [Load]). A missing file is
// not an error.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tame/pkg/catalog"
	"github.com/matzehuels/tame/pkg/errors"
	"github.com/matzehuels/tame/pkg/locate"
	"github.com/matzehuels/tame/pkg/pkgjson"
	"github.com/matzehuels/tame/pkg/report"
)

// FileName is the settings file looked up at the workspace root.
const FileName = "tame.toml"

// Config holds every tunable setting.
type Config struct {
	Reference      string   `toml:"reference"`
	Fields         []string `toml:"fields"`
	Strict         bool     `toml:"strict"`
	StrictPatterns bool     `toml:"strict_patterns"`
	Format         string   `toml:"format"`
	ExcludeDirs    []string `toml:"exclude_dirs"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Reference:   catalog.DefaultReference,
		Fields:      append([]string(nil), pkgjson.DefaultFields...),
		Format:      string(report.FormatText),
		ExcludeDirs: append([]string(nil), locate.DefaultExcludeDirs...),
	}
}

// Path returns the settings file location for a workspace root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Load returns the defaults overlaid with <root>/tame.toml when it exists.
func Load(root string) (Config, error) {
	cfg := Default()
	path := Path(root)

	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeRead, err, "failed to read %s", path)
	}

	if err := decode(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid %s", path)
	}
	return cfg, nil
}

// Parse decodes settings from TOML data on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := decode(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid configuration")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks every setting. Errors carry ErrCodeInvalidConfig.
func (c Config) Validate() error {
	if err := catalog.ValidateReference(c.Reference); err != nil {
		return err
	}
	if len(c.Fields) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "fields must not be empty")
	}
	for _, f := range c.Fields {
		if err := pkgjson.ValidateField(f); err != nil {
			return err
		}
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	for _, d := range c.ExcludeDirs {
		if d == "" || strings.ContainsAny(d, `/\`) {
			return errors.New(errors.ErrCodeInvalidConfig, "exclude_dirs entry %q must be a plain directory name", d)
		}
	}
	return nil
}
