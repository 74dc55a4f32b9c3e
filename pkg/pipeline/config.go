package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/panelfit/pkg/errors"
)

// DefaultConfigPath returns $XDG_CONFIG_HOME/panelfit/config.toml, or
// ~/.config/panelfit/config.toml.
func DefaultConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "panelfit", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "panelfit", "config.toml"), nil
}

// LoadConfig reads options from a TOML file. A missing file at the default
// path is not an error; a missing explicit path is.
//
//	width = 1024
//	randomize = false
//	style = "balanced"
//	formats = ["svg", "json"]
func LoadConfig(path string) (Options, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			return Options{}, err
		}
		path = p
	}

	var o Options
	md, err := toml.DecodeFile(path, &o)
	if err != nil {
		if os.IsNotExist(err) {
			if !explicit {
				return Options{}, nil
			}
			return Options{}, errors.Wrap(errors.ErrCodeNotFound, err, "config %s", path)
		}
		return Options{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := o.validatePartial(); err != nil {
		return Options{}, fmt.Errorf("config %s: %w", path, err)
	}
	return o, nil
}

// validatePartial validates the fields a config file sets.
func (o Options) validatePartial() error {
	return Defaults().Merge(o).Validate()
}
