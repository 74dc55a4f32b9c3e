// Package cli implements the panelfit command-line interface.
//
// # Commands
//
//   - layout: arrange a scene and write the layout as JSON
//   - render: arrange a scene and render SVG, PNG, DOT or JSON
//   - preview: interactive terminal preview that relayouts on resize
//   - serve: run the HTTP API
//   - cache: inspect or clear the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is also attached to the command context (see loggerFromContext).
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/panelfit/pkg/cache"
	"github.com/matzehuels/panelfit/pkg/pipeline"
	"github.com/matzehuels/panelfit/pkg/scene"
)

const appName = "panelfit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a CLI that logs to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// newRunner creates a pipeline runner backed by the file cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	ch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// baseOptions returns the defaults overlaid with the config file.
func (c *CLI) baseOptions() (pipeline.Options, error) {
	conf, err := pipeline.LoadConfig(c.configPath)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Defaults().Merge(conf), nil
}

// loadScene reads the scene at path and resolves the effective options:
// defaults, config file, scene document, then flags.
func (c *CLI) loadScene(cmd *cobra.Command, path string, flags *optionFlags) (*scene.Scene, pipeline.Options, error) {
	sc, err := scene.Load(path)
	if err != nil {
		return nil, pipeline.Options{}, err
	}
	base, err := c.baseOptions()
	if err != nil {
		return nil, pipeline.Options{}, err
	}
	opts := base.Merge(pipeline.FromScene(sc)).Merge(flags.options(cmd))
	opts.Logger = c.Logger
	if err := opts.Validate(); err != nil {
		return nil, pipeline.Options{}, err
	}
	return sc, opts, nil
}
