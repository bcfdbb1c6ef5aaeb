// Package cli implements the topoviz command-line interface.
//
// Commands cover the full lifecycle of a topology diagram: generate the
// built-in topologies, build custom ones from TOML manifests or saved
// graph JSON, export the graph description without rendering, and serve a
// local rendering preview. All commands support --verbose for debug-level
// logging via charmbracelet/log.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/topoviz/topoviz/pkg/buildinfo"
	"github.com/topoviz/topoviz/pkg/cache"
	"github.com/topoviz/topoviz/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "topoviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Topoviz renders declarative AWS topologies as diagrams",
		Long:         `Topoviz describes AWS multi-region network topologies as graphs of labeled nodes in nested clusters, and renders them to images via Graphviz.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
// Cache failures degrade to a null cache rather than failing the command.
func (c *CLI) newRunner(ctx context.Context, noCache bool, redisURL string) (*pipeline.Runner, error) {
	store, err := newCache(ctx, noCache, redisURL)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, c.Logger), nil
}

func newCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/topoviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
