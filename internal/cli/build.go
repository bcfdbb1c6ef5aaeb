package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/topoviz/topoviz/pkg/graph"
	"github.com/topoviz/topoviz/pkg/manifest"
	"github.com/topoviz/topoviz/pkg/pipeline"
	"github.com/topoviz/topoviz/pkg/topology"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output   string
	formats  []string
	detailed bool
	noCache  bool
	redisURL string
}

// buildCommand creates the build command for rendering user topologies
// from TOML manifests or saved graph JSON.
func (c *CLI) buildCommand() *cobra.Command {
	var formatsStr string
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <topology.toml|graph.json>",
		Short: "Render a topology from a manifest or graph file",
		Long: `Render a topology from a manifest or graph file.

TOML manifests declare clusters, nodes, and edges (see package manifest);
JSON files are the graph format written by 'export' or '-f json'. The
input format is chosen by file extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = pipeline.ParseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runBuild(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "annotate node labels with their kind")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "use a Redis render cache at this URL instead of the file cache")

	return cmd
}

// runBuild loads the topology file and renders all requested formats.
func (c *CLI) runBuild(ctx context.Context, input string, opts *buildOpts) error {
	d, err := loadTopology(input)
	if err != nil {
		return err
	}
	c.Logger.Infof("Loaded %s: %d nodes, %d edges", input, d.NodeCount(), d.EdgeCount())

	runner, err := c.newRunner(ctx, opts.noCache, opts.redisURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := pipeline.Options{Detailed: opts.detailed, Formats: opts.formats}

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", d.Title()))
	spinner.Start()
	result, err := runner.Render(ctx, d, popts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	printSuccess("Generated %s", d.Title())
	return writeArtifacts(result, opts.formats, opts.output)
}

// loadTopology reads a topology from a TOML manifest or graph JSON file,
// dispatching on the file extension.
func loadTopology(path string) (*topology.Diagram, error) {
	switch filepath.Ext(path) {
	case ".toml":
		return manifest.ParseFile(path)
	case ".json":
		return graph.ReadFile(path)
	default:
		return nil, fmt.Errorf("unsupported input %s: expected a .toml manifest or .json graph", path)
	}
}
