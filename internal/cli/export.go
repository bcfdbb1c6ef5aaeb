package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/topoviz/topoviz/pkg/graph"
	"github.com/topoviz/topoviz/pkg/pipeline"
	"github.com/topoviz/topoviz/pkg/render/dot"
)

// exportCommand creates the export command for writing the graph
// description of a built-in topology without invoking the renderer.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output string
		asDOT  bool
		dns    bool
	)

	cmd := &cobra.Command{
		Use:   "export [topology]",
		Short: "Write a built-in topology as graph JSON or DOT",
		Long: `Write a built-in topology as graph JSON or DOT.

The JSON output round-trips through 'build'; the DOT output is the exact
graph description handed to Graphviz.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := pipeline.DefaultTopology
			if len(args) == 1 {
				name = args[0]
			}
			return c.runExport(name, output, dns, asDOT)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: derived from the diagram title)")
	cmd.Flags().BoolVar(&asDOT, "dot", false, "write Graphviz DOT instead of graph JSON")
	cmd.Flags().BoolVar(&dns, "dns", false, "include Route 53 hosted zones and ACM certificates")

	return cmd
}

func (c *CLI) runExport(name, output string, dns, asDOT bool) error {
	d, err := pipeline.Build(pipeline.Options{Topology: name, DNS: dns})
	if err != nil {
		return err
	}

	ext := "json"
	if asDOT {
		ext = "dot"
	}
	if output == "" {
		output = basePathFromTitle(d.Title()) + "." + ext
	}

	if asDOT {
		data := []byte(dot.ToDOT(d, dot.Options{}))
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
	} else if err := graph.WriteFile(d, output); err != nil {
		return err
	}

	printSuccess("Exported %s", d.Title())
	printFile(output, false)
	return nil
}
