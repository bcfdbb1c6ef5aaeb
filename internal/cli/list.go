package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/topoviz/topoviz/pkg/pipeline"
	"github.com/topoviz/topoviz/pkg/topology/aws"
)

// listCommand creates the list command showing built-in topologies and
// the node kind catalog.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in topologies and node kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Topologies"))
			for _, name := range pipeline.Topologies() {
				printDetail("%s (use --dns for the DNS/ACM variant)", name)
			}

			fmt.Println()
			fmt.Println(StyleTitle.Render("Node kinds"))
			for _, kind := range aws.Kinds() {
				printDetail("%s", kind)
			}
			return nil
		},
	}
}
