// Package dot converts topology diagrams to Graphviz DOT.
//
// The cluster tree maps to nested "subgraph cluster_N" blocks, which is how
// Graphviz expresses visual grouping. Node kinds map to shape and color
// attributes echoing the familiar AWS icon palette: pink for management,
// purple for networking, orange for compute, blue for databases, red for
// security.
package dot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/topoviz/topoviz/pkg/topology"
	"github.com/topoviz/topoviz/pkg/topology/aws"
)

// Options configures DOT generation.
type Options struct {
	// Detailed appends the node kind to each label.
	// When false, only the display label is shown.
	Detailed bool
}

// kindStyle holds the Graphviz attributes for one node kind.
type kindStyle struct {
	shape string
	fill  string
}

var kindStyles = map[topology.Kind]kindStyle{
	aws.KindOrganizations:            {shape: "box", fill: "#E7157B"},
	aws.KindOrganizationsAccount:     {shape: "box", fill: "#F2B0CE"},
	aws.KindTransitGateway:           {shape: "diamond", fill: "#8C4FFF"},
	aws.KindTransitGatewayAttachment: {shape: "diamond", fill: "#C9B3F5"},
	aws.KindVPC:                      {shape: "box3d", fill: "#B388FF"},
	aws.KindALB:                      {shape: "ellipse", fill: "#A166FF"},
	aws.KindRoute53HostedZone:        {shape: "ellipse", fill: "#D5BFFF"},
	aws.KindECR:                      {shape: "box", fill: "#ED7100"},
	aws.KindEKS:                      {shape: "box", fill: "#F5A623"},
	aws.KindRDS:                      {shape: "cylinder", fill: "#527FFF"},
	aws.KindCertificateManager:       {shape: "note", fill: "#DD344C"},
}

// defaultStyle is used for kinds outside the catalog.
var defaultStyle = kindStyle{shape: "box", fill: "white"}

// ToDOT converts a diagram to Graphviz DOT. Output follows node and edge
// insertion order, so identical diagrams produce byte-identical DOT.
// The resulting string renders with [render.SVG] or [render.PNG].
func ToDOT(d *topology.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  label=%q;\n", d.Title())
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [style=\"rounded,filled\", fontsize=13, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	n := 0
	writeCluster(&buf, d, d.Root(), opts, 1, &n)

	buf.WriteString("\n")
	for _, e := range d.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writeCluster emits the nodes of c, then recurses into its sub-clusters
// as subgraph blocks. The root cluster contributes no subgraph of its own;
// its title is already the graph label. seq numbers clusters depth-first
// so the "cluster_N" names are stable across runs.
func writeCluster(buf *bytes.Buffer, d *topology.Diagram, c *topology.Cluster, opts Options, depth int, seq *int) {
	indent := strings.Repeat("  ", depth)

	for _, id := range c.NodeIDs() {
		node, _ := d.Node(id)
		fmt.Fprintf(buf, "%s%q [%s];\n", indent, node.ID, strings.Join(nodeAttrs(node, opts), ", "))
	}

	for _, child := range c.Children() {
		fmt.Fprintf(buf, "%ssubgraph cluster_%d {\n", indent, *seq)
		*seq++
		fmt.Fprintf(buf, "%s  label=%q;\n", indent, child.Name())
		fmt.Fprintf(buf, "%s  style=rounded;\n", indent)
		fmt.Fprintf(buf, "%s  color=grey40;\n", indent)
		writeCluster(buf, d, child, opts, depth+1, seq)
		fmt.Fprintf(buf, "%s}\n", indent)
	}
}

func nodeAttrs(n topology.Node, opts Options) []string {
	label := n.DisplayLabel()
	if opts.Detailed {
		label = fmt.Sprintf("%s\n(%s)", label, n.Kind)
	}

	style, ok := kindStyles[n.Kind]
	if !ok {
		style = defaultStyle
	}
	return []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("shape=%s", style.shape),
		fmt.Sprintf("fillcolor=%q", style.fill),
	}
}
