// Package pipeline provides the build → DOT → render pipeline shared by
// the CLI and the preview server.
//
// The pipeline has three stages:
//
//  1. Build: construct the topology (built-in constructor, manifest, or
//     saved graph JSON)
//  2. Describe: convert the diagram to Graphviz DOT
//  3. Render: invoke Graphviz for image formats, with artifact caching
//
// Centralizing this keeps the CLI commands and server handlers thin and
// guarantees they validate input and name artifacts the same way.
//
//	runner := pipeline.NewRunner(c, logger)
//	out, err := runner.Execute(ctx, pipeline.Options{
//	    Topology: pipeline.TopologyMultiRegionWorkload,
//	    DNS:      true,
//	    Formats:  []string{pipeline.FormatSVG},
//	})
//	svg := out.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"slices"
	"strings"

	"github.com/topoviz/topoviz/pkg/errors"
	"github.com/topoviz/topoviz/pkg/topology"
	"github.com/topoviz/topoviz/pkg/topology/aws"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// TopologyMultiRegionWorkload is the name of the built-in multi-region
// workload topology.
const TopologyMultiRegionWorkload = "multi-region-workload"

// DefaultTopology is used when no topology is named.
const DefaultTopology = TopologyMultiRegionWorkload

// builders maps topology names to their constructors.
var builders = map[string]func(aws.Options) (*topology.Diagram, error){
	TopologyMultiRegionWorkload: aws.MultiRegionWorkload,
}

// Topologies returns the built-in topology names, sorted.
func Topologies() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Options configures a pipeline run.
type Options struct {
	// Topology names the built-in topology to build. Defaults to
	// DefaultTopology. Ignored when the caller supplies a diagram.
	Topology string

	// DNS includes the Route 53 / ACM layer in built-in topologies.
	DNS bool

	// Detailed annotates node labels with their kind in DOT output.
	Detailed bool

	// Formats lists the artifacts to produce. Defaults to FormatSVG.
	Formats []string
}

// normalized fills in defaults.
func (o Options) normalized() Options {
	if o.Topology == "" {
		o.Topology = DefaultTopology
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	return o
}

// ParseFormats splits a comma-separated format list, trimming whitespace
// and skipping empty entries. An empty list defaults to SVG.
func ParseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return []string{FormatSVG}
	}
	return formats
}

// ValidateFormats checks that all requested formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %s (must be 'svg', 'png', 'dot', or 'json')", f)
		}
	}
	return nil
}

// Build constructs the named built-in topology.
func Build(opts Options) (*topology.Diagram, error) {
	opts = opts.normalized()
	builder, ok := builders[opts.Topology]
	if !ok {
		return nil, errors.New(errors.ErrCodeTopologyNotFound,
			"unknown topology: %s (available: %s)", opts.Topology, strings.Join(Topologies(), ", "))
	}
	d, err := builder(aws.Options{DNS: opts.DNS})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTopology, err, "build %s", opts.Topology)
	}
	return d, nil
}
