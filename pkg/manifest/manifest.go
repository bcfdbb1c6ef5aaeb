// Package manifest parses TOML topology manifests into diagrams.
//
// A manifest declares the same structure the Go API builds: clusters by
// path, nodes with a catalog kind, and directed edges:
//
//	title = "Multi region workload"
//
//	[[cluster]]
//	path = "Shared Account"
//
//	[[node]]
//	id = "tgw"
//	label = "Transit Gateway"
//	kind = "transit-gateway"
//	cluster = "Shared Account"
//
//	[[edge]]
//	from = "tgw"
//	to = "vpc"
//
// Cluster paths use "/" as separator and must be declared parent-first.
// Node kinds are validated against the AWS catalog so typos fail at parse
// time rather than rendering as unstyled boxes.
package manifest

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/topoviz/topoviz/pkg/errors"
	"github.com/topoviz/topoviz/pkg/graph"
	"github.com/topoviz/topoviz/pkg/topology"
	"github.com/topoviz/topoviz/pkg/topology/aws"
)

// Manifest mirrors the TOML document structure.
type Manifest struct {
	Title    string    `toml:"title"`
	Clusters []Cluster `toml:"cluster"`
	Nodes    []Node    `toml:"node"`
	Edges    []Edge    `toml:"edge"`
}

// Cluster declares one cluster by its slash-joined path.
type Cluster struct {
	Path string `toml:"path"`
}

// Node declares one node and its owning cluster path.
type Node struct {
	ID      string `toml:"id"`
	Label   string `toml:"label"`
	Kind    string `toml:"kind"`
	Cluster string `toml:"cluster"`
}

// Edge declares one directed edge.
type Edge struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// Parse decodes TOML bytes and builds the diagram they describe.
func Parse(data []byte) (*topology.Diagram, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode manifest")
	}
	return Build(m)
}

// ParseFile reads and parses a TOML manifest file.
func ParseFile(path string) (*topology.Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read %s", path)
	}
	return Parse(data)
}

// Build turns a decoded manifest into a validated diagram.
// The heavy lifting is shared with the JSON serialization path: a manifest
// is the same shape in different syntax.
func Build(m Manifest) (*topology.Diagram, error) {
	if m.Title == "" {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "manifest must set a title")
	}

	g := graph.Graph{Title: m.Title}
	for _, c := range m.Clusters {
		if c.Path == "" {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "cluster with empty path")
		}
		g.Clusters = append(g.Clusters, graph.Cluster{Path: c.Path})
	}
	for _, n := range m.Nodes {
		if n.Kind != "" && !aws.ValidKind(topology.Kind(n.Kind)) {
			return nil, errors.New(errors.ErrCodeInvalidKind, "node %s: unknown kind %q", n.ID, n.Kind)
		}
		g.Nodes = append(g.Nodes, graph.Node{ID: n.ID, Label: n.Label, Kind: n.Kind, Cluster: n.Cluster})
	}
	for _, e := range m.Edges {
		g.Edges = append(g.Edges, graph.Edge{From: e.From, To: e.To})
	}

	d, err := graph.ToDiagram(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "build topology")
	}
	if err := d.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "validate topology")
	}
	return d, nil
}
