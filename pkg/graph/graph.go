// Package graph provides the canonical JSON serialization for topology
// diagrams.
//
// The format is a node-link structure extended with the cluster tree.
// Clusters are addressed by their slash-joined name path from the root:
//
//	{
//	  "title": "Multi region workload",
//	  "clusters": [{"path": "Shared Account"},
//	               {"path": "Shared Account/Private Subnet"}],
//	  "nodes": [{"id": "tgw", "label": "Transit Gateway",
//	             "kind": "transit-gateway", "cluster": "Shared Account"}],
//	  "edges": [{"from": "tgw", "to": "vpc"}]
//	}
//
// The format round-trips: export → re-import produces a structurally
// identical diagram, and identical diagrams serialize to identical bytes.
// Path addressing requires cluster names to serialize unambiguously:
// sibling clusters must have distinct names and names must not contain the
// separator. [Write] rejects diagrams that violate this, and [ToDiagram]
// rejects documents with duplicate paths.
package graph

import (
	"fmt"
	"strings"

	"github.com/topoviz/topoviz/pkg/topology"
)

// PathSeparator joins cluster names into serialized paths.
const PathSeparator = "/"

// Graph is the serialization form of a [topology.Diagram].
type Graph struct {
	Title    string    `json:"title"`
	Clusters []Cluster `json:"clusters,omitempty"`
	Nodes    []Node    `json:"nodes"`
	Edges    []Edge    `json:"edges"`
}

// Cluster is one entry of the serialized cluster tree. Order follows a
// depth-first walk, so a parent always precedes its children.
type Cluster struct {
	Path string `json:"path"`
}

// Node is the serialized node form.
type Node struct {
	ID      string `json:"id"`
	Label   string `json:"label,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Cluster string `json:"cluster,omitempty"` // owning cluster path; empty = root
}

// Edge is the serialized edge form.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FromDiagram converts a diagram to its serialization form.
// Clusters are emitted depth-first, nodes and edges in insertion order, so
// the output is deterministic for a given construction sequence.
func FromDiagram(d *topology.Diagram) Graph {
	out := Graph{
		Title: d.Title(),
		Nodes: make([]Node, 0, d.NodeCount()),
		Edges: make([]Edge, 0, d.EdgeCount()),
	}

	var walk func(c *topology.Cluster)
	walk = func(c *topology.Cluster) {
		if !c.IsRoot() {
			out.Clusters = append(out.Clusters, Cluster{Path: strings.Join(c.Path(), PathSeparator)})
		}
		for _, child := range c.Children() {
			walk(child)
		}
	}
	walk(d.Root())

	for _, n := range d.Nodes() {
		node := Node{ID: n.ID, Label: n.Label, Kind: string(n.Kind)}
		if c := d.ClusterOf(n.ID); c != nil && !c.IsRoot() {
			node.Cluster = strings.Join(c.Path(), PathSeparator)
		}
		out.Nodes = append(out.Nodes, node)
	}

	for _, e := range d.Edges() {
		out.Edges = append(out.Edges, Edge{From: e.From, To: e.To})
	}

	return out
}

// ToDiagram reconstructs a diagram from its serialization form.
// Returns an error when a cluster path skips a level, a node references an
// unknown cluster, or nodes/edges violate diagram constraints.
func ToDiagram(g Graph) (*topology.Diagram, error) {
	d := topology.New(g.Title)

	byPath := map[string]*topology.Cluster{"": d.Root()}
	for _, c := range g.Clusters {
		if _, dup := byPath[c.Path]; dup {
			return nil, fmt.Errorf("cluster %q declared twice", c.Path)
		}
		parentPath, name := splitPath(c.Path)
		parent, ok := byPath[parentPath]
		if !ok {
			return nil, fmt.Errorf("cluster %q: parent %q not declared", c.Path, parentPath)
		}
		cluster, err := d.Cluster(parent, name)
		if err != nil {
			return nil, fmt.Errorf("cluster %q: %w", c.Path, err)
		}
		byPath[c.Path] = cluster
	}

	for _, n := range g.Nodes {
		cluster, ok := byPath[n.Cluster]
		if !ok {
			return nil, fmt.Errorf("node %s: unknown cluster %q", n.ID, n.Cluster)
		}
		node := topology.Node{ID: n.ID, Label: n.Label, Kind: topology.Kind(n.Kind)}
		if err := d.AddNode(cluster, node); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}

	for _, e := range g.Edges {
		if err := d.AddEdge(e.From, e.To); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}

	return d, nil
}

// checkPaths verifies that the cluster tree serializes unambiguously:
// no cluster name contains the path separator and no two siblings share a
// name. Without this, two distinct clusters map to the same path and
// re-import would silently merge them.
func checkPaths(d *topology.Diagram) error {
	var walk func(c *topology.Cluster) error
	walk = func(c *topology.Cluster) error {
		names := make(map[string]bool)
		for _, child := range c.Children() {
			if strings.Contains(child.Name(), PathSeparator) {
				return fmt.Errorf("cluster name %q contains the path separator %q", child.Name(), PathSeparator)
			}
			if names[child.Name()] {
				return fmt.Errorf("sibling clusters share the name %q", child.Name())
			}
			names[child.Name()] = true
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(d.Root())
}

// splitPath splits a cluster path into its parent path and final name.
func splitPath(path string) (parent, name string) {
	i := strings.LastIndex(path, PathSeparator)
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}
