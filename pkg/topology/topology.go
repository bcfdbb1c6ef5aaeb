package topology

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Diagram.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Diagram.AddNode] when a node with
	// the same ID already exists in the diagram. Node IDs must be unique
	// across the whole diagram, not just within their cluster.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidClusterName is returned by [Diagram.Cluster] when the
	// cluster name is empty.
	ErrInvalidClusterName = errors.New("cluster name must not be empty")

	// ErrForeignCluster is returned by [Diagram.Cluster] and
	// [Diagram.AddNode] when the given parent cluster belongs to a
	// different diagram. Clusters are never shared between diagrams.
	ErrForeignCluster = errors.New("cluster belongs to a different diagram")

	// ErrUnknownSourceNode is returned by [Diagram.AddEdge] when the From
	// node does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Diagram.AddEdge] when the To
	// node does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrUnknownNode is returned by [Diagram.RemoveNode] when no node with
	// the given ID exists.
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidEdgeEndpoint is returned by [Diagram.Validate] when an edge
	// references a node that doesn't exist. This indicates corruption, as
	// AddEdge rejects unknown endpoints up front.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrClusterNotTree is returned by [Diagram.Validate] when the cluster
	// hierarchy is not a tree: a cluster is reachable from the root through
	// more than one path, or not reachable at all.
	ErrClusterNotTree = errors.New("cluster nesting must form a tree")
)

// Kind categorizes a node for icon and style selection by renderers.
// The kind has no structural meaning: two nodes of the same kind are still
// distinct graph elements. Kind vocabularies live with their catalog, see
// package topology/aws.
type Kind string

// Node is a single labeled element representing one infrastructure concept.
// Nodes are created once via [Diagram.AddNode] and never mutated afterwards.
type Node struct {
	ID    string // unique identifier across the diagram
	Label string // display label; falls back to ID when empty
	Kind  Kind   // renderer category (icon/style selection only)
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed relation between two nodes, meaning traffic or
// attachment flows from From toward To. Edges carry no identity beyond
// their endpoints.
type Edge struct {
	From string
	To   string
}

// Cluster is a named visual grouping that nests nodes and sub-clusters.
// Clusters form a tree rooted at [Diagram.Root]: every cluster has exactly
// one parent and is owned by exactly one diagram. Clusters are created only
// through [Diagram.Cluster], which makes malformed nesting (cycles, shared
// children) structurally impossible to build.
type Cluster struct {
	name     string
	owner    *Diagram
	parent   *Cluster
	children []*Cluster
	nodes    []string // IDs of nodes directly inside this cluster
}

// Name returns the cluster's display name. The root cluster's name is the
// diagram title.
func (c *Cluster) Name() string { return c.name }

// Parent returns the parent cluster, or nil for the diagram root.
func (c *Cluster) Parent() *Cluster { return c.parent }

// Children returns the direct sub-clusters in creation order.
// The returned slice is a copy and can be modified freely.
func (c *Cluster) Children() []*Cluster { return slices.Clone(c.children) }

// NodeIDs returns the IDs of nodes placed directly in this cluster, in
// insertion order. Nodes in sub-clusters are not included.
func (c *Cluster) NodeIDs() []string { return slices.Clone(c.nodes) }

// IsRoot reports whether this is the diagram's root cluster.
func (c *Cluster) IsRoot() bool { return c.parent == nil }

// Path returns the cluster names from the root (exclusive) down to this
// cluster. The root itself has an empty path.
func (c *Cluster) Path() []string {
	var path []string
	for cur := c; cur != nil && cur.parent != nil; cur = cur.parent {
		path = append(path, cur.name)
	}
	slices.Reverse(path)
	return path
}

// Diagram is the root container for a topology: it owns the cluster tree,
// the node set, and the edge set. A diagram is built in a single pass
// (declare clusters and nodes, declare edges) and then handed to a
// renderer; it is not safe for concurrent mutation.
//
// Node insertion order is preserved so that identical construction
// sequences produce identical serialized and rendered output.
type Diagram struct {
	title    string
	root     *Cluster
	nodes    map[string]*Node
	order    []string            // node IDs in insertion order
	cluster  map[string]*Cluster // node ID -> owning cluster
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
}

// New creates an empty diagram with the given title. The title doubles as
// the root cluster name and, by convention, as the output file base name.
func New(title string) *Diagram {
	d := &Diagram{
		title:    title,
		nodes:    make(map[string]*Node),
		cluster:  make(map[string]*Cluster),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
	d.root = &Cluster{name: title, owner: d}
	return d
}

// Title returns the diagram title.
func (d *Diagram) Title() string { return d.title }

// Root returns the root cluster. Top-level nodes and clusters attach here.
func (d *Diagram) Root() *Cluster { return d.root }

// Cluster creates a new sub-cluster under parent and returns it.
// A nil parent attaches the cluster to the diagram root. Returns
// ErrInvalidClusterName for an empty name or ErrForeignCluster when parent
// is owned by another diagram.
func (d *Diagram) Cluster(parent *Cluster, name string) (*Cluster, error) {
	if name == "" {
		return nil, ErrInvalidClusterName
	}
	if parent == nil {
		parent = d.root
	}
	if parent.owner != d {
		return nil, ErrForeignCluster
	}
	c := &Cluster{name: name, owner: d, parent: parent}
	parent.children = append(parent.children, c)
	return c, nil
}

// AddNode places a node directly inside the given cluster. A nil cluster
// places the node at the diagram root. Returns ErrInvalidNodeID for an
// empty ID, ErrDuplicateNodeID when the ID is already taken, or
// ErrForeignCluster when the cluster is owned by another diagram.
func (d *Diagram) AddNode(c *Cluster, n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	if c == nil {
		c = d.root
	}
	if c.owner != d {
		return ErrForeignCluster
	}
	node := n
	d.nodes[node.ID] = &node
	d.order = append(d.order, node.ID)
	d.cluster[node.ID] = c
	c.nodes = append(c.nodes, node.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode when an endpoint
// does not exist. Parallel edges between the same pair are allowed, though
// unusual in topology diagrams.
func (d *Diagram) AddEdge(from, to string) error {
	if _, ok := d.nodes[from]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSourceNode, from)
	}
	if _, ok := d.nodes[to]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTargetNode, to)
	}
	d.edges = append(d.edges, Edge{From: from, To: to})
	d.outgoing[from] = append(d.outgoing[from], to)
	d.incoming[to] = append(d.incoming[to], from)
	return nil
}

// RemoveEdge removes the edge from→to if it exists. No error is returned
// for a missing edge. If parallel edges exist, all of them are removed.
func (d *Diagram) RemoveEdge(from, to string) {
	d.edges = slices.DeleteFunc(d.edges, func(e Edge) bool { return e.From == from && e.To == to })
	d.outgoing[from] = slices.DeleteFunc(d.outgoing[from], func(s string) bool { return s == to })
	d.incoming[to] = slices.DeleteFunc(d.incoming[to], func(s string) bool { return s == from })
}

// RemoveNode removes the node and every edge incident to it. Removal
// cascades rather than rejecting: a topology diagram never keeps dangling
// edges, so deleting a node deletes its attachments with it.
// Returns ErrUnknownNode when the ID does not exist.
func (d *Diagram) RemoveNode(id string) error {
	if _, ok := d.nodes[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	for _, to := range slices.Clone(d.outgoing[id]) {
		d.RemoveEdge(id, to)
	}
	for _, from := range slices.Clone(d.incoming[id]) {
		d.RemoveEdge(from, id)
	}
	delete(d.outgoing, id)
	delete(d.incoming, id)

	c := d.cluster[id]
	c.nodes = slices.DeleteFunc(c.nodes, func(s string) bool { return s == id })
	delete(d.cluster, id)
	delete(d.nodes, id)
	d.order = slices.DeleteFunc(d.order, func(s string) bool { return s == id })
	return nil
}

// Node returns the node with the given ID and true, or a zero node and
// false if not found.
func (d *Diagram) Node(id string) (Node, bool) {
	n, ok := d.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// ClusterOf returns the cluster that directly contains the node, or nil if
// the node does not exist. Every existing node has exactly one cluster.
func (d *Diagram) ClusterOf(id string) *Cluster { return d.cluster[id] }

// Nodes returns all nodes in insertion order.
func (d *Diagram) Nodes() []Node {
	nodes := make([]Node, len(d.order))
	for i, id := range d.order {
		nodes[i] = *d.nodes[id]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (d *Diagram) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the diagram.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the diagram.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// Children returns the IDs this node has edges to. The returned slice is a
// read-only view; do not modify it.
func (d *Diagram) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs that have edges to this node. The returned slice
// is a read-only view; do not modify it.
func (d *Diagram) Parents(id string) []string { return d.incoming[id] }

// Validate checks structural integrity and returns nil if the diagram is
// well formed. It verifies that every edge connects existing nodes, that
// every node is owned by exactly one cluster of this diagram, and that the
// cluster hierarchy is a tree rooted at [Diagram.Root].
//
// For diagrams built exclusively through this package's API these
// conditions hold by construction; Validate exists as a guard for
// deserialized input.
func (d *Diagram) Validate() error {
	for _, e := range d.edges {
		if _, ok := d.nodes[e.From]; !ok {
			return fmt.Errorf("%w: %s", ErrInvalidEdgeEndpoint, e.From)
		}
		if _, ok := d.nodes[e.To]; !ok {
			return fmt.Errorf("%w: %s", ErrInvalidEdgeEndpoint, e.To)
		}
	}

	seen := map[*Cluster]bool{}
	var walk func(c *Cluster) error
	walk = func(c *Cluster) error {
		if seen[c] {
			return fmt.Errorf("%w: %q reachable twice", ErrClusterNotTree, c.name)
		}
		seen[c] = true
		for _, child := range c.children {
			if child.parent != c || child.owner != d {
				return fmt.Errorf("%w: %q has inconsistent parent", ErrClusterNotTree, child.name)
			}
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(d.root); err != nil {
		return err
	}

	for id, c := range d.cluster {
		if !seen[c] {
			return fmt.Errorf("%w: node %s owned by unreachable cluster %q", ErrClusterNotTree, id, c.name)
		}
	}
	return nil
}
