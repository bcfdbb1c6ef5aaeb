// Package topology provides the core data model for infrastructure
// topology diagrams: labeled nodes grouped into a tree of visual clusters,
// connected by directed edges.
//
// # Core Types
//
//   - [Diagram]: root container owning clusters, nodes, and edges
//   - [Cluster]: named visual grouping, tree-shaped (one parent each)
//   - [Node]: one labeled infrastructure concept with a renderer [Kind]
//   - [Edge]: directed relation, "traffic/attachment flows toward"
//
// # Building a Topology
//
// A topology is built in a single linear pass: declare clusters and nodes,
// declare edges, then hand the diagram to a renderer (see package
// render/dot):
//
//	d := topology.New("Multi region workload")
//	shared, _ := d.Cluster(nil, "Shared Account")
//	_ = d.AddNode(shared, topology.Node{ID: "tgw", Label: "Transit Gateway"})
//	_ = d.AddNode(shared, topology.Node{ID: "vpc", Label: "VPC"})
//	_ = d.AddEdge("tgw", "vpc")
//
// Clusters are created only through [Diagram.Cluster], so cycles and shared
// sub-clusters cannot be expressed; [Diagram.Validate] re-checks the tree
// invariant for diagrams reconstructed from external input.
//
// # Removal Semantics
//
// [Diagram.RemoveNode] cascades: all edges incident to the removed node are
// removed with it, so a diagram never contains dangling edges.
//
// Diagrams are not safe for concurrent mutation.
package topology
