package topology_test

import (
	"fmt"

	"github.com/topoviz/topoviz/pkg/topology"
)

func ExampleDiagram_basic() {
	// A minimal topology: a gateway feeding a VPC inside one cluster.
	d := topology.New("example")
	network, _ := d.Cluster(nil, "Network")
	_ = d.AddNode(network, topology.Node{ID: "tgw", Label: "Transit Gateway"})
	_ = d.AddNode(network, topology.Node{ID: "vpc", Label: "VPC"})
	_ = d.AddEdge("tgw", "vpc")

	fmt.Println("Nodes:", d.NodeCount())
	fmt.Println("Edges:", d.EdgeCount())
	// Output:
	// Nodes: 2
	// Edges: 1
}

func ExampleDiagram_nesting() {
	d := topology.New("example")
	account, _ := d.Cluster(nil, "Account")
	subnet, _ := d.Cluster(account, "Subnet")
	_ = d.AddNode(subnet, topology.Node{ID: "svc", Label: "web services"})

	fmt.Println("Cluster path:", d.ClusterOf("svc").Path())
	// Output:
	// Cluster path: [Account Subnet]
}

func ExampleDiagram_RemoveNode() {
	// Removal cascades: edges incident to the node go with it.
	d := topology.New("example")
	_ = d.AddNode(nil, topology.Node{ID: "lb"})
	_ = d.AddNode(nil, topology.Node{ID: "svc"})
	_ = d.AddEdge("lb", "svc")

	_ = d.RemoveNode("svc")

	fmt.Println("Nodes:", d.NodeCount())
	fmt.Println("Edges:", d.EdgeCount())
	// Output:
	// Nodes: 1
	// Edges: 0
}
