package graph_test

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/topoviz/topoviz/pkg/graph"
	"github.com/topoviz/topoviz/pkg/topology"
	"github.com/topoviz/topoviz/pkg/topology/aws"
)

func TestRoundTrip(t *testing.T) {
	d, err := aws.MultiRegionWorkload(aws.Options{DNS: true})
	if err != nil {
		t.Fatalf("MultiRegionWorkload() error = %v", err)
	}

	var buf bytes.Buffer
	if err := graph.Write(d, &buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	restored, err := graph.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if !reflect.DeepEqual(graph.FromDiagram(d), graph.FromDiagram(restored)) {
		t.Error("round trip changed the graph structure")
	}
	if restored.Title() != d.Title() {
		t.Errorf("Title() = %q, want %q", restored.Title(), d.Title())
	}
}

func TestFromDiagram_ClusterPaths(t *testing.T) {
	d := topology.New("test")
	outer, _ := d.Cluster(nil, "Outer")
	inner, _ := d.Cluster(outer, "Inner")
	d.AddNode(inner, topology.Node{ID: "a", Kind: "vpc"})
	d.AddNode(nil, topology.Node{ID: "b"})

	g := graph.FromDiagram(d)

	wantClusters := []graph.Cluster{{Path: "Outer"}, {Path: "Outer/Inner"}}
	if !reflect.DeepEqual(g.Clusters, wantClusters) {
		t.Errorf("Clusters = %v, want %v", g.Clusters, wantClusters)
	}
	if g.Nodes[0].Cluster != "Outer/Inner" {
		t.Errorf("node a cluster = %q, want Outer/Inner", g.Nodes[0].Cluster)
	}
	if g.Nodes[1].Cluster != "" {
		t.Errorf("node b cluster = %q, want root", g.Nodes[1].Cluster)
	}
}

func TestToDiagram_UndeclaredParent(t *testing.T) {
	g := graph.Graph{
		Title:    "test",
		Clusters: []graph.Cluster{{Path: "Outer/Inner"}},
	}

	if _, err := graph.ToDiagram(g); err == nil {
		t.Error("ToDiagram() accepted a cluster whose parent was never declared")
	}
}

func TestToDiagram_UnknownNodeCluster(t *testing.T) {
	g := graph.Graph{
		Title: "test",
		Nodes: []graph.Node{{ID: "a", Cluster: "nowhere"}},
	}

	if _, err := graph.ToDiagram(g); err == nil {
		t.Error("ToDiagram() accepted a node with an unknown cluster")
	}
}

func TestToDiagram_BadEdge(t *testing.T) {
	g := graph.Graph{
		Title: "test",
		Nodes: []graph.Node{{ID: "a"}},
		Edges: []graph.Edge{{From: "a", To: "ghost"}},
	}

	if _, err := graph.ToDiagram(g); err == nil {
		t.Error("ToDiagram() accepted an edge to a missing node")
	}
}

func TestMarshal_DuplicateSiblingClusters(t *testing.T) {
	// Two siblings named "X" would serialize to the same path, and
	// re-import would merge the nodes of both into one cluster.
	d := topology.New("test")
	first, _ := d.Cluster(nil, "X")
	second, _ := d.Cluster(nil, "X")
	d.AddNode(first, topology.Node{ID: "a"})
	d.AddNode(second, topology.Node{ID: "b"})

	if _, err := graph.Marshal(d); err == nil {
		t.Error("Marshal() accepted two sibling clusters with the same name")
	}
}

func TestMarshal_SeparatorInClusterName(t *testing.T) {
	d := topology.New("test")
	d.Cluster(nil, "A"+graph.PathSeparator+"B")

	if _, err := graph.Marshal(d); err == nil {
		t.Error("Marshal() accepted a cluster name containing the path separator")
	}
}

func TestToDiagram_DuplicateClusterPath(t *testing.T) {
	g := graph.Graph{
		Title:    "test",
		Clusters: []graph.Cluster{{Path: "X"}, {Path: "X"}},
		Nodes: []graph.Node{
			{ID: "a", Cluster: "X"},
			{ID: "b", Cluster: "X"},
		},
	}

	if _, err := graph.ToDiagram(g); err == nil {
		t.Error("ToDiagram() accepted a duplicate cluster path")
	}
}

func TestWriteFile_ReadFile(t *testing.T) {
	d, err := aws.MultiRegionWorkload(aws.Options{})
	if err != nil {
		t.Fatalf("MultiRegionWorkload() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := graph.WriteFile(d, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	restored, err := graph.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !reflect.DeepEqual(graph.FromDiagram(d), graph.FromDiagram(restored)) {
		t.Error("file round trip changed the graph structure")
	}
}

func TestRead_MalformedJSON(t *testing.T) {
	if _, err := graph.Read(strings.NewReader("{not json")); err == nil {
		t.Error("Read() accepted malformed JSON")
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	build := func() []byte {
		d, err := aws.MultiRegionWorkload(aws.Options{})
		if err != nil {
			t.Fatalf("MultiRegionWorkload() error = %v", err)
		}
		data, err := graph.Marshal(d)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		return data
	}

	if !bytes.Equal(build(), build()) {
		t.Error("identical diagrams serialized differently")
	}
}
