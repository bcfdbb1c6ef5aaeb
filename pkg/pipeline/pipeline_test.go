package pipeline

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	apperrors "github.com/topoviz/topoviz/pkg/errors"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{"dot,json,svg", []string{"dot", "json", "svg"}},
		{"svg, png", []string{"svg", "png"}},
		{" dot ", []string{"dot"}},
		{"svg,,png", []string{"svg", "png"}},
		{" , ", []string{"svg"}},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png", "dot", "json"}); err != nil {
		t.Errorf("ValidateFormats() error = %v", err)
	}

	err := ValidateFormats([]string{"svg", "gif"})
	if err == nil {
		t.Fatal("ValidateFormats() accepted gif")
	}
	if code := apperrors.GetCode(err); code != apperrors.ErrCodeInvalidFormat {
		t.Errorf("error code = %s, want %s", code, apperrors.ErrCodeInvalidFormat)
	}
}

func TestTopologies(t *testing.T) {
	names := Topologies()
	if len(names) == 0 {
		t.Fatal("Topologies() is empty")
	}
	found := false
	for _, n := range names {
		if n == TopologyMultiRegionWorkload {
			found = true
		}
	}
	if !found {
		t.Errorf("Topologies() = %v, missing %s", names, TopologyMultiRegionWorkload)
	}
}

func TestBuild(t *testing.T) {
	d, err := Build(Options{Topology: TopologyMultiRegionWorkload})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := d.NodeCount(); got != 19 {
		t.Errorf("NodeCount() = %d, want 19", got)
	}

	d, err = Build(Options{Topology: TopologyMultiRegionWorkload, DNS: true})
	if err != nil {
		t.Fatalf("Build(DNS) error = %v", err)
	}
	if got := d.NodeCount(); got != 23 {
		t.Errorf("NodeCount() with DNS = %d, want 23", got)
	}
}

func TestBuild_DefaultTopology(t *testing.T) {
	d, err := Build(Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if d.Title() == "" {
		t.Error("default topology has no title")
	}
}

func TestBuild_UnknownTopology(t *testing.T) {
	_, err := Build(Options{Topology: "nope"})
	if err == nil {
		t.Fatal("Build() accepted an unknown topology")
	}
	if code := apperrors.GetCode(err); code != apperrors.ErrCodeTopologyNotFound {
		t.Errorf("error code = %s, want %s", code, apperrors.ErrCodeTopologyNotFound)
	}
	if !strings.Contains(err.Error(), TopologyMultiRegionWorkload) {
		t.Errorf("error %q does not list available topologies", err)
	}
}

func TestRunner_RenderDOTAndJSON(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	d, err := Build(Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	out, err := r.Render(context.Background(), d, Options{
		Formats: []string{FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	dotSrc := string(out.Artifacts[FormatDOT])
	if !strings.HasPrefix(dotSrc, "digraph") {
		t.Errorf("DOT artifact does not start with digraph: %q", dotSrc[:min(len(dotSrc), 40)])
	}
	if dotSrc != out.DOT {
		t.Error("DOT artifact differs from Result.DOT")
	}

	jsonSrc := string(out.Artifacts[FormatJSON])
	if !strings.Contains(jsonSrc, `"title"`) {
		t.Error("JSON artifact has no title field")
	}

	if out.CacheHits[FormatDOT] || out.CacheHits[FormatJSON] {
		t.Error("dot/json artifacts should never be cache hits")
	}
}

func TestRunner_RenderInvalidFormat(t *testing.T) {
	r := NewRunner(nil, nil)
	d, _ := Build(Options{})

	_, err := r.Render(context.Background(), d, Options{Formats: []string{"bmp"}})
	if err == nil {
		t.Fatal("Render() accepted bmp")
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
}

func TestExecute_UnknownTopology(t *testing.T) {
	r := NewRunner(nil, nil)
	_, err := r.Execute(context.Background(), Options{Topology: "missing", Formats: []string{FormatDOT}})
	if err == nil {
		t.Fatal("Execute() accepted an unknown topology")
	}
}
