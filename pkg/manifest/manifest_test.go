package manifest_test

import (
	"testing"

	"github.com/topoviz/topoviz/pkg/errors"
	"github.com/topoviz/topoviz/pkg/manifest"
)

const validManifest = `
title = "Two tier"

[[cluster]]
path = "Network"

[[cluster]]
path = "Network/Private Subnet"

[[node]]
id = "lb"
label = "Application Load Balancer"
kind = "alb"
cluster = "Network"

[[node]]
id = "svc"
label = "web services"
kind = "eks"
cluster = "Network/Private Subnet"

[[edge]]
from = "lb"
to = "svc"
`

func TestParse_Valid(t *testing.T) {
	d, err := manifest.Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if d.Title() != "Two tier" {
		t.Errorf("Title() = %q, want Two tier", d.Title())
	}
	if d.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", d.NodeCount())
	}
	if d.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", d.EdgeCount())
	}
	if got := d.ClusterOf("svc").Name(); got != "Private Subnet" {
		t.Errorf("ClusterOf(svc).Name() = %q, want Private Subnet", got)
	}
}

func TestParse_UnknownKind(t *testing.T) {
	src := `
title = "bad"

[[node]]
id = "x"
kind = "quantum-router"
`
	_, err := manifest.Parse([]byte(src))
	if !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("Parse() error = %v, want ErrCodeInvalidKind", err)
	}
}

func TestParse_MissingTitle(t *testing.T) {
	_, err := manifest.Parse([]byte(`[[node]]` + "\n" + `id = "x"`))
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Parse() error = %v, want ErrCodeInvalidManifest", err)
	}
}

func TestParse_UnknownCluster(t *testing.T) {
	src := `
title = "bad"

[[node]]
id = "x"
cluster = "Nowhere"
`
	_, err := manifest.Parse([]byte(src))
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Parse() error = %v, want ErrCodeInvalidManifest", err)
	}
}

func TestParse_DuplicateClusterPath(t *testing.T) {
	src := `
title = "bad"

[[cluster]]
path = "Network"

[[cluster]]
path = "Network"
`
	_, err := manifest.Parse([]byte(src))
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Parse() error = %v, want ErrCodeInvalidManifest", err)
	}
}

func TestParse_DuplicateNode(t *testing.T) {
	src := `
title = "bad"

[[node]]
id = "x"

[[node]]
id = "x"
`
	_, err := manifest.Parse([]byte(src))
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Parse() error = %v, want ErrCodeInvalidManifest", err)
	}
}

func TestParse_BadTOML(t *testing.T) {
	_, err := manifest.Parse([]byte("title = [unclosed"))
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Parse() error = %v, want ErrCodeInvalidManifest", err)
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := manifest.ParseFile("does/not/exist.toml")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ParseFile() error = %v, want ErrCodeFileNotFound", err)
	}
}
