package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/topoviz/topoviz/pkg/topology"
)

// Marshal converts a diagram to indented JSON bytes.
func Marshal(d *topology.Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a diagram as JSON to w. Diagrams whose cluster names
// cannot be addressed by path (duplicate sibling names, names containing
// the separator) are rejected rather than written ambiguously.
func Write(d *topology.Diagram, w io.Writer) error {
	if err := checkPaths(d); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromDiagram(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a diagram to a JSON file at path.
// The file is created with 0644 permissions.
func WriteFile(d *topology.Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f)
}

// Read decodes a JSON diagram from r.
// The reconstructed diagram is validated before being returned.
func Read(r io.Reader) (*topology.Diagram, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	d, err := ToDiagram(data)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// ReadFile reads a JSON file at path and returns the decoded diagram.
func ReadFile(path string) (*topology.Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
