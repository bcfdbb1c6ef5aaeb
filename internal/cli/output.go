package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/topoviz/topoviz/pkg/pipeline"
)

// basePathFromTitle derives the default output base name from a diagram
// title, the way the output file is conventionally named after the
// diagram: lowercased, spaces replaced with underscores.
func basePathFromTitle(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	base = strings.Join(strings.Fields(base), "_")
	if base == "" {
		base = appName
	}
	return base
}

// outputPath builds the file path for one artifact. With a single format
// the explicit output path is used verbatim; with several formats a known
// format extension is stripped and the format appended per file.
func outputPath(output, base, format string, multi bool) string {
	if output == "" {
		return base + "." + format
	}
	if !multi {
		return output
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		output = strings.TrimSuffix(output, ext)
	}
	return output + "." + format
}

// writeArtifacts writes every rendered artifact to disk and prints a
// per-file summary line.
func writeArtifacts(result *pipeline.Result, formats []string, output string) error {
	base := basePathFromTitle(result.Diagram.Title())
	multi := len(formats) > 1

	for _, format := range formats {
		path := outputPath(output, base, format, multi)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path, result.CacheHits[format])
	}
	return nil
}
