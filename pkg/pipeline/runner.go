package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/topoviz/topoviz/pkg/cache"
	"github.com/topoviz/topoviz/pkg/errors"
	"github.com/topoviz/topoviz/pkg/graph"
	"github.com/topoviz/topoviz/pkg/render"
	"github.com/topoviz/topoviz/pkg/render/dot"
	"github.com/topoviz/topoviz/pkg/topology"
)

// DefaultTTL is how long rendered artifacts stay cached. Identical DOT
// renders identically, so the TTL only bounds disk usage, not staleness.
const DefaultTTL = 7 * 24 * time.Hour

// Result holds the output of a pipeline run.
type Result struct {
	Diagram   *topology.Diagram
	DOT       string
	Artifacts map[string][]byte // format -> rendered bytes
	CacheHits map[string]bool   // format -> served from cache
}

// Runner executes the pipeline with a shared artifact cache.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching and a
// nil logger falls back to the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cache: c, logger: logger}
}

// Close releases the cache backend.
func (r *Runner) Close() error { return r.cache.Close() }

// Execute builds the requested built-in topology and renders it.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.normalized()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	d, err := Build(opts)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, d, opts)
}

// Render validates the diagram, describes it as DOT, and produces every
// requested artifact. Image formats go through the cache; DOT and JSON are
// cheap enough to regenerate every time.
func (r *Runner) Render(ctx context.Context, d *topology.Diagram, opts Options) (*Result, error) {
	opts = opts.normalized()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTopology, err, "validate %s", d.Title())
	}

	result := &Result{
		Diagram:   d,
		DOT:       dot.ToDOT(d, dot.Options{Detailed: opts.Detailed}),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		CacheHits: make(map[string]bool),
	}

	for _, format := range opts.Formats {
		data, hit, err := r.renderFormat(ctx, result.DOT, d, format)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
		}
		result.Artifacts[format] = data
		result.CacheHits[format] = hit
	}
	return result, nil
}

func (r *Runner) renderFormat(ctx context.Context, dotSrc string, d *topology.Diagram, format string) (data []byte, cacheHit bool, err error) {
	switch format {
	case FormatDOT:
		return []byte(dotSrc), false, nil
	case FormatJSON:
		data, err = graph.Marshal(d)
		return data, false, err
	}

	key := cache.ArtifactKey(dotSrc, format)
	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		r.logger.Debugf("Cache hit for %s artifact", format)
		return data, true, nil
	} else if err != nil {
		// Cache trouble never fails a render.
		r.logger.Warnf("Cache read failed: %v", err)
	}

	switch format {
	case FormatSVG:
		data, err = render.SVG(ctx, dotSrc)
	case FormatPNG:
		data, err = render.PNG(ctx, dotSrc)
	default:
		// Formats are validated before rendering starts.
		return nil, false, errors.New(errors.ErrCodeInternal, "unhandled format %s", format)
	}
	if err != nil {
		return nil, false, err
	}

	if err := r.cache.Set(ctx, key, data, DefaultTTL); err != nil {
		r.logger.Warnf("Cache write failed: %v", err)
	}
	return data, false, nil
}
