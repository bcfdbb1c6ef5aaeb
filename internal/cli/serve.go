package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	apperrors "github.com/topoviz/topoviz/pkg/errors"
	"github.com/topoviz/topoviz/pkg/pipeline"
)

// contentTypes maps output formats to their media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
}

// serveCommand creates the serve command: a local, read-only preview
// server that renders topologies on demand.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		noCache  bool
		redisURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered topologies over HTTP for local preview",
		Long: `Serve rendered topologies over HTTP for local preview.

Routes:
  GET /healthz                          liveness probe
  GET /topologies                       built-in topology names (JSON)
  GET /render/{topology}?format=svg     rendered diagram
                         &dns=true      include the DNS/ACM layer
                         &detailed=true annotate labels with kinds

The server renders from the shared artifact cache; use --redis to share
that cache between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache, redisURL)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8650", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().StringVar(&redisURL, "redis", "", "use a Redis render cache at this URL instead of the file cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool, redisURL string) error {
	runner, err := c.newRunner(ctx, noCache, redisURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	r := chi.NewRouter()
	r.Use(c.requestLogger)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/topologies", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pipeline.Topologies())
	})
	r.Get("/render/{topology}", c.handleRender(runner))

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	c.Logger.Infof("Serving on http://%s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleRender renders one topology per request. All heavy lifting after
// the first request for a given (topology, format) pair is served from
// the artifact cache.
func (c *CLI) handleRender(runner *pipeline.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		format := req.URL.Query().Get("format")
		if format == "" {
			format = pipeline.FormatSVG
		}

		opts := pipeline.Options{
			Topology: chi.URLParam(req, "topology"),
			DNS:      req.URL.Query().Get("dns") == "true",
			Detailed: req.URL.Query().Get("detailed") == "true",
			Formats:  []string{format},
		}

		result, err := runner.Execute(req.Context(), opts)
		if err != nil {
			status := http.StatusInternalServerError
			switch apperrors.GetCode(err) {
			case apperrors.ErrCodeTopologyNotFound:
				status = http.StatusNotFound
			case apperrors.ErrCodeInvalidFormat:
				status = http.StatusBadRequest
			}
			http.Error(w, apperrors.UserMessage(err), status)
			return
		}

		w.Header().Set("Content-Type", contentTypes[format])
		_, _ = w.Write(result.Artifacts[format])
	}
}

// requestLogger tags each request with a short ID and logs method, path,
// and duration at debug level.
func (c *CLI) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()[:8]
		start := time.Now()
		next.ServeHTTP(w, req)
		c.Logger.Debugf("[%s] %s %s (%s)", id, req.Method, req.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}
