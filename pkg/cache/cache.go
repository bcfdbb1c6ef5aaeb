// Package cache provides the render artifact cache.
//
// Rendering goes through Graphviz layout, which dominates the runtime of a
// generate run; since the DOT text fully determines the output, rendered
// bytes are cached under a content hash of (dot, format). Three backends
// exist: a file cache under the user cache dir for CLI runs, a Redis cache
// for the preview server, and a null cache for --no-cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores rendered artifacts keyed by content hash.
// Implementations must treat a missing key as a miss, not an error.
type Cache interface {
	// Get retrieves the value for key. The second return value reports
	// whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey derives the cache key for a rendered artifact.
// The key is a hash over the full DOT text and the output format, so any
// change to the topology, its styling, or the requested format produces a
// distinct key.
func ArtifactKey(dot, format string) string {
	sum := sha256.Sum256([]byte(format + "\x00" + dot))
	return "artifact:" + hex.EncodeToString(sum[:])
}
