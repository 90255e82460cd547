// Package cache stores rendered artifacts keyed by their render inputs.
//
// Rendering the same DOT source with the same engine, format, and
// preprocessing options always yields the same artifact, so results are
// cached aggressively. Keys hash every input that affects the output; a
// change to any parameter produces a different key.
//
// # Backends
//
//   - [FileCache]: sharded files under a directory, for CLI usage
//   - [RedisCache]: go-redis backed, for server deployments
//   - [NullCache]: no-op, for tests and --no-cache runs
package cache

import (
	"context"
	"time"
)

// TTLRender is the default expiration for cached render artifacts.
// Artifacts are pure functions of their key, so the TTL only bounds disk
// and memory growth.
const TTLRender = 7 * 24 * time.Hour

// Cache stores and retrieves byte blobs with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// found (and not expired).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// RenderKeyOpts carries the render parameters that contribute to a cache key.
type RenderKeyOpts struct {
	Engine    string
	Format    string
	Renderer  string
	Formatter string

	// Unflatten preprocessing parameters.
	Stagger int
	Fanout  bool
	Chain   int
}

// RenderKey derives the cache key for rendering src with the given options.
// Every field of opts contributes to the key.
func RenderKey(src []byte, opts RenderKeyOpts) string {
	return hashKey("render", Hash(src),
		opts.Engine, opts.Format, opts.Renderer, opts.Formatter,
		opts.Stagger, opts.Fanout, opts.Chain)
}
