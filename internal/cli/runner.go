package cli

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/dotforge/dotforge/pkg/backend"
	"github.com/dotforge/dotforge/pkg/cache"
	"github.com/dotforge/dotforge/pkg/pipeline"
)

// newRunner creates a pipeline runner wired to the configured cache and
// executable paths.
func newRunner(ctx context.Context, cfg Config, noCache bool, logger *log.Logger) *pipeline.Runner {
	r := pipeline.NewRunner(newCache(ctx, cfg, noCache, logger), logger)

	// Config may point at executables outside PATH.
	if bin := cfg.Backend.Dot; bin != "" && bin != backend.DefaultDotBinary {
		r.PipeFunc = func(ctx context.Context, engine, format string, src []byte, opts ...backend.Option) ([]byte, error) {
			return backend.Pipe(ctx, engine, format, src, append(opts, backend.WithBinary(bin))...)
		}
	}
	if bin := cfg.Backend.Unflatten; bin != "" && bin != backend.DefaultUnflattenBinary {
		r.UnflattenFunc = func(ctx context.Context, src string, opts backend.UnflattenOptions) (string, error) {
			opts.Binary = bin
			return backend.Unflatten(ctx, src, opts)
		}
	}
	return r
}

// newCache builds the cache backend selected by config.
// Any failure to set up a cache degrades to no caching rather than
// failing the command.
func newCache(ctx context.Context, cfg Config, noCache bool, logger *log.Logger) cache.Cache {
	if noCache || (cfg.Cache.Enabled != nil && !*cfg.Cache.Enabled) {
		return cache.NewNullCache()
	}
	if cfg.Cache.RedisAddr != "" {
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Cache.RedisAddr})
		if err != nil {
			logger.Warn("redis cache unavailable, falling back to file cache",
				"addr", cfg.Cache.RedisAddr, "error", err)
		} else {
			return c
		}
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("file cache unavailable, caching disabled", "dir", dir, "error", err)
		return cache.NewNullCache()
	}
	return c
}
