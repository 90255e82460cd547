package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dotforge/dotforge/pkg/backend"
	"github.com/dotforge/dotforge/pkg/cache"
	"github.com/dotforge/dotforge/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger

	// The backend invocations can be swapped, mainly for tests.
	// NewRunner wires the real implementations.
	PipeFunc      func(ctx context.Context, engine, format string, src []byte, opts ...backend.Option) ([]byte, error)
	EmbeddedFunc  func(ctx context.Context, engine, format string, src []byte) ([]byte, error)
	UnflattenFunc func(ctx context.Context, src string, opts backend.UnflattenOptions) (string, error)
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:         c,
		Logger:        logger,
		PipeFunc:      backend.Pipe,
		EmbeddedFunc:  backend.RenderEmbedded,
		UnflattenFunc: backend.Unflatten,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Data is the rendered artifact.
	Data []byte

	// Format is the output format of Data.
	Format string

	// RunID uniquely identifies this pipeline execution.
	RunID string

	// CacheHit reports whether Data was served from the cache.
	CacheHit bool

	// Embedded reports whether the in-process renderer produced Data.
	Embedded bool

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	UnflattenTime time.Duration
	RenderTime    time.Duration
}

// Execute runs the complete unflatten → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	result := &Result{
		Format: opts.Format,
		RunID:  uuid.NewString(),
	}

	src := []byte(opts.Source)
	key := cache.RenderKey(src, cache.RenderKeyOpts{
		Engine:    opts.Engine,
		Format:    opts.Format,
		Renderer:  opts.Renderer,
		Formatter: opts.Formatter,
		Stagger:   opts.Stagger,
		Fanout:    opts.Fanout,
		Chain:     opts.Chain,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			logger.Debug("render cache hit", "run_id", result.RunID, "bytes", len(data))
			result.Data = data
			result.CacheHit = true
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	// Stage 1: Unflatten
	if opts.Unflatten {
		start := time.Now()
		observability.Render().OnUnflattenStart(ctx)
		flat, err := r.UnflattenFunc(ctx, opts.Source, backend.UnflattenOptions{
			Stagger: opts.Stagger,
			Fanout:  opts.Fanout,
			Chain:   opts.Chain,
		})
		result.Stats.UnflattenTime = time.Since(start)
		observability.Render().OnUnflattenComplete(ctx, result.Stats.UnflattenTime, err)
		if err != nil {
			return nil, err
		}
		src = []byte(flat)
		logger.Debug("unflattened source",
			"run_id", result.RunID,
			"duration", result.Stats.UnflattenTime)
	}

	// Stage 2: Render
	start := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Engine, opts.Format)
	data, embedded, err := r.render(ctx, src, opts, logger)
	result.Stats.RenderTime = time.Since(start)
	observability.Render().OnRenderComplete(ctx, opts.Engine, opts.Format,
		len(data), result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Data = data
	result.Embedded = embedded

	logger.Info("rendered graph",
		"run_id", result.RunID,
		"engine", opts.Engine,
		"format", opts.Format,
		"bytes", len(data),
		"duration", result.Stats.RenderTime)

	if err := r.Cache.Set(ctx, key, data, cache.TTLRender); err == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	} else {
		logger.Warn("failed to cache render result", "error", err)
	}

	return result, nil
}

// render invokes the Graphviz executables, falling back to the embedded
// renderer when they are missing. The bool result reports whether the
// embedded renderer was used.
func (r *Runner) render(ctx context.Context, src []byte, opts Options, logger *log.Logger) ([]byte, bool, error) {
	if opts.Embedded {
		data, err := r.EmbeddedFunc(ctx, opts.Engine, opts.Format, src)
		return data, err == nil, err
	}

	data, err := r.PipeFunc(ctx, opts.Engine, opts.Format, src, opts.backendOptions()...)
	if err == nil {
		return data, false, nil
	}

	// Fall back only for a missing executable, and only when the embedded
	// build supports the requested format. Renderer and formatter chains
	// need the real executables.
	if !backend.IsExecutableNotFound(err) || opts.Renderer != "" || opts.Formatter != "" {
		return nil, false, err
	}
	if !backend.SupportsEmbedded(opts.Format) {
		return nil, false, err
	}

	logger.Warn("graphviz executables not found, using embedded renderer",
		"engine", opts.Engine, "format", opts.Format)
	data, eerr := r.EmbeddedFunc(ctx, opts.Engine, opts.Format, src)
	if eerr != nil {
		return nil, false, err
	}
	return data, true, nil
}
