// Package pipeline provides the core render pipeline for DotForge.
//
// This package implements the complete unflatten → render flow that can be
// used by CLI and server components. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Unflatten: Optionally preprocess the source to improve the aspect
//     ratio of wide graphs (skipped unless requested)
//  2. Render: Invoke a Graphviz layout engine and capture the output
//
// Rendered output is cached keyed by source content and render options, so
// repeated renders of the same graph are served without invoking Graphviz.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Source: "digraph { a -> b }",
//	    Engine: "dot",
//	    Format: "svg",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Data
package pipeline

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dotforge/dotforge/pkg/backend"
	"github.com/dotforge/dotforge/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultEngine is the default layout engine.
	DefaultEngine = "dot"

	// DefaultFormat is the default output format.
	DefaultFormat = "pdf"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the render pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Source is the DOT source text to render.
	Source string `json:"source"`

	// Render options
	Engine    string `json:"engine,omitempty"`
	Format    string `json:"format,omitempty"`
	Renderer  string `json:"renderer,omitempty"`
	Formatter string `json:"formatter,omitempty"`

	// Unflatten preprocessing options
	Unflatten bool `json:"unflatten,omitempty"`
	Stagger   int  `json:"stagger,omitempty"`
	Fanout    bool `json:"fanout,omitempty"`
	Chain     int  `json:"chain,omitempty"`

	// Embedded forces the in-process renderer instead of the Graphviz
	// executables. When false, the embedded renderer is still used as a
	// fallback if the executables are not installed.
	Embedded bool `json:"embedded,omitempty"`

	// Quiet suppresses forwarding of Graphviz stderr output. Captured
	// stderr is still attached to render errors.
	Quiet bool `json:"quiet,omitempty"`

	// Refresh bypasses the cache and forces a fresh render.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if strings.TrimSpace(o.Source) == "" {
		return errors.New(errors.ErrCodeInvalidSource, "source is required")
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if !backend.Engines[o.Engine] {
		return errors.New(errors.ErrCodeInvalidEngine, "unknown engine: %q", o.Engine)
	}
	if !backend.Formats[o.Format] {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format: %q", o.Format)
	}
	if o.Formatter != "" && o.Renderer == "" {
		return errors.New(errors.ErrCodeMissingArgument, "formatter given without renderer")
	}
	if o.Renderer != "" && !backend.Renderers[o.Renderer] {
		return errors.New(errors.ErrCodeInvalidRenderer, "unknown renderer: %q", o.Renderer)
	}
	if o.Formatter != "" && !backend.Formatters[o.Formatter] {
		return errors.New(errors.ErrCodeInvalidFormatter, "unknown formatter: %q", o.Formatter)
	}
	if o.Fanout && o.Stagger == 0 {
		return errors.New(errors.ErrCodeMissingArgument, "fanout given without stagger")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// backendOptions translates the render options into backend call options.
func (o Options) backendOptions() []backend.Option {
	var opts []backend.Option
	if o.Renderer != "" {
		opts = append(opts, backend.WithRenderer(o.Renderer))
	}
	if o.Formatter != "" {
		opts = append(opts, backend.WithFormatter(o.Formatter))
	}
	if o.Quiet {
		opts = append(opts, backend.WithQuiet())
	}
	return opts
}
