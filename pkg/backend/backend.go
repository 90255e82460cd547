package backend

import (
	"sort"
	"strings"

	"github.com/dotforge/dotforge/pkg/errors"
)

// Default binary names, resolved via PATH unless overridden with [WithBinary].
const (
	DefaultDotBinary       = "dot"
	DefaultUnflattenBinary = "unflatten"
)

// Engines are the known Graphviz layout engines (dot -K values).
var Engines = map[string]bool{
	"dot":       true,
	"neato":     true,
	"twopi":     true,
	"circo":     true,
	"fdp":       true,
	"sfdp":      true,
	"patchwork": true,
	"osage":     true,
}

// Formats are the known Graphviz output formats (dot -T values).
var Formats = map[string]bool{
	"bmp":   true,
	"canon": true, "dot": true, "gv": true, "xdot": true, "xdot1.2": true, "xdot1.4": true,
	"cgimage": true,
	"cmap":    true,
	"eps":     true,
	"exr":     true,
	"fig":     true,
	"gd":      true, "gd2": true,
	"gif":  true,
	"gtk":  true,
	"ico":  true,
	"imap": true, "cmapx": true,
	"imap_np": true, "cmapx_np": true,
	"ismap": true,
	"jp2":   true,
	"jpg":   true, "jpeg": true, "jpe": true,
	"json": true, "json0": true, "dot_json": true, "xdot_json": true,
	"pct": true, "pict": true,
	"pdf":   true,
	"pic":   true,
	"plain": true, "plain-ext": true,
	"png":  true,
	"pov":  true,
	"ps":   true,
	"ps2":  true,
	"psd":  true,
	"sgi":  true,
	"svg":  true, "svgz": true,
	"tga": true,
	"tif": true, "tiff": true,
	"tk":  true,
	"vml": true, "vmlz": true,
	"vrml": true,
	"wbmp": true,
	"webp": true,
	"xlib": true,
	"x11":  true,
}

// Renderers are the known output renderers (the second part of dot -T:).
var Renderers = map[string]bool{
	"cairo":   true,
	"dot":     true,
	"fig":     true,
	"gd":      true,
	"gdiplus": true,
	"map":     true,
	"pic":     true,
	"pov":     true,
	"ps":      true,
	"svg":     true,
	"tk":      true,
	"vml":     true,
	"vrml":    true,
	"xdot":    true,
}

// Formatters are the known output formatters (the third part of dot -T:).
var Formatters = map[string]bool{
	"cairo":   true,
	"core":    true,
	"gd":      true,
	"gdiplus": true,
	"gdwbmp":  true,
	"xlib":    true,
}

// KnownEngines returns the layout engine names in sorted order.
func KnownEngines() []string { return sortedKeys(Engines) }

// KnownFormats returns the output format names in sorted order.
func KnownFormats() []string { return sortedKeys(Formats) }

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// options collects per-call settings shared by the backend entry points.
type options struct {
	renderer  string
	formatter string
	binary    string
	quiet     bool
}

// Option configures a backend call.
type Option func(*options)

// WithRenderer selects an output renderer ("cairo", "gd", ...).
func WithRenderer(renderer string) Option {
	return func(o *options) { o.renderer = renderer }
}

// WithFormatter selects an output formatter ("cairo", "core", ...).
// A formatter requires a renderer.
func WithFormatter(formatter string) Option {
	return func(o *options) { o.formatter = formatter }
}

// WithQuiet suppresses forwarding of the subprocess stderr output.
// Captured stderr is still attached to errors.
func WithQuiet() Option {
	return func(o *options) { o.quiet = true }
}

// WithBinary overrides the executable path (dot or unflatten, depending on
// the call). Useful for pinned installations and tests.
func WithBinary(path string) Option {
	return func(o *options) { o.binary = path }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Command returns the argument list for rendering with the given engine and
// format: "dot -K<engine> -T<format[:renderer[:formatter]]>". It validates
// every name against the known sets before any process is spawned.
func Command(engine, format string, opts ...Option) ([]string, error) {
	o := buildOptions(opts)
	return o.command(engine, format)
}

func (o options) command(engine, format string) ([]string, error) {
	if o.formatter != "" && o.renderer == "" {
		return nil, errors.New(errors.ErrCodeMissingArgument, "formatter given without renderer")
	}
	if !Engines[engine] {
		return nil, errors.New(errors.ErrCodeInvalidEngine, "unknown engine: %q", engine)
	}
	if !Formats[format] {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %q", format)
	}
	if o.renderer != "" && !Renderers[o.renderer] {
		return nil, errors.New(errors.ErrCodeInvalidRenderer, "unknown renderer: %q", o.renderer)
	}
	if o.formatter != "" && !Formatters[o.formatter] {
		return nil, errors.New(errors.ErrCodeInvalidFormatter, "unknown formatter: %q", o.formatter)
	}

	target := format
	if o.renderer != "" {
		target += ":" + o.renderer
	}
	if o.formatter != "" {
		target += ":" + o.formatter
	}

	bin := o.binary
	if bin == "" {
		bin = DefaultDotBinary
	}
	return []string{bin, "-K" + engine, "-T" + target}, nil
}

// OutputSuffix returns the extension chain Graphviz appends in -O mode:
// "<formatter>.<renderer>.<format>" with absent parts omitted.
func OutputSuffix(format string, opts ...Option) string {
	return buildOptions(opts).outputSuffix(format)
}

func (o options) outputSuffix(format string) string {
	parts := make([]string, 0, 3)
	if o.formatter != "" {
		parts = append(parts, o.formatter)
	}
	if o.renderer != "" {
		parts = append(parts, o.renderer)
	}
	return strings.Join(append(parts, format), ".")
}
