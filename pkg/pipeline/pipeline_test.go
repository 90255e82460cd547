package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/dotforge/dotforge/pkg/backend"
	"github.com/dotforge/dotforge/pkg/cache"
	"github.com/dotforge/dotforge/pkg/errors"
)

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{
			name: "Minimal",
			opts: Options{Source: "digraph { a -> b }"},
		},
		{
			name: "FullChain",
			opts: Options{
				Source:    "digraph { a -> b }",
				Engine:    "neato",
				Format:    "png",
				Renderer:  "cairo",
				Formatter: "core",
			},
		},
		{
			name:     "EmptySource",
			opts:     Options{},
			wantCode: errors.ErrCodeInvalidSource,
		},
		{
			name:     "WhitespaceSource",
			opts:     Options{Source: "  \n\t"},
			wantCode: errors.ErrCodeInvalidSource,
		},
		{
			name:     "UnknownEngine",
			opts:     Options{Source: "graph {}", Engine: "turbo"},
			wantCode: errors.ErrCodeInvalidEngine,
		},
		{
			name:     "UnknownFormat",
			opts:     Options{Source: "graph {}", Format: "bmp3"},
			wantCode: errors.ErrCodeInvalidFormat,
		},
		{
			name:     "FormatterWithoutRenderer",
			opts:     Options{Source: "graph {}", Formatter: "core"},
			wantCode: errors.ErrCodeMissingArgument,
		},
		{
			name:     "UnknownRenderer",
			opts:     Options{Source: "graph {}", Renderer: "crayon"},
			wantCode: errors.ErrCodeInvalidRenderer,
		},
		{
			name:     "FanoutWithoutStagger",
			opts:     Options{Source: "graph {}", Fanout: true},
			wantCode: errors.ErrCodeMissingArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ValidateAndSetDefaults() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestValidateAppliesDefaults(t *testing.T) {
	opts := Options{Source: "digraph { a -> b }"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Engine != DefaultEngine {
		t.Errorf("Engine = %q, want %q", opts.Engine, DefaultEngine)
	}
	if opts.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", opts.Format, DefaultFormat)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestBackendOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want int
	}{
		{name: "None", opts: Options{}, want: 0},
		{name: "Quiet", opts: Options{Quiet: true}, want: 1},
		{name: "Renderer", opts: Options{Renderer: "cairo"}, want: 1},
		{name: "Chain", opts: Options{Renderer: "cairo", Formatter: "core"}, want: 2},
		{name: "ChainQuiet", opts: Options{Renderer: "cairo", Formatter: "core", Quiet: true}, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.opts.backendOptions()); got != tt.want {
				t.Errorf("backendOptions() returned %d options, want %d", got, tt.want)
			}
		})
	}
}

func TestExecutePassesQuietToRender(t *testing.T) {
	r, _ := fakeRunner(t, cache.NewNullCache())

	var gotOpts []backend.Option
	r.PipeFunc = func(_ context.Context, _, _ string, _ []byte, opts ...backend.Option) ([]byte, error) {
		gotOpts = opts
		return []byte("ok"), nil
	}

	_, err := r.Execute(context.Background(), Options{
		Source: "digraph { a -> b }",
		Format: "svg",
		Quiet:  true,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(gotOpts) != 1 {
		t.Fatalf("render received %d options, want the quiet option", len(gotOpts))
	}
}

// fakeRunner returns a Runner whose render stage records calls and returns
// canned output instead of invoking Graphviz.
func fakeRunner(t *testing.T, c cache.Cache) (*Runner, *int) {
	t.Helper()
	calls := 0
	r := NewRunner(c, log.New(io.Discard))
	r.PipeFunc = func(_ context.Context, engine, format string, src []byte, _ ...backend.Option) ([]byte, error) {
		calls++
		return []byte("rendered:" + engine + ":" + format), nil
	}
	r.UnflattenFunc = func(_ context.Context, src string, _ backend.UnflattenOptions) (string, error) {
		return "unflattened " + src, nil
	}
	return r, &calls
}

func TestExecuteRenders(t *testing.T) {
	r, calls := fakeRunner(t, cache.NewNullCache())

	result, err := r.Execute(context.Background(), Options{
		Source: "digraph { a -> b }",
		Engine: "dot",
		Format: "svg",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := string(result.Data); got != "rendered:dot:svg" {
		t.Errorf("Data = %q", got)
	}
	if result.Format != "svg" {
		t.Errorf("Format = %q, want svg", result.Format)
	}
	if result.RunID == "" {
		t.Error("RunID should be set")
	}
	if result.CacheHit {
		t.Error("first render should not be a cache hit")
	}
	if *calls != 1 {
		t.Errorf("render calls = %d, want 1", *calls)
	}
}

func TestExecuteCachesResult(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r, calls := fakeRunner(t, fc)

	opts := Options{Source: "digraph { a -> b }", Format: "svg"}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	second, err := r.Execute(context.Background(), Options{Source: opts.Source, Format: opts.Format})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !second.CacheHit {
		t.Error("second render should hit the cache")
	}
	if string(first.Data) != string(second.Data) {
		t.Error("cached data should match the original render")
	}
	if *calls != 1 {
		t.Errorf("render calls = %d, want 1", *calls)
	}
	if first.RunID == second.RunID {
		t.Error("each execution should get a distinct run ID")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r, calls := fakeRunner(t, fc)

	src := "digraph { a -> b }"
	if _, err := r.Execute(context.Background(), Options{Source: src, Format: "svg"}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := r.Execute(context.Background(), Options{Source: src, Format: "svg", Refresh: true}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if *calls != 2 {
		t.Errorf("render calls = %d, want 2", *calls)
	}
}

func TestExecuteUnflattenPreprocesses(t *testing.T) {
	r, _ := fakeRunner(t, cache.NewNullCache())

	var gotSrc string
	r.PipeFunc = func(_ context.Context, _, _ string, src []byte, _ ...backend.Option) ([]byte, error) {
		gotSrc = string(src)
		return []byte("ok"), nil
	}

	_, err := r.Execute(context.Background(), Options{
		Source:    "digraph { a -> b }",
		Format:    "svg",
		Unflatten: true,
		Stagger:   3,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if gotSrc != "unflattened digraph { a -> b }" {
		t.Errorf("render received %q, want unflattened source", gotSrc)
	}
}

func TestExecuteEmbeddedFallback(t *testing.T) {
	r, _ := fakeRunner(t, cache.NewNullCache())
	r.PipeFunc = func(context.Context, string, string, []byte, ...backend.Option) ([]byte, error) {
		return nil, &backend.ExecutableNotFoundError{Binary: "dot"}
	}
	r.EmbeddedFunc = func(_ context.Context, engine, format string, _ []byte) ([]byte, error) {
		return []byte("embedded:" + engine + ":" + format), nil
	}

	result, err := r.Execute(context.Background(), Options{
		Source: "digraph { a -> b }",
		Format: "svg",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !result.Embedded {
		t.Error("Embedded should be true after fallback")
	}
	if got := string(result.Data); got != "embedded:dot:svg" {
		t.Errorf("Data = %q", got)
	}
}

func TestExecuteNoFallbackWithRenderer(t *testing.T) {
	r, _ := fakeRunner(t, cache.NewNullCache())
	r.PipeFunc = func(context.Context, string, string, []byte, ...backend.Option) ([]byte, error) {
		return nil, &backend.ExecutableNotFoundError{Binary: "dot"}
	}

	_, err := r.Execute(context.Background(), Options{
		Source:   "digraph { a -> b }",
		Format:   "png",
		Renderer: "cairo",
	})
	if !backend.IsExecutableNotFound(err) {
		t.Errorf("error = %v, want executable-not-found passthrough", err)
	}
}
