package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dotforge/dotforge/pkg/backend"
	"github.com/dotforge/dotforge/pkg/dot"
	"github.com/dotforge/dotforge/pkg/pipeline"
	"github.com/dotforge/dotforge/pkg/viewer"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path ("" derives from the input name)
	engine    string // layout engine: dot, neato, fdp, ...
	format    string // output format: pdf, svg, png, ...
	renderer  string // output renderer, e.g. cairo
	formatter string // output formatter, e.g. core
	unflatten bool   // preprocess with unflatten
	stagger   int    // unflatten -l
	fanout    bool   // unflatten -f
	chain     int    // unflatten -c
	embedded  bool   // force the embedded renderer
	quiet     bool   // suppress layout stderr output
	noCache   bool   // disable the render cache
	refresh   bool   // bypass the cache for this run
	view      bool   // open the result in the system viewer
	stdout    bool   // write the artifact to stdout instead of a file
}

// newRenderCmd creates the render command for rendering DOT files.
//
// The output path defaults to the input path plus the format suffix chain,
// matching what Graphviz itself produces with -O: "hello.gv" rendered as
// svg becomes "hello.gv.svg", and with a cairo renderer "hello.gv.cairo.svg".
func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a DOT file and save the result",
		Long: `Render a DOT file through a Graphviz layout engine and save the result.

Reads DOT source from the given file, or from stdin when the file is "-".
Results are cached by source content and render options; identical renders
are served from the cache without invoking Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input path plus format suffix)")
	cmd.Flags().StringVarP(&opts.engine, "engine", "K", "", "layout engine: dot (default), neato, fdp, sfdp, circo, twopi, osage, patchwork")
	cmd.Flags().StringVarP(&opts.format, "format", "T", "", "output format: pdf (default), svg, png, ... (see dot -T)")
	cmd.Flags().StringVar(&opts.renderer, "renderer", "", "output renderer, e.g. cairo")
	cmd.Flags().StringVar(&opts.formatter, "formatter", "", "output formatter, e.g. core (requires --renderer)")
	cmd.Flags().BoolVar(&opts.unflatten, "unflatten", false, "preprocess with unflatten to improve aspect ratio")
	cmd.Flags().IntVar(&opts.stagger, "stagger", 0, "stagger leaf edge lengths up to this number (unflatten -l)")
	cmd.Flags().BoolVar(&opts.fanout, "fanout", false, "fan out leaf chains when staggering (unflatten -f)")
	cmd.Flags().IntVar(&opts.chain, "chain", 0, "form disconnected nodes into chains of this length (unflatten -c)")
	cmd.Flags().BoolVar(&opts.embedded, "embedded", false, "use the embedded renderer instead of the Graphviz executables")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress stderr output from the layout process")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if a cached result exists")
	cmd.Flags().BoolVar(&opts.view, "view", false, "open the result in the system viewer")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "write the artifact to stdout instead of a file")

	return cmd
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	source, err := readSource(input)
	if err != nil {
		return err
	}

	engine := opts.engine
	if engine == "" {
		engine = cfg.Render.Engine
	}
	format := opts.format
	if format == "" {
		format = cfg.Render.Format
	}

	runner := newRunner(ctx, cfg, opts.noCache, logger)
	defer func() { _ = runner.Cache.Close() }()

	prog := newProgress(logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering with %s...", engine))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Source:    source,
		Engine:    engine,
		Format:    format,
		Renderer:  opts.renderer,
		Formatter: opts.formatter,
		Unflatten: opts.unflatten,
		Stagger:   opts.stagger,
		Fanout:    opts.fanout,
		Chain:     opts.chain,
		Embedded:  opts.embedded,
		Quiet:     opts.quiet,
		Refresh:   opts.refresh,
		Logger:    logger,
	})
	if err != nil {
		spinner.Stop()
		if backend.IsExecutableNotFound(err) {
			printWarning("Graphviz executables not found")
			printDetail("Install Graphviz from https://graphviz.org/download/ or use --embedded")
		}
		return err
	}
	spinner.Stop()

	if opts.stdout {
		_, err := os.Stdout.Write(result.Data)
		return err
	}

	outPath := opts.output
	if outPath == "" {
		outPath = defaultOutputPath(input, format, opts.renderer, opts.formatter)
	}
	if err := writeArtifact(outPath, result.Data); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", filepath.Base(outPath)))

	printSuccess("Rendered %s", StyleHighlight.Render(filepath.Base(outPath)))
	printFile(outPath)
	printRenderStats(engine, format, len(result.Data), result.CacheHit)
	if result.Embedded {
		printDetail("Used the embedded renderer (Graphviz executables not found)")
	}

	if opts.view {
		if err := viewer.Open(outPath, true); err != nil {
			printWarning("Could not open viewer: %v", err)
		}
	} else {
		printNextStep("View it", fmt.Sprintf("dotforge view %s", outPath))
	}
	return nil
}

// readSource reads DOT source from a file, or stdin when path is "-".
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return dot.NewSource(string(data)).String(), nil
	}
	src, err := dot.SourceFromFile(path)
	if err != nil {
		return "", err
	}
	return src.String(), nil
}

// defaultOutputPath derives the output file name from the input path and
// render options, mirroring Graphviz -O behavior.
func defaultOutputPath(input, format, renderer, formatter string) string {
	var bopts []backend.Option
	if renderer != "" {
		bopts = append(bopts, backend.WithRenderer(renderer))
	}
	if formatter != "" {
		bopts = append(bopts, backend.WithFormatter(formatter))
	}
	suffix := backend.OutputSuffix(format, bopts...)
	if input == "-" {
		return "graph." + suffix
	}
	return input + "." + suffix
}

// writeArtifact writes data to path, creating parent directories as needed.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
