package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dotforge/dotforge/pkg/pipeline"
)

// newPipeCmd creates the pipe command for shell pipelines.
// It reads DOT source from stdin and writes the rendered artifact to
// stdout, so output can be redirected or piped onward. All status output
// goes to stderr.
func newPipeCmd() *cobra.Command {
	var (
		engine    string
		format    string
		renderer  string
		formatter string
		embedded  bool
		quiet     bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Render stdin to stdout",
		Long: `Render DOT source from stdin and write the artifact to stdout.

Example:

  echo 'digraph { a -> b }' | dotforge pipe -T svg > graph.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)

			source, err := readSource("-")
			if err != nil {
				return err
			}
			if engine == "" {
				engine = cfg.Render.Engine
			}
			if format == "" {
				format = cfg.Render.Format
			}

			runner := newRunner(ctx, cfg, noCache, logger)
			defer func() { _ = runner.Cache.Close() }()

			result, err := runner.Execute(ctx, pipeline.Options{
				Source:    source,
				Engine:    engine,
				Format:    format,
				Renderer:  renderer,
				Formatter: formatter,
				Embedded:  embedded,
				Quiet:     quiet,
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			_, err = os.Stdout.Write(result.Data)
			return err
		},
	}

	cmd.Flags().StringVarP(&engine, "engine", "K", "", "layout engine: dot (default), neato, fdp, ...")
	cmd.Flags().StringVarP(&format, "format", "T", "", "output format: pdf (default), svg, png, ...")
	cmd.Flags().StringVar(&renderer, "renderer", "", "output renderer, e.g. cairo")
	cmd.Flags().StringVar(&formatter, "formatter", "", "output formatter, e.g. core (requires --renderer)")
	cmd.Flags().BoolVar(&embedded, "embedded", false, "use the embedded renderer instead of the Graphviz executables")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress stderr output from the layout process")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}
