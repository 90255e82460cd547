package cli

import (
	"github.com/spf13/cobra"
)

// newTUICmd creates the interactive render command.
// It prompts for a layout engine and output format, then renders the given
// file with the selections.
func newTUICmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "tui [file]",
		Short: "Render a DOT file with interactive engine and format selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := pickEngine()
			if err != nil {
				return err
			}
			if engine == "" {
				printInfo("Cancelled")
				return nil
			}
			format, err := pickFormat()
			if err != nil {
				return err
			}
			if format == "" {
				printInfo("Cancelled")
				return nil
			}

			opts.engine = engine
			opts.format = format
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input path plus format suffix)")
	cmd.Flags().BoolVar(&opts.view, "view", false, "open the result in the system viewer")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}
