package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotforge/dotforge/pkg/backend"
)

// newUnflattenCmd creates the unflatten command.
// It wraps the Graphviz unflatten preprocessor, which improves the aspect
// ratio of graphs with many leaves or disconnected nodes.
func newUnflattenCmd() *cobra.Command {
	var (
		output  string
		stagger int
		fanout  bool
		chain   int
	)

	cmd := &cobra.Command{
		Use:   "unflatten [file]",
		Short: "Improve the aspect ratio of a wide graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			source, err := readSource(args[0])
			if err != nil {
				return err
			}

			flat, err := backend.Unflatten(ctx, source, backend.UnflattenOptions{
				Stagger: stagger,
				Fanout:  fanout,
				Chain:   chain,
				Binary:  cfg.Backend.Unflatten,
			})
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Print(flat)
				return nil
			}
			if err := writeArtifact(output, []byte(flat)); err != nil {
				return err
			}
			printSuccess("Unflattened %s", StyleHighlight.Render(args[0]))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVarP(&stagger, "stagger", "l", 0, "stagger leaf edge lengths up to this number")
	cmd.Flags().BoolVarP(&fanout, "fanout", "f", false, "fan out leaf chains when staggering (requires --stagger)")
	cmd.Flags().IntVarP(&chain, "chain", "c", 0, "form disconnected nodes into chains of this length")

	return cmd
}
