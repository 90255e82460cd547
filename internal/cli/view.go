package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotforge/dotforge/pkg/errors"
	"github.com/dotforge/dotforge/pkg/viewer"
)

// newViewCmd creates the view command.
func newViewCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Open a rendered artifact in the system viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err != nil {
				if os.IsNotExist(err) {
					return errors.New(errors.ErrCodeFileNotFound, "no such file: %s", path)
				}
				return fmt.Errorf("open %s: %w", path, err)
			}
			if err := viewer.Open(path, quiet); err != nil {
				return err
			}
			printSuccess("Opened %s", StyleHighlight.Render(path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress viewer stderr output")

	return cmd
}
