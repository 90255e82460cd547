package cli

import (
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotforge/dotforge/pkg/backend"
)

// newDoctorCmd creates the doctor command, which checks the local
// Graphviz installation and reports what dotforge will use.
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the local Graphviz installation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			if v, err := backend.Version(ctx, backend.WithQuiet(), backend.WithBinary(cfg.Backend.Dot)); err != nil {
				printWarning("Graphviz executables not found (%s)", cfg.Backend.Dot)
				printDetail("Install Graphviz from https://graphviz.org/download/")
				printDetail("Rendering will fall back to the embedded renderer")
			} else {
				printSuccess("Graphviz %s", backend.FormatVersion(v))
				if path, err := exec.LookPath(cfg.Backend.Dot); err == nil {
					printDetail("dot: %s", path)
				}
			}

			if path, err := exec.LookPath(cfg.Backend.Unflatten); err != nil {
				printWarning("unflatten not found, --unflatten will not work")
			} else {
				printSuccess("unflatten available")
				printDetail("unflatten: %s", path)
			}

			printInfo("Embedded renderer formats: dot, svg, png, jpg")

			if dir, err := cacheDir(); err == nil {
				printKeyValue("cache", dir)
			}
			if path, err := configPath(); err == nil {
				printKeyValue("config", path)
			}
			printKeyValue("engines", strings.Join(backend.KnownEngines(), ", "))
			return nil
		},
	}
}
