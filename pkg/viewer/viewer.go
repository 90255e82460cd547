// Package viewer opens rendered files in the platform's default viewing
// application.
//
// The viewer process is started detached: there is no option to wait for the
// application to close and no way to retrieve its exit status.
package viewer

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Open opens path with the platform's default application. With quiet set,
// stderr output of the viewer process is suppressed.
func Open(path string, quiet bool) error {
	argv := openCommand(path)
	if argv == nil {
		return fmt.Errorf("platform %q not supported", runtime.GOOS)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if !quiet {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s with %s: %w", path, argv[0], err)
	}
	// Detach: the viewer outlives us.
	go func() { _ = cmd.Wait() }()
	return nil
}
