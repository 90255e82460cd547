//go:build !linux && !freebsd && !darwin && !windows

package viewer

// openCommand reports no viewer on unsupported platforms.
func openCommand(path string) []string {
	return nil
}
