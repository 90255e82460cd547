//go:build windows

package viewer

import "path/filepath"

// openCommand returns the command line starting path with its associated
// application (windows).
func openCommand(path string) []string {
	return []string{"cmd", "/c", "start", "", filepath.Clean(path)}
}
