//go:build linux || freebsd

package viewer

// openCommand returns the command line opening path in the user's preferred
// application (linux, freebsd).
func openCommand(path string) []string {
	return []string{"xdg-open", path}
}
