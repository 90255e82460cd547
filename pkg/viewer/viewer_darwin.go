//go:build darwin

package viewer

// openCommand returns the command line opening path with its default
// application (macOS).
func openCommand(path string) []string {
	return []string{"open", path}
}
