package dot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtension is the conventional file extension for DOT source files.
const DefaultExtension = "gv"

// Save writes the DOT source to path, creating parent directories as needed.
// If path is empty, the graph name (or "graph"/"digraph") plus ".gv" is used
// in the current directory. Returns the path written.
func (g *Graph) Save(path string) (string, error) {
	if path == "" {
		name := g.name
		if name == "" {
			if g.directed {
				name = "digraph"
			} else {
				name = "graph"
			}
		}
		path = name + "." + DefaultExtension
	}
	if err := saveLines(path, g.String()); err != nil {
		return "", err
	}
	return path, nil
}

// saveLines writes content to path with 0644 permissions, ensuring the
// parent directory exists and the file ends with a newline.
func saveLines(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
