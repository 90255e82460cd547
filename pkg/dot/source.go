package dot

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Source holds verbatim DOT text. It shares the save surface of [Graph] and
// is the entry point for rendering DOT that was produced elsewhere.
type Source struct {
	src string
}

// NewSource wraps existing DOT text. A trailing newline is added when
// missing so that saved files always end with one.
func NewSource(src string) *Source {
	if src != "" && !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	return &Source{src: src}
}

// SourceFromFile reads DOT text from path.
func SourceFromFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return NewSource(string(data)), nil
}

// String returns the DOT text.
func (s *Source) String() string { return s.src }

// WriteTo writes the DOT text to w. It implements [io.WriterTo].
func (s *Source) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.src)
	return int64(n), err
}

// Save writes the DOT text to path, creating parent directories as needed.
func (s *Source) Save(path string) error {
	return saveLines(path, s.src)
}
