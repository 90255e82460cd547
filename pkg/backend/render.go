package backend

import (
	"bytes"
	"context"
	"path/filepath"
)

// Render runs the layout engine over the DOT source file at path and writes
// the result next to it (dot -O). It returns the path of the rendered file:
// "<path>.<format>", with renderer/formatter qualifiers folded into the
// extension chain when present.
//
// The layout command runs from the directory of path so that relative
// resource references in the source (images, stylesheets) resolve against
// the source file location.
func Render(ctx context.Context, engine, format, path string, opts ...Option) (string, error) {
	o := buildOptions(opts)

	argv, err := o.command(engine, format)
	if err != nil {
		return "", err
	}

	dir, file := filepath.Split(path)
	argv = append(argv, "-O", file)

	rendered := file + "." + o.outputSuffix(format)
	if dir != "" {
		rendered = filepath.Join(dir, rendered)
	}

	if _, err := (runner{argv: argv, dir: dir, quiet: o.quiet}).run(ctx); err != nil {
		return "", err
	}
	return rendered, nil
}

// Pipe feeds src through the layout engine and returns the rendered bytes.
// The layout command runs from the current directory.
func Pipe(ctx context.Context, engine, format string, src []byte, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)

	argv, err := o.command(engine, format)
	if err != nil {
		return nil, err
	}

	return runner{argv: argv, stdin: bytes.NewReader(src), quiet: o.quiet}.run(ctx)
}

// PipeString is a string-in, string-out convenience wrapper around [Pipe]
// for text formats (svg, dot, json, plain).
func PipeString(ctx context.Context, engine, format, src string, opts ...Option) (string, error) {
	out, err := Pipe(ctx, engine, format, []byte(src), opts...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
