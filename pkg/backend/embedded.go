package backend

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/dotforge/dotforge/pkg/errors"
)

// embeddedFormats maps format names to the formats of the embedded (WASM)
// Graphviz build.
var embeddedFormats = map[string]graphviz.Format{
	"dot":  graphviz.XDOT,
	"svg":  graphviz.SVG,
	"png":  graphviz.PNG,
	"jpg":  graphviz.JPG,
	"jpeg": graphviz.JPG,
}

// embeddedLayouts maps engine names to the layouts of the embedded build.
var embeddedLayouts = map[string]graphviz.Layout{
	"dot":       graphviz.DOT,
	"neato":     graphviz.NEATO,
	"twopi":     graphviz.TWOPI,
	"circo":     graphviz.CIRCO,
	"fdp":       graphviz.FDP,
	"sfdp":      graphviz.SFDP,
	"patchwork": graphviz.PATCHWORK,
	"osage":     graphviz.OSAGE,
}

// SupportsEmbedded reports whether the embedded renderer can produce format.
func SupportsEmbedded(format string) bool {
	_, ok := embeddedFormats[format]
	return ok
}

// RenderEmbedded renders DOT source through the embedded (WASM) Graphviz
// build, without requiring a system Graphviz installation. Only a subset of
// formats is available; check with [SupportsEmbedded].
func RenderEmbedded(ctx context.Context, engine, format string, src []byte) ([]byte, error) {
	layout, ok := embeddedLayouts[engine]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidEngine, "unknown engine: %q", engine)
	}
	target, ok := embeddedFormats[format]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"format %q not supported by the embedded renderer", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init embedded graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(layout)

	g, err := graphviz.ParseBytes(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, target, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "embedded render")
	}
	return buf.Bytes(), nil
}
