// Package backend executes the Graphviz layout commands.
//
// This package is the rendering half of dotforge: it validates layout
// parameters, builds the "dot -K<engine> -T<format>" argument lists, and runs
// the external Graphviz processes (dot, unflatten) with captured output and
// structured error propagation.
//
// # Rendering
//
// Render a saved DOT file next to its source (the layout command runs from
// the source directory so relative resource references like
// [image=images/logo.png] resolve):
//
//	out, err := backend.Render(ctx, "dot", "pdf", "deps.gv")
//	// out == "deps.gv.pdf"
//
// Or pipe DOT through the engine without touching the filesystem:
//
//	svg, err := backend.Pipe(ctx, "dot", "svg", []byte("graph { hello -- world }"))
//
// # Output Formats
//
// The -T flag accepts an output format optionally qualified by renderer and
// formatter ("png:cairo:cairo"). Use [WithRenderer] and [WithFormatter];
// a formatter without a renderer is rejected.
//
// # Errors
//
// A missing binary surfaces as [ExecutableNotFoundError]; a non-zero exit
// surfaces as [ExitError] carrying the captured stderr. Unknown engine,
// format, renderer, or formatter names are rejected with coded validation
// errors before any process is spawned.
//
// # Embedded Fallback
//
// [RenderEmbedded] renders through the WASM build of Graphviz
// (goccy/go-graphviz) for the formats it supports, so piping works even on
// hosts without a Graphviz installation.
package backend
