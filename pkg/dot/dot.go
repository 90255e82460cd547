package dot

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Attrs is a DOT attribute set. Values are written as-is after quoting;
// callers are responsible for stringifying numbers and colors.
type Attrs map[string]string

// clone returns a copy of attrs (nil stays nil).
func (a Attrs) clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Graph is a mutable DOT source description.
//
// Statements are accumulated in insertion order in an internal body; default
// graph/node/edge attributes are emitted once at the top of the output.
// Create instances with [NewGraph] or [NewDigraph].
type Graph struct {
	name     string
	comment  string
	directed bool
	strict   bool

	graphAttrs Attrs
	nodeAttrs  Attrs
	edgeAttrs  Attrs

	body []string
}

// Option configures a Graph during construction.
type Option func(*Graph)

// WithName sets the graph name (quoted on output as needed).
func WithName(name string) Option {
	return func(g *Graph) { g.name = name }
}

// WithComment sets a comment emitted as the first line of the source.
func WithComment(comment string) Option {
	return func(g *Graph) { g.comment = comment }
}

// Strict marks the graph as strict: the layout engine merges multi-edges.
// Strict graphs cannot be added as subgraphs.
func Strict() Option {
	return func(g *Graph) { g.strict = true }
}

// WithGraphAttrs sets default graph-level attributes.
func WithGraphAttrs(attrs Attrs) Option {
	return func(g *Graph) { g.graphAttrs = attrs.clone() }
}

// WithNodeAttrs sets default node attributes.
func WithNodeAttrs(attrs Attrs) Option {
	return func(g *Graph) { g.nodeAttrs = attrs.clone() }
}

// WithEdgeAttrs sets default edge attributes.
func WithEdgeAttrs(attrs Attrs) Option {
	return func(g *Graph) { g.edgeAttrs = attrs.clone() }
}

// NewGraph creates an undirected graph ("graph { ... }").
func NewGraph(opts ...Option) *Graph {
	return newGraph(false, opts)
}

// NewDigraph creates a directed graph ("digraph { ... }").
func NewDigraph(opts ...Option) *Graph {
	return newGraph(true, opts)
}

func newGraph(directed bool, opts []Option) *Graph {
	g := &Graph{directed: directed}
	for _, opt := range opts {
		opt(g)
	}
	if g.graphAttrs == nil {
		g.graphAttrs = Attrs{}
	}
	if g.nodeAttrs == nil {
		g.nodeAttrs = Attrs{}
	}
	if g.edgeAttrs == nil {
		g.edgeAttrs = Attrs{}
	}
	return g
}

// Name returns the graph name.
func (g *Graph) Name() string { return g.name }

// Directed reports whether the graph is directed.
func (g *Graph) Directed() bool { return g.directed }

// IsStrict reports whether the graph is strict.
func (g *Graph) IsStrict() bool { return g.strict }

// Node appends a node statement. The node name is its unique identifier
// within the source; pass a "label" attribute to change the displayed text.
func (g *Graph) Node(name string, attrs Attrs) {
	g.body = append(g.body, "\t"+quote(name)+attrList(attrs))
}

// Edge appends an edge statement between tail and head. Endpoints use the
// DOT "node[:port[:compass]]" syntax.
func (g *Graph) Edge(tail, head string, attrs Attrs) {
	g.body = append(g.body, "\t"+quoteEdge(tail)+g.edgeOp()+quoteEdge(head)+attrList(attrs))
}

// Edges appends one edge statement per (tail, head) pair.
func (g *Graph) Edges(pairs ...[2]string) {
	for _, p := range pairs {
		g.Edge(p[0], p[1], nil)
	}
}

// edgeOp returns the edge operator for the graph kind.
func (g *Graph) edgeOp() string {
	if g.directed {
		return " -> "
	}
	return " -- "
}

// Attr appends an attribute statement. An empty target emits a plain
// graph-level a_list ("rankdir=LR"); "graph", "node", or "edge" emit a
// targeted statement ("node [shape=box]"). Targets are validated
// case-insensitively but written as given. Any other target is an error.
// Empty attribute sets append nothing.
func (g *Graph) Attr(target string, attrs Attrs) error {
	switch strings.ToLower(target) {
	case "":
		if len(attrs) > 0 {
			g.body = append(g.body, "\t"+aList(attrs))
		}
	case "graph", "node", "edge":
		if len(attrs) > 0 {
			g.body = append(g.body, "\t"+target+attrList(attrs))
		}
	default:
		return fmt.Errorf("attr statement must target graph, node, or edge: %q", target)
	}
	return nil
}

// Subgraph adds the current content of sub as a subgraph statement.
// The subgraph must be of the same kind (directed/undirected) as g and must
// not be strict. Later changes to sub do not affect g.
//
// Name the subgraph with a "cluster" prefix to have the layout engine treat
// it as a cluster.
func (g *Graph) Subgraph(sub *Graph) error {
	if sub.directed != g.directed {
		return errors.New("cannot add subgraph of different kind (directed vs undirected)")
	}
	lines, err := sub.lines(true)
	if err != nil {
		return err
	}
	for _, line := range lines {
		g.body = append(g.body, "\t"+line)
	}
	return nil
}

// Append adds verbatim DOT statement lines to the body. Lines are emitted
// exactly as given (callers supply their own indentation).
func (g *Graph) Append(lines ...string) {
	g.body = append(g.body, lines...)
}

// Clear resets the body. Default graph/node/edge attributes are also cleared
// unless keepAttrs is true.
func (g *Graph) Clear(keepAttrs bool) {
	g.body = g.body[:0]
	if !keepAttrs {
		g.graphAttrs = Attrs{}
		g.nodeAttrs = Attrs{}
		g.edgeAttrs = Attrs{}
	}
}

// lines renders the DOT source line by line, as a top-level graph or as a
// subgraph statement.
func (g *Graph) lines(asSubgraph bool) ([]string, error) {
	var out []string
	if g.comment != "" {
		out = append(out, "// "+g.comment)
	}

	var head strings.Builder
	if asSubgraph {
		if g.strict {
			return nil, errors.New("subgraphs cannot be strict")
		}
		if g.name != "" {
			head.WriteString("subgraph ")
		}
	} else {
		if g.strict {
			head.WriteString("strict ")
		}
		if g.directed {
			head.WriteString("digraph ")
		} else {
			head.WriteString("graph ")
		}
	}
	if g.name != "" {
		head.WriteString(quote(g.name))
		head.WriteString(" ")
	}
	head.WriteString("{")
	out = append(out, head.String())

	for _, kw := range [...]struct {
		name  string
		attrs Attrs
	}{{"graph", g.graphAttrs}, {"node", g.nodeAttrs}, {"edge", g.edgeAttrs}} {
		if len(kw.attrs) > 0 {
			out = append(out, "\t"+kw.name+attrList(kw.attrs))
		}
	}

	out = append(out, g.body...)
	out = append(out, "}")
	return out, nil
}

// String returns the complete DOT source, one statement per line, ending
// with a newline.
func (g *Graph) String() string {
	lines, err := g.lines(false)
	if err != nil {
		// Unreachable for top-level rendering; lines only fails for
		// strict subgraphs.
		panic(err)
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteTo writes the DOT source to w. It implements [io.WriterTo].
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, g.String())
	return int64(n), err
}
