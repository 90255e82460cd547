// Package dot assembles Graphviz DOT source code from a mutable graph
// description.
//
// This package is the construction half of dotforge: it turns nodes, edges,
// and attribute statements into DOT text that the layout backends in
// pkg/backend (or any external Graphviz installation) can render.
//
// # Core Types
//
//   - [Graph]: Mutable DOT description (directed or undirected, optionally strict)
//   - [Attrs]: Attribute set, serialized in sorted key order for deterministic output
//   - [Source]: Verbatim DOT text that shares the save surface of [Graph]
//
// # Building a Graph
//
//	g := dot.NewDigraph(dot.WithName("deps"))
//	g.Attr("node", dot.Attrs{"shape": "box"})
//	g.Node("app", dot.Attrs{"label": "Application"})
//	g.Node("lib", nil)
//	g.Edge("app", "lib", nil)
//	fmt.Print(g.String())
//
// Edge endpoints may carry ports and compass points using the DOT
// "node[:port[:compass]]" syntax; each colon-separated part is quoted
// independently so ports survive quoting:
//
//	g.Edge("struct1:f0", "struct2:f1:sw", nil)
//
// # Quoting
//
// Identifiers and attribute values are quoted automatically: plain
// alphanumeric identifiers and numerals stay bare, DOT keywords and anything
// else are wrapped in double quotes with embedded quotes escaped, and
// HTML-like strings ("<...>") pass through verbatim.
//
// # Clusters
//
// A subgraph whose name starts with "cluster" (all lowercase) is treated as a
// cluster by the Graphviz layout engines:
//
//	sub := dot.NewDigraph(dot.WithName("cluster_backend"))
//	sub.Node("db", nil)
//	_ = g.Subgraph(sub)
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. Serialize access externally if
// multiple goroutines build the same graph.
package dot
