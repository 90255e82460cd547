package dot

import (
	"regexp"
	"sort"
	"strings"
)

// identifierRe matches DOT IDs that can be written without quotes: plain
// alphanumeric identifiers and (possibly negative) numerals.
var identifierRe = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*|-?(\.[0-9]+|[0-9]+(\.[0-9]*)?))$`)

// keywords are reserved words of the DOT grammar. They are valid IDs but must
// be quoted to be usable as names (matching is case-insensitive).
var keywords = map[string]bool{
	"graph":    true,
	"digraph":  true,
	"subgraph": true,
	"node":     true,
	"edge":     true,
	"strict":   true,
}

// isHTMLString reports whether s is an HTML-like string ("<...>").
// HTML strings are passed through unquoted; Graphviz balances the brackets.
func isHTMLString(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">")
}

// needsQuotes reports whether id requires double quotes in DOT output.
func needsQuotes(id string) bool {
	if !identifierRe.MatchString(id) {
		return true
	}
	return keywords[strings.ToLower(id)]
}

// escapeUnescapedQuotes backslash-escapes every double quote in s that is not
// already preceded by a backslash.
func escapeUnescapedQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	var prev rune
	for _, r := range s {
		if r == '"' && prev != '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// quote returns id ready for DOT output: bare when possible, double-quoted
// otherwise. HTML-like strings are returned verbatim.
func quote(id string) string {
	if id == "" {
		return `""`
	}
	if isHTMLString(id) {
		return id
	}
	if !needsQuotes(id) {
		return id
	}
	return `"` + escapeUnescapedQuotes(id) + `"`
}

// quoteEdge quotes an edge operand of the form "node[:port[:compass]]".
// Each colon-separated part is quoted independently so that quoting a node
// name does not swallow its port or compass point.
func quoteEdge(id string) string {
	node, rest, hasPort := strings.Cut(id, ":")
	parts := []string{quote(node)}
	if hasPort {
		port, compass, hasCompass := strings.Cut(rest, ":")
		parts = append(parts, quote(port))
		if hasCompass {
			parts = append(parts, quote(compass))
		}
	}
	return strings.Join(parts, ":")
}

// aList serializes attrs as a space-separated list of quoted key=value pairs
// in sorted key order. Returns "" for an empty set.
func aList(attrs Attrs) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = quote(k) + "=" + quote(attrs[k])
	}
	return strings.Join(pairs, " ")
}

// attrList serializes attrs as a bracketed DOT attribute list (" [a=b c=d]"),
// including the leading space. Returns "" for an empty set.
func attrList(attrs Attrs) string {
	list := aList(attrs)
	if list == "" {
		return ""
	}
	return " [" + list + "]"
}
