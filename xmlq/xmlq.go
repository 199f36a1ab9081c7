// Package xmlq reads values out of a parsed XML tree with XPath queries.
//
// A Reader wraps one context node and keeps a private cache of compiled
// expressions. Compiled XPath expressions are not safe to share between
// concurrent evaluations, so each document being processed gets its own
// Reader.
package xmlq

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/miku/nlmkit/normal"
)

// InvalidQueryError signals an XPath expression that failed to compile.
// Queries are constants in calling code, so a compile failure is a defect in
// the caller, never in the document being read. Reader methods panic with
// this error the way regexp.MustCompile does.
type InvalidQueryError struct {
	Query string
	Err   error
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid xpath query %q: %v", e.Query, e.Err)
}

func (e *InvalidQueryError) Unwrap() error { return e.Err }

var sanitizer = &normal.Pipeline{
	Normalizer: []normal.Normalizer{&normal.CollapseSpaceNormalizer{}},
}

// Reader evaluates XPath queries against one document or subtree.
type Reader struct {
	root  *xmlquery.Node
	cache map[string]*xpath.Expr
}

// New creates a Reader bound to the given context node.
func New(root *xmlquery.Node) *Reader {
	return &Reader{root: root, cache: make(map[string]*xpath.Expr)}
}

func (r *Reader) compile(query string) *xpath.Expr {
	if expr, ok := r.cache[query]; ok {
		return expr
	}
	expr, err := xpath.Compile(query)
	if err != nil {
		panic(&InvalidQueryError{Query: query, Err: err})
	}
	r.cache[query] = expr
	return expr
}

// Node returns the first node matching the query, or nil.
func (r *Reader) Node(query string) *xmlquery.Node {
	return r.NodeAt(query, r.root)
}

// NodeAt is Node evaluated against an explicit context node.
func (r *Reader) NodeAt(query string, context *xmlquery.Node) *xmlquery.Node {
	return xmlquery.QuerySelector(context, r.compile(query))
}

// Nodes returns all matching nodes in document order. The result is never
// nil; no match yields an empty slice.
func (r *Reader) Nodes(query string) []*xmlquery.Node {
	return r.NodesAt(query, r.root)
}

// NodesAt is Nodes evaluated against an explicit context node.
func (r *Reader) NodesAt(query string, context *xmlquery.Node) []*xmlquery.Node {
	nodes := xmlquery.QuerySelectorAll(context, r.compile(query))
	if nodes == nil {
		return []*xmlquery.Node{}
	}
	return nodes
}

// String returns the whitespace-collapsed text content of the first node
// matching the query. Absent nodes and blank text both yield "".
func (r *Reader) String(query string) string {
	return r.StringAt(query, r.root)
}

// StringAt is String evaluated against an explicit context node.
func (r *Reader) StringAt(query string, context *xmlquery.Node) string {
	n := r.NodeAt(query, context)
	if n == nil {
		return ""
	}
	return sanitizer.Normalize(n.InnerText())
}

// Texts returns the whitespace-collapsed text content of every node
// matching the query, in document order.
func (r *Reader) Texts(query string) []string {
	return r.TextsAt(query, r.root)
}

// TextsAt is Texts evaluated against an explicit context node.
func (r *Reader) TextsAt(query string, context *xmlquery.Node) []string {
	nodes := r.NodesAt(query, context)
	texts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		texts = append(texts, sanitizer.Normalize(n.InnerText()))
	}
	return texts
}

// Exists reports whether any node matches the query, regardless of whether
// its text content is blank.
func (r *Reader) Exists(query string) bool {
	return r.Node(query) != nil
}
