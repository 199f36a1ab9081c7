// Package ingest extracts structured article metadata from NLM/JATS
// manuscript XML.
//
// The NLM Journal Publishing DTD is used inconsistently across publishers
// and DTD versions (2.3 and 3.0 are both in the wild), so extraction is a
// batch of defensive XPath queries with fallback rules for variant or
// malformed input. Fields whose absence means a structurally broken
// manuscript fail the whole ingestion with a ContentError; fields that are
// legitimately variable degrade to a default or an omission with a log
// line.
//
// A Document owns one parsed manuscript and one query evaluator and is not
// safe for concurrent use. Independent documents can be ingested in
// parallel with no coordination, one Document each.
package ingest

import (
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"

	"github.com/miku/nlmkit/doi"
	"github.com/miku/nlmkit/xmlq"
)

// Document is one manuscript plus the XPath reader bound to it.
type Document struct {
	root *xmlquery.Node
	r    *xmlq.Reader
}

// NewDocument wraps an already parsed manuscript tree.
func NewDocument(root *xmlquery.Node) *Document {
	return &Document{root: root, r: xmlq.New(root)}
}

// Parse reads manuscript XML and returns a Document ready for extraction.
func Parse(rd io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(rd)
	if err != nil {
		return nil, fmt.Errorf("parse manuscript: %w", err)
	}
	return NewDocument(root), nil
}

// ReadDoi returns the article's own DOI.
func (d *Document) ReadDoi() (doi.Doi, error) {
	s := d.r.String(`/article/front/article-meta/article-id[@pub-id-type="doi"]`)
	if s == "" {
		return doi.Doi{}, contentErr("DOI not found")
	}
	return doi.New(s), nil
}
