package ingest

import (
	"github.com/antchfx/xmlquery"
	log "github.com/sirupsen/logrus"

	"github.com/miku/nlmkit/doi"
)

// Asset nodes come in two flavors, split by where the DOI lives: direct
// nodes carry it on an xlink:href attribute (possibly on a descendant),
// container nodes carry it in an embedded object-id element. disp-formula
// is allowed by the DTD to play either role.
type assetNodeKind int

const (
	kindDirectHref assetNodeKind = iota
	kindContainerObjectID
	kindAmbiguousFormula
)

var assetNodeKinds = map[string]assetNodeKind{
	"supplementary-material": kindDirectHref,
	"inline-formula":         kindDirectHref,
	"graphic":                kindDirectHref,
	"table-wrap":             kindContainerObjectID,
	"fig":                    kindContainerObjectID,
	"disp-formula":           kindAmbiguousFormula,
}

const assetNodeQuery = `//fig | //table-wrap | //supplementary-material | //inline-formula | //disp-formula | //graphic`

// AssetNodesByDoi maps each asset DOI to the XML nodes attributed to it,
// preserving document order. Every key has at least one node. A DOI mapping
// to more than one node is valid but rare, e.g. a table-wrap containing a
// nested graphic.
type AssetNodesByDoi struct {
	order []doi.Doi
	nodes map[string][]*xmlquery.Node
}

func newAssetNodesByDoi() *AssetNodesByDoi {
	return &AssetNodesByDoi{nodes: make(map[string][]*xmlquery.Node)}
}

func (m *AssetNodesByDoi) add(d doi.Doi, node *xmlquery.Node) {
	key := d.Key()
	if _, ok := m.nodes[key]; !ok {
		m.order = append(m.order, d)
	}
	m.nodes[key] = append(m.nodes[key], node)
}

// Dois returns the asset DOIs in the order they appear in the document.
func (m *AssetNodesByDoi) Dois() []doi.Doi {
	return append([]doi.Doi(nil), m.order...)
}

// Nodes returns the non-empty list of nodes for a DOI, or nil if the DOI is
// not present.
func (m *AssetNodesByDoi) Nodes(d doi.Doi) []*xmlquery.Node {
	return m.nodes[d.Key()]
}

// Len returns the total number of nodes across all DOIs.
func (m *AssetNodesByDoi) Len() int {
	var n int
	for _, nodes := range m.nodes {
		n += len(nodes)
	}
	return n
}

// transform produces a new map with every node passed through f, keeping
// key order and grouping intact.
func (m *AssetNodesByDoi) transform(f func(*xmlquery.Node) *xmlquery.Node) *AssetNodesByDoi {
	out := newAssetNodesByDoi()
	for _, d := range m.order {
		for _, node := range m.nodes[d.Key()] {
			out.add(d, f(node))
		}
	}
	return out
}

// FindAllAssetNodes locates every node that the ingestion rules recognize
// as representing an asset and groups the nodes by their resolved DOI.
// Nodes with no resolvable DOI are logged and dropped; manuscripts
// routinely contain decorative or legacy markup without identifiers.
func (d *Document) FindAllAssetNodes() (*AssetNodesByDoi, error) {
	byDoi := newAssetNodesByDoi()
	for _, node := range d.r.Nodes(assetNodeQuery) {
		assetDoi, err := d.resolveAssetDoi(node)
		if err != nil {
			return nil, err
		}
		if assetDoi.IsZero() && node.Data == "table-wrap" {
			// Known publisher malformation: a table-wrap with no object-id
			// but an identifying graphic inside. Attribute the DOI to the
			// outer table-wrap.
			assetDoi = d.resolveTableWrapGraphic(node)
		}
		if assetDoi.IsZero() {
			log.WithField("node", node.Data).Warn("asset node without a resolvable DOI, dropping")
			continue
		}
		byDoi.add(assetDoi, node)
	}
	return byDoi.transform(replaceGraphicWithParent), nil
}

// resolveAssetDoi finds the DOI that identifies an asset node. A zero Doi
// means the node carries no identifier; only unrecognized node names are an
// error, since the node query and the kind table must agree.
func (d *Document) resolveAssetDoi(node *xmlquery.Node) (doi.Doi, error) {
	kind, ok := assetNodeKinds[node.Data]
	if !ok {
		return doi.Doi{}, logicErrf("node %q is not a recognized asset type (expected one of %s)", node.Data, assetNodeQuery)
	}
	switch kind {
	case kindDirectHref:
		return hrefDoi(node), nil
	case kindContainerObjectID:
		return d.objectIDDoi(node), nil
	case kindAmbiguousFormula:
		if objID := d.objectIDDoi(node); !objID.IsZero() {
			return objID, nil
		}
		return hrefDoi(node), nil
	}
	return doi.Doi{}, logicErrf("unhandled asset node kind %d", kind)
}

func (d *Document) objectIDDoi(node *xmlquery.Node) doi.Doi {
	s := d.r.StringAt(`object-id[@pub-id-type="doi"]`, node)
	if s == "" {
		return doi.Doi{}
	}
	return doi.New(s)
}

// hrefDoi reads the xlink:href attribute from a node, or, if absent,
// recursively from a descendant. The recursion handles container nodes
// that wrap the identifying child, e.g.
// <inline-formula><inline-graphic xlink:href="..."/></inline-formula>.
func hrefDoi(node *xmlquery.Node) doi.Doi {
	if href := node.SelectAttr("xlink:href"); href != "" {
		return doi.New(href)
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		if d := hrefDoi(child); !d.IsZero() {
			return d
		}
	}
	return doi.Doi{}
}

func (d *Document) resolveTableWrapGraphic(node *xmlquery.Node) doi.Doi {
	for _, graphic := range d.r.NodesAt(`.//graphic`, node) {
		if gd := hrefDoi(graphic); !gd.IsZero() {
			return gd
		}
	}
	return doi.Doi{}
}

// replaceGraphicWithParent swaps a stored bare graphic node for its logical
// parent, so downstream extraction reads caption and label context instead
// of the bare image node. The parent is the enclosing figure, table or
// formula container; an intervening alternatives element is skipped.
func replaceGraphicWithParent(node *xmlquery.Node) *xmlquery.Node {
	if node.Data != "graphic" {
		return node
	}
	parent := node.Parent
	if parent != nil && parent.Data == "alternatives" {
		parent = parent.Parent
	}
	if parent == nil {
		return node
	}
	if kind, ok := assetNodeKinds[parent.Data]; ok && kind != kindDirectHref {
		return parent
	}
	return node
}
