package ingest

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// TextWithMarkup reconstructs the text content of a node, preserving nested
// element boundaries as simplified open/close tags. Nested tags show only
// the tag name; their attributes are dropped. Text nodes containing only
// whitespace are dropped, other text is kept verbatim. Captions and titles
// legitimately contain inline markup (an italicized species name, say) that
// must survive into output without carrying the full DOM along.
func TextWithMarkup(node *xmlquery.Node) string {
	var b strings.Builder
	appendTextWithMarkup(&b, node)
	return b.String()
}

func appendTextWithMarkup(b *strings.Builder, node *xmlquery.Node) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(child.Data) == "" {
				continue
			}
			b.WriteString(child.Data)
		case xmlquery.ElementNode:
			name := child.Data
			if child.Prefix != "" {
				name = child.Prefix + ":" + name
			}
			b.WriteByte('<')
			b.WriteString(name)
			b.WriteByte('>')
			appendTextWithMarkup(b, child)
			b.WriteString("</")
			b.WriteString(name)
			b.WriteByte('>')
		}
	}
}
