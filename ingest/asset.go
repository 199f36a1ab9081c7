package ingest

import (
	"github.com/antchfx/xmlquery"

	"github.com/miku/nlmkit/doi"
	"github.com/miku/nlmkit/schema/article"
)

// Peer-review decision letters are embedded as sub-articles and carry their
// title and description in different places than ordinary figure nodes.
const decisionLetterNode = "sub-article"

// BuildAssetMetadata extracts one asset's title and description from its
// owning node. Missing fields come back as empty strings.
func (d *Document) BuildAssetMetadata(node *xmlquery.Node, assetDoi doi.Doi) article.AssetMetadata {
	if node.Data == decisionLetterNode {
		return d.buildDecisionLetterMetadata(node, assetDoi)
	}
	var description string
	if caption := d.r.NodeAt("caption", node); caption != nil {
		description = TextWithMarkup(caption)
	}
	return article.AssetMetadata{
		Doi:         assetDoi.Name(),
		Title:       d.r.StringAt("label", node),
		Description: description,
	}
}

func (d *Document) buildDecisionLetterMetadata(node *xmlquery.Node, assetDoi doi.Doi) article.AssetMetadata {
	var title string
	titleNode := d.r.NodeAt("front-stub/title-group/article-title", node)
	if titleNode == nil {
		titleNode = d.r.NodeAt("title-group/article-title", node)
	}
	if titleNode != nil {
		title = TextWithMarkup(titleNode)
	}
	return article.AssetMetadata{
		Doi:         assetDoi.Name(),
		Title:       title,
		Description: d.r.StringAt("@article-type", node),
	}
}

// AssetMetadata locates the asset with the given DOI in the document and
// extracts its metadata. This covers re-parsing a single asset during a
// later repair pass; when processing a whole article, FindAllAssetNodes
// plus BuildAssetMetadata is cheaper.
func (d *Document) AssetMetadata(target doi.Doi) (article.AssetMetadata, error) {
	groups, err := d.FindAllAssetNodes()
	if err != nil {
		return article.AssetMetadata{}, err
	}
	nodes := groups.Nodes(target)
	if len(nodes) == 0 {
		return article.AssetMetadata{}, contentErrf("DOI not matched to asset node: %s", target.Name())
	}
	candidates := make([]article.AssetMetadata, 0, len(nodes))
	for _, node := range nodes {
		candidates = append(candidates, d.BuildAssetMetadata(node, target))
	}
	return disambiguateAssetNodes(candidates)
}

// disambiguateAssetNodes resolves several candidate metadata records that
// map to the same asset DOI. The candidate with the fewest empty fields
// wins; every other candidate's non-empty fields must then agree with the
// winner. A non-empty, differing title or description is ambiguous source
// data that a human must resolve, not something to silently pick from.
func disambiguateAssetNodes(candidates []article.AssetMetadata) (article.AssetMetadata, error) {
	distinct := dedupeAssets(candidates)
	if len(distinct) == 0 {
		return article.AssetMetadata{}, logicErrf("disambiguateAssetNodes called with no candidates")
	}
	best := distinct[0]
	for _, c := range distinct[1:] {
		if countEmptyFields(c) < countEmptyFields(best) {
			best = c
		}
	}
	for _, c := range distinct {
		if c.Title != "" && c.Title != best.Title {
			return article.AssetMetadata{}, contentErrf(
				"conflicting titles for asset %s: %q != %q", best.Doi, c.Title, best.Title)
		}
		if c.Description != "" && c.Description != best.Description {
			return article.AssetMetadata{}, contentErrf(
				"conflicting descriptions for asset %s: %q != %q", best.Doi, c.Description, best.Description)
		}
	}
	return best, nil
}

func dedupeAssets(candidates []article.AssetMetadata) []article.AssetMetadata {
	seen := make(map[article.AssetMetadata]bool, len(candidates))
	distinct := make([]article.AssetMetadata, 0, len(candidates))
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		distinct = append(distinct, c)
	}
	return distinct
}

func countEmptyFields(m article.AssetMetadata) int {
	var n int
	if m.Title == "" {
		n++
	}
	if m.Description == "" {
		n++
	}
	return n
}
